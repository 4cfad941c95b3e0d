package snapshot

import (
	"fmt"
	"path/filepath"
	"regexp"
	"time"
)

// NameLayout is the leaf-name format of a snapshot directory, in UTC.
const NameLayout = "2006-01-02_1504_05"

var namePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}_\d{4}_\d{2}$`)

// NameError reports a snapshot directory whose name carries no date.
type NameError struct {
	Path string
	Err  error
}

func (e *NameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot parse date from this name: %q: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("cannot parse date from this name: %q", e.Path)
}

func (e *NameError) Unwrap() error {
	return e.Err
}

// DateFromName parses the creation date out of a snapshot directory path.
func DateFromName(path string) (time.Time, error) {
	name := filepath.Base(path)
	if !namePattern.MatchString(name) {
		return time.Time{}, &NameError{Path: path}
	}

	t, err := time.ParseInLocation(NameLayout, name, time.UTC)
	if err != nil {
		return time.Time{}, &NameError{Path: path, Err: err}
	}
	return t, nil
}

// NameFor formats t as a snapshot directory name.
func NameFor(t time.Time) string {
	return t.UTC().Format(NameLayout)
}
