// Package snapshot discovers dated backup directories and measures them.
package snapshot

import (
	"fmt"
	"math"
	"time"

	"github.com/raoulx24/bckpcln/internal/size"
)

// MaxIsolation marks a snapshot that must not be preferred for eviction.
// It compares greater than every real gap between two snapshots.
const MaxIsolation = time.Duration(math.MaxInt64)

// Snapshot represents a single backup directory.
type Snapshot struct {
	Path string
	Date time.Time
	Size uint64

	// Isolation is the smaller gap to the temporal neighbors within the
	// set the snapshot currently belongs to.
	Isolation time.Duration
}

// IsEndpoint reports whether the snapshot carries the sentinel isolation.
func (s Snapshot) IsEndpoint() bool {
	return s.Isolation == MaxIsolation
}

func (s Snapshot) String() string {
	return fmt.Sprintf("%s : %q (%s)", s.Date.Format(time.DateTime), s.Path, size.Format(s.Size))
}
