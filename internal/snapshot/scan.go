package snapshot

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/raoulx24/bckpcln/internal/logging"
)

// Scan lists the snapshot directories directly under dir.
// Non-directory entries are ignored; a directory whose name is not a
// snapshot date fails the whole scan. Isolation is left unset.
func Scan(dir string, log logging.Logger) ([]Snapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading folder: %w", err)
	}

	var snaps []Snapshot
	for _, ent := range entries {
		if !ent.IsDir() {
			continue
		}

		full := filepath.Join(dir, ent.Name())
		date, err := DateFromName(full)
		if err != nil {
			return nil, err
		}

		n, err := Measure(full, log)
		if err != nil {
			return nil, err
		}

		log.Debug("snapshot found", "path", full, "date", date, "size", n)
		snaps = append(snaps, Snapshot{
			Path: full,
			Date: date,
			Size: n,
		})
	}

	return snaps, nil
}

// Measure sums the sizes of the regular files below root.
// Symlinks are not followed; each one is reported and counts for nothing.
func Measure(root string, log logging.Logger) (uint64, error) {
	var total uint64

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		switch {
		case d.Type()&fs.ModeSymlink != 0:
			log.Warn("skipping symlink", "path", path)
		case d.Type().IsRegular():
			info, err := d.Info()
			if err != nil {
				return err
			}
			total += uint64(info.Size())
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("measuring %s: %w", root, err)
	}

	return total, nil
}
