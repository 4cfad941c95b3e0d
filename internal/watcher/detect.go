package watcher

import (
	"os"
)

// detect lists the sub-directories of the folder and reports whether one
// appeared since the previous listing. Disappearing entries are not a
// change: they never grow the folder, and most come from our own evictions.
func (w *Watcher) detect() (bool, error) {
	w.mu.RLock()
	dir := w.dir
	w.mu.RUnlock()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}

	listing := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			listing[e.Name()] = true
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	changed := false
	for name := range listing {
		if !w.known[name] {
			changed = true
			break
		}
	}
	w.known = listing
	return changed, nil
}
