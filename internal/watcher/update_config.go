package watcher

import (
	"github.com/raoulx24/bckpcln/internal/config"
)

// UpdateConfig replaces the watched folder and timings. The running loop
// picks them up on its next start.
func (w *Watcher) UpdateConfig(dir string, cfg config.WatchConfig) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if dir != w.dir {
		w.known = nil
	}

	w.dir = dir
	w.interval = cfg.PollInterval
	w.mode = cfg.Mode
	w.debounce = cfg.DebounceWindow
}
