package watcher

import (
	"context"
	"time"
)

// StartPolling lists the folder on a fixed interval.
func (w *Watcher) StartPolling(ctx context.Context) error {
	w.mu.RLock()
	interval := w.interval
	dir := w.dir
	w.mu.RUnlock()

	// The first listing is the baseline, not a change.
	if _, err := w.detect(); err != nil {
		return err
	}
	w.log.Info("polling folder", "dir", dir, "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			changed, err := w.detect()
			if err != nil {
				w.log.Error("polling failed", "dir", dir, "error", err)
				continue
			}
			if changed {
				w.trigger("poll")
			}
		}
	}
}
