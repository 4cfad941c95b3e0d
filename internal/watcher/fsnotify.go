package watcher

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"
)

// StartFsNotify posts a job once the folder has been quiet for the debounce
// window after a create event. Renames and removals only shrink the folder;
// the ones caused by our own evictions must not schedule another pass.
func (w *Watcher) StartFsNotify(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	w.mu.RLock()
	dir := w.dir
	debounce := w.debounce
	w.mu.RUnlock()

	if err := watcher.Add(dir); err != nil {
		return err
	}
	w.log.Info("watching folder", "dir", dir, "debounce", debounce)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				w.log.Error("events channel closed")
				return nil
			}

			w.log.Debug("event", "name", ev.Name, "op", ev.Op)

			if !ev.Op.Has(fsnotify.Create) {
				continue
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				w.trigger("watch")
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error("fsnotify error", "error", err)
		}
	}
}
