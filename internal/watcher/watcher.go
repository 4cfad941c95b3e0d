// Package watcher monitors the backup folder and posts a cleanup job when
// its set of snapshot directories changes.
package watcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/raoulx24/bckpcln/internal/config"
	"github.com/raoulx24/bckpcln/internal/fsprobe"
	"github.com/raoulx24/bckpcln/internal/logging"
	"github.com/raoulx24/bckpcln/internal/mailbox"
	"github.com/raoulx24/bckpcln/internal/worker"
)

// Watcher observes the backup folder.
type Watcher struct {
	mu sync.RWMutex

	dir      string
	interval time.Duration
	mode     string
	debounce time.Duration

	log logging.Logger

	// known is the set of directory names seen by the last poll.
	known map[string]bool

	mb *mailbox.Mailbox[worker.Job]
}

// New creates a watcher for dir.
func New(dir string, cfg config.WatchConfig, log logging.Logger, mb *mailbox.Mailbox[worker.Job]) *Watcher {
	return &Watcher{
		dir:      dir,
		interval: cfg.PollInterval,
		mode:     cfg.Mode,
		debounce: cfg.DebounceWindow,
		log:      log,
		mb:       mb,
	}
}

// Start chooses the watching strategy based on config and blocks until
// ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.RLock()
	mode, dir := w.mode, w.dir
	w.mu.RUnlock()

	switch mode {
	case "fsnotify":
		return w.StartFsNotify(ctx)

	case "poll":
		return w.StartPolling(ctx)

	case "", "auto":
		res := fsprobe.Probe(dir)
		if res.FsnotifySupported {
			return w.StartFsNotify(ctx)
		}
		w.log.Warn("fsnotify disabled, polling instead", "reason", res.Reason)
		return w.StartPolling(ctx)

	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}

// trigger posts a cleanup job.
func (w *Watcher) trigger(reason string) {
	w.log.Debug("folder changed", "reason", reason)
	w.mb.Put(worker.Job{Reason: reason, At: time.Now()})
}
