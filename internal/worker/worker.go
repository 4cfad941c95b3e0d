// Package worker runs cleanup passes for the jobs posted to its mailbox.
package worker

import (
	"context"
	"sync"

	"github.com/raoulx24/bckpcln/internal/cleaner"
	"github.com/raoulx24/bckpcln/internal/logging"
	"github.com/raoulx24/bckpcln/internal/mailbox"
)

// Runner performs one cleanup pass.
type Runner interface {
	Run(ctx context.Context, opts cleaner.Options) (*cleaner.Result, error)
}

// Recorder is told about every finished pass.
type Recorder interface {
	Observe(res *cleaner.Result, err error) error
}

// Worker takes jobs from the mailbox one at a time, so passes never overlap.
type Worker struct {
	mu     sync.RWMutex
	opts   cleaner.Options
	log    logging.Logger
	runner Runner
	rec    Recorder
	mb     *mailbox.Mailbox[Job]
}

// New creates a worker. rec may be nil.
func New(opts cleaner.Options, log logging.Logger, runner Runner, mb *mailbox.Mailbox[Job], rec Recorder) *Worker {
	log.Debug("creating worker")
	return &Worker{
		opts:   opts,
		log:    log,
		runner: runner,
		rec:    rec,
		mb:     mb,
	}
}

// Start runs the worker loop until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	w.log.Info("starting worker")
	for {
		job, ok := w.mb.Take(ctx)
		if !ok {
			w.log.Info("worker stopped")
			return
		}
		if err := w.Handle(ctx, job); err != nil {
			w.log.Error("cleanup pass failed", "reason", job.Reason, "error", err)
		}
	}
}

// Handle runs one pass for job and records its outcome.
func (w *Worker) Handle(ctx context.Context, job Job) error {
	w.mu.RLock()
	opts := w.opts
	w.mu.RUnlock()

	w.log.Debug("handling job", "reason", job.Reason, "at", job.At, "directory", opts.Directory)

	res, err := w.runner.Run(ctx, opts)
	if w.rec != nil {
		if rerr := w.rec.Observe(res, err); rerr != nil {
			w.log.Error("recording metrics failed", "error", rerr)
		}
	}
	return err
}

// UpdateConfig replaces the options used by the next passes.
func (w *Worker) UpdateConfig(opts cleaner.Options) {
	w.mu.Lock()
	w.opts = opts
	w.mu.Unlock()
}
