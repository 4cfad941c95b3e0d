package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/raoulx24/bckpcln/internal/cleaner"
	"github.com/raoulx24/bckpcln/internal/config"
	"github.com/raoulx24/bckpcln/internal/logging"
	"github.com/raoulx24/bckpcln/internal/mailbox"
	"github.com/raoulx24/bckpcln/internal/metrics"
	"github.com/raoulx24/bckpcln/internal/scheduler"
	"github.com/raoulx24/bckpcln/internal/watcher"
	"github.com/raoulx24/bckpcln/internal/worker"
)

// runDaemon keeps cleaning up until ctx is done. Triggers from the watcher
// and the scheduler are coalesced in a mailbox and handled one at a time.
func runDaemon(ctx context.Context, cmd *cobra.Command, cfg *config.Config, opts cleaner.Options,
	c *cleaner.Cleaner, rec *metrics.Metrics, log logging.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	mb := mailbox.New[worker.Job]()
	w := worker.New(opts, log, c, mb, rec)

	var sched *scheduler.Scheduler
	if cfg.Schedule != "" {
		var err error
		sched, err = scheduler.New(cfg.Schedule, log, mb)
		if err != nil {
			return err
		}
	}

	var folderWatcher *watcher.Watcher
	if cfg.Watch.Enabled {
		folderWatcher = watcher.New(opts.Directory, cfg.Watch, log, mb)
	}

	// Bring the folder under its ceiling right away.
	mb.Put(worker.Job{Reason: "startup", At: time.Now()})

	var wg sync.WaitGroup
	errCh := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		w.Start(ctx)
	}()

	if sched != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sched.Start(ctx)
		}()
	}

	if folderWatcher != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := folderWatcher.Start(ctx); err != nil {
				errCh <- err
			}
		}()
	}

	if cfgFile != "" {
		go reloadOnHangup(ctx, cmd, w, folderWatcher, log)
	}

	var err error
	select {
	case <-ctx.Done():
		log.Info("shutting down...")
	case err = <-errCh:
		log.Error("watcher failed", "error", err)
	}

	cancel()
	wg.Wait()
	log.Info("exit complete")
	return err
}

// reloadOnHangup re-reads the config file on SIGHUP. A changed schedule
// needs a restart.
func reloadOnHangup(ctx context.Context, cmd *cobra.Command, w *worker.Worker, fw *watcher.Watcher, log logging.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-sigCh:
		}

		cfg, err := buildConfig(cmd)
		if err != nil {
			log.Error("config reload failed", "error", err)
			continue
		}
		opts, err := cfg.Options()
		if err != nil {
			log.Error("config reload failed", "error", err)
			continue
		}
		if abs, err := filepath.Abs(opts.Directory); err == nil {
			opts.Directory = abs
		}

		w.UpdateConfig(opts)
		if fw != nil {
			fw.UpdateConfig(opts.Directory, cfg.Watch)
		}
		log.Info("config reloaded", "directory", opts.Directory, "action", opts.Action)
	}
}
