// Package scheduler posts cleanup jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/raoulx24/bckpcln/internal/logging"
	"github.com/raoulx24/bckpcln/internal/mailbox"
	"github.com/raoulx24/bckpcln/internal/worker"
)

// Scheduler puts a job into the mailbox at every tick of a cron expression.
// The pass itself runs on the worker, so a slow pass only delays the next one.
type Scheduler struct {
	mu       sync.Mutex
	cron     *cron.Cron
	schedule string
	log      logging.Logger
	mb       *mailbox.Mailbox[worker.Job]
	running  bool
}

// New validates the standard 5-field cron expression.
//
// Common expressions:
//   - "0 3 * * *"   - daily at 3 AM
//   - "*/30 * * * *" - every 30 minutes
//   - "@hourly"
func New(schedule string, log logging.Logger, mb *mailbox.Mailbox[worker.Job]) (*Scheduler, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}

	s := &Scheduler{
		cron:     cron.New(),
		schedule: schedule,
		log:      log,
		mb:       mb,
	}
	if _, err := s.cron.AddFunc(schedule, s.tick); err != nil {
		return nil, fmt.Errorf("failed to schedule cleanup: %w", err)
	}
	return s, nil
}

func (s *Scheduler) tick() {
	s.log.Debug("scheduled cleanup due", "schedule", s.schedule)
	s.mb.Put(worker.Job{Reason: "schedule", At: time.Now()})
}

// Start runs the cron loop until ctx is done.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.cron.Start()
	s.running = true
	s.mu.Unlock()

	s.log.Info("scheduler started", "schedule", s.schedule, "next", s.NextRun())

	<-ctx.Done()
	s.Stop()
}

// Stop halts the cron loop and waits for a running tick.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		<-s.cron.Stop().Done()
		s.running = false
		s.log.Info("scheduler stopped")
	}
}

// NextRun returns the time of the next tick, or the zero time when stopped.
func (s *Scheduler) NextRun() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}
