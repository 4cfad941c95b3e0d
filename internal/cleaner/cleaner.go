// Package cleaner runs a cleanup pass: it discovers the snapshots of a
// backup folder and evicts them in retention order until the folder fits
// under its size ceiling.
package cleaner

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/raoulx24/bckpcln/internal/fs"
	"github.com/raoulx24/bckpcln/internal/logging"
	"github.com/raoulx24/bckpcln/internal/output"
	"github.com/raoulx24/bckpcln/internal/retention"
	"github.com/raoulx24/bckpcln/internal/size"
	"github.com/raoulx24/bckpcln/internal/snapshot"
)

// Options describe one cleanup pass.
type Options struct {
	Directory  string
	MaxSize    uint64
	Action     Action
	MoveTarget string

	// Force skips the confirmation prompt.
	Force bool
	// List prints the discovered folder before processing.
	List bool
	// Verbose prints the remaining folder after every eviction.
	Verbose bool
}

// Result summarizes a cleanup pass.
type Result struct {
	RunID     string
	Action    Action
	Started   time.Time
	Snapshots int

	// TotalSize is the folder size before the pass, ResidualSize after it.
	// Failed evictions are not subtracted, and an explain pass leaves
	// ResidualSize equal to TotalSize.
	TotalSize    uint64
	ResidualSize uint64

	// Evicted lists the snapshots actually deleted or moved. An explain
	// pass records what it would have evicted in Planned instead.
	Evicted  []snapshot.Snapshot
	Planned  []snapshot.Snapshot
	Failures []*ActionError

	// Aborted is set when the user declined the confirmation prompt.
	Aborted bool
}

// Freed returns the number of bytes released by successful evictions.
func (r *Result) Freed() uint64 {
	return r.TotalSize - r.ResidualSize
}

// Cleaner drives the retention engine and applies its decisions.
type Cleaner struct {
	fs      fs.FS
	log     logging.Logger
	out     *output.Printer
	confirm Confirmer
	now     func() time.Time
}

// New creates a Cleaner. A nil filesystem means the local one; a nil
// confirmer prompts on the terminal.
func New(filesystem fs.FS, log logging.Logger, out *output.Printer, confirm Confirmer) *Cleaner {
	if filesystem == nil {
		filesystem = fs.New()
	}
	if out == nil {
		out = output.NewPrinter(nil, nil)
	}
	if confirm == nil {
		confirm = NewTerminalConfirmer()
	}
	return &Cleaner{
		fs:      filesystem,
		log:     log,
		out:     out,
		confirm: confirm,
		now:     time.Now,
	}
}

// Run performs one pass. Discovery errors abort it. Failed evictions are
// reported and skipped; Run then returns the result with ErrActionsFailed.
func (c *Cleaner) Run(ctx context.Context, opts Options) (*Result, error) {
	res := &Result{
		RunID:   uuid.NewString(),
		Action:  opts.Action,
		Started: c.now(),
	}

	c.out.Out("Backup directory to clean up: %s\n", opts.Directory)
	c.out.Out("Max size: %s\n", size.Format(opts.MaxSize))
	switch opts.Action {
	case Delete:
		c.out.Out("Perform delete: Yes!\n")
	case Move:
		c.out.Out("Perform move to: %s\n", opts.MoveTarget)
	default:
		c.out.Out("Perform delete: No, just explain\n")
	}

	c.log.Debug("starting cleanup", "run", res.RunID, "directory", opts.Directory, "action", opts.Action)

	folder, err := retention.Load(opts.Directory, c.log)
	if err != nil {
		return nil, err
	}
	res.Snapshots = folder.Len()
	res.TotalSize = folder.TotalSize
	res.ResidualSize = folder.TotalSize

	if opts.List {
		c.out.Out("Backups folder: %s", output.RenderFolder(folder, res.Started))
	}

	c.out.Out("Cumulated size of all backup files: %s\n", size.Format(folder.TotalSize))

	if folder.TotalSize <= opts.MaxSize {
		c.out.Out("Cumulated backups size is lower than the max size - nothing to do\n")
		return res, nil
	}
	c.out.Out("Cumulated backups size is higher than the max size - cleanup is needed!\n")

	if opts.Action != Explain && !opts.Force {
		ok, err := c.confirmPlan(folder, opts)
		if err != nil {
			return nil, err
		}
		if !ok {
			res.Aborted = true
			c.out.Out("Aborted, nothing was changed\n")
			return res, nil
		}
	}

	// residual drives the stop rule; for an explain pass it is a projection.
	residual := folder.TotalSize
	for victim, remaining := range folder.InDeletionOrder() {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		if failure := c.evict(ctx, opts, victim); failure != nil {
			c.out.Err("%s\n", failure)
			c.log.Error("eviction failed", "run", res.RunID, "action", opts.Action, "path", victim.Path, "error", failure.Err)
			res.Failures = append(res.Failures, failure)
		} else if opts.Action == Explain {
			residual -= victim.Size
			res.Planned = append(res.Planned, victim)
		} else {
			residual -= victim.Size
			res.ResidualSize = residual
			res.Evicted = append(res.Evicted, victim)
			c.log.Info("snapshot evicted", "run", res.RunID, "action", opts.Action, "path", victim.Path, "size", victim.Size)
		}

		if opts.Verbose {
			c.out.Out("New folder state: %s", output.RenderFolder(remaining, res.Started))
		}

		if residual <= opts.MaxSize {
			break
		}
	}

	c.out.Out("New cumulated size of all backup files : %s\n", size.Format(residual))
	c.log.Info("cleanup finished", "run", res.RunID,
		"evicted", len(res.Evicted), "planned", len(res.Planned), "failed", len(res.Failures),
		"total", res.TotalSize, "residual", res.ResidualSize)

	if len(res.Failures) > 0 {
		return res, fmt.Errorf("%d of %d evictions failed: %w",
			len(res.Failures), len(res.Failures)+len(res.Evicted), ErrActionsFailed)
	}
	return res, nil
}

// confirmPlan asks once before the first destructive eviction.
func (c *Cleaner) confirmPlan(folder *retention.Folder, opts Options) (bool, error) {
	victims := retention.Plan(folder, opts.MaxSize)

	var freed uint64
	for _, v := range victims {
		freed += v.Size
	}

	verb := "delete"
	if opts.Action == Move {
		verb = "move to " + opts.MoveTarget
	}
	return c.confirm.Confirm(fmt.Sprintf("About to %s %d of %d snapshots to free %s. Proceed?",
		verb, len(victims), folder.Len(), size.Format(freed)))
}

// evict applies the action to one victim and prints the outcome.
func (c *Cleaner) evict(ctx context.Context, opts Options, victim snapshot.Snapshot) *ActionError {
	freed := size.Format(victim.Size)

	switch opts.Action {
	case Delete:
		if err := c.fs.RemoveAll(ctx, victim.Path); err != nil {
			return &ActionError{Action: Delete, Path: victim.Path, Err: err}
		}
		c.out.Out("Deleted %q to free %s\n", victim.Path, freed)

	case Move:
		dst := filepath.Join(opts.MoveTarget, filepath.Base(victim.Path))
		c.out.Out("Moving %q to %q to free %s\n", victim.Path, dst, freed)
		if err := c.fs.Move(ctx, victim.Path, dst); err != nil {
			return &ActionError{Action: Move, Path: victim.Path, Err: err}
		}

	default:
		c.out.Out("Deleting (or moving) %q would free %s\n", victim.Path, freed)
	}

	return nil
}
