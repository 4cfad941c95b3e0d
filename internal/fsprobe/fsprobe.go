// Package fsprobe checks whether fsnotify works reliably for a directory.
// Network and FUSE filesystems often accept a watch but never deliver events.
package fsprobe

import (
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

// probeTimeout bounds the wait for the probe's own events.
const probeTimeout = 200 * time.Millisecond

// Result reports whether fsnotify is usable and why.
type Result struct {
	FsnotifySupported bool   // true if events are delivered
	Reason            string // explanation when unsupported
}

// Probe creates and removes a hidden file in dir and waits for the event.
// A file is used rather than a directory so a concurrent snapshot scan
// never sees the probe.
func Probe(dir string) Result {
	st, err := os.Stat(dir)
	if err != nil {
		return Result{false, fmt.Sprintf("stat failed: %v", err)}
	}
	if !st.IsDir() {
		return Result{false, "not a directory"}
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return Result{false, fmt.Sprintf("fsnotify unavailable: %v", err)}
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return Result{false, fmt.Sprintf("cannot watch directory: %v", err)}
	}

	f, err := os.CreateTemp(dir, ".bckpcln-probe-*")
	if err != nil {
		return Result{false, fmt.Sprintf("cannot create probe file: %v", err)}
	}
	name := f.Name()
	f.Close()
	defer os.Remove(name)

	timeout := time.After(probeTimeout)
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return Result{false, "event channel closed"}
			}
			if ev.Name == name && ev.Op.Has(fsnotify.Create) {
				return Result{true, ""}
			}
		case err := <-w.Errors:
			return Result{false, fmt.Sprintf("watch error: %v", err)}
		case <-timeout:
			return Result{false, "no events received for the probe file"}
		}
	}
}
