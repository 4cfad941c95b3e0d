package metrics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/raoulx24/bckpcln/internal/cleaner"
	"github.com/raoulx24/bckpcln/internal/logging"
	"github.com/raoulx24/bckpcln/internal/output"
	"github.com/raoulx24/bckpcln/internal/snapshot"
)

func TestMetrics_Observe(t *testing.T) {
	m := New("")
	started := time.Date(2024, 1, 5, 3, 0, 0, 0, time.UTC)

	res := &cleaner.Result{
		Started:      started,
		Snapshots:    4,
		TotalSize:    400,
		ResidualSize: 200,
		Evicted:      []snapshot.Snapshot{{Size: 100}, {Size: 100}},
	}
	if err := m.Observe(res, nil); err != nil {
		t.Fatalf("Observe() failed: %v", err)
	}

	if got := testutil.ToFloat64(m.freed); got != 200 {
		t.Errorf("freed = %v, want 200", got)
	}
	if got := testutil.ToFloat64(m.evicted); got != 2 {
		t.Errorf("evicted = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.folderSize.WithLabelValues("after")); got != 200 {
		t.Errorf("after = %v, want 200", got)
	}
	if got := testutil.ToFloat64(m.lastRunStart); got != float64(started.Unix()) {
		t.Errorf("last run = %v", got)
	}
	if got := testutil.ToFloat64(m.runs.WithLabelValues(ResultOK)); got != 1 {
		t.Errorf("ok runs = %v, want 1", got)
	}
}

func TestMetrics_ExplainPassFreesNothing(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"2024-01-01_0000_00", "2024-01-02_0000_00", "2024-01-03_0000_00"} {
		p := filepath.Join(dir, name)
		if err := os.Mkdir(p, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(p, "data"), make([]byte, 100), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	c := cleaner.New(nil, logging.Discard(), output.NewPrinter(io.Discard, io.Discard), nil)
	res, err := c.Run(context.Background(), cleaner.Options{Directory: dir, MaxSize: 150})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	m := New("")
	if err := m.Observe(res, err); err != nil {
		t.Fatalf("Observe() failed: %v", err)
	}

	for name, tc := range map[string]struct {
		got, want float64
	}{
		"freed":   {testutil.ToFloat64(m.freed), 0},
		"evicted": {testutil.ToFloat64(m.evicted), 0},
		"planned": {testutil.ToFloat64(m.planned), 2},
		"before":  {testutil.ToFloat64(m.folderSize.WithLabelValues("before")), 300},
		"after":   {testutil.ToFloat64(m.folderSize.WithLabelValues("after")), 300},
	} {
		if tc.got != tc.want {
			t.Errorf("%s = %v, want %v", name, tc.got, tc.want)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 3 {
		t.Errorf("explain pass changed the folder: %d entries, %v", len(entries), err)
	}
}

func TestMetrics_Outcomes(t *testing.T) {
	m := New("")

	_ = m.Observe(nil, errors.New("cannot parse date"))
	_ = m.Observe(&cleaner.Result{Failures: []*cleaner.ActionError{{}}}, fmt.Errorf("1 of 1: %w", cleaner.ErrActionsFailed))
	_ = m.Observe(&cleaner.Result{Aborted: true}, nil)

	for label, want := range map[string]float64{ResultError: 1, ResultPartial: 1, ResultAborted: 1, ResultOK: 0} {
		if got := testutil.ToFloat64(m.runs.WithLabelValues(label)); got != want {
			t.Errorf("runs{result=%q} = %v, want %v", label, got, want)
		}
	}
	if got := testutil.ToFloat64(m.failures); got != 0 {
		t.Errorf("failures gauge = %v, want 0 after the aborted run", got)
	}
}

func TestMetrics_WritesTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bckpcln.prom")
	m := New(path)

	if err := m.Observe(&cleaner.Result{Snapshots: 3, TotalSize: 10, ResidualSize: 10}, nil); err != nil {
		t.Fatalf("Observe() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading metrics file: %v", err)
	}
	for _, want := range []string{"bckpcln_snapshots 3", `bckpcln_runs_total{result="ok"} 1`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("metrics file lacks %q:\n%s", want, data)
		}
	}
}
