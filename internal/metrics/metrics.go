// Package metrics exports the outcome of cleanup passes in the Prometheus
// text format, for the node_exporter textfile collector.
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/raoulx24/bckpcln/internal/cleaner"
)

// Result label values of bckpcln_runs_total.
const (
	ResultOK      = "ok"
	ResultPartial = "partial"
	ResultAborted = "aborted"
	ResultError   = "error"
)

// Metrics holds the collectors describing the latest pass.
type Metrics struct {
	registry *prometheus.Registry
	path     string

	runs         *prometheus.CounterVec
	folderSize   *prometheus.GaugeVec
	snapshots    prometheus.Gauge
	evicted      prometheus.Gauge
	planned      prometheus.Gauge
	freed        prometheus.Gauge
	failures     prometheus.Gauge
	lastRunStart prometheus.Gauge
}

// New creates the collectors. When path is not empty every Observe call
// rewrites that file.
func New(path string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		path:     path,
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bckpcln_runs_total",
			Help: "Cleanup passes by outcome.",
		}, []string{"result"}),
		folderSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bckpcln_folder_size_bytes",
			Help: "Size of the backup folder before and after the last pass.",
		}, []string{"stage"}),
		snapshots: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bckpcln_snapshots",
			Help: "Snapshots found by the last pass.",
		}),
		evicted: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bckpcln_evicted_snapshots",
			Help: "Snapshots evicted by the last pass.",
		}),
		planned: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bckpcln_planned_evictions",
			Help: "Snapshots an explain pass would have evicted.",
		}),
		freed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bckpcln_freed_bytes",
			Help: "Bytes freed by the last pass.",
		}),
		failures: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bckpcln_eviction_failures",
			Help: "Evictions that failed during the last pass.",
		}),
		lastRunStart: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bckpcln_last_run_timestamp_seconds",
			Help: "Start time of the last pass.",
		}),
	}

	m.registry.MustRegister(m.runs, m.folderSize, m.snapshots, m.evicted, m.planned, m.freed, m.failures, m.lastRunStart)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe records a pass. res may be nil when the pass failed before
// discovering anything. Only real evictions count as freed space.
func (m *Metrics) Observe(res *cleaner.Result, err error) error {
	m.runs.WithLabelValues(outcome(res, err)).Inc()

	if res != nil {
		m.folderSize.WithLabelValues("before").Set(float64(res.TotalSize))
		m.folderSize.WithLabelValues("after").Set(float64(res.ResidualSize))
		m.snapshots.Set(float64(res.Snapshots))
		m.evicted.Set(float64(len(res.Evicted)))
		m.planned.Set(float64(len(res.Planned)))
		m.freed.Set(float64(res.Freed()))
		m.failures.Set(float64(len(res.Failures)))
		m.lastRunStart.Set(float64(res.Started.Unix()))
	}

	if m.path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(m.path, m.registry); err != nil {
		return fmt.Errorf("writing metrics file: %w", err)
	}
	return nil
}

func outcome(res *cleaner.Result, err error) string {
	switch {
	case errors.Is(err, cleaner.ErrActionsFailed):
		return ResultPartial
	case err != nil || res == nil:
		return ResultError
	case res.Aborted:
		return ResultAborted
	default:
		return ResultOK
	}
}
