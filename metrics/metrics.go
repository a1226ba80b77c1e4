// SPDX-License-Identifier: MIT

// Package metrics holds the Prometheus collectors of one batch run.
//
// Each run owns its registry, so repeated runs in one process (tests, the
// CLI) never collide on registration. All Record methods are nil-safe: code
// that was handed no registry simply records nothing.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "chokepoint"

// Skip reasons for PortsSkippedTotal.
const (
	SkipNotInGraph = "not_in_graph"
	SkipNoMetric   = "zero_metric"
)

// Registry holds all metrics for a run.
type Registry struct {
	StageDuration      *prometheus.GaugeVec
	TreesTotal         prometheus.Counter
	PortsSkippedTotal  *prometheus.CounterVec
	UndefinedCountries prometheus.Gauge

	registry *prometheus.Registry
}

// NewRegistry creates a registry with every collector registered.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}

	r.StageDuration = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall time of each pipeline stage in the last run",
		},
		[]string{"stage"},
	)
	r.TreesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shortest_path_trees_total",
			Help:      "Single-source shortest-path trees computed",
		},
	)
	r.PortsSkippedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ports_skipped_total",
			Help:      "Ports that contributed nothing to reliance, by reason",
		},
		[]string{"reason"},
	)
	r.UndefinedCountries = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "undefined_countries",
			Help:      "Countries whose reliance row is undefined (zero throughput)",
		},
	)

	return r
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// RecordStage records the duration of a pipeline stage.
func (r *Registry) RecordStage(stage string, d time.Duration) {
	if r == nil {
		return
	}
	r.StageDuration.WithLabelValues(stage).Set(d.Seconds())
}

// RecordTree counts one shortest-path tree.
func (r *Registry) RecordTree() {
	if r == nil {
		return
	}
	r.TreesTotal.Inc()
}

// RecordSkippedPort counts a port skipped for reason.
func (r *Registry) RecordSkippedPort(reason string) {
	if r == nil {
		return
	}
	r.PortsSkippedTotal.WithLabelValues(reason).Inc()
}

// SetUndefinedCountries records how many countries had no throughput.
func (r *Registry) SetUndefinedCountries(n int) {
	if r == nil {
		return
	}
	r.UndefinedCountries.Set(float64(n))
}

// WriteToTextfile writes all metrics in the text exposition format, for the
// node_exporter textfile collector.
func (r *Registry) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}

	return nil
}
