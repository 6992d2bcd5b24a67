// Package metrics exposes Prometheus collectors for pipeline stages.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "ai_studio"

	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeBusy    = "busy"
	OutcomePanic   = "panic"
)

var (
	StageTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_total",
			Help:      "Total number of pipeline stage runs by outcome",
		},
		[]string{"stage", "outcome"},
	)

	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Pipeline stage duration in seconds",
			Buckets:   []float64{.1, .5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"stage"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "busy_sessions",
			Help:      "Number of sessions with a stage in flight",
		},
	)
)

// ObserveStage records one finished stage run.
func ObserveStage(stage, outcome string, elapsed time.Duration) {
	StageTotal.WithLabelValues(stage, outcome).Inc()
	StageDuration.WithLabelValues(stage).Observe(elapsed.Seconds())
}
