// Package observability provides Prometheus metrics and OpenTelemetry tracing
// for the claims review engine.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// PIPELINE RUN METRICS
// =============================================================================

var (
	pipelineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claims_pipeline_runs_total",
			Help: "Total number of agent pipeline runs",
		},
		[]string{"status"}, // status: completed, cancelled, error
	)

	pipelineRunDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "claims_pipeline_run_duration_seconds",
			Help:    "Agent pipeline run duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"status"},
	)
)

// =============================================================================
// STAGE METRICS
// =============================================================================

var (
	stageTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claims_stage_transitions_total",
			Help: "Total number of pipeline stage transitions",
		},
		[]string{"stage", "status"}, // status: running, completed, error
	)

	stageDwellSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "claims_stage_dwell_seconds",
			Help:    "Time a stage spent in the running state",
			Buckets: []float64{0.5, 1, 2, 3, 5, 10},
		},
		[]string{"stage"},
	)
)

// =============================================================================
// SCENARIO METRICS
// =============================================================================

var (
	scenarioFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "claims_scenario_fallbacks_total",
			Help: "Runs that resolved to the fallback scenario",
		},
	)
)

// =============================================================================
// CLAIM STORE METRICS
// =============================================================================

var (
	claimMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claims_store_mutations_total",
			Help: "Total claim store mutations",
		},
		[]string{"op"}, // op: add, update, remove, import
	)
)

// =============================================================================
// PUBLIC API
// =============================================================================

// RecordPipelineRun records run-level metrics.
// This should be called when a run finishes, is cancelled, or errors.
func RecordPipelineRun(status string, durationMS int) {
	pipelineRunsTotal.WithLabelValues(status).Inc()
	pipelineRunDurationSeconds.WithLabelValues(status).Observe(float64(durationMS) / 1000.0)
}

// RecordStageTransition records a stage status change.
func RecordStageTransition(stage string, status string) {
	stageTransitionsTotal.WithLabelValues(stage, status).Inc()
}

// RecordStageDwell records how long a stage spent running.
func RecordStageDwell(stage string, durationMS int) {
	stageDwellSeconds.WithLabelValues(stage).Observe(float64(durationMS) / 1000.0)
}

// RecordScenarioFallback records a run that used the fallback scenario.
func RecordScenarioFallback() {
	scenarioFallbacksTotal.Inc()
}

// RecordClaimMutation records a claim store mutation.
func RecordClaimMutation(op string) {
	claimMutationsTotal.WithLabelValues(op).Inc()
}
