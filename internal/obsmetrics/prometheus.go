// Package obsmetrics exposes Prometheus metrics for the reconciliation
// pipeline: counter/histogram families fed from the pipeline_run_metrics
// row (candidates, router decisions, LLM calls and latency, invalid-JSON
// retries, disabled reason) plus run-level and gate-level summaries. The
// llm_match/llm_no_match/llm_review and llm_fallback_mode columns have no
// family of their own.
package obsmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/greenbier/ues-resolver/internal/domain"
)

var (
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ues_resolver_runs_total",
			Help: "Total number of orchestrator runs",
		},
		[]string{"status"},
	)

	RunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ues_resolver_run_duration_seconds",
			Help:    "Duration of a full orchestrator run in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
		},
	)

	StageCandidatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ues_resolver_stage_candidates_total",
			Help: "Total number of candidate pairs produced by a stage matcher",
		},
		[]string{"entity_type"},
	)

	StageDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ues_resolver_stage_decisions_total",
			Help: "Router decisions by entity type and decision kind",
		},
		[]string{"entity_type", "decision"},
	)

	LLMCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ues_resolver_llm_calls_total",
			Help: "Total number of LLM adjudication calls",
		},
		[]string{"entity_type", "status"},
	)

	LLMCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ues_resolver_llm_call_duration_seconds",
			Help:    "Duration of LLM adjudication calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"entity_type"},
	)

	LLMInvalidJSONRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ues_resolver_llm_invalid_json_retries_total",
			Help: "Total number of LLM responses that required an invalid-JSON retry",
		},
		[]string{"entity_type"},
	)

	LLMDisabledTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ues_resolver_llm_disabled_total",
			Help: "Total number of stages in which the LLM path was disabled, by first disabled reason",
		},
		[]string{"entity_type", "reason"},
	)

	CircuitBreakerTripsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ues_resolver_circuit_breaker_trips_total",
			Help: "Total number of times the LLM circuit breaker tripped during a stage",
		},
		[]string{"entity_type"},
	)

	AnomalyEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ues_resolver_anomaly_events_total",
			Help: "Total number of anomaly events raised by the drift detector",
		},
		[]string{"entity_type", "metric_name", "severity"},
	)

	QualityGateStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ues_resolver_quality_gate_status",
			Help: "1 if the most recent run's quality gate passed, 0 if it failed",
		},
		[]string{"run_id"},
	)

	QualityGateFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ues_resolver_quality_gate_failures_total",
			Help: "Total number of quality gate failures by gate name",
		},
		[]string{"gate"},
	)

	PendingReviewsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ues_resolver_pending_reviews",
			Help: "Number of llm_match_reviews rows currently in PENDING status",
		},
	)

	LastRunTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ues_resolver_last_run_timestamp",
			Help: "Unix timestamp of the most recently completed run",
		},
	)
)

// RecordStageMetrics folds a completed stage's RunMetrics into the
// per-entity-type counters and histograms.
func RecordStageMetrics(m domain.RunMetrics) {
	entity := string(m.EntityType)

	StageCandidatesTotal.WithLabelValues(entity).Add(float64(m.TotalCandidates))
	StageDecisionsTotal.WithLabelValues(entity, "auto_approve").Add(float64(m.AutoMatch))
	StageDecisionsTotal.WithLabelValues(entity, "auto_reject").Add(float64(m.AutoReject))
	StageDecisionsTotal.WithLabelValues(entity, "gray_zone").Add(float64(m.GrayZoneSent))

	if m.LLMCall > 0 {
		successCalls := m.LLMCall - m.LLMError
		if successCalls > 0 {
			LLMCallsTotal.WithLabelValues(entity, "success").Add(float64(successCalls))
		}
		if m.LLMError > 0 {
			LLMCallsTotal.WithLabelValues(entity, "error").Add(float64(m.LLMError))
		}
		if m.LLMAvgLatencyMs > 0 {
			LLMCallDuration.WithLabelValues(entity).Observe(m.LLMAvgLatencyMs / 1000.0)
		}
	}
	if m.LLMInvalidJSONRetry > 0 {
		LLMInvalidJSONRetriesTotal.WithLabelValues(entity).Add(float64(m.LLMInvalidJSONRetry))
	}
	if m.LLMDisabledReason != "" {
		LLMDisabledTotal.WithLabelValues(entity, m.LLMDisabledReason).Inc()
	}
}

// RecordAnomalyEvents increments the anomaly counter once per event.
func RecordAnomalyEvents(events []domain.AnomalyEvent) {
	for _, e := range events {
		AnomalyEventsTotal.WithLabelValues(string(e.EntityType), e.MetricName, string(e.Severity)).Inc()
	}
}

// RecordCircuitBreakerTrip records a breaker trip for the given entity type.
func RecordCircuitBreakerTrip(entityType domain.EntityType) {
	CircuitBreakerTripsTotal.WithLabelValues(string(entityType)).Inc()
}

// RecordQualityGateResult publishes the PASS/FAIL gauge and per-gate
// failure counters for a completed run.
func RecordQualityGateResult(r domain.QualityGateResult) {
	value := 0.0
	if r.Status == domain.GatePass {
		value = 1.0
	}
	QualityGateStatus.WithLabelValues(r.RunID).Set(value)

	for _, gate := range r.FailedGates {
		QualityGateFailuresTotal.WithLabelValues(gate).Inc()
	}
}

// RecordRunCompletion records the terminal status and wall-clock duration
// of an orchestrator run.
func RecordRunCompletion(status string, durationSeconds float64) {
	RunsTotal.WithLabelValues(status).Inc()
	RunDuration.Observe(durationSeconds)
	LastRunTimestamp.SetToCurrentTime()
}

// SetPendingReviews updates the gauge tracking outstanding PENDING reviews.
func SetPendingReviews(count int) {
	PendingReviewsGauge.Set(float64(count))
}
