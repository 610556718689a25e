package domain

import "time"

// Decision is the router's classification of a candidate pair (§4.3).
type Decision string

const (
	DecisionAutoApprove Decision = "AUTO_APPROVE"
	DecisionAutoReject  Decision = "AUTO_REJECT"
	DecisionGrayZone    Decision = "GRAY_ZONE"
)

// LLMDecision is the adjudicator's verdict on a gray-zone pair (§4.4).
type LLMDecision string

const (
	LLMMatch   LLMDecision = "MATCH"
	LLMNoMatch LLMDecision = "NO_MATCH"
	LLMReview  LLMDecision = "REVIEW"
)

// ReviewStatus tracks human disposition of a pending review (§3).
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "PENDING"
	ReviewApproved ReviewStatus = "APPROVED"
	ReviewRejected ReviewStatus = "REJECTED"
)

// LLMMatchReview is one row of llm_match_reviews: every GRAY-ZONE or
// fallback-resolved decision produces exactly one of these (§3, §4.3).
type LLMMatchReview struct {
	RunID         string
	EntityType    EntityType
	LeftSource    Source
	LeftID        int
	RightSource   Source
	RightID       int
	MatcherScore  float64
	Signals       map[string]float64
	LLMDecision   LLMDecision
	LLMConfidence float64
	Reasons       []string
	RiskFlags     []string
	Status        ReviewStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RunMetrics is one row of pipeline_run_metrics: one per (run_id,
// entity_type) (§3).
type RunMetrics struct {
	RunID      string
	EntityType EntityType

	TotalCandidates int
	AutoMatch       int
	AutoReject      int
	GrayZoneSent    int
	LLMMatch        int
	LLMNoMatch      int
	LLMReview       int
	LLMCall         int
	LLMError        int
	LLMInvalidJSONRetry int

	LLMAvgLatencyMs   float64
	LLMFallbackMode   string
	LLMDisabledReason string

	StartedAt  time.Time
	FinishedAt *time.Time
}

// AnomalySeverity classifies an anomaly event by how extreme its z-score is
// (§4.6).
type AnomalySeverity string

const (
	AnomalyMedium AnomalySeverity = "MEDIUM"
	AnomalyHigh   AnomalySeverity = "HIGH"
)

// AnomalyEvent is one row of anomaly_events (§3, §4.6).
type AnomalyEvent struct {
	RunID         string
	EntityType    EntityType
	MetricName    string
	CurrentValue  float64
	BaselineValue float64
	ZScore        float64
	Severity      AnomalySeverity
}

// AnomalyTriageReport is one row of anomaly_triage_reports (§3).
type AnomalyTriageReport struct {
	RunID      string
	EntityType EntityType
	ReportJSON map[string]interface{}
}

// GateStatus is the overall PASS/FAIL verdict for a run (§4.7).
type GateStatus string

const (
	GatePass GateStatus = "PASS"
	GateFail GateStatus = "FAIL"
)

// QualityGateResult is the single row persisted per run in
// quality_gate_results (§3, §4.7).
type QualityGateResult struct {
	RunID       string
	Status      GateStatus
	FailedGates []string
	GateValues  map[string]float64
}
