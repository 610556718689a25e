// Package gates aggregates a completed run's metrics and anomaly counts
// against the configured quality-gate ceilings and produces the PASS/FAIL
// verdict persisted once per run (§4.7).
package gates

import (
	"fmt"

	"github.com/greenbier/ues-resolver/internal/config"
	"github.com/greenbier/ues-resolver/internal/domain"
)

// Evaluate aggregates metricsByEntity (one row per entity type processed
// this run) and highSeverityAnomalyCount into a single QualityGateResult.
func Evaluate(runID string, metricsByEntity []domain.RunMetrics, highSeverityAnomalyCount int, cfg config.QualityGates) domain.QualityGateResult {
	var totalCandidates, grayZoneSent, llmReview, llmCall, llmError int
	for _, m := range metricsByEntity {
		totalCandidates += m.TotalCandidates
		grayZoneSent += m.GrayZoneSent
		llmReview += m.LLMReview
		llmCall += m.LLMCall
		llmError += m.LLMError
	}

	denominator := float64(totalCandidates)
	if denominator == 0 {
		denominator = 1
	}
	callDenominator := float64(llmCall)
	if callDenominator == 0 {
		callDenominator = 1
	}

	grayZoneRate := float64(grayZoneSent) / denominator
	llmReviewRate := float64(llmReview) / denominator
	llmErrorRate := float64(llmError) / callDenominator

	gateValues := map[string]float64{
		"gray_zone_rate":  grayZoneRate,
		"llm_review_rate": llmReviewRate,
		"llm_error_rate":  llmErrorRate,
	}

	var failedGates []string
	if grayZoneRate > cfg.MaxGrayZoneRate {
		failedGates = append(failedGates, "max_gray_zone_rate")
	}
	if llmReviewRate > cfg.MaxLLMReviewRate {
		failedGates = append(failedGates, "max_llm_review_rate")
	}
	if llmErrorRate > cfg.MaxLLMErrorRate {
		failedGates = append(failedGates, "max_llm_error_rate")
	}
	if cfg.FailOnHighSeverityAnomalies && highSeverityAnomalyCount > 0 {
		failedGates = append(failedGates, fmt.Sprintf("high_severity_anomalies(%d)", highSeverityAnomalyCount))
	}

	status := domain.GatePass
	if len(failedGates) > 0 {
		status = domain.GateFail
	}

	return domain.QualityGateResult{
		RunID:       runID,
		Status:      status,
		FailedGates: failedGates,
		GateValues:  gateValues,
	}
}
