// Package router implements the validation router state machine: per-pair
// AUTO_APPROVE/AUTO_REJECT/GRAY_ZONE classification, entity-specific
// conflict adapters, and gray-zone adjudication via the LLM validator's
// health-gate/circuit-breaker/budget/fallback sequence (§4.3).
package router

import (
	"context"
	"time"

	"github.com/greenbier/ues-resolver/internal/config"
	"github.com/greenbier/ues-resolver/internal/domain"
	"github.com/greenbier/ues-resolver/internal/llmvalidate"
)

// Result is the output of routing one stage's candidate set: the pairs
// approved for merging, the review rows to persist, and the metrics row
// for pipeline_run_metrics.
type Result struct {
	Approved []domain.Candidate
	Reviews  []domain.LLMMatchReview
	Metrics  domain.RunMetrics
}

// Route classifies every candidate for one (run_id, entity_type) stage and
// adjudicates gray-zone pairs through validator.
//
// gray_zone_sent counts every candidate classified GRAY_ZONE, whether or
// not the LLM path was actually invoked for it — this is the variant of
// the two described by the source material that keeps
// total_candidates = auto_match + auto_reject + gray_zone_sent exact with
// no remainder (see the accounting decision in the project notes).
func Route(
	ctx context.Context,
	runID string,
	entityType domain.EntityType,
	candidates []domain.Candidate,
	band config.GrayZoneBand,
	fallbackMode config.FallbackMode,
	validator *llmvalidate.Validator,
) Result {
	metrics := domain.RunMetrics{
		RunID:           runID,
		EntityType:      entityType,
		TotalCandidates: len(candidates),
		LLMFallbackMode: string(fallbackMode),
		StartedAt:       time.Now(),
	}

	var approved []domain.Candidate
	var reviews []domain.LLMMatchReview
	var latencySum int64
	var latencyCount int

	for _, c := range candidates {
		decision := classify(c, band)

		switch decision {
		case domain.DecisionAutoReject:
			metrics.AutoReject++
			continue
		case domain.DecisionAutoApprove:
			metrics.AutoMatch++
			approved = append(approved, c)
			continue
		}

		metrics.GrayZoneSent++

		outcome := validator.Validate(ctx,
			entityType,
			domain.LineageSourceRef{Source: domain.SourceAlpha, ID: c.AlphaID},
			domain.LineageSourceRef{Source: domain.SourceBeta, ID: c.BetaID},
			c.Confidence,
			c.Breakdown,
		)

		if outcome.Called {
			metrics.LLMCall++
			latencySum += outcome.LatencyMs
			latencyCount++
		}
		if outcome.DisabledReason != "" && metrics.LLMDisabledReason == "" {
			metrics.LLMDisabledReason = string(outcome.DisabledReason)
		}
		if containsFlag(outcome.Result.RiskFlags, "llm_error") {
			metrics.LLMError++
		}
		if containsFlag(outcome.Result.RiskFlags, "llm_invalid_json_retry") {
			metrics.LLMInvalidJSONRetry++
		}

		status := domain.ReviewPending
		switch outcome.Result.Decision {
		case domain.LLMMatch:
			metrics.LLMMatch++
			status = domain.ReviewApproved
			approved = append(approved, c)
		case domain.LLMNoMatch:
			metrics.LLMNoMatch++
			status = domain.ReviewRejected
		default:
			metrics.LLMReview++
			status = domain.ReviewPending
		}

		now := time.Now()
		reviews = append(reviews, domain.LLMMatchReview{
			RunID:         runID,
			EntityType:    entityType,
			LeftSource:    domain.SourceAlpha,
			LeftID:        c.AlphaID,
			RightSource:   domain.SourceBeta,
			RightID:       c.BetaID,
			MatcherScore:  c.Confidence,
			Signals:       c.Breakdown,
			LLMDecision:   outcome.Result.Decision,
			LLMConfidence: outcome.Result.Confidence,
			Reasons:       outcome.Result.Reasons,
			RiskFlags:     outcome.Result.RiskFlags,
			Status:        status,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	if latencyCount > 0 {
		metrics.LLMAvgLatencyMs = float64(latencySum) / float64(latencyCount)
	}

	finished := time.Now()
	metrics.FinishedAt = &finished

	return Result{Approved: approved, Reviews: reviews, Metrics: metrics}
}

// classify applies the (low, high, conflict) state machine (§4.3).
func classify(c domain.Candidate, band config.GrayZoneBand) domain.Decision {
	if c.Confidence < band.Low {
		return domain.DecisionAutoReject
	}
	if c.Confidence >= band.High && !hasConflict(c) {
		return domain.DecisionAutoApprove
	}
	return domain.DecisionGrayZone
}

func containsFlag(flags []string, flag string) bool {
	for _, f := range flags {
		if f == flag {
			return true
		}
	}
	return false
}
