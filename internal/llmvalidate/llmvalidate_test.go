package llmvalidate

import (
	"context"
	"testing"

	"github.com/greenbier/ues-resolver/internal/config"
	"github.com/greenbier/ues-resolver/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_DisabledFallsBackToAutoApprove(t *testing.T) {
	v := NewValidator(nil, NewCircuitBreaker(nil, "", 20, 0.5, 0.3), NewCallBudget(10), false, config.FallbackAutoApprove)

	outcome := v.Validate(context.Background(), domain.EntityTeam,
		domain.LineageSourceRef{Source: domain.SourceAlpha, ID: 1},
		domain.LineageSourceRef{Source: domain.SourceBeta, ID: 2},
		0.8, map[string]float64{"name_similarity": 0.8})

	assert.False(t, outcome.Called)
	assert.Equal(t, DisabledUnavailable, outcome.DisabledReason)
	assert.Equal(t, domain.LLMMatch, outcome.Result.Decision)
	assert.Contains(t, outcome.Result.RiskFlags, "llm_fallback")
}

func TestValidator_DisabledFallsBackToReview(t *testing.T) {
	v := NewValidator(nil, NewCircuitBreaker(nil, "", 20, 0.5, 0.3), NewCallBudget(10), false, config.FallbackReview)

	outcome := v.Validate(context.Background(), domain.EntityTeam,
		domain.LineageSourceRef{Source: domain.SourceAlpha, ID: 1},
		domain.LineageSourceRef{Source: domain.SourceBeta, ID: 2},
		0.8, nil)

	assert.Equal(t, domain.LLMReview, outcome.Result.Decision)
	assert.Equal(t, DisabledUnavailable, outcome.DisabledReason)
}

func TestValidator_BudgetExhaustedFallsBack(t *testing.T) {
	budget := NewCallBudget(0)
	v := NewValidator(nil, NewCircuitBreaker(nil, "", 20, 0.5, 0.3), budget, true, config.FallbackReview)

	outcome := v.Validate(context.Background(), domain.EntityPlayer,
		domain.LineageSourceRef{Source: domain.SourceAlpha, ID: 1},
		domain.LineageSourceRef{Source: domain.SourceBeta, ID: 2},
		0.8, nil)

	assert.False(t, outcome.Called)
	assert.Equal(t, DisabledBudget, outcome.DisabledReason)
}

func TestCallBudget_ReserveRespectsMax(t *testing.T) {
	b := NewCallBudget(1)
	require.True(t, b.Reserve())
	assert.False(t, b.Reserve())
	assert.Equal(t, 1, b.Spent())
}

func TestCircuitBreaker_TripsOnFailRate(t *testing.T) {
	b := NewCircuitBreaker(nil, "", 2, 0.5, 0.9)
	ctx := context.Background()

	assert.False(t, b.Tripped(ctx))
	b.Record(ctx, true, false)
	assert.False(t, b.Tripped(ctx))
	b.Record(ctx, true, false)
	assert.True(t, b.Tripped(ctx))
}

func TestCircuitBreaker_StaysClosedBelowThreshold(t *testing.T) {
	b := NewCircuitBreaker(nil, "", 4, 0.75, 0.9)
	ctx := context.Background()

	b.Record(ctx, true, false)
	b.Record(ctx, false, false)
	b.Record(ctx, false, false)
	b.Record(ctx, false, false)

	assert.False(t, b.Tripped(ctx))
}

func TestValidator_CircuitBreakerTrippedBypassesBudget(t *testing.T) {
	breaker := NewCircuitBreaker(nil, "", 1, 0.5, 0.9)
	breaker.Record(context.Background(), true, false)

	budget := NewCallBudget(10)
	v := NewValidator(nil, breaker, budget, true, config.FallbackReview)

	outcome := v.Validate(context.Background(), domain.EntityMatch,
		domain.LineageSourceRef{Source: domain.SourceAlpha, ID: 1},
		domain.LineageSourceRef{Source: domain.SourceBeta, ID: 2},
		0.8, nil)

	assert.Equal(t, DisabledCircuit, outcome.DisabledReason)
	assert.Equal(t, 0, budget.Spent())
}

func TestParseValidationResult_DefaultsToReviewOnUnknownDecision(t *testing.T) {
	result := parseValidationResult(map[string]interface{}{"decision": "MAYBE"})
	assert.Equal(t, domain.LLMReview, result.Decision)
}

func TestParseValidationResult_ExtractsAllFields(t *testing.T) {
	result := parseValidationResult(map[string]interface{}{
		"decision":   "match",
		"confidence": 0.92,
		"reasons":    []interface{}{"names align"},
		"risk_flags": []interface{}{"low_sample"},
	})

	assert.Equal(t, domain.LLMMatch, result.Decision)
	assert.Equal(t, 0.92, result.Confidence)
	assert.Equal(t, []string{"names align"}, result.Reasons)
	assert.Equal(t, []string{"low_sample"}, result.RiskFlags)
}
