package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/greenbier/ues-resolver/internal/config"
	"github.com/greenbier/ues-resolver/internal/domain"
	"github.com/greenbier/ues-resolver/internal/llmvalidate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func band() config.GrayZoneBand {
	return config.GrayZoneBand{Low: 0.7, High: 0.9}
}

func disabledValidator(fallback config.FallbackMode) *llmvalidate.Validator {
	return llmvalidate.NewValidator(nil, llmvalidate.NewCircuitBreaker(nil, "", 20, 0.5, 0.3), llmvalidate.NewCallBudget(200), false, fallback)
}

func TestRoute_AutoApproveAutoRejectWithoutLLM(t *testing.T) {
	candidates := []domain.Candidate{
		{EntityType: domain.EntityTeam, AlphaID: 1, BetaID: 1, Confidence: 0.95},
		{EntityType: domain.EntityTeam, AlphaID: 2, BetaID: 2, Confidence: 0.60},
	}

	result := Route(context.Background(), "run-1", domain.EntityTeam, candidates, band(), config.FallbackReview, disabledValidator(config.FallbackReview))

	assert.Equal(t, 1, result.Metrics.AutoMatch)
	assert.Equal(t, 1, result.Metrics.AutoReject)
	assert.Equal(t, 0, result.Metrics.GrayZoneSent)
	require.Len(t, result.Approved, 1)
	assert.Equal(t, 1, result.Approved[0].AlphaID)
}

func TestRoute_GrayZoneWithLLMDisabledFallsBackAutoApprove(t *testing.T) {
	candidates := []domain.Candidate{
		{EntityType: domain.EntityTeam, AlphaID: 1, BetaID: 1, Confidence: 0.95},
		{EntityType: domain.EntityTeam, AlphaID: 2, BetaID: 2, Confidence: 0.80},
		{EntityType: domain.EntityTeam, AlphaID: 3, BetaID: 3, Confidence: 0.60},
	}

	result := Route(context.Background(), "run-1", domain.EntityTeam, candidates, band(), config.FallbackAutoApprove, disabledValidator(config.FallbackAutoApprove))

	assert.Equal(t, 1, result.Metrics.AutoMatch)
	assert.Equal(t, 1, result.Metrics.AutoReject)
	assert.Equal(t, 1, result.Metrics.GrayZoneSent)
	assert.Equal(t, "llm_unavailable", result.Metrics.LLMDisabledReason)
	require.Len(t, result.Reviews, 1)
	assert.Equal(t, domain.ReviewApproved, result.Reviews[0].Status)
	require.Len(t, result.Approved, 2)
}

func TestRoute_ConflictForcesGrayZoneEvenAboveHighThreshold(t *testing.T) {
	alphaCountry, betaCountry := "England", "Spain"
	candidates := []domain.Candidate{
		{EntityType: domain.EntityTeam, AlphaID: 1, BetaID: 1, Confidence: 0.99, AlphaCountry: &alphaCountry, BetaCountry: &betaCountry},
	}

	result := Route(context.Background(), "run-1", domain.EntityTeam, candidates, band(), config.FallbackReview, disabledValidator(config.FallbackReview))

	assert.Equal(t, 0, result.Metrics.AutoMatch)
	assert.Equal(t, 1, result.Metrics.GrayZoneSent)
}

func newJSONLLMServer(t *testing.T, decision string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := json.Marshal(map[string]interface{}{
			"content": `{"decision":"` + decision + `","confidence":0.9,"reasons":["ok"],"risk_flags":[]}`,
		})
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}))
}

func TestRoute_CallBudgetExhaustedFallsBackForRemainder(t *testing.T) {
	server := newJSONLLMServer(t, "MATCH")
	defer server.Close()

	client := llmvalidate.NewClient(server.URL, "test-key", 5*time.Second)
	budget := llmvalidate.NewCallBudget(1)
	breaker := llmvalidate.NewCircuitBreaker(nil, "", 20, 0.5, 0.3)
	validator := llmvalidate.NewValidator(client, breaker, budget, true, config.FallbackReview)

	candidates := []domain.Candidate{
		{EntityType: domain.EntityTeam, AlphaID: 1, BetaID: 1, Confidence: 0.80},
		{EntityType: domain.EntityTeam, AlphaID: 2, BetaID: 2, Confidence: 0.80},
	}

	result := Route(context.Background(), "run-1", domain.EntityTeam, candidates, band(), config.FallbackReview, validator)

	assert.Equal(t, 1, result.Metrics.LLMCall)
	assert.Equal(t, "max_calls_exceeded", result.Metrics.LLMDisabledReason)
	require.Len(t, result.Reviews, 2)
}

func newFailingLLMServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
}

func TestRoute_CircuitBreakerTripsAfterRepeatedErrors(t *testing.T) {
	server := newFailingLLMServer(t)
	defer server.Close()

	client := llmvalidate.NewClient(server.URL, "test-key", 5*time.Second)
	budget := llmvalidate.NewCallBudget(200)
	breaker := llmvalidate.NewCircuitBreaker(nil, "", 2, 0.5, 0.9)
	validator := llmvalidate.NewValidator(client, breaker, budget, true, config.FallbackReview)

	candidates := []domain.Candidate{
		{EntityType: domain.EntityTeam, AlphaID: 1, BetaID: 1, Confidence: 0.80},
		{EntityType: domain.EntityTeam, AlphaID: 2, BetaID: 2, Confidence: 0.80},
		{EntityType: domain.EntityTeam, AlphaID: 3, BetaID: 3, Confidence: 0.80},
	}

	result := Route(context.Background(), "run-1", domain.EntityTeam, candidates, band(), config.FallbackReview, validator)

	assert.Equal(t, 2, result.Metrics.LLMCall)
	assert.Equal(t, 2, result.Metrics.LLMError)
	assert.Equal(t, "circuit_breaker_open", result.Metrics.LLMDisabledReason)
	require.Len(t, result.Reviews, 3)
}

func TestRoute_TotalCandidatesAccountingHolds(t *testing.T) {
	candidates := []domain.Candidate{
		{EntityType: domain.EntityTeam, AlphaID: 1, BetaID: 1, Confidence: 0.95},
		{EntityType: domain.EntityTeam, AlphaID: 2, BetaID: 2, Confidence: 0.80},
		{EntityType: domain.EntityTeam, AlphaID: 3, BetaID: 3, Confidence: 0.60},
	}

	result := Route(context.Background(), "run-1", domain.EntityTeam, candidates, band(), config.FallbackReview, disabledValidator(config.FallbackReview))

	sum := result.Metrics.AutoMatch + result.Metrics.AutoReject + result.Metrics.GrayZoneSent
	assert.Equal(t, result.Metrics.TotalCandidates, sum)
}
