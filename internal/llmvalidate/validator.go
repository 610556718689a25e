package llmvalidate

import (
	"context"
	"fmt"
	"strings"

	"github.com/greenbier/ues-resolver/internal/config"
	"github.com/greenbier/ues-resolver/internal/domain"
)

// DisabledReason names why the LLM path was bypassed for a pair, mirroring
// the `llm_disabled_reason` metrics column (§4.3, §9 state machine).
type DisabledReason string

const (
	DisabledNone      DisabledReason = ""
	DisabledUnavailable DisabledReason = "llm_unavailable"
	DisabledBudget      DisabledReason = "max_calls_exceeded"
	DisabledCircuit     DisabledReason = "circuit_breaker_open"
)

// Outcome is everything the router needs to update metrics and write a
// review row for one gray-zone pair.
type Outcome struct {
	Result         ValidationResult
	Called         bool
	DisabledReason DisabledReason
	LatencyMs      int64
}

// Validator wires the client, circuit breaker, and call budget together
// behind the health-gate / circuit-breaker / budget / fallback sequence
// from §4.3.
type Validator struct {
	client  *Client
	breaker *CircuitBreaker
	budget  *CallBudget

	enabled      bool
	fallbackMode config.FallbackMode
}

// NewValidator builds a Validator scoped to one (run_id, entity_type)
// stage. enabled is the health-gate verdict computed by the caller; the
// orchestrator sets it from mapping_enabled, a non-empty API key, and a
// configured request URL (provider and model env vars are not checked).
func NewValidator(client *Client, breaker *CircuitBreaker, budget *CallBudget, enabled bool, fallbackMode config.FallbackMode) *Validator {
	return &Validator{client: client, breaker: breaker, budget: budget, enabled: enabled, fallbackMode: fallbackMode}
}

// Validate adjudicates one gray-zone candidate pair.
func (v *Validator) Validate(
	ctx context.Context,
	entityType domain.EntityType,
	left, right domain.LineageSourceRef,
	matcherScore float64,
	signals map[string]float64,
) Outcome {
	if !v.enabled {
		return Outcome{Result: v.fallbackResult(), DisabledReason: DisabledUnavailable}
	}

	if v.breaker.Tripped(ctx) {
		return Outcome{Result: v.fallbackResult(), DisabledReason: DisabledCircuit}
	}

	if !v.budget.Reserve() {
		return Outcome{Result: v.fallbackResult(), DisabledReason: DisabledBudget}
	}

	systemPrompt := adjudicatorSystemPrompt(entityType)
	userPrompt := adjudicatorUserPrompt(entityType, left, right, matcherScore, signals)

	payload, meta, err := v.client.RequestJSON(ctx, systemPrompt, userPrompt)
	if err != nil {
		v.breaker.Record(ctx, true, meta.InvalidJSONRetry)
		return Outcome{
			Result: ValidationResult{
				Decision:  domain.LLMReview,
				RiskFlags: []string{"llm_error"},
				Reasons:   []string{err.Error()},
			},
			Called:    true,
			LatencyMs: meta.LatencyMs,
		}
	}

	result := parseValidationResult(payload)
	if meta.InvalidJSONRetry {
		result.RiskFlags = append(result.RiskFlags, "llm_invalid_json_retry")
	}
	v.breaker.Record(ctx, false, meta.InvalidJSONRetry)

	return Outcome{Result: result, Called: true, LatencyMs: meta.LatencyMs}
}

// fallbackResult returns the synthetic decision applied when the LLM path
// is unavailable, over budget, or circuit-broken (§4.3).
func (v *Validator) fallbackResult() ValidationResult {
	if v.fallbackMode == config.FallbackAutoApprove {
		return ValidationResult{
			Decision:   domain.LLMMatch,
			Confidence: 0,
			RiskFlags:  []string{"llm_fallback"},
		}
	}
	return ValidationResult{
		Decision:  domain.LLMReview,
		RiskFlags: []string{"llm_fallback"},
	}
}

func adjudicatorSystemPrompt(entityType domain.EntityType) string {
	return fmt.Sprintf(
		"You are adjudicating whether two %s records from independent data sources refer to the same real-world entity. "+
			"Respond with JSON only: {\"decision\": \"MATCH\"|\"NO_MATCH\"|\"REVIEW\", \"confidence\": 0..1, \"reasons\": [...], \"risk_flags\": [...]}.",
		entityType,
	)
}

func adjudicatorUserPrompt(entityType domain.EntityType, left, right domain.LineageSourceRef, matcherScore float64, signals map[string]float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "entity_type=%s\n", entityType)
	fmt.Fprintf(&b, "left=%s:%d right=%s:%d\n", left.Source, left.ID, right.Source, right.ID)
	fmt.Fprintf(&b, "matcher_score=%.4f\n", matcherScore)
	fmt.Fprintf(&b, "signals=%v\n", signals)
	return b.String()
}

func parseValidationResult(payload map[string]interface{}) ValidationResult {
	result := ValidationResult{Decision: domain.LLMReview}

	if d, ok := payload["decision"].(string); ok {
		switch domain.LLMDecision(strings.ToUpper(d)) {
		case domain.LLMMatch:
			result.Decision = domain.LLMMatch
		case domain.LLMNoMatch:
			result.Decision = domain.LLMNoMatch
		default:
			result.Decision = domain.LLMReview
		}
	}

	if c, ok := payload["confidence"].(float64); ok {
		result.Confidence = c
	}

	result.Reasons = toStringSlice(payload["reasons"])
	result.RiskFlags = toStringSlice(payload["risk_flags"])

	return result
}

func toStringSlice(v interface{}) []string {
	raw, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
