package llmvalidate

import "github.com/greenbier/ues-resolver/internal/domain"

// ValidationResult is the adjudicator's structured verdict on one gray-zone
// pair (§4.4).
type ValidationResult struct {
	Decision   domain.LLMDecision
	Confidence float64
	Reasons    []string
	RiskFlags  []string
}
