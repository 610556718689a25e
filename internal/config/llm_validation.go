package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FallbackMode is the policy applied to gray-zone pairs when the LLM path is
// unavailable, over budget, or circuit-broken (§4.3).
type FallbackMode string

const (
	FallbackAutoApprove FallbackMode = "auto_approve"
	FallbackReview      FallbackMode = "review"
)

// GrayZoneBand is the (low, high) confidence band for one entity type.
type GrayZoneBand struct {
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
}

// CircuitBreakerConfig configures the sliding-window LLM health gate.
type CircuitBreakerConfig struct {
	Window             int     `yaml:"window"`
	MaxFailRate        float64 `yaml:"max_fail_rate"`
	MaxInvalidJSONRate float64 `yaml:"max_invalid_json_rate"`
}

// LLMValidation is the parsed content of llm_validation.yml (§6).
type LLMValidation struct {
	Enabled                   bool                    `yaml:"enabled"`
	MappingEnabled            *bool                   `yaml:"mapping_enabled"`
	ReportingEnabled          *bool                   `yaml:"reporting_enabled"`
	GrayZone                  map[string]GrayZoneBand `yaml:"gray_zone"`
	InternalAPIKeyEnv         string                  `yaml:"internal_api_key_env"`
	ProviderEnv               string                  `yaml:"provider_env"`
	ModelEnv                  string                  `yaml:"model_env"`
	APIKeyEnv                 string                  `yaml:"api_key_env"`
	MaxCallsPerEntityTypePerRun int                   `yaml:"max_calls_per_entity_type_per_run"`
	CircuitBreaker            CircuitBreakerConfig    `yaml:"circuit_breaker"`
	FallbackModeWhenUnhealthy FallbackMode            `yaml:"fallback_mode_when_llm_unhealthy"`
	RequestURL                string                  `yaml:"request_url"`
	TimeoutSeconds            int                     `yaml:"timeout_s"`
}

// MappingEnabledOrDefault returns mapping_enabled, defaulting to Enabled
// when the key is absent from the YAML document.
func (l *LLMValidation) MappingEnabledOrDefault() bool {
	if l.MappingEnabled != nil {
		return *l.MappingEnabled
	}
	return l.Enabled
}

// BandFor returns the configured gray-zone band for an entity type, or a
// default band of [0.5, 0.9) if unconfigured.
func (l *LLMValidation) BandFor(entityType string) GrayZoneBand {
	if b, ok := l.GrayZone[entityType]; ok {
		return b
	}
	return GrayZoneBand{Low: 0.5, High: 0.9}
}

// DefaultLLMValidation mirrors the defaults used when llm_validation.yml is
// absent: LLM path disabled, fallback to review so nothing is silently
// auto-approved.
func DefaultLLMValidation() LLMValidation {
	return LLMValidation{
		Enabled:                     false,
		GrayZone:                    map[string]GrayZoneBand{},
		InternalAPIKeyEnv:           "INTERNAL_API_KEY",
		ProviderEnv:                 "LLM_PROVIDER",
		ModelEnv:                    "LLM_MODEL",
		APIKeyEnv:                   "LLM_API_KEY",
		MaxCallsPerEntityTypePerRun: 200,
		CircuitBreaker: CircuitBreakerConfig{
			Window:             20,
			MaxFailRate:        0.5,
			MaxInvalidJSONRate: 0.3,
		},
		FallbackModeWhenUnhealthy: FallbackReview,
		TimeoutSeconds:            12,
	}
}

// LoadLLMValidation reads llm_validation.yml.
func LoadLLMValidation(path string) (*LLMValidation, error) {
	l := DefaultLLMValidation()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if l.TimeoutSeconds == 0 {
		l.TimeoutSeconds = 12
	}

	return &l, nil
}
