// Package config loads and validates the immutable configuration bundle the
// resolution pipeline is constructed from: environment variables bound via
// envconfig, plus the five YAML rule files enumerated in the system
// specification (thresholds, LLM validation, quality gates, normalization
// aliases, and mapping rules).
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Env holds configuration sourced from environment variables.
type Env struct {
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	AlphaDatabaseURL string `envconfig:"ALPHA_DATABASE_URL" required:"true"`
	BetaDatabaseURL  string `envconfig:"BETA_DATABASE_URL" required:"true"`
	UESDatabaseURL   string `envconfig:"UES_DATABASE_URL" required:"true"`

	RedisAddr string `envconfig:"REDIS_ADDR" default:""`

	InternalAPIKey string `envconfig:"INTERNAL_API_KEY" default:""`

	LLMProviderEnv     string `envconfig:"LLM_PROVIDER_ENV_NAME" default:"LLM_PROVIDER"`
	LLMModelEnv        string `envconfig:"LLM_MODEL_ENV_NAME" default:"LLM_MODEL"`
	LLMAPIKeyEnv       string `envconfig:"LLM_API_KEY_ENV_NAME" default:"LLM_API_KEY"`
	LLMInternalAPIKeyEnv string `envconfig:"LLM_INTERNAL_API_KEY_ENV_NAME" default:"INTERNAL_API_KEY"`

	AutoTriageDuringMapping bool `envconfig:"AUTO_TRIAGE_DURING_MAPPING" default:"false"`

	WorkerCron     string `envconfig:"RESOLVER_WORKER_CRON" default:"0 3 * * *"`
	MetricsPort    int    `envconfig:"METRICS_PORT" default:"9091"`
	EnableScheduler bool  `envconfig:"ENABLE_SCHEDULER" default:"true"`
}

// ConfigDirEnv names the environment variable that selects the directory
// the YAML rule files are read from.
const ConfigDirEnv = "RESOLVER_CONFIG_DIR"

// Bundle is the single immutable configuration object constructed once in
// main() and threaded into every pipeline stage. Nothing downstream re-reads
// environment variables or files after Load returns.
type Bundle struct {
	Env            Env
	Thresholds     Thresholds
	LLMValidation  LLMValidation
	QualityGates   QualityGates
	Normalization  Normalization
	MappingRules   MappingRules
}

// Load reads environment variables (optionally seeded from a .env file) and
// the five YAML rule files from dir, returning one immutable Bundle.
func Load(dir string) (*Bundle, error) {
	_ = godotenv.Load()

	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if dir == "" {
		dir = os.Getenv(ConfigDirEnv)
	}
	if dir == "" {
		dir = "config"
	}

	thresholds, err := LoadThresholds(dir + "/thresholds.yml")
	if err != nil {
		return nil, fmt.Errorf("failed to load thresholds.yml: %w", err)
	}

	llmValidation, err := LoadLLMValidation(dir + "/llm_validation.yml")
	if err != nil {
		return nil, fmt.Errorf("failed to load llm_validation.yml: %w", err)
	}

	qualityGates, err := LoadQualityGates(dir + "/quality_gates.yml")
	if err != nil {
		return nil, fmt.Errorf("failed to load quality_gates.yml: %w", err)
	}

	normalization, err := LoadNormalization(dir + "/normalization.yml")
	if err != nil {
		return nil, fmt.Errorf("failed to load normalization.yml: %w", err)
	}

	mappingRules, err := LoadMappingRules(dir + "/mapping_rules.yml")
	if err != nil {
		return nil, fmt.Errorf("failed to load mapping_rules.yml: %w", err)
	}

	b := &Bundle{
		Env:           env,
		Thresholds:    *thresholds,
		LLMValidation: *llmValidation,
		QualityGates:  *qualityGates,
		Normalization: *normalization,
		MappingRules:  *mappingRules,
	}

	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return b, nil
}

// Validate checks cross-cutting invariants the individual loaders cannot
// check on their own (e.g. required-but-empty env var names).
func (b *Bundle) Validate() error {
	if b.Env.AlphaDatabaseURL == "" || b.Env.BetaDatabaseURL == "" || b.Env.UESDatabaseURL == "" {
		return fmt.Errorf("ALPHA_DATABASE_URL, BETA_DATABASE_URL and UES_DATABASE_URL are all required")
	}
	if b.LLMValidation.FallbackModeWhenUnhealthy != FallbackAutoApprove && b.LLMValidation.FallbackModeWhenUnhealthy != FallbackReview {
		return fmt.Errorf("llm_validation.fallback_mode_when_llm_unhealthy must be auto_approve or review, got %q", b.LLMValidation.FallbackModeWhenUnhealthy)
	}
	return nil
}

// MustLoad loads the configuration bundle or exits the process. Intended
// only for use in cmd/ entrypoints that must fail fast.
func MustLoad(dir string) *Bundle {
	b, err := Load(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return b
}
