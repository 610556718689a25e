package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// QualityGates is the parsed content of quality_gates.yml (§4.7).
type QualityGates struct {
	MaxLLMReviewRate              float64 `yaml:"max_llm_review_rate"`
	MaxGrayZoneRate               float64 `yaml:"max_gray_zone_rate"`
	MaxLLMErrorRate               float64 `yaml:"max_llm_error_rate"`
	FailOnHighSeverityAnomalies   bool    `yaml:"fail_on_high_severity_anomalies"`
}

// DefaultQualityGates are conservative ceilings used when quality_gates.yml
// is absent.
func DefaultQualityGates() QualityGates {
	return QualityGates{
		MaxLLMReviewRate:            0.2,
		MaxGrayZoneRate:             0.3,
		MaxLLMErrorRate:             0.1,
		FailOnHighSeverityAnomalies: true,
	}
}

// LoadQualityGates reads quality_gates.yml.
func LoadQualityGates(path string) (*QualityGates, error) {
	g := DefaultQualityGates()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &g, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &g, nil
}
