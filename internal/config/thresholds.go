package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Thresholds holds the per-entity similarity thresholds read from
// thresholds.yml. These feed the matchers (§4.2) directly.
type Thresholds struct {
	TeamSimThreshold  float64 `yaml:"TEAM_SIM_THRESHOLD"`
	CompSimThreshold  float64 `yaml:"COMP_SIM_THRESHOLD"`
	ConfidenceReview  float64 `yaml:"CONFIDENCE_REVIEW"`
	ConfidenceAutopass float64 `yaml:"CONFIDENCE_AUTOPASS"`
	DOBPartialScore   float64 `yaml:"DOB_PARTIAL_SCORE"`
}

// DefaultThresholds mirrors the defaults called out in spec.md §4.2.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TeamSimThreshold:   0.7,
		CompSimThreshold:   0.75,
		ConfidenceReview:   0.6,
		ConfidenceAutopass: 0.85,
		DOBPartialScore:    0.6,
	}
}

// LoadThresholds reads thresholds.yml over DefaultThresholds: an absent file
// yields the defaults, and keys missing from a present file keep their
// default values.
func LoadThresholds(path string) (*Thresholds, error) {
	t := DefaultThresholds()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &t, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &t, nil
}
