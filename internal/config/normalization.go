package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Normalization is the parsed content of normalization.yml: the country
// alias table and the list of sponsor phrases stripped from competition
// names (§4.1).
type Normalization struct {
	Countries            map[string]string `yaml:"countries"`
	CompetitionSponsors  []string          `yaml:"competition_sponsors"`

	countriesLower map[string]string
}

// NormalizeCountryLookup does a case-insensitive alias lookup, returning the
// input unchanged when no alias matches (§4.1: "pass through unchanged when
// unknown").
func (n *Normalization) NormalizeCountryLookup(input string) string {
	if input == "" {
		return ""
	}
	if n.countriesLower == nil {
		n.countriesLower = make(map[string]string, len(n.Countries))
		for k, v := range n.Countries {
			n.countriesLower[strings.ToLower(k)] = v
		}
	}
	if canon, ok := n.countriesLower[strings.ToLower(input)]; ok {
		return canon
	}
	return input
}

// DefaultNormalization provides a small built-in alias table so the
// pipeline behaves sensibly even without normalization.yml present.
func DefaultNormalization() Normalization {
	return Normalization{
		Countries: map[string]string{
			"england":  "England",
			"eng":      "England",
			"gb":       "England",
			"uk":       "England",
			"espana":   "Spain",
			"esp":      "Spain",
			"deutschland": "Germany",
			"ger":      "Germany",
			"de":       "Germany",
		},
		CompetitionSponsors: []string{
			"barclays",
			"carabao",
			"sky bet",
			"emirates",
		},
	}
}

// LoadNormalization reads normalization.yml.
func LoadNormalization(path string) (*Normalization, error) {
	n := DefaultNormalization()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &n, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &n, nil
}
