package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MappingRules is the parsed content of mapping_rules.yml: a table of team
// name aliases applied before similarity scoring (§4.2).
type MappingRules struct {
	TeamNameAliases map[string]string `yaml:"team_name_aliases"`
}

// DefaultMappingRules has a small built-in alias set (utd -> united). The
// "fc" -> "football club" expansion is not part of it; that one is applied
// by the normalize package's built-in alias patterns.
func DefaultMappingRules() MappingRules {
	return MappingRules{
		TeamNameAliases: map[string]string{
			"utd": "united",
		},
	}
}

// LoadMappingRules reads mapping_rules.yml.
func LoadMappingRules(path string) (*MappingRules, error) {
	m := DefaultMappingRules()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &m, nil
}
