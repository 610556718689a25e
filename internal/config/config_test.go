package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadThresholds_DefaultsWhenAbsent(t *testing.T) {
	th, err := LoadThresholds(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, 0.7, th.TeamSimThreshold)
	assert.Equal(t, 0.85, th.ConfidenceAutopass)
}

func TestLoadThresholds_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "thresholds.yml")
	content := "TEAM_SIM_THRESHOLD: 0.8\nCONFIDENCE_AUTOPASS: 0.9\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	th, err := LoadThresholds(path)
	require.NoError(t, err)
	assert.Equal(t, 0.8, th.TeamSimThreshold)
	assert.Equal(t, 0.9, th.ConfidenceAutopass)
	// Untouched fields keep their defaults.
	assert.Equal(t, 0.6, th.ConfidenceReview)
}

func TestLLMValidation_MappingEnabledOrDefault(t *testing.T) {
	enabled := true
	l := LLMValidation{Enabled: false, MappingEnabled: &enabled}
	assert.True(t, l.MappingEnabledOrDefault())

	l2 := LLMValidation{Enabled: true}
	assert.True(t, l2.MappingEnabledOrDefault())

	l3 := LLMValidation{Enabled: false}
	assert.False(t, l3.MappingEnabledOrDefault())
}

func TestLLMValidation_BandForUnknownEntityUsesPermissiveDefault(t *testing.T) {
	l := DefaultLLMValidation()
	band := l.BandFor("unknown_entity")
	assert.Equal(t, 0.5, band.Low)
	assert.Equal(t, 0.9, band.High)
}

func TestNormalization_CountryLookupPassesThroughUnknown(t *testing.T) {
	n := DefaultNormalization()
	assert.Equal(t, "England", n.NormalizeCountryLookup("ENG"))
	assert.Equal(t, "Narnia", n.NormalizeCountryLookup("Narnia"))
	assert.Equal(t, "", n.NormalizeCountryLookup(""))
}

func TestBundle_ValidateRejectsBadFallbackMode(t *testing.T) {
	b := &Bundle{
		Env: Env{AlphaDatabaseURL: "a", BetaDatabaseURL: "b", UESDatabaseURL: "c"},
		LLMValidation: LLMValidation{FallbackModeWhenUnhealthy: "bogus"},
	}
	err := b.Validate()
	assert.Error(t, err)
}

func TestBundle_ValidateRequiresDatabaseURLs(t *testing.T) {
	b := &Bundle{LLMValidation: DefaultLLMValidation()}
	err := b.Validate()
	assert.Error(t, err)
}
