package normalize

import "strings"

// CountryTable is a minimal alias-lookup contract so this package does not
// depend on internal/config directly (config depends on nothing, matchers
// depend on both).
type CountryTable interface {
	NormalizeCountryLookup(input string) string
}

// Country normalizes a country/nationality string via the configured alias
// table, case-insensitively, passing unknown input through unchanged. Empty
// input yields empty output (§4.1).
func Country(input string, table CountryTable) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	if table == nil {
		return input
	}
	return table.NormalizeCountryLookup(input)
}
