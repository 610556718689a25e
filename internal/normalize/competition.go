package normalize

import "strings"

// Competition lowercases a competition name and removes every configured
// sponsor phrase as a case-insensitive substring, then collapses whitespace
// (§4.1). Sponsor phrases come from normalization.yml's
// competition_sponsors list.
func Competition(input string, sponsorPhrases []string) string {
	if input == "" {
		return ""
	}

	out := strings.ToLower(input)
	for _, phrase := range sponsorPhrases {
		p := strings.ToLower(strings.TrimSpace(phrase))
		if p == "" {
			continue
		}
		out = strings.ReplaceAll(out, p, "")
	}

	out = collapseSpace.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}
