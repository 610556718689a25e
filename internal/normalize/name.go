// Package normalize implements the pure canonicalization functions the
// matchers compare source records with: name folding, competition sponsor
// stripping, country alias lookup, and season-string parsing (§4.1).
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var collapseSpace = regexp.MustCompile(`\s+`)
var nonAlnum = regexp.MustCompile(`[^a-z0-9 ]`)

// aliasPattern pairs a compiled regex matching a bare token with its
// expansion, applied after casefolding and punctuation stripping. The
// "bare fc -> football club" example from §4.1 is the canonical case.
type aliasPattern struct {
	re          *regexp.Regexp
	replacement string
}

var defaultAliases = []aliasPattern{
	{regexp.MustCompile(`\bfc\b`), "football club"},
	{regexp.MustCompile(`\bafc\b`), "association football club"},
	{regexp.MustCompile(`\bcf\b`), "club de futbol"},
	{regexp.MustCompile(`\bsc\b`), "sporting club"},
	{regexp.MustCompile(`\butd\b`), "united"},
}

// Name canonicalizes a team/player/entity name string. It is idempotent:
// Name(Name(x)) == Name(x) for all x, because every step it performs is
// itself a fixed point once applied (stripping marks, lowercasing,
// collapsing, alias-expanding a name that has already been expanded leaves
// it unchanged, collapsing whitespace again is a no-op).
func Name(input string) string {
	if input == "" {
		return ""
	}

	folded := stripCombiningMarks(input)
	folded = strings.ToLower(folded)
	folded = nonAlnum.ReplaceAllString(folded, " ")
	folded = collapseSpace.ReplaceAllString(folded, " ")
	folded = strings.TrimSpace(folded)

	for _, a := range defaultAliases {
		folded = a.re.ReplaceAllString(folded, a.replacement)
	}

	folded = collapseSpace.ReplaceAllString(folded, " ")
	folded = strings.TrimSpace(folded)

	return folded
}

// NameWithAliases is Name with an additional caller-supplied alias table
// applied first (mapping_rules.yml's team_name_aliases), matched as whole
// tokens against the already-casefolded, punctuation-stripped string.
func NameWithAliases(input string, aliases map[string]string) string {
	if input == "" {
		return ""
	}

	folded := stripCombiningMarks(input)
	folded = strings.ToLower(folded)
	folded = nonAlnum.ReplaceAllString(folded, " ")
	folded = collapseSpace.ReplaceAllString(folded, " ")
	folded = strings.TrimSpace(folded)

	if len(aliases) > 0 {
		tokens := strings.Split(folded, " ")
		for i, tok := range tokens {
			if repl, ok := aliases[tok]; ok {
				tokens[i] = repl
			}
		}
		folded = strings.Join(tokens, " ")
	}

	for _, a := range defaultAliases {
		folded = a.re.ReplaceAllString(folded, a.replacement)
	}

	folded = collapseSpace.ReplaceAllString(folded, " ")
	folded = strings.TrimSpace(folded)

	return Name(folded)
}

// stripCombiningMarks performs Unicode NFKD decomposition and drops
// combining marks, folding accented characters to their base letters
// (e.g. "Müller" -> "Muller").
func stripCombiningMarks(s string) string {
	t := transform.Chain(norm.NFKD, transform.RemoveFunc(isMn), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
