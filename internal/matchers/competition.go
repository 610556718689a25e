package matchers

import (
	"github.com/greenbier/ues-resolver/internal/domain"
	"github.com/greenbier/ues-resolver/internal/normalize"
	"github.com/greenbier/ues-resolver/internal/similarity"
)

// Competitions matches ALPHA competitions against BETA competitions by
// argmax token_sort_ratio over sponsor-stripped, normalized names. Country
// is taken from ALPHA, falling back to BETA, both normalized (§4.2).
func Competitions(
	alphaCompetitions []domain.AlphaCompetition,
	betaCompetitions []domain.BetaCompetition,
	sponsorPhrases []string,
	countryTable normalize.CountryTable,
	threshold float64,
) []domain.Candidate {
	type normalizedBeta struct {
		comp domain.BetaCompetition
		name string
	}

	normBeta := make([]normalizedBeta, len(betaCompetitions))
	for i, bc := range betaCompetitions {
		normBeta[i] = normalizedBeta{comp: bc, name: normalize.Competition(bc.Name, sponsorPhrases)}
	}

	var candidates []domain.Candidate
	for _, ac := range alphaCompetitions {
		alphaName := normalize.Competition(ac.Name, sponsorPhrases)

		bestScore := -1.0
		bestIdx := -1
		for i, nb := range normBeta {
			score := similarity.TokenSortRatio(alphaName, nb.name)
			if score > bestScore || (score == bestScore && bestIdx != -1 && nb.comp.ID < normBeta[bestIdx].comp.ID) {
				bestScore = score
				bestIdx = i
			}
		}

		if bestIdx == -1 || bestScore < threshold {
			continue
		}

		best := normBeta[bestIdx]
		country := ac.Country
		if country == "" {
			country = best.comp.Country
		}
		country = normalize.Country(country, countryTable)

		candidates = append(candidates, domain.Candidate{
			EntityType:   domain.EntityCompetition,
			AlphaID:      ac.CompetitionID,
			BetaID:       best.comp.ID,
			Confidence:   bestScore,
			Breakdown:    map[string]float64{"name_similarity": bestScore},
			Name:         ac.Name,
			Country:      nonEmptyPtr(country),
			AlphaCountry: nonEmptyPtr(normalize.Country(ac.Country, countryTable)),
			BetaCountry:  nonEmptyPtr(normalize.Country(best.comp.Country, countryTable)),
		})
	}

	return candidates
}
