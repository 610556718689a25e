// Package matchers implements the five entity-typed matchers described in
// §4.2: teams, competitions, seasons, players, matches. Each matcher is a
// pure function over source records plus configuration and never fails on
// malformed input — missing optional fields contribute 0 to a sub-score,
// and unmappable ids are silently dropped rather than raising an error
// (§4.2 "Matcher failure policy").
package matchers

import (
	"github.com/greenbier/ues-resolver/internal/domain"
	"github.com/greenbier/ues-resolver/internal/normalize"
	"github.com/greenbier/ues-resolver/internal/similarity"
)

// Teams matches ALPHA teams against BETA teams by argmax token_sort_ratio
// over normalized, alias-expanded names. Iteration is in ALPHA source
// order; ties within a single ALPHA team's BETA candidates are broken by
// earliest BETA id (§9 re-architecture guidance: explicit tie-breakers).
func Teams(alphaTeams []domain.AlphaTeam, betaTeams []domain.BetaTeam, aliases map[string]string, threshold float64) []domain.Candidate {
	type normalizedBeta struct {
		team domain.BetaTeam
		name string
	}

	normBeta := make([]normalizedBeta, len(betaTeams))
	for i, bt := range betaTeams {
		normBeta[i] = normalizedBeta{team: bt, name: normalize.NameWithAliases(bt.DisplayName, aliases)}
	}

	var candidates []domain.Candidate
	for _, at := range alphaTeams {
		alphaName := normalize.NameWithAliases(at.Name, aliases)

		bestScore := -1.0
		bestIdx := -1
		for i, nb := range normBeta {
			score := similarity.TokenSortRatio(alphaName, nb.name)
			if score > bestScore || (score == bestScore && bestIdx != -1 && nb.team.ID < normBeta[bestIdx].team.ID) {
				bestScore = score
				bestIdx = i
			}
		}

		if bestIdx == -1 || bestScore < threshold {
			continue
		}

		best := normBeta[bestIdx]
		country := at.Country
		if country == "" {
			country = best.team.Region
		}

		candidates = append(candidates, domain.Candidate{
			EntityType:   domain.EntityTeam,
			AlphaID:      at.TeamID,
			BetaID:       best.team.ID,
			Confidence:   bestScore,
			Breakdown:    map[string]float64{"name_similarity": bestScore},
			Name:         at.Name,
			Country:      nonEmptyPtr(country),
			AlphaCountry: nonEmptyPtr(at.Country),
			BetaCountry:  nonEmptyPtr(best.team.Region),
		})
	}

	return candidates
}

func nonEmptyPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
