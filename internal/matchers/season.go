package matchers

import (
	"github.com/greenbier/ues-resolver/internal/domain"
	"github.com/greenbier/ues-resolver/internal/normalize"
)

// Seasons matches ALPHA seasons against BETA seasons restricted to the same
// mapped competition, comparing parsed start years. Unlike the other
// matchers this emits every qualifying pair rather than an argmax, because
// seasons legitimately repeat across competitions (§4.2).
func Seasons(
	alphaSeasons []domain.AlphaSeason,
	betaSeasons []domain.BetaSeason,
	competitionMap map[int]int,
	confidenceReview float64,
) []domain.Candidate {
	betaByCompetition := make(map[int][]domain.BetaSeason)
	for _, bs := range betaSeasons {
		betaByCompetition[bs.CompetitionID] = append(betaByCompetition[bs.CompetitionID], bs)
	}

	var candidates []domain.Candidate
	for _, as := range alphaSeasons {
		betaCompID, ok := competitionMap[as.CompetitionID]
		if !ok {
			continue
		}

		alphaParsed := normalize.ParseSeason(as.Label)
		if alphaParsed.StartYear == nil {
			continue
		}

		for _, bs := range betaByCompetition[betaCompID] {
			betaParsed := normalize.ParseSeason(bs.Label)
			if betaParsed.StartYear == nil {
				continue
			}

			confidence := seasonStartYearScore(*alphaParsed.StartYear, *betaParsed.StartYear)
			if confidence < confidenceReview {
				continue
			}

			candidates = append(candidates, domain.Candidate{
				EntityType:    domain.EntitySeason,
				AlphaID:       as.SeasonID,
				BetaID:        bs.ID,
				Confidence:    confidence,
				Breakdown:     map[string]float64{"start_year_similarity": confidence},
				StartYear:     alphaParsed.StartYear,
				EndYear:       alphaParsed.EndYear,
				BetaStartYear:     betaParsed.StartYear,
				BetaEndYear:       betaParsed.EndYear,
				CompetitionID:     as.CompetitionID,
				BetaCompetitionID: betaCompID,
			})
		}
	}

	return candidates
}

func seasonStartYearScore(alphaStart, betaStart int) float64 {
	diff := alphaStart - betaStart
	if diff < 0 {
		diff = -diff
	}
	switch diff {
	case 0:
		return 1.0
	case 1:
		return 0.7
	default:
		return 0.0
	}
}
