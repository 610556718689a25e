package matchers

import (
	"strings"
	"time"

	"github.com/greenbier/ues-resolver/internal/domain"
	"github.com/greenbier/ues-resolver/internal/normalize"
	"github.com/greenbier/ues-resolver/internal/similarity"
)

// Player blend weights from §4.2: confidence = 0.6*name + 0.3*dob + 0.1*team.
const (
	playerNameWeight = 0.6
	playerDOBWeight  = 0.3
	playerTeamWeight = 0.1
)

// Players matches ALPHA players against BETA players by argmax over a
// weighted blend of name similarity, date-of-birth similarity, and team
// resolution agreement (§4.2).
func Players(
	alphaPlayers []domain.AlphaPlayer,
	betaPlayers []domain.BetaPlayer,
	betaTeams []domain.BetaTeam,
	alphaToBetaTeamMap map[int]int,
	dobPartialScore float64,
	confidenceAutopass float64,
) []domain.Candidate {
	betaTeamIDByNormName := make(map[string]int, len(betaTeams))
	for _, bt := range betaTeams {
		betaTeamIDByNormName[normalize.Name(bt.DisplayName)] = bt.ID
	}

	type normalizedBeta struct {
		player domain.BetaPlayer
		name   string
	}
	normBeta := make([]normalizedBeta, len(betaPlayers))
	for i, bp := range betaPlayers {
		normBeta[i] = normalizedBeta{player: bp, name: normalize.Name(bp.FullName)}
	}

	var candidates []domain.Candidate
	for _, ap := range alphaPlayers {
		alphaName := normalize.Name(ap.Name)
		expectedBetaTeamID, hasTeamMap := alphaToBetaTeamMap[ap.TeamID]

		bestConfidence := -1.0
		bestIdx := -1
		var bestBreakdown map[string]float64

		for i, nb := range normBeta {
			nameSim := similarity.TokenSortRatio(alphaName, nb.name)
			dobSim := dobSimilarity(ap.DOB, nb.player.BirthYear, dobPartialScore)
			teamSim := playerTeamSimilarity(expectedBetaTeamID, hasTeamMap, nb.player.TeamName, betaTeamIDByNormName)

			confidence := playerNameWeight*nameSim + playerDOBWeight*dobSim + playerTeamWeight*teamSim

			better := confidence > bestConfidence
			tie := confidence == bestConfidence && bestIdx != -1 && nb.player.ID < normBeta[bestIdx].player.ID
			if better || tie {
				bestConfidence = confidence
				bestIdx = i
				bestBreakdown = map[string]float64{
					"name_similarity": nameSim,
					"dob_similarity":  dobSim,
					"team_similarity": teamSim,
				}
			}
		}

		if bestIdx == -1 || bestConfidence < confidenceAutopass {
			continue
		}

		best := normBeta[bestIdx]
		var dobYear *int
		if ap.DOB != nil {
			y := ap.DOB.Year()
			dobYear = &y
		}

		nationality := ap.Nationality
		if nationality == "" {
			nationality = best.player.Nationality
		}

		var foot *string
		if best.player.Footedness != "" {
			f := strings.ToLower(best.player.Footedness)
			foot = &f
		}

		candidates = append(candidates, domain.Candidate{
			EntityType:    domain.EntityPlayer,
			AlphaID:       ap.PlayerID,
			BetaID:        best.player.ID,
			Confidence:    bestConfidence,
			Breakdown:     bestBreakdown,
			CanonicalName: ap.Name,
			DOBYear:       dobYear,
			BirthYear:     best.player.BirthYear,
			Nationality:   nonEmptyPtr(nationality),
			HeightCM:      firstNonNilInt(ap.HeightCM, best.player.HeightCM),
			Foot:          foot,
			AlphaTeamID:   ap.TeamID,
		})
	}

	return candidates
}

// dobSimilarity compares ALPHA's date of birth to BETA's birth year. Equal
// years score 1.0, off-by-one scores the configured partial credit (BETA
// birth years are often reported a season late), anything else scores 0.
// A missing value on either side contributes 0 rather than failing (§4.2).
func dobSimilarity(alphaDOB *time.Time, betaBirthYear *int, dobPartialScore float64) float64 {
	if alphaDOB == nil || betaBirthYear == nil {
		return 0.0
	}
	diff := alphaDOB.Year() - *betaBirthYear
	if diff < 0 {
		diff = -diff
	}
	switch diff {
	case 0:
		return 1.0
	case 1:
		return dobPartialScore
	default:
		return 0.0
	}
}

// playerTeamSimilarity scores 1.0 when BETA's reported team name resolves
// (via normalized name lookup) to the same BETA team id the ALPHA-side team
// map expects for this player's ALPHA team, 0 otherwise.
func playerTeamSimilarity(expectedBetaTeamID int, hasTeamMap bool, betaTeamName string, betaTeamIDByNormName map[string]int) float64 {
	if !hasTeamMap || betaTeamName == "" {
		return 0.0
	}
	resolvedID, ok := betaTeamIDByNormName[normalize.Name(betaTeamName)]
	if !ok || resolvedID != expectedBetaTeamID {
		return 0.0
	}
	return 1.0
}

func firstNonNilInt(a, b *int) *int {
	if a != nil {
		return a
	}
	return b
}
