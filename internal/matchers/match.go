package matchers

import (
	"time"

	"github.com/greenbier/ues-resolver/internal/domain"
	"github.com/greenbier/ues-resolver/internal/normalize"
)

// Matches blend weights from §4.2: score = 0.4*team + 0.3*date_sim + 0.3.
// The team component only ever contributes when both sides' team ids agree
// exactly; a BETA match that cannot be reconciled to the expected ALPHA
// teams is skipped rather than partially scored.
const (
	matchTeamWeight = 0.4
	matchDateWeight = 0.3
	matchBaseScore  = 0.3
)

// Matches is the strict form: it requires BETA match rows to carry
// home_team_id/away_team_id directly and is the form the orchestrator
// invokes. See TolerantMatches for the name-resolving variant.
func Matches(
	alphaMatches []domain.AlphaMatch,
	betaMatches []domain.BetaMatch,
	competitionMap map[int]int,
	seasonMap map[int]int,
	alphaToBetaTeamMap map[int]int,
	confidenceReview float64,
) []domain.Candidate {
	return matches(alphaMatches, betaMatches, nil, competitionMap, seasonMap, alphaToBetaTeamMap, confidenceReview)
}

// TolerantMatches additionally resolves BETA home/away team ids via a
// normalized team-name lookup when a BETA match row carries names instead
// of ids. Unused by the orchestrator; kept available for callers working
// against BETA snapshots that never populate the id columns.
func TolerantMatches(
	alphaMatches []domain.AlphaMatch,
	betaMatches []domain.BetaMatch,
	betaTeams []domain.BetaTeam,
	competitionMap map[int]int,
	seasonMap map[int]int,
	alphaToBetaTeamMap map[int]int,
	confidenceReview float64,
) []domain.Candidate {
	return matches(alphaMatches, betaMatches, betaTeams, competitionMap, seasonMap, alphaToBetaTeamMap, confidenceReview)
}

func matches(
	alphaMatches []domain.AlphaMatch,
	betaMatches []domain.BetaMatch,
	betaTeams []domain.BetaTeam,
	competitionMap map[int]int,
	seasonMap map[int]int,
	alphaToBetaTeamMap map[int]int,
	confidenceReview float64,
) []domain.Candidate {
	betaTeamIDByNormName := make(map[string]int, len(betaTeams))
	for _, bt := range betaTeams {
		betaTeamIDByNormName[normalize.Name(bt.DisplayName)] = bt.ID
	}

	betaByScope := make(map[[2]int][]domain.BetaMatch)
	for _, bm := range betaMatches {
		key := [2]int{bm.CompetitionID, bm.SeasonID}
		betaByScope[key] = append(betaByScope[key], bm)
	}

	var candidates []domain.Candidate
	for _, am := range alphaMatches {
		betaCompID, okComp := competitionMap[am.CompetitionID]
		betaSeasonID, okSeason := seasonMap[am.SeasonID]
		if !okComp || !okSeason {
			continue
		}

		expectedHome, okHome := alphaToBetaTeamMap[am.HomeTeamID]
		expectedAway, okAway := alphaToBetaTeamMap[am.AwayTeamID]
		if !okHome || !okAway {
			continue
		}

		bestScore := -1.0
		var bestBreakdown map[string]float64
		bestIdx := -1
		scope := betaByScope[[2]int{betaCompID, betaSeasonID}]

		for i, bm := range scope {
			resolvedHome, ok := resolveBetaTeamID(bm.HomeTeamID, bm.HomeTeamName, betaTeamIDByNormName)
			if !ok || resolvedHome != expectedHome {
				continue
			}
			resolvedAway, ok := resolveBetaTeamID(bm.AwayTeamID, bm.AwayTeamName, betaTeamIDByNormName)
			if !ok || resolvedAway != expectedAway {
				continue
			}

			dateSim := matchDateSimilarity(am.MatchDate, bm.MatchDate)
			score := matchTeamWeight + matchDateWeight*dateSim + matchBaseScore

			if score > bestScore {
				bestScore = score
				bestIdx = i
				bestBreakdown = map[string]float64{
					"team_similarity": 1.0,
					"date_similarity": dateSim,
				}
			}
		}

		if bestIdx == -1 || bestScore < confidenceReview {
			continue
		}

		best := scope[bestIdx]
		candidates = append(candidates, domain.Candidate{
			EntityType:      domain.EntityMatch,
			AlphaID:         am.MatchID,
			BetaID:          best.ID,
			Confidence:      bestScore,
			Breakdown:       bestBreakdown,
			CompetitionID:     am.CompetitionID,
			BetaCompetitionID: betaCompID,
			AlphaSeasonID:     am.SeasonID,
			AlphaHomeTeamID: am.HomeTeamID,
			AlphaAwayTeamID: am.AwayTeamID,
			MatchDate:       am.MatchDate,
			BetaMatchDate:   best.MatchDate,
		})
	}

	return candidates
}

// resolveBetaTeamID returns the BETA team id directly when present. It only
// falls back to the normalized name lookup when a lookup table was supplied
// by the caller (TolerantMatches); the strict form passes a nil/empty table
// so id-less rows never resolve.
func resolveBetaTeamID(id *int, name string, byNormName map[string]int) (int, bool) {
	if id != nil {
		return *id, true
	}
	if len(byNormName) == 0 || name == "" {
		return 0, false
	}
	resolved, ok := byNormName[normalize.Name(name)]
	return resolved, ok
}

// matchDateSimilarity scores an exact calendar-day match 1.0, a one-day
// slip 0.8 (kickoff times near midnight roll to an adjacent UTC date
// depending on source), and anything else 0.
func matchDateSimilarity(alphaDate, betaDate *time.Time) float64 {
	if alphaDate == nil || betaDate == nil {
		return 0.0
	}
	a := alphaDate.UTC().Truncate(24 * time.Hour)
	b := betaDate.UTC().Truncate(24 * time.Hour)
	diff := a.Sub(b)
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff == 0:
		return 1.0
	case diff <= 24*time.Hour:
		return 0.8
	default:
		return 0.0
	}
}
