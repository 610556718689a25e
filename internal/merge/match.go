package merge

import (
	"github.com/greenbier/ues-resolver/internal/domain"
	"github.com/greenbier/ues-resolver/internal/lineage"
	"github.com/greenbier/ues-resolver/internal/uesid"
)

// Matches canonicalizes approved match pairs. Home/away/season/competition
// ids all resolve through ALPHA-side UES maps produced by earlier stages;
// match_date is ALPHA's (§4.5). A match whose team/season/competition ids
// don't resolve to any UES entity from an earlier stage is skipped — it
// cannot be anchored to canonical relations.
func Matches(
	approved []domain.Candidate,
	alphaTeamUES, alphaSeasonUES, alphaCompetitionUES map[int]string,
) (entities []domain.UESMatch, alphaToUES, betaToUES map[int]string) {
	alphaToUES = make(map[int]string, len(approved))
	betaToUES = make(map[int]string, len(approved))

	for _, c := range approved {
		homeUESID, okHome := alphaTeamUES[c.AlphaHomeTeamID]
		awayUESID, okAway := alphaTeamUES[c.AlphaAwayTeamID]
		seasonUESID, okSeason := alphaSeasonUES[c.AlphaSeasonID]
		competitionUESID, okCompetition := alphaCompetitionUES[c.CompetitionID]
		if !okHome || !okAway || !okSeason || !okCompetition {
			continue
		}

		id := uesid.Generate(domain.EntityMatch.IDPrefix(), c.AlphaID, c.BetaID)
		l := lineage.Build(domain.EntityMatch, c.AlphaID, c.BetaID, c.Confidence, c.Breakdown)

		entities = append(entities, domain.UESMatch{
			UESMatchID:       id,
			HomeTeamUESID:    homeUESID,
			AwayTeamUESID:    awayUESID,
			SeasonUESID:      seasonUESID,
			CompetitionUESID: competitionUESID,
			MatchDate:        c.MatchDate,
			MergeConfidence:  c.Confidence,
			Lineage:          l,
		})
		alphaToUES[c.AlphaID] = id
		betaToUES[c.BetaID] = id
	}

	return entities, alphaToUES, betaToUES
}
