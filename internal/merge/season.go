package merge

import (
	"github.com/greenbier/ues-resolver/internal/domain"
	"github.com/greenbier/ues-resolver/internal/lineage"
	"github.com/greenbier/ues-resolver/internal/uesid"
)

// Seasons canonicalizes approved season pairs. competition_ues_id resolves
// via the ALPHA competition map, falling back to the BETA competition map
// when the ALPHA competition itself never resolved to a UES entity (§4.5).
func Seasons(
	approved []domain.Candidate,
	alphaCompetitionUES, betaCompetitionUES map[int]string,
) (entities []domain.UESSeason, alphaToUES, betaToUES map[int]string) {
	alphaToUES = make(map[int]string, len(approved))
	betaToUES = make(map[int]string, len(approved))

	for _, c := range approved {
		id := uesid.Generate(domain.EntitySeason.IDPrefix(), c.AlphaID, c.BetaID)
		l := lineage.Build(domain.EntitySeason, c.AlphaID, c.BetaID, c.Confidence, c.Breakdown)

		competitionUESID := alphaCompetitionUES[c.CompetitionID]
		if competitionUESID == "" {
			competitionUESID = betaCompetitionUES[c.BetaCompetitionID]
		}

		entities = append(entities, domain.UESSeason{
			UESSeasonID:      id,
			StartYear:        c.StartYear,
			EndYear:          c.EndYear,
			CompetitionUESID: competitionUESID,
			MergeConfidence:  c.Confidence,
			Lineage:          l,
		})
		alphaToUES[c.AlphaID] = id
		betaToUES[c.BetaID] = id
	}

	return entities, alphaToUES, betaToUES
}
