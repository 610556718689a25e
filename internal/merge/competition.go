package merge

import (
	"github.com/greenbier/ues-resolver/internal/domain"
	"github.com/greenbier/ues-resolver/internal/lineage"
	"github.com/greenbier/ues-resolver/internal/uesid"
)

// Competitions canonicalizes approved competition pairs; name/country come
// straight from the matcher record (§4.5).
func Competitions(approved []domain.Candidate) (entities []domain.UESCompetition, alphaToUES, betaToUES map[int]string) {
	alphaToUES = make(map[int]string, len(approved))
	betaToUES = make(map[int]string, len(approved))

	for _, c := range approved {
		id := uesid.Generate(domain.EntityCompetition.IDPrefix(), c.AlphaID, c.BetaID)
		l := lineage.Build(domain.EntityCompetition, c.AlphaID, c.BetaID, c.Confidence, c.Breakdown)

		entities = append(entities, domain.UESCompetition{
			UESCompetitionID: id,
			Name:             c.Name,
			Country:          c.Country,
			MergeConfidence:  c.Confidence,
			Lineage:          l,
		})
		alphaToUES[c.AlphaID] = id
		betaToUES[c.BetaID] = id
	}

	return entities, alphaToUES, betaToUES
}
