// Package merge builds canonical UES entities from router-approved
// candidate pairs, applying the per-entity canonicalization rules of §4.5
// and producing the ALPHA-side/BETA-side id-to-UES-id maps later stages
// consume.
package merge

import (
	"github.com/greenbier/ues-resolver/internal/domain"
	"github.com/greenbier/ues-resolver/internal/lineage"
	"github.com/greenbier/ues-resolver/internal/uesid"
)

// Teams canonicalizes approved team pairs. name/country are taken directly
// from the candidate, which already resolved ALPHA-preferred-fallback-BETA
// during matching (§4.5).
func Teams(approved []domain.Candidate) (entities []domain.UESTeam, alphaToUES, betaToUES map[int]string) {
	alphaToUES = make(map[int]string, len(approved))
	betaToUES = make(map[int]string, len(approved))

	for _, c := range approved {
		id := uesid.Generate(domain.EntityTeam.IDPrefix(), c.AlphaID, c.BetaID)
		l := lineage.Build(domain.EntityTeam, c.AlphaID, c.BetaID, c.Confidence, c.Breakdown)

		entities = append(entities, domain.UESTeam{
			UESTeamID:       id,
			Name:            c.Name,
			Country:         c.Country,
			MergeConfidence: c.Confidence,
			Lineage:         l,
		})
		alphaToUES[c.AlphaID] = id
		betaToUES[c.BetaID] = id
	}

	return entities, alphaToUES, betaToUES
}
