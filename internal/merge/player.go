package merge

import (
	"github.com/greenbier/ues-resolver/internal/domain"
	"github.com/greenbier/ues-resolver/internal/lineage"
	"github.com/greenbier/ues-resolver/internal/normalize"
	"github.com/greenbier/ues-resolver/internal/uesid"
)

// Players canonicalizes approved player pairs. canonical_name is ALPHA's
// name (always present — the matcher only emits a candidate when one
// exists); nationality is normalized through the country table;
// height_cm/foot/team_ues_id follow the preference rules in §4.5.
func Players(
	approved []domain.Candidate,
	alphaTeamUES map[int]string,
	countryTable normalize.CountryTable,
) (entities []domain.UESPlayer, alphaToUES, betaToUES map[int]string) {
	alphaToUES = make(map[int]string, len(approved))
	betaToUES = make(map[int]string, len(approved))

	for _, c := range approved {
		id := uesid.Generate(domain.EntityPlayer.IDPrefix(), c.AlphaID, c.BetaID)
		l := lineage.Build(domain.EntityPlayer, c.AlphaID, c.BetaID, c.Confidence, c.Breakdown)

		var nationality *string
		if c.Nationality != nil {
			n := normalize.Country(*c.Nationality, countryTable)
			nationality = &n
		}

		var teamUESID *string
		if uesID, ok := alphaTeamUES[c.AlphaTeamID]; ok {
			teamUESID = &uesID
		}

		birthYear := c.DOBYear
		if birthYear == nil {
			birthYear = c.BirthYear
		}

		entities = append(entities, domain.UESPlayer{
			UESPlayerID:     id,
			CanonicalName:   c.CanonicalName,
			BirthYear:       birthYear,
			Nationality:     nationality,
			HeightCM:        c.HeightCM,
			Foot:            c.Foot,
			TeamUESID:       teamUESID,
			MergeConfidence: c.Confidence,
			Lineage:         l,
		})
		alphaToUES[c.AlphaID] = id
		betaToUES[c.BetaID] = id
	}

	return entities, alphaToUES, betaToUES
}
