// Package lineage builds the per-entity provenance record every merger
// attaches to the UES entity it produces (§2.4, §3).
package lineage

import "github.com/greenbier/ues-resolver/internal/domain"

// Build produces a Lineage record for one merged entity. It always carries
// exactly one ALPHA and one BETA source ref, satisfying invariant 2 in §3.
func Build(entityType domain.EntityType, alphaID, betaID int, confidence float64, breakdown map[string]float64) domain.Lineage {
	bd := breakdown
	if bd == nil {
		bd = map[string]float64{}
	}
	return domain.Lineage{
		Sources: []domain.LineageSourceRef{
			{Source: domain.SourceAlpha, ID: alphaID},
			{Source: domain.SourceBeta, ID: betaID},
		},
		Confidence:          confidence,
		ConfidenceBreakdown: bd,
		EntityType:          entityType,
	}
}

// SourceLineageRows flattens a Lineage into the two rows persisted in the
// flat source_lineage table (§3), satisfying invariant 3: every UES entity
// has at least two lineage rows, one per side.
func SourceLineageRows(l domain.Lineage, uesEntityID string) []domain.SourceLineageRow {
	rows := make([]domain.SourceLineageRow, 0, len(l.Sources))
	for _, ref := range l.Sources {
		rows = append(rows, domain.SourceLineageRow{
			SourceSystem:  ref.Source,
			SourceID:      ref.ID,
			UESEntityType: l.EntityType,
			UESEntityID:   uesEntityID,
		})
	}
	return rows
}
