package uesstore

import (
	"context"
	"fmt"

	"github.com/greenbier/ues-resolver/internal/domain"
	"github.com/jackc/pgx/v5"
)

// insertLineageRows writes the flat source_lineage rows for one canonical
// entity: exactly one ALPHA row and one BETA row per entity (§3: "A flat
// source_lineage table records one row per (source_system, source_id,
// ues_entity_type, ues_entity_id) tuple").
func insertLineageRows(ctx context.Context, tx pgx.Tx, entityType domain.EntityType, uesEntityID string, l domain.Lineage) error {
	for _, ref := range l.Sources {
		_, err := tx.Exec(ctx, `
			INSERT INTO source_lineage (source_system, source_id, ues_entity_type, ues_entity_id)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (source_system, source_id, ues_entity_type) DO UPDATE SET
				ues_entity_id = EXCLUDED.ues_entity_id
		`, ref.Source, ref.ID, entityType, uesEntityID)
		if err != nil {
			return fmt.Errorf("failed to insert source_lineage row for %s: %w", uesEntityID, err)
		}
	}
	return nil
}
