package sourcedb

import (
	"context"
	"fmt"

	"github.com/greenbier/ues-resolver/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AlphaCompetitionRepository reads ALPHA's competition records.
type AlphaCompetitionRepository struct {
	pool *pgxpool.Pool
}

// List returns every ALPHA competition row.
func (r *AlphaCompetitionRepository) List(ctx context.Context) ([]domain.AlphaCompetition, error) {
	query := `SELECT competition_id, name, country FROM alpha_competitions ORDER BY competition_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list alpha competitions: %w", err)
	}
	defer rows.Close()

	var competitions []domain.AlphaCompetition
	for rows.Next() {
		var c domain.AlphaCompetition
		if err := rows.Scan(&c.CompetitionID, &c.Name, &c.Country); err != nil {
			return nil, fmt.Errorf("failed to scan alpha competition: %w", err)
		}
		competitions = append(competitions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alpha competitions: %w", err)
	}
	return competitions, nil
}

// BetaCompetitionRepository reads BETA's competition records.
type BetaCompetitionRepository struct {
	pool *pgxpool.Pool
}

// List returns every BETA competition row.
func (r *BetaCompetitionRepository) List(ctx context.Context) ([]domain.BetaCompetition, error) {
	query := `SELECT id, name, country FROM beta_competitions ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list beta competitions: %w", err)
	}
	defer rows.Close()

	var competitions []domain.BetaCompetition
	for rows.Next() {
		var c domain.BetaCompetition
		if err := rows.Scan(&c.ID, &c.Name, &c.Country); err != nil {
			return nil, fmt.Errorf("failed to scan beta competition: %w", err)
		}
		competitions = append(competitions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating beta competitions: %w", err)
	}
	return competitions, nil
}
