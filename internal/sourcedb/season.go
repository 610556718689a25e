package sourcedb

import (
	"context"
	"fmt"

	"github.com/greenbier/ues-resolver/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AlphaSeasonRepository reads ALPHA's season records.
type AlphaSeasonRepository struct {
	pool *pgxpool.Pool
}

// ListByCompetition returns every ALPHA season row scoped to a competition.
func (r *AlphaSeasonRepository) ListByCompetition(ctx context.Context, competitionID int) ([]domain.AlphaSeason, error) {
	query := `SELECT season_id, competition_id, label FROM alpha_seasons WHERE competition_id = $1 ORDER BY season_id`

	rows, err := r.pool.Query(ctx, query, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list alpha seasons: %w", err)
	}
	defer rows.Close()

	var seasons []domain.AlphaSeason
	for rows.Next() {
		var s domain.AlphaSeason
		if err := rows.Scan(&s.SeasonID, &s.CompetitionID, &s.Label); err != nil {
			return nil, fmt.Errorf("failed to scan alpha season: %w", err)
		}
		seasons = append(seasons, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alpha seasons: %w", err)
	}
	return seasons, nil
}

// List returns every ALPHA season row across all competitions.
func (r *AlphaSeasonRepository) List(ctx context.Context) ([]domain.AlphaSeason, error) {
	query := `SELECT season_id, competition_id, label FROM alpha_seasons ORDER BY competition_id, season_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list alpha seasons: %w", err)
	}
	defer rows.Close()

	var seasons []domain.AlphaSeason
	for rows.Next() {
		var s domain.AlphaSeason
		if err := rows.Scan(&s.SeasonID, &s.CompetitionID, &s.Label); err != nil {
			return nil, fmt.Errorf("failed to scan alpha season: %w", err)
		}
		seasons = append(seasons, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alpha seasons: %w", err)
	}
	return seasons, nil
}

// BetaSeasonRepository reads BETA's season records.
type BetaSeasonRepository struct {
	pool *pgxpool.Pool
}

// List returns every BETA season row across all competitions.
func (r *BetaSeasonRepository) List(ctx context.Context) ([]domain.BetaSeason, error) {
	query := `SELECT id, competition_id, label FROM beta_seasons ORDER BY competition_id, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list beta seasons: %w", err)
	}
	defer rows.Close()

	var seasons []domain.BetaSeason
	for rows.Next() {
		var s domain.BetaSeason
		if err := rows.Scan(&s.ID, &s.CompetitionID, &s.Label); err != nil {
			return nil, fmt.Errorf("failed to scan beta season: %w", err)
		}
		seasons = append(seasons, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating beta seasons: %w", err)
	}
	return seasons, nil
}
