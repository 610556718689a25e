package sourcedb

import (
	"context"
	"fmt"

	"github.com/greenbier/ues-resolver/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AlphaTeamRepository reads ALPHA's team records.
type AlphaTeamRepository struct {
	pool *pgxpool.Pool
}

// List returns every ALPHA team row.
func (r *AlphaTeamRepository) List(ctx context.Context) ([]domain.AlphaTeam, error) {
	query := `SELECT team_id, name, country FROM alpha_teams ORDER BY team_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list alpha teams: %w", err)
	}
	defer rows.Close()

	var teams []domain.AlphaTeam
	for rows.Next() {
		var t domain.AlphaTeam
		if err := rows.Scan(&t.TeamID, &t.Name, &t.Country); err != nil {
			return nil, fmt.Errorf("failed to scan alpha team: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alpha teams: %w", err)
	}
	return teams, nil
}

// BetaTeamRepository reads BETA's team records.
type BetaTeamRepository struct {
	pool *pgxpool.Pool
}

// List returns every BETA team row.
func (r *BetaTeamRepository) List(ctx context.Context) ([]domain.BetaTeam, error) {
	query := `SELECT id, display_name, region FROM beta_teams ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list beta teams: %w", err)
	}
	defer rows.Close()

	var teams []domain.BetaTeam
	for rows.Next() {
		var t domain.BetaTeam
		if err := rows.Scan(&t.ID, &t.DisplayName, &t.Region); err != nil {
			return nil, fmt.Errorf("failed to scan beta team: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating beta teams: %w", err)
	}
	return teams, nil
}
