package sourcedb

import (
	"context"
	"fmt"

	"github.com/greenbier/ues-resolver/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AlphaMatchRepository reads ALPHA's match records.
type AlphaMatchRepository struct {
	pool *pgxpool.Pool
}

// List returns every ALPHA match row.
func (r *AlphaMatchRepository) List(ctx context.Context) ([]domain.AlphaMatch, error) {
	query := `
		SELECT match_id, competition_id, season_id, home_team_id, away_team_id, match_date
		FROM alpha_matches
		ORDER BY match_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list alpha matches: %w", err)
	}
	defer rows.Close()

	var matches []domain.AlphaMatch
	for rows.Next() {
		var m domain.AlphaMatch
		if err := rows.Scan(&m.MatchID, &m.CompetitionID, &m.SeasonID, &m.HomeTeamID, &m.AwayTeamID, &m.MatchDate); err != nil {
			return nil, fmt.Errorf("failed to scan alpha match: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alpha matches: %w", err)
	}
	return matches, nil
}

// BetaMatchRepository reads BETA's match records.
type BetaMatchRepository struct {
	pool *pgxpool.Pool
}

// List returns every BETA match row. home_team_id/away_team_id are nullable:
// some BETA matches only carry team name strings (§3).
func (r *BetaMatchRepository) List(ctx context.Context) ([]domain.BetaMatch, error) {
	query := `
		SELECT id, competition_id, season_id, home_team_id, away_team_id,
		       home_team_name, away_team_name, match_date
		FROM beta_matches
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list beta matches: %w", err)
	}
	defer rows.Close()

	var matches []domain.BetaMatch
	for rows.Next() {
		var m domain.BetaMatch
		if err := rows.Scan(
			&m.ID, &m.CompetitionID, &m.SeasonID, &m.HomeTeamID, &m.AwayTeamID,
			&m.HomeTeamName, &m.AwayTeamName, &m.MatchDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan beta match: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating beta matches: %w", err)
	}
	return matches, nil
}
