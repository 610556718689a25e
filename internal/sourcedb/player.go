package sourcedb

import (
	"context"
	"fmt"

	"github.com/greenbier/ues-resolver/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AlphaPlayerRepository reads ALPHA's player records.
type AlphaPlayerRepository struct {
	pool *pgxpool.Pool
}

// List returns every ALPHA player row.
func (r *AlphaPlayerRepository) List(ctx context.Context) ([]domain.AlphaPlayer, error) {
	query := `
		SELECT player_id, name, dob, team_id, nationality, height_cm
		FROM alpha_players
		ORDER BY player_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list alpha players: %w", err)
	}
	defer rows.Close()

	var players []domain.AlphaPlayer
	for rows.Next() {
		var p domain.AlphaPlayer
		if err := rows.Scan(&p.PlayerID, &p.Name, &p.DOB, &p.TeamID, &p.Nationality, &p.HeightCM); err != nil {
			return nil, fmt.Errorf("failed to scan alpha player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alpha players: %w", err)
	}
	return players, nil
}

// BetaPlayerRepository reads BETA's player records.
type BetaPlayerRepository struct {
	pool *pgxpool.Pool
}

// List returns every BETA player row.
func (r *BetaPlayerRepository) List(ctx context.Context) ([]domain.BetaPlayer, error) {
	query := `
		SELECT id, full_name, birth_year, team_name, footedness, height_cm, nationality
		FROM beta_players
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list beta players: %w", err)
	}
	defer rows.Close()

	var players []domain.BetaPlayer
	for rows.Next() {
		var p domain.BetaPlayer
		if err := rows.Scan(&p.ID, &p.FullName, &p.BirthYear, &p.TeamName, &p.Footedness, &p.HeightCM, &p.Nationality); err != nil {
			return nil, fmt.Errorf("failed to scan beta player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating beta players: %w", err)
	}
	return players, nil
}
