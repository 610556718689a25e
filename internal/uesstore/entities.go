package uesstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/greenbier/ues-resolver/internal/domain"
)

// WriteTeams inserts a batch of canonical teams and their source_lineage
// rows within a single transaction.
func (db *DB) WriteTeams(ctx context.Context, teams []domain.UESTeam) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin team write transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, t := range teams {
		lineageJSON, err := json.Marshal(t.Lineage)
		if err != nil {
			return fmt.Errorf("failed to marshal team lineage: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO ues_teams (ues_team_id, name, country, merge_confidence, lineage)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (ues_team_id) DO UPDATE SET
				name = EXCLUDED.name,
				country = EXCLUDED.country,
				merge_confidence = EXCLUDED.merge_confidence,
				lineage = EXCLUDED.lineage
		`, t.UESTeamID, t.Name, t.Country, t.MergeConfidence, lineageJSON)
		if err != nil {
			return fmt.Errorf("failed to upsert team %s: %w", t.UESTeamID, err)
		}

		if err := insertLineageRows(ctx, tx, domain.EntityTeam, t.UESTeamID, t.Lineage); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit team write transaction: %w", err)
	}
	return nil
}

// WriteCompetitions inserts a batch of canonical competitions and their
// source_lineage rows within a single transaction.
func (db *DB) WriteCompetitions(ctx context.Context, competitions []domain.UESCompetition) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin competition write transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, c := range competitions {
		lineageJSON, err := json.Marshal(c.Lineage)
		if err != nil {
			return fmt.Errorf("failed to marshal competition lineage: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO ues_competitions (ues_competition_id, name, country, merge_confidence, lineage)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (ues_competition_id) DO UPDATE SET
				name = EXCLUDED.name,
				country = EXCLUDED.country,
				merge_confidence = EXCLUDED.merge_confidence,
				lineage = EXCLUDED.lineage
		`, c.UESCompetitionID, c.Name, c.Country, c.MergeConfidence, lineageJSON)
		if err != nil {
			return fmt.Errorf("failed to upsert competition %s: %w", c.UESCompetitionID, err)
		}

		if err := insertLineageRows(ctx, tx, domain.EntityCompetition, c.UESCompetitionID, c.Lineage); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit competition write transaction: %w", err)
	}
	return nil
}

// WriteSeasons inserts a batch of canonical seasons and their source_lineage
// rows within a single transaction.
func (db *DB) WriteSeasons(ctx context.Context, seasons []domain.UESSeason) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin season write transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, s := range seasons {
		lineageJSON, err := json.Marshal(s.Lineage)
		if err != nil {
			return fmt.Errorf("failed to marshal season lineage: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO ues_seasons (ues_season_id, start_year, end_year, competition_ues_id, merge_confidence, lineage)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (ues_season_id) DO UPDATE SET
				start_year = EXCLUDED.start_year,
				end_year = EXCLUDED.end_year,
				competition_ues_id = EXCLUDED.competition_ues_id,
				merge_confidence = EXCLUDED.merge_confidence,
				lineage = EXCLUDED.lineage
		`, s.UESSeasonID, s.StartYear, s.EndYear, s.CompetitionUESID, s.MergeConfidence, lineageJSON)
		if err != nil {
			return fmt.Errorf("failed to upsert season %s: %w", s.UESSeasonID, err)
		}

		if err := insertLineageRows(ctx, tx, domain.EntitySeason, s.UESSeasonID, s.Lineage); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit season write transaction: %w", err)
	}
	return nil
}

// WritePlayers inserts a batch of canonical players and their source_lineage
// rows within a single transaction.
func (db *DB) WritePlayers(ctx context.Context, players []domain.UESPlayer) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin player write transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, p := range players {
		lineageJSON, err := json.Marshal(p.Lineage)
		if err != nil {
			return fmt.Errorf("failed to marshal player lineage: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO ues_players (
				ues_player_id, canonical_name, dob, birth_year, nationality,
				height_cm, foot, team_ues_id, merge_confidence, lineage
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (ues_player_id) DO UPDATE SET
				canonical_name = EXCLUDED.canonical_name,
				dob = EXCLUDED.dob,
				birth_year = EXCLUDED.birth_year,
				nationality = EXCLUDED.nationality,
				height_cm = EXCLUDED.height_cm,
				foot = EXCLUDED.foot,
				team_ues_id = EXCLUDED.team_ues_id,
				merge_confidence = EXCLUDED.merge_confidence,
				lineage = EXCLUDED.lineage
		`, p.UESPlayerID, p.CanonicalName, p.DOB, p.BirthYear, p.Nationality,
			p.HeightCM, p.Foot, p.TeamUESID, p.MergeConfidence, lineageJSON)
		if err != nil {
			return fmt.Errorf("failed to upsert player %s: %w", p.UESPlayerID, err)
		}

		if err := insertLineageRows(ctx, tx, domain.EntityPlayer, p.UESPlayerID, p.Lineage); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit player write transaction: %w", err)
	}
	return nil
}

// WriteMatches inserts a batch of canonical matches and their source_lineage
// rows within a single transaction.
func (db *DB) WriteMatches(ctx context.Context, matches []domain.UESMatch) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin match write transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, m := range matches {
		lineageJSON, err := json.Marshal(m.Lineage)
		if err != nil {
			return fmt.Errorf("failed to marshal match lineage: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO ues_matches (
				ues_match_id, home_team_ues_id, away_team_ues_id, season_ues_id,
				competition_ues_id, match_date, merge_confidence, lineage
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (ues_match_id) DO UPDATE SET
				home_team_ues_id = EXCLUDED.home_team_ues_id,
				away_team_ues_id = EXCLUDED.away_team_ues_id,
				season_ues_id = EXCLUDED.season_ues_id,
				competition_ues_id = EXCLUDED.competition_ues_id,
				match_date = EXCLUDED.match_date,
				merge_confidence = EXCLUDED.merge_confidence,
				lineage = EXCLUDED.lineage
		`, m.UESMatchID, m.HomeTeamUESID, m.AwayTeamUESID, m.SeasonUESID,
			m.CompetitionUESID, m.MatchDate, m.MergeConfidence, lineageJSON)
		if err != nil {
			return fmt.Errorf("failed to upsert match %s: %w", m.UESMatchID, err)
		}

		if err := insertLineageRows(ctx, tx, domain.EntityMatch, m.UESMatchID, m.Lineage); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit match write transaction: %w", err)
	}
	return nil
}
