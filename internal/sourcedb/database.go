// Package sourcedb provides read-only access to the two source systems
// (ALPHA and BETA) the resolution pipeline reconciles. Each source has its
// own connection pool and its own set of typed repositories; nothing in
// this package ever writes to a source database.
package sourcedb

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// AlphaDB bundles the ALPHA connection pool and its read-only repositories.
type AlphaDB struct {
	Pool *pgxpool.Pool

	Teams        *AlphaTeamRepository
	Competitions *AlphaCompetitionRepository
	Seasons      *AlphaSeasonRepository
	Players      *AlphaPlayerRepository
	Matches      *AlphaMatchRepository
}

// BetaDB bundles the BETA connection pool and its read-only repositories.
type BetaDB struct {
	Pool *pgxpool.Pool

	Teams        *BetaTeamRepository
	Competitions *BetaCompetitionRepository
	Seasons      *BetaSeasonRepository
	Players      *BetaPlayerRepository
	Matches      *BetaMatchRepository
}

func newPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// NewAlphaDB opens the ALPHA connection pool and wires its repositories.
func NewAlphaDB(ctx context.Context, dsn string) (*AlphaDB, error) {
	pool, err := newPool(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("alpha: %w", err)
	}
	log.Info().Msg("connected to ALPHA source database")

	db := &AlphaDB{Pool: pool}
	db.Teams = &AlphaTeamRepository{pool: pool}
	db.Competitions = &AlphaCompetitionRepository{pool: pool}
	db.Seasons = &AlphaSeasonRepository{pool: pool}
	db.Players = &AlphaPlayerRepository{pool: pool}
	db.Matches = &AlphaMatchRepository{pool: pool}
	return db, nil
}

// NewBetaDB opens the BETA connection pool and wires its repositories.
func NewBetaDB(ctx context.Context, dsn string) (*BetaDB, error) {
	pool, err := newPool(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("beta: %w", err)
	}
	log.Info().Msg("connected to BETA source database")

	db := &BetaDB{Pool: pool}
	db.Teams = &BetaTeamRepository{pool: pool}
	db.Competitions = &BetaCompetitionRepository{pool: pool}
	db.Seasons = &BetaSeasonRepository{pool: pool}
	db.Players = &BetaPlayerRepository{pool: pool}
	db.Matches = &BetaMatchRepository{pool: pool}
	return db, nil
}

// Close closes the ALPHA connection pool.
func (db *AlphaDB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// Close closes the BETA connection pool.
func (db *BetaDB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// Health pings the ALPHA connection pool.
func (db *AlphaDB) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := db.Pool.Ping(ctx); err != nil {
		return fmt.Errorf("alpha database health check failed: %w", err)
	}
	return nil
}

// Health pings the BETA connection pool.
func (db *BetaDB) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := db.Pool.Ping(ctx); err != nil {
		return fmt.Errorf("beta database health check failed: %w", err)
	}
	return nil
}
