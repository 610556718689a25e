// Package uesstore persists canonical UES entities and the run-scoped
// bookkeeping tables (lineage, reviews, metrics, anomalies, quality gate
// results) to the UES database. It is the only package in this module
// that writes anything.
package uesstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// DB bundles the UES connection pool.
type DB struct {
	Pool *pgxpool.Pool
}

// New opens the UES connection pool.
func New(ctx context.Context, dsn string) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = 15
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

	log.Info().Msg("connected to UES database")
	return &DB{Pool: pool}, nil
}

// Close closes the UES connection pool.
func (db *DB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// Health pings the UES connection pool.
func (db *DB) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := db.Pool.Ping(ctx); err != nil {
		return fmt.Errorf("ues database health check failed: %w", err)
	}
	return nil
}

// runScopedTables lists every table reset() truncates at the start of a run
// (§3 Lifecycle). Order matters only insofar as foreign keys require it;
// listed child-before-parent.
var runScopedTables = []string{
	"source_lineage",
	"llm_match_reviews",
	"pipeline_run_metrics",
	"anomaly_events",
	"anomaly_triage_reports",
	"quality_gate_results",
	"ues_matches",
	"ues_players",
	"ues_seasons",
	"ues_competitions",
	"ues_teams",
}

// Reset truncates every run-scoped table under a single transaction (§5
// Shared resources: "reset() wipes run-scoped tables under one
// transaction").
func (db *DB) Reset(ctx context.Context) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin reset transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, table := range runScopedTables {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s", table)); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit reset transaction: %w", err)
	}

	log.Info().Msg("UES store reset: all run-scoped tables truncated")
	return nil
}
