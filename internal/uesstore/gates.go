package uesstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/greenbier/ues-resolver/internal/domain"
)

// WriteQualityGateResult inserts the single quality_gate_results row
// persisted per run (§3, §4.7).
func (db *DB) WriteQualityGateResult(ctx context.Context, r domain.QualityGateResult) error {
	failedGatesJSON, err := json.Marshal(r.FailedGates)
	if err != nil {
		return fmt.Errorf("failed to marshal failed gates: %w", err)
	}
	gateValuesJSON, err := json.Marshal(r.GateValues)
	if err != nil {
		return fmt.Errorf("failed to marshal gate values: %w", err)
	}

	_, err = db.Pool.Exec(ctx, `
		INSERT INTO quality_gate_results (run_id, status, failed_gates, gate_values)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (run_id) DO UPDATE SET
			status = EXCLUDED.status,
			failed_gates = EXCLUDED.failed_gates,
			gate_values = EXCLUDED.gate_values
	`, r.RunID, r.Status, failedGatesJSON, gateValuesJSON)
	if err != nil {
		return fmt.Errorf("failed to upsert quality gate result for run %s: %w", r.RunID, err)
	}
	return nil
}

// ReadQualityGateResult fetches the quality_gate_results row for one run.
func (db *DB) ReadQualityGateResult(ctx context.Context, runID string) (domain.QualityGateResult, error) {
	return scanQualityGateRow(db.Pool.QueryRow(ctx, `
		SELECT run_id, status, failed_gates, gate_values
		FROM quality_gate_results
		WHERE run_id = $1
	`, runID))
}

// ReadLatestQualityGateResult fetches the most recently recorded run's
// quality gate verdict.
func (db *DB) ReadLatestQualityGateResult(ctx context.Context) (domain.QualityGateResult, error) {
	return scanQualityGateRow(db.Pool.QueryRow(ctx, `
		SELECT run_id, status, failed_gates, gate_values
		FROM quality_gate_results
		ORDER BY created_at DESC
		LIMIT 1
	`))
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanQualityGateRow(row rowScanner) (domain.QualityGateResult, error) {
	var r domain.QualityGateResult
	var failedGatesJSON, gateValuesJSON []byte

	if err := row.Scan(&r.RunID, &r.Status, &failedGatesJSON, &gateValuesJSON); err != nil {
		if err == pgx.ErrNoRows {
			return domain.QualityGateResult{}, fmt.Errorf("no quality gate result found: %w", err)
		}
		return domain.QualityGateResult{}, fmt.Errorf("failed to scan quality gate result: %w", err)
	}

	if err := json.Unmarshal(failedGatesJSON, &r.FailedGates); err != nil {
		return domain.QualityGateResult{}, fmt.Errorf("failed to unmarshal failed gates: %w", err)
	}
	if err := json.Unmarshal(gateValuesJSON, &r.GateValues); err != nil {
		return domain.QualityGateResult{}, fmt.Errorf("failed to unmarshal gate values: %w", err)
	}

	return r, nil
}
