package uesstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/greenbier/ues-resolver/internal/domain"
)

// WriteAnomalyEvents inserts a batch of anomaly_events rows (§4.6).
func (db *DB) WriteAnomalyEvents(ctx context.Context, events []domain.AnomalyEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin anomaly event write transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, e := range events {
		_, err := tx.Exec(ctx, `
			INSERT INTO anomaly_events (
				run_id, entity_type, metric_name, current_value, baseline_value, z_score, severity
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, e.RunID, e.EntityType, e.MetricName, e.CurrentValue, e.BaselineValue, e.ZScore, e.Severity)
		if err != nil {
			return fmt.Errorf("failed to insert anomaly event for run %s: %w", e.RunID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit anomaly event write transaction: %w", err)
	}
	return nil
}

// WriteAnomalyTriageReport inserts the JSON triage report produced when
// AUTO_TRIAGE_DURING_MAPPING is enabled (§3, §4.8).
func (db *DB) WriteAnomalyTriageReport(ctx context.Context, report domain.AnomalyTriageReport) error {
	reportJSON, err := json.Marshal(report.ReportJSON)
	if err != nil {
		return fmt.Errorf("failed to marshal anomaly triage report: %w", err)
	}

	_, err = db.Pool.Exec(ctx, `
		INSERT INTO anomaly_triage_reports (run_id, entity_type, report)
		VALUES ($1, $2, $3)
	`, report.RunID, report.EntityType, reportJSON)
	if err != nil {
		return fmt.Errorf("failed to insert anomaly triage report for run %s: %w", report.RunID, err)
	}
	return nil
}

// CountHighSeverityAnomalies counts HIGH severity anomaly_events for a run,
// used by the quality gate evaluator's fail_on_high_severity_anomalies rule
// (§4.7).
func (db *DB) CountHighSeverityAnomalies(ctx context.Context, runID string) (int, error) {
	var count int
	err := db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM anomaly_events WHERE run_id = $1 AND severity = $2
	`, runID, domain.AnomalyHigh).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count high severity anomalies for run %s: %w", runID, err)
	}
	return count, nil
}
