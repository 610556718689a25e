package uesstore

import (
	"context"
	"fmt"

	"github.com/greenbier/ues-resolver/internal/domain"
)

// WriteMetrics upserts one pipeline_run_metrics row, keyed by (run_id,
// entity_type) (§3).
func (db *DB) WriteMetrics(ctx context.Context, m domain.RunMetrics) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO pipeline_run_metrics (
			run_id, entity_type, total_candidates, auto_match, auto_reject,
			gray_zone_sent, llm_match, llm_no_match, llm_review, llm_call,
			llm_error, llm_invalid_json_retry, llm_avg_latency_ms,
			llm_fallback_mode, llm_disabled_reason, started_at, finished_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (run_id, entity_type) DO UPDATE SET
			total_candidates = EXCLUDED.total_candidates,
			auto_match = EXCLUDED.auto_match,
			auto_reject = EXCLUDED.auto_reject,
			gray_zone_sent = EXCLUDED.gray_zone_sent,
			llm_match = EXCLUDED.llm_match,
			llm_no_match = EXCLUDED.llm_no_match,
			llm_review = EXCLUDED.llm_review,
			llm_call = EXCLUDED.llm_call,
			llm_error = EXCLUDED.llm_error,
			llm_invalid_json_retry = EXCLUDED.llm_invalid_json_retry,
			llm_avg_latency_ms = EXCLUDED.llm_avg_latency_ms,
			llm_fallback_mode = EXCLUDED.llm_fallback_mode,
			llm_disabled_reason = EXCLUDED.llm_disabled_reason,
			finished_at = EXCLUDED.finished_at
	`, m.RunID, m.EntityType, m.TotalCandidates, m.AutoMatch, m.AutoReject,
		m.GrayZoneSent, m.LLMMatch, m.LLMNoMatch, m.LLMReview, m.LLMCall,
		m.LLMError, m.LLMInvalidJSONRetry, m.LLMAvgLatencyMs,
		m.LLMFallbackMode, m.LLMDisabledReason, m.StartedAt, m.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert run metrics for run %s entity %s: %w", m.RunID, m.EntityType, err)
	}
	return nil
}

// ReadMetricsHistory returns the most recent `limit` pipeline_run_metrics
// rows for an entity type, most recent first, used as the anomaly
// detector's baseline window (§4.6).
func (db *DB) ReadMetricsHistory(ctx context.Context, entityType domain.EntityType, excludeRunID string, limit int) ([]domain.RunMetrics, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT run_id, entity_type, total_candidates, auto_match, auto_reject,
		       gray_zone_sent, llm_match, llm_no_match, llm_review, llm_call,
		       llm_error, llm_invalid_json_retry, llm_avg_latency_ms,
		       llm_fallback_mode, llm_disabled_reason, started_at, finished_at
		FROM pipeline_run_metrics
		WHERE entity_type = $1 AND run_id != $2
		ORDER BY started_at DESC
		LIMIT $3
	`, entityType, excludeRunID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read run metrics history: %w", err)
	}
	defer rows.Close()

	var history []domain.RunMetrics
	for rows.Next() {
		var m domain.RunMetrics
		if err := rows.Scan(
			&m.RunID, &m.EntityType, &m.TotalCandidates, &m.AutoMatch, &m.AutoReject,
			&m.GrayZoneSent, &m.LLMMatch, &m.LLMNoMatch, &m.LLMReview, &m.LLMCall,
			&m.LLMError, &m.LLMInvalidJSONRetry, &m.LLMAvgLatencyMs,
			&m.LLMFallbackMode, &m.LLMDisabledReason, &m.StartedAt, &m.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run metrics row: %w", err)
		}
		history = append(history, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run metrics history: %w", err)
	}
	return history, nil
}
