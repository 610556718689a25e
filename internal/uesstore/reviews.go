package uesstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/greenbier/ues-resolver/internal/domain"
)

// WriteReviews inserts a batch of llm_match_reviews rows. created_at and
// updated_at are already stamped equal by the router at insertion time
// (§5 Ordering guarantees).
func (db *DB) WriteReviews(ctx context.Context, reviews []domain.LLMMatchReview) error {
	if len(reviews) == 0 {
		return nil
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin review write transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, r := range reviews {
		signalsJSON, err := json.Marshal(r.Signals)
		if err != nil {
			return fmt.Errorf("failed to marshal review signals: %w", err)
		}
		reasonsJSON, err := json.Marshal(r.Reasons)
		if err != nil {
			return fmt.Errorf("failed to marshal review reasons: %w", err)
		}
		riskFlagsJSON, err := json.Marshal(r.RiskFlags)
		if err != nil {
			return fmt.Errorf("failed to marshal review risk flags: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO llm_match_reviews (
				run_id, entity_type, left_source, left_id, right_source, right_id,
				matcher_score, signals, llm_decision, llm_confidence, reasons,
				risk_flags, status, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		`, r.RunID, r.EntityType, r.LeftSource, r.LeftID, r.RightSource, r.RightID,
			r.MatcherScore, signalsJSON, r.LLMDecision, r.LLMConfidence, reasonsJSON,
			riskFlagsJSON, r.Status, r.CreatedAt, r.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert review for run %s: %w", r.RunID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit review write transaction: %w", err)
	}
	return nil
}

// UpdateReviewStatus applies a human disposition to a pending review,
// bumping updated_at (§5 Ordering guarantees).
func (db *DB) UpdateReviewStatus(ctx context.Context, runID string, entityType domain.EntityType, leftID, rightID int, status domain.ReviewStatus) error {
	result, err := db.Pool.Exec(ctx, `
		UPDATE llm_match_reviews SET status = $1, updated_at = NOW()
		WHERE run_id = $2 AND entity_type = $3 AND left_id = $4 AND right_id = $5
	`, status, runID, entityType, leftID, rightID)
	if err != nil {
		return fmt.Errorf("failed to update review status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("review not found: run_id=%s entity_type=%s left_id=%d right_id=%d", runID, entityType, leftID, rightID)
	}
	return nil
}
