// Package anomaly flags statistically unusual pipeline_run_metrics rows by
// comparing the current run's rates against a rolling baseline of recent
// prior runs for the same entity type (§4.6).
package anomaly

import (
	"context"
	"math"

	"github.com/greenbier/ues-resolver/internal/domain"
)

const (
	lookback    = 8
	zThreshold  = 2.0
	highZThresh = 3.0
	minBaseline = 2
)

// MetricsHistory supplies the baseline window; implemented by
// internal/uesstore.DB in production and stubbed in tests.
type MetricsHistory interface {
	ReadMetricsHistory(ctx context.Context, entityType domain.EntityType, excludeRunID string, limit int) ([]domain.RunMetrics, error)
}

func rates(m domain.RunMetrics) map[string]float64 {
	total := float64(m.TotalCandidates)
	if total == 0 {
		total = 1
	}
	return map[string]float64{
		"gray_zone_rate":  float64(m.GrayZoneSent) / total,
		"llm_review_rate": float64(m.LLMReview) / total,
		"auto_match_rate": float64(m.AutoMatch) / total,
		"auto_reject_rate": float64(m.AutoReject) / total,
	}
}

func meanAndStdev(values []float64) (float64, float64) {
	n := float64(len(values))
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n

	if len(values) < 2 {
		return mean, 0
	}

	var sumSquares float64
	for _, v := range values {
		d := v - mean
		sumSquares += d * d
	}
	variance := sumSquares / (n - 1)
	return mean, math.Sqrt(variance)
}

// Detect computes the four rates on current, loads up to lookback prior
// runs for the same entity type, and returns the anomaly events whose
// z-score magnitude crosses zThreshold. Returns nil (no error) when fewer
// than minBaseline baseline rows exist.
func Detect(ctx context.Context, history MetricsHistory, current domain.RunMetrics) ([]domain.AnomalyEvent, error) {
	baseline, err := history.ReadMetricsHistory(ctx, current.EntityType, current.RunID, lookback)
	if err != nil {
		return nil, err
	}
	if len(baseline) < minBaseline {
		return nil, nil
	}

	currentRates := rates(current)

	baselineByMetric := make(map[string][]float64, len(currentRates))
	for _, m := range baseline {
		for name, v := range rates(m) {
			baselineByMetric[name] = append(baselineByMetric[name], v)
		}
	}

	var events []domain.AnomalyEvent
	for name, currentValue := range currentRates {
		mean, stdev := meanAndStdev(baselineByMetric[name])
		if stdev == 0 {
			continue
		}

		z := (currentValue - mean) / stdev
		if math.Abs(z) < zThreshold {
			continue
		}

		severity := domain.AnomalyMedium
		if math.Abs(z) >= highZThresh {
			severity = domain.AnomalyHigh
		}

		events = append(events, domain.AnomalyEvent{
			RunID:         current.RunID,
			EntityType:    current.EntityType,
			MetricName:    name,
			CurrentValue:  currentValue,
			BaselineValue: mean,
			ZScore:        z,
			Severity:      severity,
		})
	}

	return events, nil
}
