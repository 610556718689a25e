package anomaly

import (
	"context"
	"testing"

	"github.com/greenbier/ues-resolver/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHistory struct {
	rows []domain.RunMetrics
}

func (s stubHistory) ReadMetricsHistory(ctx context.Context, entityType domain.EntityType, excludeRunID string, limit int) ([]domain.RunMetrics, error) {
	return s.rows, nil
}

func TestDetect_ReturnsEmptyWithFewerThanTwoBaselineRows(t *testing.T) {
	history := stubHistory{rows: []domain.RunMetrics{
		{RunID: "r1", EntityType: domain.EntityTeam, TotalCandidates: 100, GrayZoneSent: 10},
	}}
	current := domain.RunMetrics{RunID: "current", EntityType: domain.EntityTeam, TotalCandidates: 100, GrayZoneSent: 10}

	events, err := Detect(context.Background(), history, current)

	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestDetect_FlagsHighSeverityForExtremeDeviation(t *testing.T) {
	history := stubHistory{rows: []domain.RunMetrics{
		{RunID: "r1", EntityType: domain.EntityTeam, TotalCandidates: 100, GrayZoneSent: 10},
		{RunID: "r2", EntityType: domain.EntityTeam, TotalCandidates: 100, GrayZoneSent: 9},
		{RunID: "r3", EntityType: domain.EntityTeam, TotalCandidates: 100, GrayZoneSent: 11},
		{RunID: "r4", EntityType: domain.EntityTeam, TotalCandidates: 100, GrayZoneSent: 10},
	}}
	current := domain.RunMetrics{RunID: "current", EntityType: domain.EntityTeam, TotalCandidates: 100, GrayZoneSent: 90}

	events, err := Detect(context.Background(), history, current)

	require.NoError(t, err)
	require.NotEmpty(t, events)

	var found bool
	for _, e := range events {
		if e.MetricName == "gray_zone_rate" {
			found = true
			assert.Equal(t, domain.AnomalyHigh, e.Severity)
		}
	}
	assert.True(t, found, "expected a gray_zone_rate anomaly event")
}

func TestDetect_NoEventsWhenWithinNormalRange(t *testing.T) {
	history := stubHistory{rows: []domain.RunMetrics{
		{RunID: "r1", EntityType: domain.EntityTeam, TotalCandidates: 100, GrayZoneSent: 10, AutoMatch: 80, AutoReject: 5, LLMReview: 2},
		{RunID: "r2", EntityType: domain.EntityTeam, TotalCandidates: 100, GrayZoneSent: 11, AutoMatch: 79, AutoReject: 6, LLMReview: 3},
		{RunID: "r3", EntityType: domain.EntityTeam, TotalCandidates: 100, GrayZoneSent: 9, AutoMatch: 81, AutoReject: 5, LLMReview: 2},
	}}
	current := domain.RunMetrics{RunID: "current", EntityType: domain.EntityTeam, TotalCandidates: 100, GrayZoneSent: 10, AutoMatch: 80, AutoReject: 5, LLMReview: 2}

	events, err := Detect(context.Background(), history, current)

	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestDetect_ExcludesCurrentRunFromBaselineViaHistoryContract(t *testing.T) {
	// ReadMetricsHistory is responsible for excluding the current run;
	// the detector trusts whatever it returns as the baseline set.
	history := stubHistory{rows: []domain.RunMetrics{
		{RunID: "r1", EntityType: domain.EntitySeason, TotalCandidates: 50, LLMReview: 5},
		{RunID: "r2", EntityType: domain.EntitySeason, TotalCandidates: 50, LLMReview: 6},
	}}
	current := domain.RunMetrics{RunID: "current", EntityType: domain.EntitySeason, TotalCandidates: 50, LLMReview: 5}

	_, err := Detect(context.Background(), history, current)
	require.NoError(t, err)
}
