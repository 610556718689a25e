package obsmetrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/greenbier/ues-resolver/internal/domain"
)

func TestRecordStageMetrics_IncrementsDecisionCounters(t *testing.T) {
	m := domain.RunMetrics{
		EntityType:      domain.EntityTeam,
		TotalCandidates: 10,
		AutoMatch:       6,
		AutoReject:      2,
		GrayZoneSent:    2,
		LLMCall:         2,
		LLMError:        1,
		LLMAvgLatencyMs: 500,
	}

	RecordStageMetrics(m)

	assert.Equal(t, float64(6), testutil.ToFloat64(StageDecisionsTotal.WithLabelValues("team", "auto_approve")))
	assert.Equal(t, float64(2), testutil.ToFloat64(StageDecisionsTotal.WithLabelValues("team", "auto_reject")))
	assert.Equal(t, float64(2), testutil.ToFloat64(StageDecisionsTotal.WithLabelValues("team", "gray_zone")))
	assert.Equal(t, float64(1), testutil.ToFloat64(LLMCallsTotal.WithLabelValues("team", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(LLMCallsTotal.WithLabelValues("team", "error")))
}

func TestRecordStageMetrics_SkipsLLMDisabledLabelWhenReasonEmpty(t *testing.T) {
	before := testutil.CollectAndCount(LLMDisabledTotal)

	RecordStageMetrics(domain.RunMetrics{EntityType: domain.EntityPlayer, TotalCandidates: 5})

	assert.Equal(t, before, testutil.CollectAndCount(LLMDisabledTotal))
}

func TestRecordAnomalyEvents_IncrementsPerEvent(t *testing.T) {
	events := []domain.AnomalyEvent{
		{EntityType: domain.EntityMatch, MetricName: "gray_zone_rate", Severity: domain.AnomalyHigh},
		{EntityType: domain.EntityMatch, MetricName: "gray_zone_rate", Severity: domain.AnomalyHigh},
	}

	RecordAnomalyEvents(events)

	assert.Equal(t, float64(2), testutil.ToFloat64(AnomalyEventsTotal.WithLabelValues("match", "gray_zone_rate", "HIGH")))
}

func TestRecordQualityGateResult_SetsGaugeAndFailureCounters(t *testing.T) {
	RecordQualityGateResult(domain.QualityGateResult{
		RunID:       "run-obsmetrics-1",
		Status:      domain.GateFail,
		FailedGates: []string{"max_gray_zone_rate"},
	})

	assert.Equal(t, float64(0), testutil.ToFloat64(QualityGateStatus.WithLabelValues("run-obsmetrics-1")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(QualityGateFailuresTotal.WithLabelValues("max_gray_zone_rate")), float64(1))
}

func TestRecordQualityGateResult_PassSetsGaugeToOne(t *testing.T) {
	RecordQualityGateResult(domain.QualityGateResult{RunID: "run-obsmetrics-2", Status: domain.GatePass})

	assert.Equal(t, float64(1), testutil.ToFloat64(QualityGateStatus.WithLabelValues("run-obsmetrics-2")))
}

func TestSetPendingReviews_UpdatesGauge(t *testing.T) {
	SetPendingReviews(42)

	assert.Equal(t, float64(42), testutil.ToFloat64(PendingReviewsGauge))
}
