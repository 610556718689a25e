// Package orchestrator sequences the five-stage resolution pipeline: match,
// route, merge, persist, detect anomalies, for teams, competitions,
// seasons, players, and matches in that order, then evaluates quality
// gates once every stage has run (§4.8).
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/greenbier/ues-resolver/internal/anomaly"
	"github.com/greenbier/ues-resolver/internal/config"
	"github.com/greenbier/ues-resolver/internal/domain"
	"github.com/greenbier/ues-resolver/internal/gates"
	"github.com/greenbier/ues-resolver/internal/llmvalidate"
	"github.com/greenbier/ues-resolver/internal/matchers"
	"github.com/greenbier/ues-resolver/internal/merge"
	"github.com/greenbier/ues-resolver/internal/obsmetrics"
	"github.com/greenbier/ues-resolver/internal/router"
	"github.com/greenbier/ues-resolver/internal/sourcedb"
	"github.com/greenbier/ues-resolver/internal/uesstore"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Orchestrator wires the source databases, the UES store, and the LLM
// validator construction together and runs the staged pipeline.
type Orchestrator struct {
	cfg    *config.Bundle
	alpha  *sourcedb.AlphaDB
	beta   *sourcedb.BetaDB
	ues    *uesstore.DB
	redis  *redis.Client
	apiKey string
}

// New builds an Orchestrator. redisClient may be nil — the circuit breaker
// degrades to an in-process window per §4.3/§5 when it is.
func New(cfg *config.Bundle, alpha *sourcedb.AlphaDB, beta *sourcedb.BetaDB, ues *uesstore.DB, redisClient *redis.Client, llmAPIKey string) *Orchestrator {
	return &Orchestrator{cfg: cfg, alpha: alpha, beta: beta, ues: ues, redis: redisClient, apiKey: llmAPIKey}
}

// stageIDMaps carries the alpha-id -> beta-id maps and the alpha-id /
// beta-id -> UES-id maps produced by one completed stage, consumed by the
// stages that follow it.
type stageIDMaps struct {
	alphaToBetaTeam map[int]int

	alphaCompetitionToBeta  map[int]int
	alphaCompetitionToUES   map[int]string
	betaCompetitionToUES    map[int]string

	alphaSeasonToBeta map[int]int
	alphaSeasonToUES  map[int]string

	alphaTeamToUES map[int]string
}

// Run executes the five stages in order and returns the run id. A stage
// failure (matcher, router, merger, or persistence error) is fatal and
// aborts the run; partial writes up to that stage persist (§5
// Cancellation & timeout).
func (o *Orchestrator) Run(ctx context.Context) (string, error) {
	runID := uuid.NewString()
	log.Info().Str("run_id", runID).Msg("starting resolution run")
	runStart := time.Now()

	if err := o.ues.Reset(ctx); err != nil {
		obsmetrics.RecordRunCompletion("error", time.Since(runStart).Seconds())
		return "", fmt.Errorf("failed to reset run-scoped tables: %w", err)
	}

	ids := stageIDMaps{}
	var allMetrics []domain.RunMetrics
	var highSeverityAnomalies int

	alphaTeams, err := o.alpha.Teams.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list alpha teams: %w", err)
	}
	betaTeams, err := o.beta.Teams.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list beta teams: %w", err)
	}
	teamCandidates := matchers.Teams(alphaTeams, betaTeams, o.cfg.MappingRules.TeamNameAliases, o.cfg.Thresholds.TeamSimThreshold)
	teamResult, err := o.runStage(ctx, runID, domain.EntityTeam, teamCandidates)
	if err != nil {
		return "", err
	}
	allMetrics = append(allMetrics, teamResult.metrics)
	highSeverityAnomalies += teamResult.highSeverityCount
	teamEntities, alphaTeamToUES, betaTeamToUES := merge.Teams(teamResult.approved)
	if err := o.ues.WriteTeams(ctx, teamEntities); err != nil {
		return "", fmt.Errorf("failed to write teams: %w", err)
	}
	ids.alphaToBetaTeam = buildAlphaToBetaMap(teamResult.approved)
	ids.alphaTeamToUES = alphaTeamToUES
	_ = betaTeamToUES

	alphaCompetitions, err := o.alpha.Competitions.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list alpha competitions: %w", err)
	}
	betaCompetitions, err := o.beta.Competitions.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list beta competitions: %w", err)
	}
	competitionCandidates := matchers.Competitions(alphaCompetitions, betaCompetitions, o.cfg.Normalization.CompetitionSponsors, &o.cfg.Normalization, o.cfg.Thresholds.CompSimThreshold)
	competitionResult, err := o.runStage(ctx, runID, domain.EntityCompetition, competitionCandidates)
	if err != nil {
		return "", err
	}
	allMetrics = append(allMetrics, competitionResult.metrics)
	highSeverityAnomalies += competitionResult.highSeverityCount
	competitionEntities, alphaCompetitionToUES, betaCompetitionToUES := merge.Competitions(competitionResult.approved)
	if err := o.ues.WriteCompetitions(ctx, competitionEntities); err != nil {
		return "", fmt.Errorf("failed to write competitions: %w", err)
	}
	ids.alphaCompetitionToBeta = buildAlphaToBetaMap(competitionResult.approved)
	ids.alphaCompetitionToUES = alphaCompetitionToUES
	ids.betaCompetitionToUES = betaCompetitionToUES

	alphaSeasons, err := o.alpha.Seasons.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list alpha seasons: %w", err)
	}
	betaSeasons, err := o.beta.Seasons.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list beta seasons: %w", err)
	}
	seasonCandidates := matchers.Seasons(alphaSeasons, betaSeasons, ids.alphaCompetitionToBeta, o.cfg.Thresholds.ConfidenceReview)
	seasonResult, err := o.runStage(ctx, runID, domain.EntitySeason, seasonCandidates)
	if err != nil {
		return "", err
	}
	allMetrics = append(allMetrics, seasonResult.metrics)
	highSeverityAnomalies += seasonResult.highSeverityCount
	seasonEntities, alphaSeasonToUES, betaSeasonToUES := merge.Seasons(seasonResult.approved, ids.alphaCompetitionToUES, ids.betaCompetitionToUES)
	if err := o.ues.WriteSeasons(ctx, seasonEntities); err != nil {
		return "", fmt.Errorf("failed to write seasons: %w", err)
	}
	ids.alphaSeasonToBeta = buildAlphaToBetaMap(seasonResult.approved)
	ids.alphaSeasonToUES = alphaSeasonToUES
	_ = betaSeasonToUES

	alphaPlayers, err := o.alpha.Players.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list alpha players: %w", err)
	}
	betaPlayers, err := o.beta.Players.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list beta players: %w", err)
	}
	playerCandidates := matchers.Players(alphaPlayers, betaPlayers, betaTeams, ids.alphaToBetaTeam, o.cfg.Thresholds.DOBPartialScore, o.cfg.Thresholds.ConfidenceAutopass)
	playerResult, err := o.runStage(ctx, runID, domain.EntityPlayer, playerCandidates)
	if err != nil {
		return "", err
	}
	allMetrics = append(allMetrics, playerResult.metrics)
	highSeverityAnomalies += playerResult.highSeverityCount
	playerEntities, _, _ := merge.Players(playerResult.approved, ids.alphaTeamToUES, &o.cfg.Normalization)
	if err := o.ues.WritePlayers(ctx, playerEntities); err != nil {
		return "", fmt.Errorf("failed to write players: %w", err)
	}

	alphaMatches, err := o.alpha.Matches.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list alpha matches: %w", err)
	}
	betaMatches, err := o.beta.Matches.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list beta matches: %w", err)
	}
	matchCandidates := matchers.Matches(alphaMatches, betaMatches, ids.alphaCompetitionToBeta, ids.alphaSeasonToBeta, ids.alphaToBetaTeam, o.cfg.Thresholds.ConfidenceReview)
	matchResult, err := o.runStage(ctx, runID, domain.EntityMatch, matchCandidates)
	if err != nil {
		return "", err
	}
	allMetrics = append(allMetrics, matchResult.metrics)
	highSeverityAnomalies += matchResult.highSeverityCount
	matchEntities, _, _ := merge.Matches(matchResult.approved, ids.alphaTeamToUES, ids.alphaSeasonToUES, ids.alphaCompetitionToUES)
	if err := o.ues.WriteMatches(ctx, matchEntities); err != nil {
		return "", fmt.Errorf("failed to write matches: %w", err)
	}

	gateResult := gates.Evaluate(runID, allMetrics, highSeverityAnomalies, o.cfg.QualityGates)
	if err := o.ues.WriteQualityGateResult(ctx, gateResult); err != nil {
		obsmetrics.RecordRunCompletion("error", time.Since(runStart).Seconds())
		return "", fmt.Errorf("failed to write quality gate result: %w", err)
	}
	obsmetrics.RecordQualityGateResult(gateResult)

	status := "passed"
	if gateResult.Status == domain.GateFail {
		status = "gate_failed"
	}
	obsmetrics.RecordRunCompletion(status, time.Since(runStart).Seconds())

	log.Info().Str("run_id", runID).Str("gate_status", string(gateResult.Status)).Msg("resolution run complete")
	return runID, nil
}

type stageOutcome struct {
	approved          []domain.Candidate
	metrics           domain.RunMetrics
	highSeverityCount int
}

// runStage routes one entity type's candidates, persists reviews and
// metrics, and runs anomaly detection over the freshly written metrics row
// (§4.8, §5 "Anomaly detection reads the current metrics row it just
// wrote").
func (o *Orchestrator) runStage(ctx context.Context, runID string, entityType domain.EntityType, candidates []domain.Candidate) (stageOutcome, error) {
	validator := o.buildValidator(runID, entityType)
	band := o.cfg.LLMValidation.BandFor(string(entityType))

	result := router.Route(ctx, runID, entityType, candidates, band, o.cfg.LLMValidation.FallbackModeWhenUnhealthy, validator)

	if err := o.ues.WriteReviews(ctx, result.Reviews); err != nil {
		return stageOutcome{}, fmt.Errorf("failed to write reviews for %s: %w", entityType, err)
	}
	if err := o.ues.WriteMetrics(ctx, result.Metrics); err != nil {
		return stageOutcome{}, fmt.Errorf("failed to write metrics for %s: %w", entityType, err)
	}
	obsmetrics.RecordStageMetrics(result.Metrics)
	if result.Metrics.LLMDisabledReason == string(llmvalidate.DisabledCircuit) {
		obsmetrics.RecordCircuitBreakerTrip(entityType)
	}

	events, err := anomaly.Detect(ctx, o.ues, result.Metrics)
	if err != nil {
		log.Warn().Err(err).Str("entity_type", string(entityType)).Msg("anomaly detection failed, continuing run")
	} else if len(events) > 0 {
		if err := o.ues.WriteAnomalyEvents(ctx, events); err != nil {
			log.Warn().Err(err).Str("entity_type", string(entityType)).Msg("failed to persist anomaly events, continuing run")
		}
		obsmetrics.RecordAnomalyEvents(events)
	}

	if o.cfg.Env.AutoTriageDuringMapping {
		report := buildTriageReport(runID, entityType, result.Metrics, events)
		if err := o.ues.WriteAnomalyTriageReport(ctx, report); err != nil {
			log.Warn().Err(err).Str("entity_type", string(entityType)).Msg("failed to persist triage report, continuing run")
		}
	}

	high := 0
	for _, e := range events {
		if e.Severity == domain.AnomalyHigh {
			high++
		}
	}

	return stageOutcome{approved: result.Approved, metrics: result.Metrics, highSeverityCount: high}, nil
}

// buildValidator constructs a fresh circuit breaker and call budget scoped
// to this (run_id, entity_type) stage — neither persists past the stage it
// was built for (§5).
func (o *Orchestrator) buildValidator(runID string, entityType domain.EntityType) *llmvalidate.Validator {
	cbCfg := o.cfg.LLMValidation.CircuitBreaker
	redisKey := fmt.Sprintf("ues-resolver:circuit:%s:%s", runID, entityType)
	breaker := llmvalidate.NewCircuitBreaker(o.redis, redisKey, cbCfg.Window, cbCfg.MaxFailRate, cbCfg.MaxInvalidJSONRate)
	budget := llmvalidate.NewCallBudget(o.cfg.LLMValidation.MaxCallsPerEntityTypePerRun)

	enabled := o.cfg.LLMValidation.MappingEnabledOrDefault() && o.apiKey != "" && o.cfg.LLMValidation.RequestURL != ""
	timeout := time.Duration(o.cfg.LLMValidation.TimeoutSeconds) * time.Second
	client := llmvalidate.NewClient(o.cfg.LLMValidation.RequestURL, o.apiKey, timeout)

	return llmvalidate.NewValidator(client, breaker, budget, enabled, o.cfg.LLMValidation.FallbackModeWhenUnhealthy)
}

func buildAlphaToBetaMap(approved []domain.Candidate) map[int]int {
	m := make(map[int]int, len(approved))
	for _, c := range approved {
		m[c.AlphaID] = c.BetaID
	}
	return m
}

func buildTriageReport(runID string, entityType domain.EntityType, metrics domain.RunMetrics, events []domain.AnomalyEvent) domain.AnomalyTriageReport {
	anomalySummaries := make([]map[string]interface{}, 0, len(events))
	for _, e := range events {
		anomalySummaries = append(anomalySummaries, map[string]interface{}{
			"metric":         e.MetricName,
			"z_score":        e.ZScore,
			"severity":       e.Severity,
			"current_value":  e.CurrentValue,
			"baseline_value": e.BaselineValue,
		})
	}

	return domain.AnomalyTriageReport{
		RunID:      runID,
		EntityType: entityType,
		ReportJSON: map[string]interface{}{
			"total_candidates": metrics.TotalCandidates,
			"gray_zone_sent":   metrics.GrayZoneSent,
			"llm_call_count":   metrics.LLMCall,
			"anomalies":        anomalySummaries,
		},
	}
}
