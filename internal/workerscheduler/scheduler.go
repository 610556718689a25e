// Package workerscheduler runs the reconciliation orchestrator on a cron
// schedule, the way the ingestion worker it is adapted from runs its
// nightly refresh job.
package workerscheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Runner is the single operation a scheduled tick performs: execute one
// full resolution run and return its run id.
type Runner interface {
	Run(ctx context.Context) (string, error)
}

// Scheduler wraps a cron.Cron that fires the orchestrator on the configured
// schedule, plus a mutex that skips an overlapping tick rather than running
// two resolution passes concurrently.
type Scheduler struct {
	runner   Runner
	cron     *cron.Cron
	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
}

// New builds a Scheduler for the given cron expression.
func New(runner Runner) *Scheduler {
	return &Scheduler{
		runner:   runner,
		cron:     cron.New(),
		stopChan: make(chan struct{}),
	}
}

// Start schedules the recurring run and starts the cron loop.
func (s *Scheduler) Start(ctx context.Context, schedule string) error {
	if _, err := s.cron.AddFunc(schedule, func() {
		s.runOnce(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule resolution run: %w", err)
	}

	s.cron.Start()
	log.Info().Str("schedule", schedule).Msg("resolution run scheduled")
	return nil
}

// Stop stops the cron loop, waiting for any in-flight run's cron entry to
// finish dispatching (it does not cancel a run already in progress).
func (s *Scheduler) Stop() {
	log.Info().Msg("stopping scheduler")
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
	close(s.stopChan)
}

// RunNow triggers a resolution run outside the cron schedule, skipping if a
// scheduled or manual run is already in progress.
func (s *Scheduler) RunNow(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return "", fmt.Errorf("a resolution run is already in progress")
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	return s.runner.Run(ctx)
}

func (s *Scheduler) runOnce(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		log.Warn().Msg("skipping scheduled run: previous run still in progress")
		return
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	start := time.Now()
	runID, err := s.runner.Run(ctx)
	if err != nil {
		log.Error().Err(err).Dur("duration", time.Since(start)).Msg("scheduled resolution run failed")
		return
	}
	log.Info().Str("run_id", runID).Dur("duration", time.Since(start)).Msg("scheduled resolution run complete")
}
