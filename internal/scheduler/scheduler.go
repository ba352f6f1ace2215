package scheduler

import (
	"context"
	"fmt"
	"sync"

	"PriceChart/internal/collector"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler refreshes stored price history on a cron schedule.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Symbols   []string
	Ctx       context.Context

	mu      sync.Mutex // serializes refresh runs
	lastErr error
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, symbols []string) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Symbols:   symbols,
		Ctx:       ctx,
	}
}

// Register adds the refresh task.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, func() { _ = s.refreshTask() }); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Int("symbols", len(s.Symbols)).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunNow executes the refresh task immediately (for RUN_ON_START) and
// returns its error.
func (s *Scheduler) RunNow() error {
	return s.refreshTask()
}

// LastError reports the outcome of the most recent refresh.
func (s *Scheduler) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Scheduler) refreshTask() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Info().Strs("symbols", s.Symbols).Msg("running refresh task")
	err := s.Collector.CollectAll(s.Ctx, s.Symbols)
	s.lastErr = err
	if err != nil {
		log.Error().Err(err).Msg("refresh finished with errors")
		return err
	}
	log.Info().Msg("refresh finished")
	return nil
}
