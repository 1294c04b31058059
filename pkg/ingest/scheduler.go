package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the ingestion pipeline on a cron schedule.
//
// Common expressions:
//   - "0 3 * * *"    - daily at 3 AM
//   - "0 */6 * * *"  - every 6 hours
type Scheduler struct {
	pipeline *Pipeline
	schedule string
	cron     *cron.Cron
	mu       sync.Mutex
	logger   *slog.Logger
	running  bool
}

// NewScheduler creates a scheduler for the given cron expression.
func NewScheduler(pipeline *Pipeline, schedule string) *Scheduler {
	return &Scheduler{
		pipeline: pipeline,
		schedule: schedule,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "ingest.scheduler"),
	}
}

// Start begins scheduled ingestion. An empty schedule is a no-op. The
// scheduler stops itself when the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("ingestion schedule not configured, skipping scheduler")
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	if _, err := s.cron.AddFunc(s.schedule, func() {
		s.runIngestion(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule ingestion: %w", err)
	}

	s.cron.Start()
	s.running = true
	s.logger.Info("ingestion scheduler started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop halts the scheduler. Jobs already running finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.cron.Stop()
	s.running = false
	s.logger.Info("ingestion scheduler stopped")
}

func (s *Scheduler) runIngestion(ctx context.Context) {
	s.logger.Info("starting scheduled ingestion")
	stats, err := s.pipeline.Run(ctx)
	if err != nil {
		s.logger.Error("scheduled ingestion failed", "error", err)
		return
	}
	s.logger.Info("scheduled ingestion completed",
		"files", stats.Files,
		"chunks", stats.Chunks,
		"errors", stats.Errors,
	)
}
