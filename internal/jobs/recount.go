// Package jobs runs periodic maintenance against the board store.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/thenoetrevino/flowboard/internal/metrics"
)

// recountTimeout bounds a single recount run
const recountTimeout = 30 * time.Second

// Recounter rewrites drifted project task counters and reports how many it fixed
type Recounter interface {
	RecountTasks(ctx context.Context) (int, error)
}

// Scheduler owns the gocron scheduler and the recount job registered on it
type Scheduler struct {
	scheduler gocron.Scheduler
	recounter Recounter
	metrics   *metrics.Metrics
	logger    *slog.Logger
	interval  time.Duration
}

// NewScheduler creates a scheduler that runs the recount every interval.
// A non-positive interval creates a scheduler with no jobs.
func NewScheduler(r Recounter, m *metrics.Metrics, logger *slog.Logger, interval time.Duration) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}

	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	s := &Scheduler{
		scheduler: scheduler,
		recounter: r,
		metrics:   m,
		logger:    logger,
		interval:  interval,
	}

	if interval > 0 {
		_, err := scheduler.NewJob(
			gocron.DurationJob(interval),
			gocron.NewTask(s.runScheduled),
			gocron.WithName("recount-tasks"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			_ = scheduler.Shutdown()
			return nil, fmt.Errorf("failed to register recount job: %w", err)
		}
	}

	return s, nil
}

// Start begins running scheduled jobs in the background
func (s *Scheduler) Start() {
	if s.interval > 0 {
		s.logger.Info("maintenance scheduler started", "recount_interval", s.interval.String())
	}
	s.scheduler.Start()
}

// Stop waits for running jobs and shuts the scheduler down
func (s *Scheduler) Stop() error {
	return s.scheduler.Shutdown()
}

// RunOnce recounts every project's tasks and records the repairs
func (s *Scheduler) RunOnce(ctx context.Context) (int, error) {
	n, err := s.recounter.RecountTasks(ctx)
	if err != nil {
		return 0, err
	}
	if s.metrics != nil {
		s.metrics.AddCounterRepairs(n)
	}
	return n, nil
}

func (s *Scheduler) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), recountTimeout)
	defer cancel()

	start := time.Now()
	n, err := s.RunOnce(ctx)
	if err != nil {
		s.logger.Error("task recount failed", "error", err)
		return
	}
	s.logger.Debug("task recount finished", "repaired", n, "elapsed", time.Since(start).String())
}
