package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"NewsPlatter/internal/ports"
)

// Job is one recurring unit of work registered with the scheduler.
type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context) error
}

// Scheduler wires the cron-like driver with the country jobs.
type Scheduler struct {
	driver ports.Scheduler
	logger *slog.Logger
}

// NewScheduler returns a helper to register and start recurring jobs.
func NewScheduler(driver ports.Scheduler, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{driver: driver, logger: logger}
}

// Register adds a job. A failing invocation is logged and the schedule goes on.
func (s *Scheduler) Register(job Job) error {
	if s.driver == nil {
		return errors.New("scheduler has no driver")
	}
	if job.Run == nil {
		return fmt.Errorf("job %s has no run function", job.Name)
	}

	logger := s.logger.With("job", job.Name)
	wrapped := func(ctx context.Context) {
		started := time.Now()
		if err := job.Run(ctx); err != nil {
			logger.Error("job failed", "err", err, "duration", time.Since(started))
			return
		}
		logger.Info("job finished", "duration", time.Since(started))
	}

	if err := s.driver.Add(job.Spec, job.Name, wrapped); err != nil {
		return fmt.Errorf("register %s (%s): %w", job.Name, job.Spec, err)
	}
	return nil
}

// Start begins dispatching registered jobs.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}
	return s.driver.Start(ctx)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}
	return s.driver.Stop(ctx)
}
