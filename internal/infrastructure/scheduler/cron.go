package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"NewsPlatter/internal/ports"
	"NewsPlatter/pkg/logger"
)

// CronScheduler runs jobs on standard five-field cron expressions.
type CronScheduler struct {
	cron *cron.Cron

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	started bool
}

var _ ports.Scheduler = (*CronScheduler)(nil)

// NewCronScheduler builds a scheduler evaluating expressions in loc. Runs of
// the same job never overlap and panics are recovered.
func NewCronScheduler(loc *time.Location) *CronScheduler {
	if loc == nil {
		loc = time.UTC
	}
	cronLogger := cron.PrintfLogger(logger.New("cron"))
	return &CronScheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger), cron.Recover(cronLogger)),
		),
		ctx: context.Background(),
	}
}

// Add registers job under spec. The job receives the context passed to Start.
func (c *CronScheduler) Add(spec, name string, job func(context.Context)) error {
	if job == nil {
		return fmt.Errorf("job %s is nil", name)
	}
	_, err := c.cron.AddFunc(spec, func() {
		job(c.runContext())
	})
	if err != nil {
		return fmt.Errorf("parse spec %q for %s: %w", spec, name, err)
	}
	return nil
}

// Start begins dispatching in the background and returns immediately.
func (c *CronScheduler) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return errors.New("scheduler already started")
	}
	c.ctx, c.cancel = context.WithCancel(ctx)
	c.started = true
	c.cron.Start()
	return nil
}

// Stop halts dispatching and waits for running jobs until ctx expires.
func (c *CronScheduler) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.started {
		c.mu.Unlock()
		return nil
	}
	c.started = false
	cancel := c.cancel
	c.mu.Unlock()

	done := c.cron.Stop()
	defer cancel()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Entries reports how many jobs are registered.
func (c *CronScheduler) Entries() int {
	return len(c.cron.Entries())
}

func (c *CronScheduler) runContext() context.Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ctx
}
