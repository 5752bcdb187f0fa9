package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDriver struct {
	jobs    map[string]func(context.Context)
	addErr  error
	started bool
	stopped bool
}

func (d *fakeDriver) Add(spec, name string, job func(context.Context)) error {
	if d.addErr != nil {
		return d.addErr
	}
	if d.jobs == nil {
		d.jobs = map[string]func(context.Context){}
	}
	d.jobs[name] = job
	return nil
}

func (d *fakeDriver) Start(context.Context) error {
	d.started = true
	return nil
}

func (d *fakeDriver) Stop(context.Context) error {
	d.stopped = true
	return nil
}

func TestSchedulerRegisterWrapsJobs(t *testing.T) {
	t.Parallel()

	driver := &fakeDriver{}
	s := NewScheduler(driver, discardLogger())

	calls := 0
	require.NoError(t, s.Register(Job{Name: "pipeline:canada", Spec: "0 * * * *", Run: func(context.Context) error {
		calls++
		return nil
	}}))
	require.NoError(t, s.Register(Job{Name: "push:canada", Spec: "0 9 * * *", Run: func(context.Context) error {
		calls++
		return errors.New("dispatcher down")
	}}))

	driver.jobs["pipeline:canada"](context.Background())
	driver.jobs["push:canada"](context.Background())
	assert.Equal(t, 2, calls)

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Stop(context.Background()))
	assert.True(t, driver.started)
	assert.True(t, driver.stopped)
}

func TestSchedulerRegisterErrors(t *testing.T) {
	t.Parallel()

	assert.Error(t, NewScheduler(nil, nil).Register(Job{Name: "x", Run: func(context.Context) error { return nil }}))
	assert.Error(t, NewScheduler(&fakeDriver{}, nil).Register(Job{Name: "x"}))

	bad := errors.New("expected exactly 5 fields")
	err := NewScheduler(&fakeDriver{addErr: bad}, nil).Register(Job{Name: "x", Spec: "* *", Run: func(context.Context) error { return nil }})
	assert.ErrorIs(t, err, bad)
}
