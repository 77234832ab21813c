package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestScheduler_Add(t *testing.T) {
	s := New(time.UTC, zap.NewNop())

	assert.NoError(t, s.Add("poll", "@every 1m", func(ctx context.Context) error { return nil }))
	assert.NoError(t, s.Add("reload", "0 */6 * * *", func(ctx context.Context) error { return nil }))
	assert.Error(t, s.Add("broken", "every minute", func(ctx context.Context) error { return nil }))
}

func TestScheduler_Runs(t *testing.T) {
	s := New(time.UTC, zap.NewNop())

	var runs atomic.Int32
	assert.NoError(t, s.Add("tick", "@every 1s", func(ctx context.Context) error {
		runs.Add(1)
		return errors.New("failures are logged, not fatal")
	}))

	s.Start()
	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, 5*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}

func TestScheduler_RecoversPanics(t *testing.T) {
	s := New(time.UTC, zap.NewNop())

	var runs atomic.Int32
	assert.NoError(t, s.Add("panicky", "@every 1s", func(ctx context.Context) error {
		runs.Add(1)
		panic("boom")
	}))

	s.Start()
	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, 5*time.Second, 50*time.Millisecond,
		"a panicking job keeps being scheduled")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}

func TestScheduler_StopCancelsRunningJobs(t *testing.T) {
	s := New(time.UTC, zap.NewNop())

	started := make(chan struct{})
	var cancelled atomic.Bool
	var once sync.Once
	assert.NoError(t, s.Add("reload", "@every 1s", func(ctx context.Context) error {
		once.Do(func() { close(started) })
		<-ctx.Done()
		cancelled.Store(true)
		return ctx.Err()
	}))

	s.Start()
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("job never started")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s.Stop(ctx)
	assert.NoError(t, ctx.Err(), "stop returned before its deadline")
	assert.True(t, cancelled.Load())
}
