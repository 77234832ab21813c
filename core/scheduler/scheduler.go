package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is a unit of scheduled work.
type Job func(ctx context.Context) error

// Scheduler runs named jobs on cron specs. A job never overlaps with itself: a run that is
// still in progress when the next tick fires causes that tick to be skipped. Jobs receive a
// context that Stop cancels.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a scheduler evaluating specs in loc.
func New(loc *time.Location, logger *zap.Logger) *Scheduler {
	cl := cronLogger{l: logger.Sugar()}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		// Recover sits inside the skip guard so a panicking run still releases it.
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.SkipIfStillRunning(cl), cron.Recover(cl)),
		),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Add registers job under name. spec accepts the standard five-field syntax and
// descriptors such as "@every 1m".
func (s *Scheduler) Add(name, spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		start := time.Now()
		if err := job(s.ctx); err != nil {
			s.logger.Error("Scheduled job failed", zap.String("job", name), zap.Error(err))
			return
		}
		s.logger.Debug("Scheduled job finished", zap.String("job", name), zap.Duration("took", time.Since(start)))
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q for job %s: %w", spec, name, err)
	}
	return nil
}

// Start begins running jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs, cancels the context of running jobs and waits for them until
// ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	stopped := s.cron.Stop()
	s.cancel()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
		s.logger.Warn("Scheduler stop timed out with jobs still running")
	}
}

// cronLogger adapts zap to cron's logger. Tick chatter goes to debug.
type cronLogger struct {
	l *zap.SugaredLogger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debugw(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Errorw(msg, append(keysAndValues, "error", err)...)
}
