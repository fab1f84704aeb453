// Package maintenance runs the pipeline on a cron schedule inside the API
// process: load every collection, refresh the materialized views, then drop
// cached API responses.
package maintenance

import (
	"context"
	"sync/atomic"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fightgraphs/pipeline/internal/seed"
)

// Runner performs one full load. *seed.Loader satisfies it.
type Runner interface {
	RunAll(ctx context.Context) seed.SeedResult
}

// Purger drops cached responses. *cache.Cache satisfies it.
type Purger interface {
	Purge()
}

// Config controls the scheduler.
type Config struct {
	Schedule string   // standard 5-field cron spec; empty disables scheduling
	Views    []string // materialized views refreshed after each run
}

// Scheduler triggers pipeline runs. Overlapping runs are skipped.
type Scheduler struct {
	runner  Runner
	db      seed.Execer
	cache   Purger
	cfg     Config
	logger  *zap.Logger
	running atomic.Bool
}

// New creates a Scheduler. cache may be nil.
func New(runner Runner, db seed.Execer, cache Purger, cfg Config, logger *zap.Logger) *Scheduler {
	return &Scheduler{runner: runner, db: db, cache: cache, cfg: cfg, logger: logger}
}

// RunOnce runs the pipeline now. It returns false without running when a
// run is already in progress.
func (s *Scheduler) RunOnce(ctx context.Context) (seed.SeedResult, bool) {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("Pipeline run skipped, previous run still in progress")
		return seed.SeedResult{}, false
	}
	defer s.running.Store(false)

	s.logger.Info("Pipeline run started")
	result := s.runner.RunAll(ctx)
	s.logger.Info("Pipeline run finished", zap.String("summary", result.Summary()))
	for _, e := range result.Errors {
		s.logger.Debug("Pipeline error", zap.String("error", e))
	}

	if err := RefreshMaterializedViews(ctx, s.db, s.cfg.Views, s.logger); err != nil {
		result.AddErrorf("%v", err)
	}
	if s.cache != nil {
		s.cache.Purge()
	}
	return result, true
}

// Start schedules RunOnce and blocks until ctx is cancelled, then waits for
// a run in progress to finish. Intended to be called with `go`.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.cfg.Schedule == "" {
		s.logger.Info("Pipeline schedule disabled")
		return nil
	}

	c := cron.New(cron.WithLogger(cronLogger{s.logger.Sugar()}))
	if _, err := c.AddFunc(s.cfg.Schedule, func() { s.RunOnce(ctx) }); err != nil {
		return err
	}
	c.Start()
	s.logger.Info("Pipeline schedule started", zap.String("schedule", s.cfg.Schedule))

	<-ctx.Done()
	<-c.Stop().Done()
	s.logger.Info("Pipeline schedule stopped")
	return nil
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
