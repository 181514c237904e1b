// Package scheduler periodically refreshes the job collection.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/honeycarbs/careerhub/internal/domain/job"
	"github.com/honeycarbs/careerhub/pkg/logging"
)

// Refresher is the part of job.Service the scheduler drives
type Refresher interface {
	Refresh(ctx context.Context) (job.RefreshResult, error)
}

// Scheduler wraps robfig/cron and runs one refresh per tick.
// Alert evaluation follows each refresh through the service's refresh hooks.
type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	spec      string
	logger    *logging.Logger

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	runs   sync.WaitGroup
}

// New creates a Scheduler that fires every interval
func New(refresher Refresher, interval time.Duration, logger *logging.Logger) (*Scheduler, error) {
	if refresher == nil {
		return nil, fmt.Errorf("scheduler: refresher is required")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("scheduler: interval must be positive, got %s", interval)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.Named("scheduler")

	cl := cronLogger{logger: logger}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.SkipIfStillRunning(cl)),
		),
		refresher: refresher,
		spec:      "@every " + interval.String(),
		logger:    logger,
	}, nil
}

// Start registers the refresh job, starts cron and triggers one refresh
// immediately so the collection is populated without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return fmt.Errorf("scheduler: already started")
	}
	s.ctx, s.cancel = context.WithCancel(ctx)

	if _, err := s.cron.AddFunc(s.spec, s.run); err != nil {
		s.cancel()
		s.cancel = nil
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "spec", s.spec)

	s.runs.Add(1)
	go func() {
		defer s.runs.Done()
		s.refresh()
	}()
	return nil
}

// Shutdown stops cron and waits for a running refresh, or for ctx to expire
func (s *Scheduler) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel == nil {
		return nil
	}

	stopped := s.cron.Stop()
	done := make(chan struct{})
	go func() {
		<-stopped.Done()
		s.runs.Wait()
		close(done)
	}()

	select {
	case <-done:
		cancel()
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		cancel()
		return fmt.Errorf("scheduler: %w", ctx.Err())
	}
}

func (s *Scheduler) run() {
	s.runs.Add(1)
	defer s.runs.Done()
	s.refresh()
}

func (s *Scheduler) refresh() {
	start := time.Now()
	res, err := s.refresher.Refresh(s.ctx)
	if err != nil {
		s.logger.Error("scheduled refresh failed", "err", err)
		return
	}
	s.logger.Info("scheduled refresh complete",
		"fetched", res.Fetched,
		"stored", res.Stored,
		"failed", res.Failed,
		"took", time.Since(start),
	)
}

// cronLogger routes cron's own logs into the service logger
type cronLogger struct {
	logger *logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "err", err)...)
}
