package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"garden-stock-api/internal/pkg/config"
	"garden-stock-api/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// Refresher is the one operation the scheduler drives.
type Refresher interface {
	Refresh(ctx context.Context) (time.Time, error)
}

type Scheduler struct {
	cron       *cron.Cron
	refresher  Refresher
	runOnStart bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(cfg config.SchedulerConfig, refresher Refresher) (*Scheduler, error) {
	logger := cronLogger{log: slog.Default().With("component", "scheduler")}
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		cron:       c,
		refresher:  refresher,
		runOnStart: cfg.RunOnStart,
		ctx:        ctx,
		cancel:     cancel,
	}

	if _, err := c.AddFunc(cfg.Spec, s.tick); err != nil {
		cancel()
		return nil, errs.Wrapf(err, "invalid scheduler spec %q", cfg.Spec)
	}
	return s, nil
}

// Start begins the cron cadence and, if configured, kicks off one refresh
// immediately without waiting for it.
func (s *Scheduler) Start() {
	if s.runOnStart {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.tick()
		}()
	}
	s.cron.Start()
	slog.Info("Scheduler started", "entries", len(s.cron.Entries()))
}

// Stop halts the cadence and waits for a running refresh until ctx expires.
func (s *Scheduler) Stop(ctx context.Context) error {
	cronDone := s.cron.Stop()

	done := make(chan struct{})
	go func() {
		<-cronDone.Done()
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.cancel()
		slog.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		s.cancel()
		return ctx.Err()
	}
}

func (s *Scheduler) tick() {
	at, err := s.refresher.Refresh(s.ctx)
	if err != nil {
		slog.Warn("Scheduled refresh failed", "error", err)
		slog.Debug("Scheduled refresh failure trace", "stack", errs.ExtractStackLines(err, 12))
		return
	}
	slog.Info("Scheduled refresh succeeded", "last_updated", at)
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(fmt.Sprintf("cron: %s", msg), keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(fmt.Sprintf("cron: %s", msg), append([]any{"error", err}, keysAndValues...)...)
}
