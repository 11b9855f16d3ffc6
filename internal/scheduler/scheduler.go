// Package scheduler runs the daily brief generation job.
package scheduler

import (
	"context"
	"sync"
	"time"

	"xraynews/internal/brief"
	"xraynews/internal/logger"
)

// generateTimeout bounds one generation run, aggregation included.
const generateTimeout = 10 * time.Minute

// Generator is the brief service surface the scheduler drives.
type Generator interface {
	Generate(ctx context.Context, force bool) (brief.GenerateResult, error)
}

// Scheduler fires Generate once per day at a fixed UTC hour. Stop
// cancels an in-flight run and waits for it, so failures surface in
// logs instead of being dropped with the process.
type Scheduler struct {
	generator Generator
	hourUTC   int
	stopCh    chan struct{}
	wg        sync.WaitGroup

	mu         sync.Mutex
	cancelFunc context.CancelFunc
	now        func() time.Time
}

func New(generator Generator, hourUTC int) *Scheduler {
	if hourUTC < 0 || hourUTC > 23 {
		hourUTC = 0
	}
	return &Scheduler{
		generator: generator,
		hourUTC:   hourUTC,
		stopCh:    make(chan struct{}),
		now:       time.Now,
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
	logger.Info("scheduler started", "module", "scheduler", "action", "generate", "resource", "brief", "result", "ok", "hour_utc", s.hourUTC)
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.mu.Unlock()

	close(s.stopCh)
	s.wg.Wait()
	logger.Info("scheduler stopped", "module", "scheduler", "action", "generate", "resource", "brief", "result", "ok")
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	for {
		wait := time.Until(s.nextRun(s.now()))
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
			s.generate()
		case <-s.stopCh:
			timer.Stop()
			return
		}
	}
}

// nextRun returns the next occurrence of the configured UTC hour
// strictly after now.
func (s *Scheduler) nextRun(now time.Time) time.Time {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hourUTC, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

func (s *Scheduler) generate() {
	ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)

	s.mu.Lock()
	s.cancelFunc = cancel
	s.mu.Unlock()

	defer func() {
		cancel()
		s.mu.Lock()
		s.cancelFunc = nil
		s.mu.Unlock()
	}()

	logger.Info("scheduled brief generation started", "module", "scheduler", "action", "generate", "resource", "brief", "result", "ok")
	result, err := s.generator.Generate(ctx, false)
	if err != nil {
		if ctx.Err() != nil {
			logger.Warn("scheduled generation cancelled", "module", "scheduler", "action", "generate", "resource", "brief", "result", "cancelled")
			return
		}
		logger.Error("scheduled generation failed", "module", "scheduler", "action", "generate", "resource", "brief", "result", "failed", "error", err)
		return
	}
	logger.Info("scheduled brief generation completed", "module", "scheduler", "action", "generate", "resource", "brief", "result", "ok", "slug", result.Slug, "skipped", result.Skipped)
}
