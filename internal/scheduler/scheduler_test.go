package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"xraynews/internal/brief"
)

type countingGenerator struct {
	calls atomic.Int32
}

func (g *countingGenerator) Generate(context.Context, bool) (brief.GenerateResult, error) {
	g.calls.Add(1)
	return brief.GenerateResult{Slug: "2026-01-02"}, nil
}

func TestScheduler_NextRun_LaterToday(t *testing.T) {
	s := New(&countingGenerator{}, 11)

	now := time.Date(2026, 1, 2, 9, 30, 0, 0, time.UTC)
	require.Equal(t, time.Date(2026, 1, 2, 11, 0, 0, 0, time.UTC), s.nextRun(now))
}

func TestScheduler_NextRun_Tomorrow(t *testing.T) {
	s := New(&countingGenerator{}, 11)

	now := time.Date(2026, 1, 2, 11, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2026, 1, 3, 11, 0, 0, 0, time.UTC), s.nextRun(now))

	now = time.Date(2026, 1, 2, 23, 59, 0, 0, time.UTC)
	require.Equal(t, time.Date(2026, 1, 3, 11, 0, 0, 0, time.UTC), s.nextRun(now))
}

func TestScheduler_NextRun_NonUTCInput(t *testing.T) {
	s := New(&countingGenerator{}, 11)

	loc := time.FixedZone("UTC+5", 5*3600)
	now := time.Date(2026, 1, 2, 14, 0, 0, 0, loc) // 09:00 UTC
	require.Equal(t, time.Date(2026, 1, 2, 11, 0, 0, 0, time.UTC), s.nextRun(now))
}

func TestNew_ClampsInvalidHour(t *testing.T) {
	require.Equal(t, 0, New(&countingGenerator{}, -1).hourUTC)
	require.Equal(t, 0, New(&countingGenerator{}, 24).hourUTC)
	require.Equal(t, 23, New(&countingGenerator{}, 23).hourUTC)
}

func TestScheduler_StartStop(t *testing.T) {
	gen := &countingGenerator{}
	s := New(gen, 11)

	s.Start()
	s.Stop()

	// Stop must return promptly without a run having fired.
	require.Equal(t, int32(0), gen.calls.Load())
}

func TestScheduler_GenerateInvokesGenerator(t *testing.T) {
	gen := &countingGenerator{}
	s := New(gen, 11)

	s.generate()
	require.Equal(t, int32(1), gen.calls.Load())

	// The cancel func must be cleared once the run finishes.
	s.mu.Lock()
	require.Nil(t, s.cancelFunc)
	s.mu.Unlock()
}

type blockingGenerator struct {
	started  chan struct{}
	released atomic.Bool
}

func (g *blockingGenerator) Generate(ctx context.Context, _ bool) (brief.GenerateResult, error) {
	close(g.started)
	<-ctx.Done()
	g.released.Store(true)
	return brief.GenerateResult{}, ctx.Err()
}

func TestScheduler_StopCancelsInFlightRun(t *testing.T) {
	gen := &blockingGenerator{started: make(chan struct{})}
	s := New(gen, 11)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.generate()
	}()

	<-gen.started
	s.mu.Lock()
	require.NotNil(t, s.cancelFunc)
	s.cancelFunc()
	s.mu.Unlock()

	s.wg.Wait()
	require.True(t, gen.released.Load())
}
