package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingMarker struct {
	calls atomic.Int32
	grace atomic.Int64
	err   error
}

func (m *countingMarker) MarkOverdueNoShows(_ context.Context, grace time.Duration) (int, error) {
	m.calls.Add(1)
	m.grace.Store(int64(grace))
	return 1, m.err
}

func TestScheduler_RunsImmediatelyAndOnTick(t *testing.T) {
	marker := &countingMarker{}
	s := NewScheduler(marker, 10*time.Millisecond, 15*time.Minute, zap.NewNop())

	s.Start(context.Background())

	assert.Eventually(t, func() bool { return marker.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	s.Stop()
	s.Stop()

	assert.Equal(t, int64(15*time.Minute), marker.grace.Load())
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	marker := &countingMarker{err: errors.New("db unavailable")}
	s := NewScheduler(marker, time.Hour, time.Minute, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	s.Start(ctx)
	assert.Eventually(t, func() bool { return marker.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	cancel()

	select {
	case <-s.done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after context cancellation")
	}
}
