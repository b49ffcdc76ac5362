package eventstatus

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForReads(t *testing.T, reads *atomic.Int64, want int64) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		if reads.Load() >= want {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("expected %d sweep firings, got %d", want, reads.Load())
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func TestPoller_FiresOnSchedule(t *testing.T) {
	repo := newFakeRepository()
	var reads atomic.Int64
	repo.onDue = func() { reads.Add(1) }

	svc := sweepAt(repo, time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC))
	p := NewPoller(svc, "@every 50ms")

	require.NoError(t, p.Start())
	defer p.Stop()

	waitForReads(t, &reads, 2)
}

func TestPoller_StartTwiceIsNoOp(t *testing.T) {
	repo := newFakeRepository()
	svc := sweepAt(repo, time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC))
	p := NewPoller(svc, "@every 1m")

	require.NoError(t, p.Start())
	require.NoError(t, p.Start())
	p.Stop()
}

func TestPoller_RejectsBadSchedule(t *testing.T) {
	repo := newFakeRepository()
	svc := sweepAt(repo, time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC))
	p := NewPoller(svc, "not a schedule")

	assert.Error(t, p.Start())
}

func TestPoller_SurvivesSweepFailures(t *testing.T) {
	repo := newFakeRepository()
	var reads atomic.Int64
	repo.onDue = func() { reads.Add(1) }
	repo.dueErr = errors.New("db down")

	svc := sweepAt(repo, time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC))
	p := NewPoller(svc, "@every 50ms")

	require.NoError(t, p.Start())
	defer p.Stop()

	// The failing sweep is logged and swallowed; firings keep coming.
	waitForReads(t, &reads, 3)
}

func TestPoller_StopIsIdempotent(t *testing.T) {
	repo := newFakeRepository()
	svc := sweepAt(repo, time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC))
	p := NewPoller(svc, "@every 1m")

	require.NoError(t, p.Start())
	p.Stop()
	p.Stop()
}
