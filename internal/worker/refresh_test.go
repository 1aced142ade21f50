package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func TestRetryPolicyBackoff(t *testing.T) {
	p := RetryPolicy{InitialDelay: time.Second, MaxDelay: 10 * time.Second, BackoffFactor: 2}

	assert.Equal(t, time.Second, p.NextDelay(1))
	assert.Equal(t, 2*time.Second, p.NextDelay(2))
	assert.Equal(t, 4*time.Second, p.NextDelay(3))
	assert.Equal(t, 8*time.Second, p.NextDelay(4))
	// Clamped to MaxDelay.
	assert.Equal(t, 10*time.Second, p.NextDelay(5))
	assert.Equal(t, 10*time.Second, p.NextDelay(20))
}

func TestRetryPolicyDefaults(t *testing.T) {
	var p RetryPolicy
	assert.Equal(t, time.Second, p.NextDelay(1))
	assert.Equal(t, 2*time.Second, p.NextDelay(2))
	assert.Equal(t, time.Second, p.NextDelay(0))
}

func TestRefreshWorkerRunsTask(t *testing.T) {
	w := NewRefreshWorker(RetryPolicy{MaxRetries: 1, InitialDelay: time.Millisecond}, nopLogger())

	done := make(chan struct{})
	w.Register("posts", func(ctx context.Context) error {
		close(done)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	w.Schedule("posts")

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run")
	}
}

func TestRefreshWorkerRetries(t *testing.T) {
	w := NewRefreshWorker(RetryPolicy{MaxRetries: 3, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}, nopLogger())

	var calls atomic.Int32
	done := make(chan struct{})
	w.Register("bookings", func(ctx context.Context) error {
		if calls.Add(1) < 3 {
			return errors.New("flaky")
		}
		close(done)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	w.Schedule("bookings")

	select {
	case <-done:
		assert.Equal(t, int32(3), calls.Load())
	case <-time.After(2 * time.Second):
		t.Fatal("task did not succeed after retries")
	}
}

func TestRefreshWorkerCoalescesDuplicates(t *testing.T) {
	w := NewRefreshWorker(RetryPolicy{MaxRetries: 1, InitialDelay: time.Millisecond}, nopLogger())

	release := make(chan struct{})
	var calls atomic.Int32
	w.Register("posts", func(ctx context.Context) error {
		calls.Add(1)
		<-release
		return nil
	})

	// Not started yet: duplicates pile up against the pending mark.
	w.Schedule("posts")
	w.Schedule("posts")
	w.Schedule("posts")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	time.Sleep(50 * time.Millisecond)
	close(release)
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, int32(1), calls.Load())
}

func TestRefreshWorkerUnknownTask(t *testing.T) {
	w := NewRefreshWorker(RetryPolicy{}, nopLogger())
	require.NotPanics(t, func() { w.Schedule("nope") })
}
