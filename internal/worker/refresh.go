package worker

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// RefreshFunc reloads one collection from the backend.
type RefreshFunc func(ctx context.Context) error

// RetryPolicy defines exponential backoff parameters for failed refetches.
type RetryPolicy struct {
	MaxRetries    int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// NextDelay returns the delay for a given attempt (1-based) with clamping.
func (r RetryPolicy) NextDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	initial := r.InitialDelay
	if initial <= 0 {
		initial = time.Second
	}
	factor := r.BackoffFactor
	if factor <= 0 {
		factor = 2
	}

	d := time.Duration(float64(initial) * math.Pow(factor, float64(attempt-1)))
	if r.MaxDelay > 0 && d > r.MaxDelay {
		d = r.MaxDelay
	}
	if d <= 0 {
		d = time.Second
	}
	return d
}

// RefreshWorker runs named background refetches. Mutations schedule a
// reconciling refetch here instead of blocking the operator; duplicate
// requests for a task already queued are coalesced.
type RefreshWorker struct {
	mu      sync.RWMutex
	tasks   map[string]RefreshFunc
	pending map[string]bool
	queue   chan string
	retry   RetryPolicy
	logger  *zerolog.Logger
}

// NewRefreshWorker builds a worker with sane defaults.
func NewRefreshWorker(retry RetryPolicy, logger *zerolog.Logger) *RefreshWorker {
	if retry.MaxRetries == 0 {
		retry.MaxRetries = 3
	}
	if retry.InitialDelay == 0 {
		retry.InitialDelay = 2 * time.Second
	}
	if retry.MaxDelay == 0 {
		retry.MaxDelay = time.Minute
	}
	if retry.BackoffFactor == 0 {
		retry.BackoffFactor = 2
	}

	return &RefreshWorker{
		tasks:   make(map[string]RefreshFunc),
		pending: make(map[string]bool),
		queue:   make(chan string, 64),
		retry:   retry,
		logger:  logger,
	}
}

// Register binds a task name to its refresh function.
func (w *RefreshWorker) Register(name string, fn RefreshFunc) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.tasks[name] = fn
}

// Schedule enqueues a refetch, non-blocking. Unknown names and overflow
// are logged and dropped; a dropped reconciliation is acceptable because
// the next screen activation refetches anyway.
func (w *RefreshWorker) Schedule(name string) {
	w.mu.Lock()
	if _, ok := w.tasks[name]; !ok {
		w.mu.Unlock()
		w.logger.Warn().Str("task", name).Msg("refresh schedule for unknown task")
		return
	}
	if w.pending[name] {
		w.mu.Unlock()
		return
	}
	w.pending[name] = true
	w.mu.Unlock()

	select {
	case w.queue <- name:
	default:
		w.mu.Lock()
		delete(w.pending, name)
		w.mu.Unlock()
		w.logger.Warn().Str("task", name).Msg("refresh queue full, dropping task")
	}
}

// Start consumes the queue until ctx is done.
func (w *RefreshWorker) Start(ctx context.Context) {
	w.logger.Info().Msg("refresh worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("refresh worker stopping")
			return
		case name := <-w.queue:
			w.run(ctx, name)
		}
	}
}

func (w *RefreshWorker) run(ctx context.Context, name string) {
	w.mu.RLock()
	fn := w.tasks[name]
	w.mu.RUnlock()

	defer func() {
		w.mu.Lock()
		delete(w.pending, name)
		w.mu.Unlock()
	}()

	if fn == nil {
		return
	}

	var err error
	for attempt := 1; attempt <= w.retry.MaxRetries; attempt++ {
		if err = fn(ctx); err == nil {
			return
		}
		if ctx.Err() != nil {
			return
		}
		delay := w.retry.NextDelay(attempt)
		w.logger.Warn().Err(err).Str("task", name).Int("attempt", attempt).Dur("retry_in", delay).Msg("refresh attempt failed")

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}

	w.logger.Error().Err(err).Str("task", name).Int("attempts", w.retry.MaxRetries).Msg("refresh task gave up")
}
