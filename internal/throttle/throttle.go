// Package throttle funnels outbound vendor calls through one shared queue that
// bounds concurrency and spaces consecutive task starts.
//
// The two rules are enforced by separate limiters composed in Submit: a FIFO
// weighted semaphore for the in-flight bound, then a minimum-interval gate
// that hands out start times in arrival order.
package throttle

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/guttosm/marketpulse/internal/logger"
)

const (
	// DefaultMaxConcurrent is the number of vendor calls allowed in flight at once.
	DefaultMaxConcurrent = 5
	// DefaultMinDelay is the minimum gap between two consecutive task starts.
	DefaultMinDelay = 150 * time.Millisecond
)

// Config configures a Throttler. Zero values fall back to the defaults.
type Config struct {
	Name          string
	MaxConcurrent int
	MinDelay      time.Duration
}

// Stats is a point-in-time view of the queue.
type Stats struct {
	InFlight int64 `json:"in_flight"`
	Queued   int64 `json:"queued"`
	Started  int64 `json:"started"`
}

// Throttler is safe for concurrent use; build one per upstream vendor and
// share it across every caller of that vendor.
type Throttler struct {
	name string
	sem  *semaphore.Weighted
	gate *minInterval
	log  zerolog.Logger

	inFlight atomic.Int64
	queued   atomic.Int64
	started  atomic.Int64
}

// New builds a Throttler from cfg.
func New(cfg Config) *Throttler {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = DefaultMaxConcurrent
	}
	if cfg.MinDelay < 0 {
		cfg.MinDelay = 0
	}
	if cfg.Name == "" {
		cfg.Name = "default"
	}
	return &Throttler{
		name: cfg.Name,
		sem:  semaphore.NewWeighted(int64(cfg.MaxConcurrent)),
		gate: newMinInterval(cfg.MinDelay),
		log:  logger.With("throttle").With().Str("queue", cfg.Name).Logger(),
	}
}

// Submit enqueues task and blocks until it has run.
//
// Once enqueued, a task is not cancelled by the caller's context: it waits
// for its slot and runs to completion or to whatever deadline the task itself
// applies. Context values are preserved. A panic inside task is returned as an
// error to this caller only.
func (t *Throttler) Submit(ctx context.Context, task func(context.Context) error) error {
	ctx = context.WithoutCancel(ctx)

	t.queued.Add(1)
	if err := t.sem.Acquire(ctx, 1); err != nil {
		t.queued.Add(-1)
		return fmt.Errorf("throttle %s: acquire slot: %w", t.name, err)
	}
	defer t.sem.Release(1)

	if err := t.gate.wait(ctx); err != nil {
		t.queued.Add(-1)
		return fmt.Errorf("throttle %s: wait for spacing: %w", t.name, err)
	}
	t.queued.Add(-1)
	t.inFlight.Add(1)
	defer t.inFlight.Add(-1)
	n := t.started.Add(1)

	t.log.Debug().Int64("task", n).Int64("in_flight", t.inFlight.Load()).Msg("task started")
	return run(ctx, task)
}

// Stats returns current queue counters.
func (t *Throttler) Stats() Stats {
	return Stats{InFlight: t.inFlight.Load(), Queued: t.queued.Load(), Started: t.started.Load()}
}

// Do is the typed form of Submit.
func Do[T any](ctx context.Context, t *Throttler, task func(context.Context) (T, error)) (T, error) {
	var out T
	err := t.Submit(ctx, func(ctx context.Context) error {
		v, err := task(ctx)
		out = v
		return err
	})
	return out, err
}

func run(ctx context.Context, task func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.L().Error().Str("panic", fmt.Sprintf("%v", r)).Bytes("stack", debug.Stack()).Msg("throttled task panicked")
			err = fmt.Errorf("throttled task panicked: %v", r)
		}
	}()
	return task(ctx)
}

// minInterval hands out start times at least interval apart, in the order
// callers reserve them.
type minInterval struct {
	interval time.Duration
	now      func() time.Time

	mu   sync.Mutex
	next time.Time
}

func newMinInterval(interval time.Duration) *minInterval {
	return &minInterval{interval: interval, now: time.Now}
}

// reserve claims the next start slot and returns how long to wait for it.
func (m *minInterval) reserve() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	start := m.next
	if start.Before(now) {
		start = now
	}
	m.next = start.Add(m.interval)
	return start.Sub(now)
}

func (m *minInterval) wait(ctx context.Context) error {
	if m.interval <= 0 {
		return nil
	}
	d := m.reserve()
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
