// Package poll runs a fetch immediately and then once per interval until
// stopped, handing every result to a deliver callback.
//
// Fetches are not serialised: a slow fetch may still be running when the
// next tick starts another one. Callers that replace their state wholesale
// with each result (never merge) are unaffected by out-of-order completion.
//
// Stop is final. Once it returns no further fetch starts and deliver is
// never called again, including for fetches that were already in flight.
package poll

import (
	"context"
	"sync"
	"time"

	"github.com/facebookgo/clock"
)

type options struct {
	clock clock.Clock
}

type Option func(*options)

// WithClock substitutes the time source, e.g. clock.NewMock() in tests.
func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

// Handle controls a running poll.
type Handle struct {
	mu      sync.Mutex
	stopped bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// Start begins polling. interval must be positive. Cancelling ctx has the
// same effect as Stop, except that Stop also waits for the tick loop to exit.
func Start[T any](ctx context.Context, interval time.Duration, fetch func(context.Context) (T, error), deliver func(T, error), opts ...Option) *Handle {
	if interval <= 0 {
		panic("poll: non-positive interval")
	}
	o := options{clock: clock.New()}
	for _, opt := range opts {
		opt(&o)
	}

	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{cancel: cancel, done: make(chan struct{})}

	// Created before returning so a mock clock advanced right after Start
	// already fires it.
	ticker := o.clock.Ticker(interval)

	run := func() {
		v, err := fetch(ctx)
		h.deliver(func() { deliver(v, err) })
	}

	go func() {
		defer close(h.done)
		defer ticker.Stop()

		go run()
		for {
			select {
			case <-ctx.Done():
				h.markStopped()
				return
			case <-ticker.C:
				go run()
			}
		}
	}()
	return h
}

func (h *Handle) deliver(f func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return
	}
	f()
}

func (h *Handle) markStopped() {
	h.mu.Lock()
	h.stopped = true
	h.mu.Unlock()
}

// Stop ends the poll and waits for the tick loop to exit. It must not be
// called from inside deliver.
func (h *Handle) Stop() {
	h.markStopped()
	h.cancel()
	<-h.done
}

// Stopped reports whether the poll has ended.
func (h *Handle) Stopped() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stopped
}
