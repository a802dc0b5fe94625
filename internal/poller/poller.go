// Package poller repeats a status fetch at a fixed interval while the
// result reports in-progress work, stopping on terminal states, fetch
// errors, or cancellation.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/konsiyer/dashboard/internal/domain/model"
)

// DefaultInterval matches the dashboard refresh cadence.
const DefaultInterval = 5 * time.Second

// FetchFunc retrieves the current status.
type FetchFunc func(ctx context.Context) (*model.StatusReport, error)

// Update is delivered to the session callback after every tick. Err is set
// when the fetch failed; the session stops after forwarding it.
type Update struct {
	Report *model.StatusReport
	Err    error

	// Silent is false only for the initial tick, where the caller is
	// expected to show a loading indicator.
	Silent bool
}

// UpdateFunc receives tick results in strict tick order.
type UpdateFunc func(Update)

// Session is a handle over one polling loop.
type Session struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu      sync.Mutex
	stopped bool
}

// Start begins polling: one immediate fetch, then one fetch per interval
// while the status kind is processing. All fetches run on a single
// goroutine, so ticks never overlap and updates arrive in order. A result
// that resolves after Stop is discarded without a callback.
func Start(ctx context.Context, fetch FetchFunc, onUpdate UpdateFunc, interval time.Duration) *Session {
	if interval <= 0 {
		interval = DefaultInterval
	}

	runCtx, cancel := context.WithCancel(ctx)
	s := &Session{cancel: cancel, done: make(chan struct{})}

	go s.run(runCtx, fetch, onUpdate, interval)
	return s
}

// Stop halts future ticks. An in-flight fetch is allowed to complete but its
// result is discarded. Safe to call multiple times.
func (s *Session) Stop() {
	s.mu.Lock()
	if !s.stopped {
		s.stopped = true
		s.cancel()
	}
	s.mu.Unlock()
}

// Done is closed once the session goroutine has exited.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) run(ctx context.Context, fetch FetchFunc, onUpdate UpdateFunc, interval time.Duration) {
	defer close(s.done)
	defer s.cancel()

	silent := false
	for {
		report, err := fetch(ctx)

		// Discard stale results: cancellation may have happened while
		// the fetch was in flight.
		if ctx.Err() != nil {
			return
		}

		onUpdate(Update{Report: report, Err: err, Silent: silent})
		if err != nil {
			return
		}
		if report == nil || report.NoData || report.Status == nil || report.Status.Kind != model.StatusProcessing {
			return
		}

		silent = true
		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}
