package retry

import (
	"context"
	"errors"
	"time"
)

const (
	// DefaultMaxAttempts bounds the total number of invocations.
	DefaultMaxAttempts = 3

	initialDelay = time.Second
	maxDelay     = 5 * time.Second
)

// permanentError marks a failure the caller does not want retried. The
// policy itself stays blind: opting out of retries is an explicit caller
// decision made by wrapping the error in Permanent.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent wraps err so that Do stops immediately and returns err as-is.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Policy retries an operation with exponential backoff: 1s, 2s, 4s, capped
// at 5s between attempts. It does not inspect errors; every failure is
// retried up to MaxAttempts unless wrapped in Permanent.
type Policy struct {
	MaxAttempts int

	// wait is swappable in tests; production waits on a timer honoring ctx.
	wait func(ctx context.Context, d time.Duration) error
}

// NewPolicy constructs a policy with the given attempt cap. Non-positive
// caps fall back to the default.
func NewPolicy(maxAttempts int) *Policy {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Policy{MaxAttempts: maxAttempts, wait: waitTimer}
}

// Delay returns the pause after the given 1-indexed failed attempt.
func Delay(attempt int) time.Duration {
	if attempt < 1 {
		return 0
	}
	d := initialDelay << (attempt - 1)
	if d > maxDelay || d <= 0 {
		d = maxDelay
	}
	return d
}

// Do invokes op until it succeeds or the attempt cap is reached. On
// exhaustion the most recent error is returned unchanged, preserving its
// message and type for the caller.
func Do[T any](ctx context.Context, p *Policy, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	wait := p.wait
	if wait == nil {
		wait = waitTimer
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}

		var perm *permanentError
		if errors.As(err, &perm) {
			return zero, perm.err
		}
		lastErr = err

		if attempt < p.MaxAttempts {
			if werr := wait(ctx, Delay(attempt)); werr != nil {
				return zero, werr
			}
		}
	}
	return zero, lastErr
}

func waitTimer(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
