package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func recordingPolicy(maxAttempts int, delays *[]time.Duration) *Policy {
	p := NewPolicy(maxAttempts)
	p.wait = func(ctx context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}
	return p
}

func TestDoSucceedsAfterFailures(t *testing.T) {
	const attempts = 3
	var delays []time.Duration
	p := recordingPolicy(attempts, &delays)

	calls := 0
	result, err := Do(context.Background(), p, func(ctx context.Context) (string, error) {
		calls++
		if calls < attempts {
			return "", errors.New("transient")
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "ok" {
		t.Fatalf("expected success value, got %q", result)
	}
	if calls != attempts {
		t.Fatalf("expected %d invocations, got %d", attempts, calls)
	}

	want := []time.Duration{time.Second, 2 * time.Second}
	if len(delays) != len(want) {
		t.Fatalf("expected %d waits, got %d", len(want), len(delays))
	}
	for i, d := range want {
		if delays[i] != d {
			t.Fatalf("wait %d: expected %v, got %v", i+1, d, delays[i])
		}
	}
}

func TestDoExhaustsAndReturnsLastError(t *testing.T) {
	tests := []struct {
		name        string
		maxAttempts int
		wantDelays  []time.Duration
	}{
		{name: "three attempts", maxAttempts: 3, wantDelays: []time.Duration{time.Second, 2 * time.Second}},
		{name: "five attempts capped", maxAttempts: 5, wantDelays: []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 5 * time.Second}},
		{name: "single attempt", maxAttempts: 1, wantDelays: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var delays []time.Duration
			p := recordingPolicy(tt.maxAttempts, &delays)

			calls := 0
			lastErr := errors.New("attempt 0")
			_, err := Do(context.Background(), p, func(ctx context.Context) (int, error) {
				calls++
				lastErr = errors.New("boom on attempt " + string(rune('0'+calls)))
				return 0, lastErr
			})
			if calls != tt.maxAttempts {
				t.Fatalf("expected %d invocations, got %d", tt.maxAttempts, calls)
			}
			if err != lastErr {
				t.Fatalf("expected last error to propagate unchanged, got %v", err)
			}
			if len(delays) != len(tt.wantDelays) {
				t.Fatalf("expected %d waits, got %d", len(tt.wantDelays), len(delays))
			}
			for i, d := range tt.wantDelays {
				if delays[i] != d {
					t.Fatalf("wait %d: expected %v, got %v", i+1, d, delays[i])
				}
			}
		})
	}
}

func TestDoStopsOnPermanentError(t *testing.T) {
	var delays []time.Duration
	p := recordingPolicy(3, &delays)

	cause := errors.New("broken payload")
	calls := 0
	_, err := Do(context.Background(), p, func(ctx context.Context) (int, error) {
		calls++
		return 0, Permanent(cause)
	})
	if calls != 1 {
		t.Fatalf("expected single invocation, got %d", calls)
	}
	if err != cause {
		t.Fatalf("expected original error back, got %v", err)
	}
	if len(delays) != 0 {
		t.Fatalf("expected no waits, got %v", delays)
	}
}

func TestDoHonorsContextCancellation(t *testing.T) {
	p := NewPolicy(3)
	p.wait = waitTimer

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Do(ctx, p, func(ctx context.Context) (int, error) {
		return 0, errors.New("transient")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

func TestDelaySchedule(t *testing.T) {
	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{attempt: 0, want: 0},
		{attempt: 1, want: time.Second},
		{attempt: 2, want: 2 * time.Second},
		{attempt: 3, want: 4 * time.Second},
		{attempt: 4, want: 5 * time.Second},
		{attempt: 10, want: 5 * time.Second},
	}
	for _, tc := range cases {
		if got := Delay(tc.attempt); got != tc.want {
			t.Fatalf("attempt %d: expected %v, got %v", tc.attempt, tc.want, got)
		}
	}
}

func TestPermanentNil(t *testing.T) {
	if Permanent(nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}
