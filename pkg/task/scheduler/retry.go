package scheduler

import (
	"context"
	"time"

	"github.com/vnykmshr/goasync/pkg/task"
)

// Backoff configures retry behavior for Retry.
type Backoff struct {
	// MaxRetries is the number of additional attempts after the first.
	MaxRetries int

	// InitialDelay is the wait before the first retry.
	InitialDelay time.Duration

	// MaxDelay caps the doubled delay. Zero means no cap.
	MaxDelay time.Duration
}

// Retry spawns work and retries it with exponential backoff on failure.
// The task resolves with the first successful result, or faults with the
// last attempt's error once retries are exhausted. Cancellation observed
// between attempts stops retrying and resolves the task Canceled.
func Retry[T any](s *Scheduler, work func(ctx context.Context) (T, error), b Backoff, opts ...Option) *task.Task[T] {
	return Run(s, func(ctx context.Context) (T, error) {
		var zero T
		var lastErr error
		delay := b.InitialDelay

		for attempt := 0; attempt <= b.MaxRetries; attempt++ {
			if attempt > 0 {
				select {
				case <-time.After(delay):
				case <-ctx.Done():
					return zero, ctx.Err()
				}

				// Double delay for next attempt
				delay *= 2
				if b.MaxDelay > 0 && delay > b.MaxDelay {
					delay = b.MaxDelay
				}
			}

			v, err := work(ctx)
			if err == nil {
				return v, nil
			}
			if task.IsCancellation(err) {
				return zero, err
			}
			lastErr = err
		}

		return zero, lastErr
	}, opts...)
}
