package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a failure as transient. The retry loop only repeats
// attempts whose error carries this type somewhere in its chain; everything
// else is treated as final. Wrap network failures and 5xx responses.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry runs fn until it succeeds, returns a non-retryable error, or the
// attempt budget is spent. The wait between attempts starts at delay and
// doubles each time. Cancelling ctx during a wait returns ctx.Err(); fn
// itself is responsible for honoring the context while it runs.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; ; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !errors.As(err, new(*RetryableError)) || attempt == attempts {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}

// RetryWithBackoff is [Retry] with the defaults used across the CLI:
// 3 attempts starting at a 1 second delay.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, time.Second, fn)
}
