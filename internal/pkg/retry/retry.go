// Package retry runs an operation under a fixed attempt budget with a
// caller-supplied delay schedule and retryable-condition predicate.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Policy describes how an operation is retried.
type Policy struct {
	// Attempts is the total number of tries, including the first one.
	Attempts int
	// Delay returns the wait after failed attempt n (0-based).
	Delay func(attempt int) time.Duration
	// Retryable reports whether err may be retried. Nil retries everything.
	Retryable func(err error) bool
	// Sleep overrides how waits are performed (useful for tests).
	Sleep func(ctx context.Context, d time.Duration) error
	// OnRetry is called before each wait.
	OnRetry func(attempt int, delay time.Duration, err error)
}

// Exponential returns a schedule of base * 2^attempt.
func Exponential(base time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		if attempt < 0 {
			attempt = 0
		}
		return base * time.Duration(1<<uint(attempt))
	}
}

// Do calls fn until it succeeds, returns a non-retryable error, or the
// attempt budget is spent. The error from the final attempt is returned as is.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context, attempt int) error) error {
	if fn == nil {
		return errors.New("retry: nil operation")
	}
	attempts := p.Attempts
	if attempts <= 0 {
		attempts = 1
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		err = fn(ctx, attempt)
		if err == nil {
			return nil
		}
		if attempt == attempts-1 {
			break
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}
		var delay time.Duration
		if p.Delay != nil {
			delay = p.Delay(attempt)
		}
		if p.OnRetry != nil {
			p.OnRetry(attempt, delay, err)
		}
		if sleepErr := p.sleep(ctx, delay); sleepErr != nil {
			return fmt.Errorf("retry wait interrupted: %w (last error: %v)", sleepErr, err)
		}
	}
	return err
}

func (p Policy) sleep(ctx context.Context, d time.Duration) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}
	return SleepContext(ctx, d)
}

// SleepContext waits for d or until ctx is done.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
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
