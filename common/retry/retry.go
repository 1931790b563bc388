// Package retry retries transient runtime calls with exponential backoff.
//
// Usage:
//
//	err := retry.Do(ctx, retry.Config{Name: "list", MaxAttempts: 3}, func() error {
//	    return lister.List(ctx)
//	})
package retry

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Config controls the retry behaviour.
type Config struct {
	// Name labels log lines for this call site.
	Name string
	// MaxAttempts is the total number of attempts (including the first).
	// Zero or negative values mean a single attempt.
	MaxAttempts int
	// InitialDelay is the wait before the second attempt; it doubles after
	// every failure up to MaxDelay.
	InitialDelay time.Duration
	// MaxDelay caps the per-attempt wait.
	MaxDelay time.Duration
	// ShouldRetry classifies errors as retryable. When nil every error except
	// context cancellation is retried.
	ShouldRetry func(err error) bool
}

// DefaultConfig suits a local engine socket: a few quick attempts.
var DefaultConfig = Config{
	MaxAttempts:  3,
	InitialDelay: 200 * time.Millisecond,
	MaxDelay:     2 * time.Second,
}

// Do calls fn until it succeeds, the attempts run out, the error is not
// retryable, or ctx is done. The error from the last attempt is returned,
// joined with the context error when the context ended the loop.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = DefaultConfig.InitialDelay
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = DefaultConfig.MaxDelay
	}
	shouldRetry := cfg.ShouldRetry
	if shouldRetry == nil {
		shouldRetry = Retryable
	}

	delay := cfg.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return errors.Join(lastErr, err)
		}

		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if !shouldRetry(lastErr) || attempt == cfg.MaxAttempts {
			return lastErr
		}

		slog.Debug("retry: attempt failed",
			"name", cfg.Name, "attempt", attempt, "max", cfg.MaxAttempts,
			"err", lastErr, "delay", delay)

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return errors.Join(lastErr, ctx.Err())
		case <-t.C:
		}

		delay = min(delay*2, cfg.MaxDelay)
	}

	return lastErr
}

// Retryable is the default predicate: everything but cancellation.
func Retryable(err error) bool {
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
