package scrape

import (
	"context"
	"time"

	"github.com/fwojciec/shopinsight"
)

// DefaultRetryDelays returns the backoff delays between batch attempts
// for an unreachable store: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Retryable reports whether a failed extraction is worth another attempt.
// Only unreachable stores are retried; extraction failures are deterministic.
func Retryable(err error) bool {
	return shopinsight.ErrorCode(err) == shopinsight.EUNREACHABLE
}

// withRetry calls fn until it succeeds, returns a non-retryable error, or
// delays are exhausted. onRetry, if set, is called before each wait.
func withRetry[T any](ctx context.Context, delays []time.Duration, fn func(context.Context) (T, error), onRetry func(attempt int, err error)) (T, error) {
	var zero T
	for attempt := 0; ; attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		if attempt >= len(delays) || !Retryable(err) {
			return zero, err
		}

		if onRetry != nil {
			onRetry(attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}
}
