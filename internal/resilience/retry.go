package resilience

import (
	"context"
	"time"
)

// Sleeper abstracts time-based waiting for testing.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// RealSleeper uses actual time.
type RealSleeper struct{}

// Sleep waits for d or until ctx is done.
func (RealSleeper) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RetryConfig describes the fixed retry policy: at most one extra attempt
// after a constant delay. There is no backoff and no jitter.
type RetryConfig struct {
	Enabled bool
	Delay   time.Duration
}

// RetryOnce calls fn, and when retry reports that the successful result
// should be retried and cfg is enabled, pauses cfg.Delay through sleeper and
// calls fn exactly once more. Errors from fn are returned without a retry.
// If the pause is interrupted the sleeper's error is returned along with the
// first result.
//
// onRetry, if non-nil, runs just before the pause.
func RetryOnce[T any](
	ctx context.Context,
	cfg RetryConfig,
	sleeper Sleeper,
	fn func(attempt int) (T, error),
	retry func(T) bool,
	onRetry func(wait time.Duration),
) (T, error) {
	result, err := fn(1)
	if err != nil || !cfg.Enabled || !retry(result) {
		return result, err
	}

	if onRetry != nil {
		onRetry(cfg.Delay)
	}
	if err := sleeper.Sleep(ctx, cfg.Delay); err != nil {
		return result, err
	}

	return fn(2)
}
