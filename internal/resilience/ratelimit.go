package resilience

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter paces outgoing requests to a fixed number per minute.
// A nil *Limiter never blocks.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter returns a limiter allowing perMinute requests per minute with
// the given burst. It returns nil when perMinute is not positive.
func NewLimiter(perMinute, burst int) *Limiter {
	if perMinute <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	every := time.Minute / time.Duration(perMinute)
	return &Limiter{limiter: rate.NewLimiter(rate.Every(every), burst)}
}

// Wait blocks until a request may proceed or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}
	return l.limiter.Wait(ctx)
}
