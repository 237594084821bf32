package resilience

import (
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerConfig describes when a breaker trips and how it recovers.
// A zero Threshold disables the consecutive-failure rule; a zero MinRequests
// disables the ratio rule.
type BreakerConfig struct {
	Name         string
	MaxRequests  uint32        // trial requests let through while half-open
	Interval     time.Duration // closed-state counter reset period, 0 never resets
	Timeout      time.Duration // open period before the first trial request
	Threshold    uint32
	FailureRatio float64
	MinRequests  uint32

	// IsSuccessful decides which errors count against the breaker.
	// nil counts every non-nil error.
	IsSuccessful func(err error) bool

	OnStateChange func(name string, from, to string)
}

// ReadyToTrip applies the trip rules to the current counts.
func (cfg BreakerConfig) ReadyToTrip(counts gobreaker.Counts) bool {
	if cfg.Threshold > 0 && counts.ConsecutiveFailures >= cfg.Threshold {
		return true
	}
	if cfg.MinRequests == 0 || counts.Requests < cfg.MinRequests {
		return false
	}
	return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
}

func (cfg BreakerConfig) settings() gobreaker.Settings {
	st := gobreaker.Settings{
		Name:         cfg.Name,
		MaxRequests:  cfg.MaxRequests,
		Interval:     cfg.Interval,
		Timeout:      cfg.Timeout,
		IsSuccessful: cfg.IsSuccessful,
		ReadyToTrip:  cfg.ReadyToTrip,
	}
	if hook := cfg.OnStateChange; hook != nil {
		st.OnStateChange = func(name string, from, to gobreaker.State) {
			hook(name, from.String(), to.String())
		}
	}
	return st
}

// NewBreaker builds a breaker guarding calls that return T.
func NewBreaker[T any](cfg BreakerConfig) *gobreaker.CircuitBreaker[T] {
	return gobreaker.NewCircuitBreaker[T](cfg.settings())
}

// Rejected reports whether err came from the breaker refusing the call,
// as opposed to an error returned by the call itself.
func Rejected(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
