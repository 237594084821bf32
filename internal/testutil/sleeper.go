package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/prilive-com/oshibot/internal/resilience"
)

// FakeSleeper records sleep calls without actually sleeping.
// Use this in tests to verify retry timing without real delays.
type FakeSleeper struct {
	mu    sync.Mutex
	calls []time.Duration
}

// Sleep records the duration without actually sleeping.
// Returns ctx.Err() if the context is already cancelled.
func (f *FakeSleeper) Sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		f.mu.Lock()
		f.calls = append(f.calls, d)
		f.mu.Unlock()
		return nil
	}
}

// Calls returns all recorded sleep durations.
func (f *FakeSleeper) Calls() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Duration{}, f.calls...)
}

// CallCount returns the number of sleep calls.
func (f *FakeSleeper) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// LastCall returns the most recent sleep duration.
// Returns 0 if no calls have been made.
func (f *FakeSleeper) LastCall() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return 0
	}
	return f.calls[len(f.calls)-1]
}

// Reset clears all recorded calls.
func (f *FakeSleeper) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = f.calls[:0]
}

// CancelingSleeper cancels a context instead of sleeping, to simulate a
// caller giving up during the rate-limit pause.
type CancelingSleeper struct {
	Cancel context.CancelFunc
}

// Sleep cancels and reports the resulting context error.
func (s CancelingSleeper) Sleep(ctx context.Context, _ time.Duration) error {
	s.Cancel()
	<-ctx.Done()
	return ctx.Err()
}

var (
	_ resilience.Sleeper = (*FakeSleeper)(nil)
	_ resilience.Sleeper = CancelingSleeper{}
)
