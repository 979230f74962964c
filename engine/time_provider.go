package engine

import "time"

// TimeProvider abstracts the monotonic time source driving the loop,
// so tests can substitute a controllable clock
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the real system clock with monotonic
// readings
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a new monotonic time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}
