package engine

import (
	"time"

	"github.com/venlott/smoothtick/vmath"
)

// FrameClock measures elapsed wall-clock time between presentation
// attempts and enforces an optional maximum presentation rate.
// Mutated only by the ticker's own goroutine
type FrameClock struct {
	provider      TimeProvider
	last          time.Time
	lastPresented time.Time

	// minInterval is the floor between actual presentations; zero means
	// unlimited. tolerance forgives a fraction of the interval so a frame
	// arriving marginally early is not pushed a whole attempt later
	minInterval time.Duration
	tolerance   float64
}

// NewFrameClock creates a clock on the given provider. maxFPS <= 0 means
// unlimited; tolerance is clamped to [0, 1]
func NewFrameClock(provider TimeProvider, maxFPS, tolerance float64) *FrameClock {
	c := &FrameClock{provider: provider}
	c.SetMaxFPS(maxFPS, tolerance)
	c.Reset()
	return c
}

// Reset records the current time as the baseline for both elapsed
// measurement and throttling
func (c *FrameClock) Reset() {
	now := c.provider.Now()
	c.last = now
	c.lastPresented = now
}

// Elapsed returns the time since the previous attempt and the current
// reading, advancing the baseline
func (c *FrameClock) Elapsed() (time.Duration, time.Time) {
	now := c.provider.Now()
	d := now.Sub(c.last)
	c.last = now
	if d < 0 {
		d = 0
	}
	return d, now
}

// ShouldPresent reports whether enough time has passed since the last
// actual presentation to present again
func (c *FrameClock) ShouldPresent(now time.Time) bool {
	if c.minInterval <= 0 {
		return true
	}
	threshold := c.minInterval - time.Duration(float64(c.minInterval)*c.tolerance)
	return now.Sub(c.lastPresented) >= threshold
}

// MarkPresented records an actual presentation at now
func (c *FrameClock) MarkPresented(now time.Time) {
	c.lastPresented = now
}

// SetMaxFPS reconfigures the throttle. Malformed values are normalized:
// negative rates mean unlimited, tolerance is clamped to [0, 1]
func (c *FrameClock) SetMaxFPS(maxFPS, tolerance float64) {
	if maxFPS > 0 {
		c.minInterval = time.Duration(float64(time.Second) / maxFPS)
	} else {
		c.minInterval = 0
	}
	c.tolerance = vmath.Clamp(tolerance, 0, 1)
}
