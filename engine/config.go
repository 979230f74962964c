package engine

import (
	"time"

	"github.com/venlott/smoothtick/interp"
	"github.com/venlott/smoothtick/parameter"
)

// Config wires a Ticker. The zero value is usable: malformed or missing
// fields are normalized to defaults rather than rejected
type Config struct {
	// Step is the nominal simulation step (default ~16.667 ms)
	Step time.Duration

	// Speed multiplies the rate at which steps come due without changing
	// the step size delivered to the simulation callback (default 1)
	Speed float64

	// MaxFrameDebt bounds catch-up work after a stall (default 3 steps)
	MaxFrameDebt time.Duration

	// MaxFPS throttles actual presentations; 0 means unlimited
	MaxFPS float64

	// FPSTolerance forgives frames arriving this fraction of the frame
	// interval early, in [0, 1]
	FPSTolerance float64

	// RateInterval and RatePrecision control rate sampling for
	// diagnostics events (defaults 1s, 1.0)
	RateInterval  time.Duration
	RatePrecision float64

	// Interp configures the snapshot buffer and eligibility policy
	Interp interp.Config

	// TimeProvider defaults to the monotonic system clock
	TimeProvider TimeProvider
}

func (c *Config) normalize() {
	if c.Step <= 0 {
		c.Step = parameter.DefaultStep
	}
	if c.Speed == 0 {
		c.Speed = parameter.DefaultSpeed
	}
	if c.Speed < 0 {
		c.Speed = 0
	}
	if c.MaxFrameDebt <= 0 {
		c.MaxFrameDebt = parameter.DefaultMaxFrameDebtSteps * c.Step
	}
	if c.MaxFPS < 0 {
		c.MaxFPS = 0
	}
	if c.RateInterval <= 0 {
		c.RateInterval = parameter.DefaultRateInterval
	}
	if c.RatePrecision <= 0 {
		c.RatePrecision = parameter.DefaultRatePrecision
	}
	if c.TimeProvider == nil {
		c.TimeProvider = NewMonotonicTimeProvider()
	}
}

// Hooks are optional callbacks around presentation. All run synchronously
// on the ticker goroutine in the documented order
type Hooks struct {
	// PrePresent runs after simulation steps with true values live
	PrePresent func(elapsed time.Duration)

	// Present runs with blended values live, just before the
	// presentation sink
	Present func(elapsed time.Duration, blend float64)

	// PostPresent runs after restore with true values live again
	PostPresent func(elapsed time.Duration)
}

// Observer receives loop lifecycle notifications, synchronously on the
// ticker goroutine. Implementations must be cheap; the Prometheus
// collector in the metrics package satisfies this
type Observer interface {
	StepExecuted()
	FramePresented(blend float64, tracked int)
	FrameSkipped()
	CapacityExceeded()
}
