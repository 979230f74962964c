package parameter

import "time"

// Loop & Scheduler Timing
const (
	// DefaultStep is the nominal simulation step delivered to the update
	// callback (~60 steps per second)
	DefaultStep = 16667 * time.Microsecond

	// DefaultSpeed is the simulation speed multiplier
	DefaultSpeed = 1.0

	// DefaultMaxFrameDebtSteps bounds catch-up work after a stall to this
	// many fixed steps' worth of real time; excess debt is dropped
	DefaultMaxFrameDebtSteps = 3

	// AttemptInterval is the scheduling granularity of presentation
	// attempts; throttling to a max frame rate happens on top of this
	AttemptInterval = 2 * time.Millisecond

	// DefaultRateInterval is the window over which frame/update rates are
	// sampled before a rate-change event may be emitted
	DefaultRateInterval = time.Second

	// DefaultRatePrecision is the rounding granularity of reported rates;
	// changes smaller than this do not emit events
	DefaultRatePrecision = 1.0
)

// Event Queue Sizing
const (
	// EventQueueSize is the fixed capacity of the diagnostics ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255
)
