package parameter

import "math"

// Snapshot Buffer Sizing
const (
	// DefaultInitialCapacity is the slot count allocated before first growth
	DefaultInitialCapacity = 256

	// DefaultMaxCapacity caps geometric buffer growth; nodes beyond it are
	// excluded from interpolation rather than grown for
	DefaultMaxCapacity = 4096
)

// Per-Property Delta Clamps
// A property whose captured delta exceeds its clamp is presented at its
// true value for that frame instead of being blended, which hides
// teleports and respawns from the interpolator
const (
	DefaultMaxDeltaPosition = 100.0
	DefaultMaxDeltaScale    = 1.0
	DefaultMaxDeltaRotation = math.Pi / 2
	DefaultMaxDeltaOpacity  = 0.5
)
