package interp

import (
	"github.com/venlott/smoothtick/parameter"
	"github.com/venlott/smoothtick/scene"
)

// Config controls snapshot buffer sizing, per-property delta clamps, and
// the default eligibility policy. The zero value is usable; normalize
// fills in defaults and repairs malformed values instead of rejecting them
type Config struct {
	// InitialCapacity is the slot count allocated up front
	InitialCapacity int

	// MaxCapacity bounds geometric growth. Nodes registered beyond it are
	// excluded from interpolation for the frame, not an error
	MaxCapacity int

	// Per-property delta clamps. A captured delta whose magnitude exceeds
	// the clamp leaves that property at its true value for the frame,
	// hiding teleports and respawns. Set a clamp to +Inf to disable it;
	// non-positive values fall back to the defaults
	MaxDeltaPosition float64
	MaxDeltaScale    float64
	MaxDeltaRotation float64
	MaxDeltaOpacity  float64

	// Eligible decides participation for nodes whose Smooth flag is
	// FlagInherit. Evaluated at most once per node and memoized on it.
	// Defaults to visibility
	Eligible func(*scene.Node) bool

	// OnCapacityExceeded is invoked once per capture pass with the first
	// node refused because the buffer is at MaxCapacity. Optional
	OnCapacityExceeded func(*scene.Node)
}

func (c *Config) normalize() {
	if c.InitialCapacity <= 0 {
		c.InitialCapacity = parameter.DefaultInitialCapacity
	}
	if c.MaxCapacity <= 0 {
		c.MaxCapacity = parameter.DefaultMaxCapacity
	}
	if c.MaxCapacity < c.InitialCapacity {
		c.MaxCapacity = c.InitialCapacity
	}
	if c.MaxDeltaPosition <= 0 {
		c.MaxDeltaPosition = parameter.DefaultMaxDeltaPosition
	}
	if c.MaxDeltaScale <= 0 {
		c.MaxDeltaScale = parameter.DefaultMaxDeltaScale
	}
	if c.MaxDeltaRotation <= 0 {
		c.MaxDeltaRotation = parameter.DefaultMaxDeltaRotation
	}
	if c.MaxDeltaOpacity <= 0 {
		c.MaxDeltaOpacity = parameter.DefaultMaxDeltaOpacity
	}
	if c.Eligible == nil {
		c.Eligible = func(n *scene.Node) bool { return n.Visible }
	}
}
