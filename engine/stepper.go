package engine

import (
	"time"

	"github.com/venlott/smoothtick/parameter"
	"github.com/venlott/smoothtick/vmath"
)

// FixedStepper converts variable elapsed wall-clock time into zero or
// more fixed simulation steps plus a normalized blend factor for the
// frame about to be presented.
//
// Catch-up policy: elapsed time is clamped to the frame-debt ceiling
// before accumulation, so a long stall (for example a suspended process)
// costs at most maxDebt worth of catch-up steps and the rest of the real
// time is dropped rather than spiraling
type FixedStepper struct {
	step        time.Duration
	speed       float64
	maxDebt     time.Duration
	accumulated time.Duration
}

// NewFixedStepper creates a stepper with the given nominal step, speed
// multiplier, and frame-debt ceiling. Malformed values are normalized:
// non-positive step falls back to the default, negative speed becomes
// zero, non-positive debt becomes the default multiple of the step
func NewFixedStepper(step time.Duration, speed float64, maxDebt time.Duration) *FixedStepper {
	if step <= 0 {
		step = parameter.DefaultStep
	}
	if speed < 0 {
		speed = 0
	}
	if maxDebt <= 0 {
		maxDebt = parameter.DefaultMaxFrameDebtSteps * step
	}
	return &FixedStepper{step: step, speed: speed, maxDebt: maxDebt}
}

// Advance scales elapsed by the speed multiplier, accumulates it, and
// reports how many fixed steps are due plus the fractional progress
// toward the next step in [0, 1]
func (s *FixedStepper) Advance(elapsed time.Duration) (steps int, blend float64) {
	if elapsed < 0 {
		elapsed = 0
	}
	scaled := time.Duration(float64(elapsed) * s.speed)
	if limit := time.Duration(float64(s.maxDebt) * s.speed); scaled > limit {
		scaled = limit
	}
	s.accumulated += scaled

	for s.accumulated >= s.step {
		s.accumulated -= s.step
		steps++
	}
	blend = vmath.Clamp(float64(s.accumulated)/float64(s.step), 0, 1)
	return steps, blend
}

// Step returns the nominal step delivered to the simulation callback.
// The speed multiplier rescales the rate of steps, never this size
func (s *FixedStepper) Step() time.Duration {
	return s.step
}

// Speed returns the current speed multiplier
func (s *FixedStepper) Speed() float64 {
	return s.speed
}

// SetSpeed updates the speed multiplier; negative values are clamped to
// zero, which freezes step production
func (s *FixedStepper) SetSpeed(speed float64) {
	if speed < 0 {
		speed = 0
	}
	s.speed = speed
}

// Reset drops all accumulated frame debt
func (s *FixedStepper) Reset() {
	s.accumulated = 0
}
