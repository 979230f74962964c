package engine

import (
	"time"

	"github.com/venlott/smoothtick/parameter"
	"github.com/venlott/smoothtick/vmath"
)

// RateSampler counts occurrences over a sampling window and reports the
// rounded per-second rate when it changes. Used for device attempt rate,
// effective presentation rate, and simulation step rate
type RateSampler struct {
	interval  time.Duration
	precision float64

	windowStart time.Time
	count       int
	started     bool
	rate        float64

	// onChange receives the new rounded rate; it must not block
	onChange func(rate float64)
}

// NewRateSampler creates a sampler. Non-positive interval or precision
// fall back to the defaults
func NewRateSampler(interval time.Duration, precision float64, onChange func(float64)) *RateSampler {
	if interval <= 0 {
		interval = parameter.DefaultRateInterval
	}
	if precision <= 0 {
		precision = parameter.DefaultRatePrecision
	}
	return &RateSampler{
		interval:  interval,
		precision: precision,
		onChange:  onChange,
	}
}

// Sample records one occurrence at now. At the end of each window the
// rate is recomputed; a change beyond the rounding precision fires the
// callback
func (s *RateSampler) Sample(now time.Time) {
	if !s.started {
		s.started = true
		s.windowStart = now
		return
	}
	s.count++

	span := now.Sub(s.windowStart)
	if span < s.interval {
		return
	}

	rate := vmath.Round(float64(s.count)/span.Seconds(), s.precision)
	s.count = 0
	s.windowStart = now

	if rate != s.rate {
		s.rate = rate
		if s.onChange != nil {
			s.onChange(rate)
		}
	}
}

// Rate returns the most recently sampled rate
func (s *RateSampler) Rate() float64 {
	return s.rate
}

// Reset discards the current window and rate
func (s *RateSampler) Reset() {
	s.started = false
	s.count = 0
	s.rate = 0
}
