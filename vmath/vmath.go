package vmath

import "math"

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates linearly from a toward b by t
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// WrapDelta folds delta into the shortest signed path around a cyclic
// range of width rng, so motion across the wrap seam interpolates the
// short way. rng must be positive
func WrapDelta(delta, rng float64) float64 {
	half := rng / 2
	return math.Mod(math.Mod(delta+half, rng)+rng, rng) - half
}

// AngleDelta folds an angular delta into (-π, π]
func AngleDelta(delta float64) float64 {
	d := math.Mod(delta, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// Round quantizes v to the nearest multiple of step. A non-positive step
// returns v unchanged
func Round(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Round(v/step) * step
}
