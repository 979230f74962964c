package interp

import (
	"math"

	"github.com/venlott/smoothtick/vmath"
)

// Blend overwrites every tracked node's live properties with values
// interpolated between the previous snapshot and the node's current true
// values, by fractional progress t in [0, 1] (values outside are clamped).
//
// The true values are recorded into the shadow snapshot as they are read,
// so Restore can undo the overwrite after presentation. A property whose
// delta exceeds its configured clamp is left at its true value for the
// frame. Nodes destroyed since capture are released and skipped
func (t *Tracker) Blend(factor float64) {
	factor = vmath.Clamp(factor, 0, 1)

	for _, n := range t.tracked {
		if n.Destroyed {
			t.Release(n)
			continue
		}
		slot := n.TrackSlot()
		if slot < 0 {
			continue
		}

		// Record true values; blending below reads deltas against the
		// previous snapshot from these
		t.shadX[slot] = n.X
		t.shadY[slot] = n.Y
		t.shadSX[slot] = n.ScaleX
		t.shadSY[slot] = n.ScaleY
		t.shadRot[slot] = n.Rotation
		t.shadOp[slot] = n.Opacity

		dx := t.shadX[slot] - t.prevX[slot]
		dy := t.shadY[slot] - t.prevY[slot]
		if w := n.Wrap; w != nil {
			if w.X > 0 {
				dx = vmath.WrapDelta(dx, w.X)
			}
			if w.Y > 0 {
				dy = vmath.WrapDelta(dy, w.Y)
			}
		}
		if math.Abs(dx) <= t.cfg.MaxDeltaPosition {
			n.X = t.prevX[slot] + dx*factor
		}
		if math.Abs(dy) <= t.cfg.MaxDeltaPosition {
			n.Y = t.prevY[slot] + dy*factor
		}

		if d := t.shadSX[slot] - t.prevSX[slot]; math.Abs(d) <= t.cfg.MaxDeltaScale {
			n.ScaleX = t.prevSX[slot] + d*factor
		}
		if d := t.shadSY[slot] - t.prevSY[slot]; math.Abs(d) <= t.cfg.MaxDeltaScale {
			n.ScaleY = t.prevSY[slot] + d*factor
		}

		// Rotation always folds to the shortest arc
		if d := vmath.AngleDelta(t.shadRot[slot] - t.prevRot[slot]); math.Abs(d) <= t.cfg.MaxDeltaRotation {
			n.Rotation = t.prevRot[slot] + d*factor
		}

		if d := t.shadOp[slot] - t.prevOp[slot]; math.Abs(d) <= t.cfg.MaxDeltaOpacity {
			n.Opacity = t.prevOp[slot] + d*factor
		}
	}

	t.dirty = true
}

// Restore writes the shadow snapshot (the true values recorded by the
// last Blend) back onto every tracked node, undoing the temporary
// presentation overwrite so simulation logic never observes blended
// state. Safe to call unconditionally: it is a no-op unless a Blend is
// pending, and tolerates nodes destroyed in between
func (t *Tracker) Restore() {
	if !t.dirty {
		return
	}
	t.dirty = false

	for _, n := range t.tracked {
		if n.Destroyed {
			t.Release(n)
			continue
		}
		slot := n.TrackSlot()
		if slot < 0 {
			continue
		}
		n.X = t.shadX[slot]
		n.Y = t.shadY[slot]
		n.ScaleX = t.shadSX[slot]
		n.ScaleY = t.shadSY[slot]
		n.Rotation = t.shadRot[slot]
		n.Opacity = t.shadOp[slot]
	}
}
