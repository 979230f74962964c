package interp

import (
	"github.com/venlott/smoothtick/scene"
)

// Capture rebuilds the tracked set from scratch by walking the tree from
// root in depth-first pre-order, writing every eligible node's current
// transform into the previous snapshot. Nodes tracked by the prior pass
// but not re-visited are released during tail cleanup
func (t *Tracker) Capture(root *scene.Node) {
	t.pass++
	t.reported = false

	prior := t.tracked
	t.tracked = t.spare[:0]

	if root != nil {
		t.walk(root)
	}

	// Tail cleanup: anything the prior pass tracked that this pass did
	// not re-visit has gone stale
	for i, n := range prior {
		if n.SeenPass() != t.pass {
			t.Release(n)
		}
		prior[i] = nil
	}
	t.spare = prior[:0]
}

func (t *Tracker) walk(n *scene.Node) {
	if n.Destroyed {
		// The subtree is skipped entirely; slot release happens lazily on
		// a later pass
		return
	}

	self, children := t.resolve(n)
	if self {
		t.track(n)
	}
	if !children {
		return
	}

	kids := n.Children
	if n.SmoothList != nil {
		kids = n.SmoothList
	}
	for _, c := range kids {
		t.walk(c)
	}
}

// resolve evaluates the node's tri-state eligibility and the separate
// children-eligibility that gates subtree traversal. The default
// predicate result is memoized on the node so it runs at most once per
// node lifetime
func (t *Tracker) resolve(n *scene.Node) (self, children bool) {
	switch n.Smooth {
	case scene.FlagOn:
		self = true
	case scene.FlagOff:
		self = false
	default:
		if v, known := n.CachedSmooth(); known {
			self = v
		} else {
			self = t.cfg.Eligible(n)
			n.CacheSmooth(self)
		}
	}

	children = self
	switch n.SmoothChildren {
	case scene.FlagOn:
		children = true
	case scene.FlagOff:
		children = false
	}
	return self, children
}

func (t *Tracker) track(n *scene.Node) {
	slot := n.TrackSlot()
	if slot < 0 || slot >= t.capacity || t.bySlot[slot] != n {
		slot = t.acquire(n)
		if slot < 0 {
			// Buffer exhausted; the node is presented unblended this frame
			return
		}
	}

	n.MarkSeen(t.pass)
	t.prevX[slot] = n.X
	t.prevY[slot] = n.Y
	t.prevSX[slot] = n.ScaleX
	t.prevSY[slot] = n.ScaleY
	t.prevRot[slot] = n.Rotation
	t.prevOp[slot] = n.Opacity
	t.tracked = append(t.tracked, n)
}
