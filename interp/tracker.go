package interp

import (
	"github.com/venlott/smoothtick/scene"
)

// Tracker owns the transform snapshot buffer and its slot allocator.
//
// The buffer is structure-of-arrays: two snapshots (previous, shadow) of
// six properties each, indexed by slot. Slots are stable per node for as
// long as the node stays tracked; released slots are recycled through a
// free list. Growth doubles capacity up to the configured maximum with a
// bulk copy, so steady-state passes perform no heap allocation.
//
// Tracker is not safe for concurrent use. The cycle driver is its only
// mutator and runs capture, blend, and restore to completion on one
// goroutine
type Tracker struct {
	cfg Config

	// previous snapshot, written during capture
	prevX, prevY     []float64
	prevSX, prevSY   []float64
	prevRot, prevOp  []float64

	// shadow snapshot, true values recorded during blend
	shadX, shadY     []float64
	shadSX, shadSY   []float64
	shadRot, shadOp  []float64

	bySlot   []*scene.Node // reverse mapping, slot -> node
	free     []int
	next     int // first never-assigned slot
	capacity int

	// dense tracked list rebuilt by every capture pass; spare is the
	// previous pass's backing array, kept to avoid reallocating
	tracked []*scene.Node
	spare   []*scene.Node
	pass    uint64

	// dirty marks that blend has overwritten live node properties and a
	// restore is pending
	dirty bool

	// capacity diagnostic throttle, reset per capture pass
	reported bool
}

// NewTracker allocates a tracker sized to cfg
func NewTracker(cfg Config) *Tracker {
	cfg.normalize()
	t := &Tracker{cfg: cfg}
	t.alloc(cfg.InitialCapacity)
	t.tracked = make([]*scene.Node, 0, cfg.InitialCapacity)
	t.spare = make([]*scene.Node, 0, cfg.InitialCapacity)
	return t
}

func (t *Tracker) alloc(capacity int) {
	grown := func(old []float64) []float64 {
		s := make([]float64, capacity)
		copy(s, old)
		return s
	}
	t.prevX, t.prevY = grown(t.prevX), grown(t.prevY)
	t.prevSX, t.prevSY = grown(t.prevSX), grown(t.prevSY)
	t.prevRot, t.prevOp = grown(t.prevRot), grown(t.prevOp)
	t.shadX, t.shadY = grown(t.shadX), grown(t.shadY)
	t.shadSX, t.shadSY = grown(t.shadSX), grown(t.shadSY)
	t.shadRot, t.shadOp = grown(t.shadRot), grown(t.shadOp)

	nodes := make([]*scene.Node, capacity)
	copy(nodes, t.bySlot)
	t.bySlot = nodes
	t.capacity = capacity
}

// acquire assigns a slot to n, recycling from the free list before
// extending, and growing the buffer when exhausted. Returns -1 when the
// buffer is at maximum capacity
func (t *Tracker) acquire(n *scene.Node) int {
	if last := len(t.free) - 1; last >= 0 {
		slot := t.free[last]
		t.free = t.free[:last]
		t.bySlot[slot] = n
		n.SetTrackSlot(slot)
		return slot
	}
	if t.next >= t.capacity {
		if !t.grow() {
			t.reportCapacity(n)
			return -1
		}
	}
	slot := t.next
	t.next++
	t.bySlot[slot] = n
	n.SetTrackSlot(slot)
	return slot
}

func (t *Tracker) grow() bool {
	if t.capacity >= t.cfg.MaxCapacity {
		return false
	}
	capacity := t.capacity * 2
	if capacity > t.cfg.MaxCapacity {
		capacity = t.cfg.MaxCapacity
	}
	t.alloc(capacity)
	return true
}

func (t *Tracker) reportCapacity(n *scene.Node) {
	if t.reported {
		return
	}
	t.reported = true
	if t.cfg.OnCapacityExceeded != nil {
		t.cfg.OnCapacityExceeded(n)
	}
}

// Release returns n's slot to the free list and clears the node's
// assignment. Releasing an untracked or already-released node is a no-op
func (t *Tracker) Release(n *scene.Node) {
	slot := n.TrackSlot()
	if slot < 0 || slot >= t.capacity || t.bySlot[slot] != n {
		return
	}
	t.bySlot[slot] = nil
	n.SetTrackSlot(-1)
	t.free = append(t.free, slot)
}

// Tracked returns the number of nodes captured by the latest pass
func (t *Tracker) Tracked() int {
	return len(t.tracked)
}

// Capacity returns the current slot capacity of the buffer
func (t *Tracker) Capacity() int {
	return t.capacity
}
