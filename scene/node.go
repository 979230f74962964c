package scene

// Flag is a tri-state toggle used for per-node interpolation policy.
// The zero value inherits the resolver's default
type Flag uint8

const (
	FlagInherit Flag = iota
	FlagOn
	FlagOff
)

// WrapRange configures positional wraparound for a node. A positive X or Y
// makes deltas on that axis fold to the shortest path around the range,
// so motion across the seam blends the short way
type WrapRange struct {
	X float64
	Y float64
}

// Node is a visual element in the scene tree. The interpolator holds only
// non-owning references to nodes; the host may destroy a node at any time
// and the interpolator releases its slot lazily on the next pass
type Node struct {
	X, Y           float64
	ScaleX, ScaleY float64
	Rotation       float64
	Opacity        float64

	Visible   bool
	Destroyed bool

	// Smooth opts the node in or out of interpolation. FlagInherit defers
	// to the resolver's default predicate, evaluated once and cached
	Smooth Flag

	// SmoothChildren controls whether the subtree is walked independently
	// of the node's own eligibility. FlagInherit follows the node
	SmoothChildren Flag

	// Wrap, when set, enables positional wraparound folding
	Wrap *WrapRange

	Children []*Node

	// SmoothList, when non-nil, replaces Children for interpolation
	// traversal only
	SmoothList []*Node

	// Interpolator bookkeeping. Managed through the accessor methods
	// below; hosts must not touch these. slotPlusOne is 0 when no slot is
	// assigned so the zero-value Node starts untracked
	slotPlusOne int
	seenPass    uint64
	smoothCache Flag
}

// NewNode returns a visible node with identity transform and full opacity
func NewNode() *Node {
	return &Node{
		ScaleX:  1,
		ScaleY:  1,
		Opacity: 1,
		Visible: true,
	}
}

// AddChild appends c to the node's children and returns c
func (n *Node) AddChild(c *Node) *Node {
	n.Children = append(n.Children, c)
	return c
}

// Destroy marks the node and its entire subtree destroyed. Destroyed
// nodes are permanently excluded from interpolation and their slots are
// reclaimed on the next capture, blend, or restore pass
func (n *Node) Destroy() {
	if n.Destroyed {
		return
	}
	n.Destroyed = true
	for _, c := range n.Children {
		c.Destroy()
	}
}

// TrackSlot returns the node's snapshot-buffer slot, or -1 when untracked
func (n *Node) TrackSlot() int {
	return n.slotPlusOne - 1
}

// SetTrackSlot records the node's snapshot-buffer slot assignment.
// Pass -1 to clear
func (n *Node) SetTrackSlot(slot int) {
	n.slotPlusOne = slot + 1
}

// MarkSeen stamps the node as visited by the given capture pass
func (n *Node) MarkSeen(pass uint64) {
	n.seenPass = pass
}

// SeenPass returns the capture pass that last visited the node
func (n *Node) SeenPass() uint64 {
	return n.seenPass
}

// CachedSmooth returns the memoized default-eligibility result and
// whether one has been computed
func (n *Node) CachedSmooth() (smooth, known bool) {
	switch n.smoothCache {
	case FlagOn:
		return true, true
	case FlagOff:
		return false, true
	}
	return false, false
}

// CacheSmooth memoizes the default-eligibility result so the resolver
// predicate runs at most once per node lifetime
func (n *Node) CacheSmooth(smooth bool) {
	if smooth {
		n.smoothCache = FlagOn
	} else {
		n.smoothCache = FlagOff
	}
}

// InvalidateSmoothCache clears the memoized eligibility so the resolver
// predicate is re-evaluated on the next capture
func (n *Node) InvalidateSmoothCache() {
	n.smoothCache = FlagInherit
}
