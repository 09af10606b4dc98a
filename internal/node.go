package internal

// NodeFlags tracks scheduling state bits for a reactive node.
type NodeFlags int

const (
	FlagNone   NodeFlags = 0
	FlagInHeap NodeFlags = 1 << 0 // node is currently in heap
	FlagPaused NodeFlags = 1 << 1 // computed is paused; recompute is suppressed
	FlagStale  NodeFlags = 1 << 2 // computed is flagged dirty; recompute deferred to next read
)

// ReactiveNode is the scheduling-only base embedded by Computed: it carries
// the height used for topological ordering in the PriorityHeap and the
// function the heap invokes when the node is drained. The dependency graph
// itself (Signal <-> Computed edges) is typed directly on Signal/Computed
// in signal.go, computed.go and link.go rather than on this generic base.
type ReactiveNode struct {
	// called whenever the node is dirty and the scheduler drains it
	fn func()

	// the current height of the node in the dependency graph
	height int

	// the node's scheduling state
	flags NodeFlags
}

func (r *Runtime) NewNode() *ReactiveNode {
	return &ReactiveNode{}
}

// HasFlag checks if the given flag is set
func (n *ReactiveNode) HasFlag(flag NodeFlags) bool {
	return n.flags&flag != 0
}

// AddFlag adds the given flag
func (n *ReactiveNode) AddFlag(flag NodeFlags) {
	n.flags |= flag
}

// RemoveFlag removes the given flag
func (n *ReactiveNode) RemoveFlag(flag NodeFlags) {
	n.flags &^= flag
}

// SetFlags sets the flags to exact value
func (n *ReactiveNode) SetFlags(flags NodeFlags) {
	n.flags = flags
}

func (n *ReactiveNode) GetHeight() int {
	return n.height
}
