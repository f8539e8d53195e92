package motionplan

import "github.com/google/uuid"

// Node is one vertex of a planner's tree or roadmap: a configuration plus the
// bookkeeping needed to walk a path back to the root and to propagate cost
// changes during rewiring, per spec §3's Node invariants:
//  1. pathCost == parent.pathCost + edgeCost whenever parent != nil.
//  2. parent == nil iff the node is a root.
//  3. a node appears in parent.children iff parent.children were populated
//     through Attach/Reparent rather than mutated directly.
//  4. the parent chain never cycles (enforced structurally: Attach only ever
//     takes a parent already reachable from a tree's root).
//
// Grounded on original_source/include/core/dataObj/Graph.hpp's Node
// ownership model (a shared_ptr graph of nodes reachable from roots kept by
// the Graph), expressed with plain pointers since Go's GC does not need the
// shared_ptr reference-counting discipline the original relies on.
type Node struct {
	ID            uuid.UUID
	Config        Configuration
	parent        *Node
	children      map[*Node]struct{}
	edgeCost      float64
	pathCost      float64
	tree          int // which tree (0 or 1) this node belongs to, for RRT*-Connect
}

// NewNode constructs a root node (no parent, zero cost) for config.
func NewNode(config Configuration) *Node {
	return &Node{
		ID:       uuid.New(),
		Config:   config,
		children: make(map[*Node]struct{}),
	}
}

// Parent returns the node's parent, or nil if it is a root.
func (n *Node) Parent() *Node { return n.parent }

// PathCost returns the accumulated cost from the node's tree root to n.
func (n *Node) PathCost() float64 { return n.pathCost }

// EdgeCost returns the cost of the single edge from n's parent to n. Zero for
// root nodes.
func (n *Node) EdgeCost() float64 { return n.edgeCost }

// Children returns the set of n's direct children as a slice snapshot.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, len(n.children))
	for c := range n.children {
		out = append(out, c)
	}
	return out
}

// Tree returns the tree index (0 or 1) this node belongs to; always 0 for
// single-tree planners (RRT, RRT*, PRM).
func (n *Node) Tree() int { return n.tree }

// SetTree sets the tree index, used by RRT*-Connect to tag which of its two
// trees a node was created in.
func (n *Node) SetTree(tree int) { n.tree = tree }

// Attach makes parent the node's parent with the given edge cost, updating
// pathCost and both nodes' children sets. parent must not be nil; use
// NewNode directly for roots. Attach must only ever be called with a parent
// already reachable from a root (invariant 4) — callers (expand, rewire) are
// responsible for this; Attach itself does not search for cycles.
func (n *Node) Attach(parent *Node, edgeCost float64) {
	if n.parent != nil {
		delete(n.parent.children, n)
	}
	n.parent = parent
	n.edgeCost = edgeCost
	n.pathCost = parent.pathCost + edgeCost
	if parent.children == nil {
		parent.children = make(map[*Node]struct{})
	}
	parent.children[n] = struct{}{}
}

// Reparent re-attaches n to newParent with a new edge cost, as RRT*'s rewire
// step does, and returns the resulting delta in n's pathCost so the caller
// can propagate it to n's descendants.
func (n *Node) Reparent(newParent *Node, edgeCost float64) float64 {
	oldCost := n.pathCost
	n.Attach(newParent, edgeCost)
	return n.pathCost - oldCost
}

// ApplyCostDelta adjusts n's cached pathCost by delta without changing its
// parent/edge — used by rewire's subtree propagation (§9 design note, BFS
// over descendants) to keep descendants' cached costs consistent after their
// ancestor's edge cost changes.
func (n *Node) ApplyCostDelta(delta float64) {
	n.pathCost += delta
}

// Descendants returns every node transitively reachable from n via children,
// via breadth-first traversal, not including n itself. Used by rewire to
// propagate a cost delta to the whole affected subtree rather than only n's
// immediate children.
func (n *Node) Descendants() []*Node {
	var out []*Node
	queue := n.Children()
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		out = append(out, cur)
		queue = append(queue, cur.Children()...)
	}
	return out
}
