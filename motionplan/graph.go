package motionplan

import (
	"sync"

	"github.com/tobiaskohlbau/RobotMotionPlanner/motionplan/kdtree"
)

// Graph holds every Node a planner has created so far and answers
// nearest/range queries against their configurations through a kdtree.Tree,
// grounded directly on original_source/include/core/dataObj/Graph.hpp: nodes
// are appended to both a flat list and the tree, and every sortCount
// insertions the tree is rebuilt from scratch (sortTree) to keep nearest-
// neighbor queries from degrading as the unsorted incremental structure grows
// unbalanced.
//
// Per spec §5, AddNode is the graph's single mutation point and must be
// called by only one goroutine at a time (the planner's expand loop
// serializes writers itself); NearestNode/NearNodes/Nodes may be called
// concurrently with an in-flight AddNode without external locking beyond
// what Graph itself provides.
type Graph struct {
	mu        sync.Mutex
	nodes     []*Node
	tree      *kdtree.Tree
	sortCount int
	metric    kdtree.Metric
	dim       int
}

// NewGraph constructs an empty Graph over configurations of dimension dim,
// using metric for nearest/range comparisons. sortCount of 0 disables
// periodic rebuilds (every insertion only ever appends).
func NewGraph(dim int, metric kdtree.Metric, sortCount int) *Graph {
	return &Graph{
		tree:      kdtree.New(dim, metric),
		sortCount: sortCount,
		metric:    metric,
		dim:       dim,
	}
}

// AddNode appends node to the graph and its KD-tree index, rebuilding the
// tree (sortTree) once the node count is a positive multiple of sortCount.
// Must be serialized against other AddNode calls by the caller.
func (g *Graph) AddNode(node *Node) {
	g.tree.Add([]float64(node.Config), node)
	g.mu.Lock()
	g.nodes = append(g.nodes, node)
	n := len(g.nodes)
	g.mu.Unlock()

	if g.sortCount > 0 && n%g.sortCount == 0 {
		g.sortTree()
	}
}

// sortTree rebuilds the KD-tree from every node currently in the graph,
// producing a balanced tree in place of the unsorted incremental structure
// accumulated since the last rebuild.
func (g *Graph) sortTree() {
	g.mu.Lock()
	batch := make([]kdtree.Entry, len(g.nodes))
	for i, n := range g.nodes {
		batch[i] = kdtree.Entry{Config: []float64(n.Config), Value: n}
	}
	g.mu.Unlock()
	g.tree.Rebuild(batch)
}

// NearestNode returns the graph's node whose configuration is metric-nearest
// to config, excluding any node whose configuration is an exact match.
func (g *Graph) NearestNode(config Configuration) (*Node, bool) {
	v, _, ok := g.tree.Nearest([]float64(config))
	if !ok {
		return nil, false
	}
	return v.(*Node), true
}

// NearNodes returns every node within radius of config under trueMetric,
// excluding exact matches.
func (g *Graph) NearNodes(config Configuration, radius float64, trueMetric func(a, b []float64) float64) []*Node {
	entries := g.tree.Within([]float64(config), radius, trueMetric)
	out := make([]*Node, len(entries))
	for i, e := range entries {
		out[i] = e.Value.(*Node)
	}
	return out
}

// Nodes returns a snapshot of every node currently in the graph.
func (g *Graph) Nodes() []*Node {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]*Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Size returns the number of nodes currently in the graph.
func (g *Graph) Size() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.nodes)
}

// SortCount returns the configured rebuild interval; 0 means auto-sort is
// disabled.
func (g *Graph) SortCount() int { return g.sortCount }

// AutoSort reports whether periodic rebuilding is enabled.
func (g *Graph) AutoSort() bool { return g.sortCount > 0 }
