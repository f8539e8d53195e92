package motionplan

import (
	"sync"

	"github.com/edaniels/golog"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/tobiaskohlbau/RobotMotionPlanner/motionplan/env"
	"github.com/tobiaskohlbau/RobotMotionPlanner/motionplan/sampling"
	"github.com/tobiaskohlbau/RobotMotionPlanner/motionplan/validity"
)

// PRM implements the Probabilistic Roadmap planner of spec §4.9: a build
// phase samples valid configurations into an undirected roadmap, connecting
// each new node to every existing node within Radius whose connecting
// trajectory validates; a query phase attaches start and goal the same way
// and runs Dijkstra over the roadmap's edge-cost adjacency to extract a path.
//
// Grounded on original_source's PRM description (build/query split, "within
// radius, validate, add bidirectional edge with cost = metric distance") and
// on this repo's own Graph for the KD-tree-backed spatial index the build
// phase queries for each new node's candidate neighbors. The query phase's
// Dijkstra run is a direct use of `gonum.org/v1/gonum/graph/path.DijkstraFrom`
// over a `gonum.org/v1/gonum/graph/simple.WeightedUndirectedGraph`, per
// SPEC_FULL.md's domain-stack wiring — a real shortest-path implementation
// in place of a hand-rolled priority queue.
type PRM struct {
	Env     *env.Environment
	Options PlannerOptions
	Radius  float64      // connection radius: a new node attempts an edge to every existing node within Radius
	Logger  golog.Logger

	Graph *Graph // spatial index over roadmap node configurations

	mu        sync.Mutex
	edges     map[*Node]map[*Node]float64 // bidirectional adjacency, cost = Options.Metric.Dist
	ids       map[*Node]int64
	nodesByID map[int64]*Node
	nextID    int64
	samplers  []*sampling.Uniform
}

// NewPRM constructs an empty PRM over e with the given options and
// connection radius.
func NewPRM(e *env.Environment, o PlannerOptions, radius float64) *PRM {
	return &PRM{
		Env:       e,
		Options:   o,
		Radius:    radius,
		Logger:    golog.Global(),
		Graph:     newGraph(e, o),
		edges:     make(map[*Node]map[*Node]float64),
		ids:       make(map[*Node]int64),
		nodesByID: make(map[int64]*Node),
	}
}

// logger returns p.Logger, falling back to the global logger if unset.
func (p *PRM) logger() golog.Logger {
	if p.Logger == nil {
		return golog.Global()
	}
	return p.Logger
}

// workerSampler returns (creating if necessary) the i-th worker's private
// Uniform sampler, matching RRT.workerSampler's derived-seed scheme.
func (p *PRM) workerSampler(i int) *sampling.Uniform {
	p.mu.Lock()
	defer p.mu.Unlock()
	for len(p.samplers) <= i {
		seed := p.Options.SamplerSeed + int64(len(p.samplers))
		p.samplers = append(p.samplers, sampling.NewUniform(seed))
	}
	return p.samplers[i]
}

// Build grows the roadmap by n valid-configuration samples, partitioned
// across workers exactly as RRT.Expand partitions a batch, per spec §4.9
// step 1 ("sample n valid configurations, add to graph").
func (p *PRM) Build(n, workers int) error {
	if workers < 1 {
		workers = 1
	}
	p.logger().Debugf("building PRM roadmap: %d samples across %d workers, radius=%f", n, workers, p.Radius)
	per := n / workers
	rem := n % workers

	var eg errgroup.Group
	for w := 0; w < workers; w++ {
		count := per
		if w < rem {
			count++
		}
		worker := w
		eg.Go(func() error {
			return p.buildWorker(worker, count)
		})
	}
	return eg.Wait()
}

func (p *PRM) buildWorker(worker, count int) error {
	sampler := p.workerSampler(worker)
	lower, upper := p.Env.Bounds()
	req := validity.DefaultCollisionRequest()

	for i := 0; i < count; i++ {
		raw := sampler.Sample(lower, upper)
		if raw == nil {
			continue
		}
		cfg := Configuration(raw)
		valid, err := checkValid(p.Options.Checker, cfg, req)
		if err != nil {
			return err
		}
		if !valid {
			continue
		}
		if _, err := p.addRoadmapNode(cfg); err != nil {
			return err
		}
	}
	return nil
}

// addRoadmapNode inserts cfg as a new roadmap node and connects it to every
// existing node within Radius whose trajectory to it validates, per spec
// §4.9's "add an edge to each neighbor whose connecting trajectory is
// valid. Edges are stored as adjacency on the node (bidirectional, with
// cost = metric distance)." Returns the newly created node so callers that
// need to reference it directly (e.g. Query, for a config that may coincide
// exactly with the node just inserted) don't have to round-trip through
// Graph.NearestNode, which deliberately excludes exact-match configs.
func (p *PRM) addRoadmapNode(cfg Configuration) (*Node, error) {
	req := validity.DefaultCollisionRequest()
	neighbors := p.Graph.NearNodes(cfg, p.Radius, p.Options.Metric.Dist)

	p.mu.Lock()
	defer p.mu.Unlock()

	node := NewNode(cfg)
	p.registerNodeLocked(node)
	p.Graph.AddNode(node)

	for _, nbr := range neighbors {
		if nbr == node {
			continue
		}
		ok, err := checkTrajectoryValid(p.Options.Checker, p.Options.Discretize, nbr.Config, cfg, req)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		cost := p.Options.Metric.Dist([]float64(nbr.Config), []float64(cfg))
		p.addEdgeLocked(node, nbr, cost)
	}
	return node, nil
}

// registerNodeLocked assigns node a roadmap id. Must be called with p.mu held.
func (p *PRM) registerNodeLocked(node *Node) {
	id := p.nextID
	p.nextID++
	p.ids[node] = id
	p.nodesByID[id] = node
	p.edges[node] = make(map[*Node]float64)
}

// addEdgeLocked records a bidirectional roadmap edge. Must be called with
// p.mu held.
func (p *PRM) addEdgeLocked(a, b *Node, cost float64) {
	p.edges[a][b] = cost
	p.edges[b][a] = cost
}

// connectedLocked reports whether a and b are in the same connected
// component of the roadmap, via breadth-first search over edges. Must be
// called with p.mu held.
func (p *PRM) connectedLocked(a, b *Node) bool {
	if a == b {
		return true
	}
	visited := map[*Node]bool{a: true}
	queue := []*Node{a}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for nbr := range p.edges[cur] {
			if nbr == b {
				return true
			}
			if !visited[nbr] {
				visited[nbr] = true
				queue = append(queue, nbr)
			}
		}
	}
	return false
}

// PathExists implements the PathExists callback PRMPose expects (spec §4.8):
// true once the roadmap nodes nearest start and goal share a connected
// component. It does not mutate the roadmap — Query performs the actual
// start/goal attachment once PathExists (or the caller's own budget) says to
// stop expanding.
func (p *PRM) PathExists(_ *Graph, start, goal Configuration) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	sNode, ok1 := p.Graph.NearestNode(start)
	gNode, ok2 := p.Graph.NearestNode(goal)
	if !ok1 || !ok2 {
		return false
	}
	return p.connectedLocked(sNode, gNode)
}

// ComputePath runs the PRM build/query control flow of spec §4.9: repeat
// Evaluate / Build until the evaluator reports done, attempting Query after
// every batch. Returns the resulting configuration sequence and true on
// success.
func (p *PRM) ComputePath(start, goal Configuration, batch, workers int, evaluator Evaluator) ([]Configuration, bool, error) {
	if start.Equal(goal) {
		return []Configuration{start.Clone()}, true, nil
	}
	for !evaluator.Evaluate(p.Graph) {
		if err := p.Build(batch, workers); err != nil {
			return nil, false, err
		}
		configs, ok, err := p.Query(start, goal)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return configs, true, nil
		}
	}
	return nil, false, ErrBudgetExceeded
}

// Query attaches start and goal to the roadmap via the same local-planner
// rule as Build (spec §4.9 step 2), then runs Dijkstra over the roadmap's
// weighted undirected adjacency to yield the shortest node sequence,
// densified into a full configuration path via discretizeConfigs.
func (p *PRM) Query(start, goal Configuration) ([]Configuration, bool, error) {
	req := validity.DefaultCollisionRequest()

	startValid, err := checkValid(p.Options.Checker, start, req)
	if err != nil {
		return nil, false, err
	}
	if !startValid {
		return nil, false, nil
	}
	goalValid, err := checkValid(p.Options.Checker, goal, req)
	if err != nil {
		return nil, false, err
	}
	if !goalValid {
		return nil, false, nil
	}

	startNode, err := p.addRoadmapNode(start)
	if err != nil {
		return nil, false, err
	}
	goalNode, err := p.addRoadmapNode(goal)
	if err != nil {
		return nil, false, err
	}

	p.mu.Lock()
	if !p.connectedLocked(startNode, goalNode) {
		p.mu.Unlock()
		return nil, false, nil
	}

	g := simple.NewWeightedUndirectedGraph(0, 0)
	for _, id := range p.ids {
		g.AddNode(simple.Node(id))
	}
	for node, neighbors := range p.edges {
		fromID := p.ids[node]
		for nbr, cost := range neighbors {
			toID := p.ids[nbr]
			g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(fromID), T: simple.Node(toID), W: cost})
		}
	}
	fromID, toID := p.ids[startNode], p.ids[goalNode]
	nodesByID := make(map[int64]*Node, len(p.nodesByID))
	for id, n := range p.nodesByID {
		nodesByID[id] = n
	}
	p.mu.Unlock()

	shortest := path.DijkstraFrom(simple.Node(fromID), g)
	nodePath, _ := shortest.To(toID)
	if len(nodePath) == 0 {
		return nil, false, nil
	}

	chain := make([]*Node, len(nodePath))
	for i, gn := range nodePath {
		chain[i] = nodesByID[gn.ID()]
	}
	p.logger().Debugf("PRM query found path of %d roadmap nodes", len(chain))

	out := []Configuration{chain[0].Config}
	for i := 1; i < len(chain); i++ {
		prev := chain[i-1].Config
		cur := chain[i].Config
		out = append(out, discretizeConfigs(p.Options.Discretize, prev, cur)...)
		out = append(out, cur)
	}
	return out, true, nil
}
