package motionplan

import (
	"sync"

	"github.com/edaniels/golog"
	"golang.org/x/sync/errgroup"

	"github.com/tobiaskohlbau/RobotMotionPlanner/motionplan/env"
	"github.com/tobiaskohlbau/RobotMotionPlanner/motionplan/validity"
)

// RRTStarConnect implements spec §4.9's two-tree bidirectional planner: tree
// A rooted at start, tree B rooted at goal. Each expansion adds qNew to one
// tree exactly as RRTStar.expandStarWorker does, then attempts to steer from
// the nearest node of the *other* tree towards qNew, repeatedly, until it
// either reaches qNew (the trees connect), the motion is blocked, or the
// step budget is exhausted; the two trees swap roles on the next round.
//
// Grounded on original_source's bidirectional-RRT description and, for the
// two-tree/tree-swap/bridge shape, on
// _teacher_staging/cBiRRT.go (daoran-rdk/motionplan/armplanning/cBiRRT.go)'s
// rrtBackgroundRunner: map1/map2 swapping roles each outer iteration and
// constrainedExtend's "advance one qstep at a time until blocked, off-target,
// or arrived" loop — re-expressed here against this repo's RRTStar rather
// than cBiRRT's constraint-projection machinery, since this planner has no
// constraint-manifold projection step.
type RRTStarConnect struct {
	Env     *env.Environment
	Options PlannerOptions
	Logger  golog.Logger

	TreeA *RRTStar // rooted at start
	TreeB *RRTStar // rooted at goal

	mu        sync.Mutex
	connected bool
	bridgeA   *Node // TreeA-side endpoint of the discovered bridge
	bridgeB   *Node // TreeB-side endpoint of the discovered bridge
}

// NewRRTStarConnect constructs an RRT*-Connect planner over e with the given
// options, shared identically by both trees.
func NewRRTStarConnect(e *env.Environment, o PlannerOptions) *RRTStarConnect {
	return &RRTStarConnect{
		Env:     e,
		Options: o,
		Logger:  golog.Global(),
		TreeA:   NewRRTStar(e, o),
		TreeB:   NewRRTStar(e, o),
	}
}

// logger returns p.Logger, falling back to the global logger if unset.
func (p *RRTStarConnect) logger() golog.Logger {
	if p.Logger == nil {
		return golog.Global()
	}
	return p.Logger
}

// Connected reports whether a bridge between the two trees has been found;
// Evaluator polls it in place of a TreeConnect's *bool.
func (p *RRTStarConnect) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected
}

// Evaluator returns an Evaluator wired to this planner's connection state,
// in the shape of spec §4.9's TreeConnect but backed by the mutex-guarded
// Connected() accessor rather than TreeConnect's raw *bool, since the two
// trees' bridge search runs concurrently with whatever goroutine polls the
// evaluator.
func (p *RRTStarConnect) Evaluator() Evaluator {
	return EvaluatorFunc(func(g *Graph) bool { return p.Connected() })
}

// SetInit installs start as TreeA's root and goal as TreeB's root.
func (p *RRTStarConnect) SetInit(start, goal Configuration) error {
	if err := p.TreeA.SetInit(start); err != nil {
		return err
	}
	if err := p.TreeB.SetInit(goal); err != nil {
		return err
	}
	for _, n := range p.TreeA.Graph.Nodes() {
		n.SetTree(0)
	}
	for _, n := range p.TreeB.Graph.Nodes() {
		n.SetTree(1)
	}
	return nil
}

// Expand grows both trees by one batch/workers round apiece (one as the
// "growing" tree via RRTStar.Expand, the other as the "connecting" tree
// attempting to bridge towards every node the growing tree just added), then
// swaps which tree grows next round, per spec §4.9's "swap roles each
// iteration".
func (p *RRTStarConnect) Expand(batch, workers int, round int) error {
	grow, connect := p.TreeA, p.TreeB
	growTag := 0
	if round%2 == 1 {
		grow, connect = p.TreeB, p.TreeA
		growTag = 1
	}

	before := grow.Graph.Size()
	if err := grow.Expand(batch, workers); err != nil {
		return err
	}
	newNodes := grow.Graph.Nodes()[before:]
	for _, n := range newNodes {
		n.SetTree(growTag)
	}
	p.logger().Debugf("round %d: grew tree to size %d, attempting %d bridge targets", round, grow.Graph.Size(), len(newNodes))

	var eg errgroup.Group
	for _, target := range newNodes {
		target := target
		eg.Go(func() error {
			return p.tryBridge(connect, grow, target)
		})
	}
	return eg.Wait()
}

// tryBridge steers repeatedly from connect's nearest node towards target
// (a node of grow) in stepSize increments, appending each valid intermediate
// node to connect, until it reaches target exactly (a bridge is found),
// the next step is invalid (blocked), or it has taken 1000 steps (step
// budget exhausted) — exactly the
// "advance one qstep at a time until blocked, off-target, or arrived" shape
// of cBiRRT's constrainedExtend, minus constraint projection.
func (p *RRTStarConnect) tryBridge(connect, grow *RRTStar, target *Node) error {
	req := validity.DefaultCollisionRequest()
	near, ok := connect.Graph.NearestNode(target.Config)
	if !ok {
		return nil
	}

	cur := near
	maxSteps := 1000
	for step := 0; step < maxSteps; step++ {
		d := connect.Options.Metric.Dist([]float64(cur.Config), []float64(target.Config))
		if d <= 1e-9 {
			p.recordBridge(connect, grow, cur, target)
			return nil
		}
		next := steer(cur.Config, target.Config, connect.Options.StepSize, connect.Options.Metric.Dist)

		valid, err := checkValid(connect.Options.Checker, next, req)
		if err != nil {
			return err
		}
		if !valid {
			return nil
		}
		trajOK, err := checkTrajectoryValid(connect.Options.Checker, connect.Options.Discretize, cur.Config, next, req)
		if err != nil {
			return err
		}
		if !trajOK {
			return nil
		}

		connect.mu.Lock()
		edgeCost := connect.Options.Metric.Dist([]float64(cur.Config), []float64(next))
		child := NewNode(next)
		child.SetTree(cur.Tree())
		child.Attach(cur, edgeCost)
		connect.Graph.AddNode(child)
		connect.mu.Unlock()
		cur = child

		if next.Equal(target.Config) {
			p.recordBridge(connect, grow, cur, target)
			return nil
		}
	}
	return nil
}

// recordBridge latches the first discovered bridge between the two trees;
// subsequent bridges are ignored (the first connection found is reported,
// matching cBiRRT's "solved, return immediately" behavior).
func (p *RRTStarConnect) recordBridge(connect, grow *RRTStar, connectSide, growSide *Node) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.connected {
		return
	}
	p.connected = true
	if connect == p.TreeA {
		p.bridgeA, p.bridgeB = connectSide, growSide
	} else {
		p.bridgeA, p.bridgeB = growSide, connectSide
	}
	p.logger().Debugf("bridge found: treeA size=%d, treeB size=%d", p.TreeA.Graph.Size(), p.TreeB.Graph.Size())
}

// ComputePath runs rounds of Expand until either a bridge is found or
// evaluator reports done (e.g. a deadline), per spec §4.9. Returns the two
// bridge endpoints (TreeA-side, TreeB-side) and true on success.
func (p *RRTStarConnect) ComputePath(start, goal Configuration, batch, workers int, evaluator Evaluator) (aEnd, bEnd *Node, ok bool, err error) {
	if err := p.SetInit(start, goal); err != nil {
		return nil, nil, false, err
	}
	if start.Equal(goal) {
		return p.TreeA.Root(), p.TreeB.Root(), true, nil
	}
	round := 0
	for !p.Connected() && !evaluator.Evaluate(p.TreeA.Graph) {
		if err := p.Expand(batch, workers, round); err != nil {
			return nil, nil, false, err
		}
		round++
	}
	if !p.Connected() {
		return nil, nil, false, nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bridgeA, p.bridgeB, true, nil
}

// GetPath stitches together the path from TreeA's root to the bridge, and
// the reversed path from TreeB's root to its bridge endpoint, densifying
// every edge via o.Discretize, yielding one continuous start-to-goal
// sequence.
func (p *RRTStarConnect) GetPath(o PlannerOptions) []Configuration {
	if !p.Connected() {
		return nil
	}
	p.mu.Lock()
	aEnd, bEnd := p.bridgeA, p.bridgeB
	p.mu.Unlock()

	aSide := GetPath(aEnd, o) // root(start) -> aEnd

	var bChain []*Node
	for n := bEnd; n != nil; n = n.Parent() {
		bChain = append(bChain, n)
	}
	// bChain is bEnd -> ... -> root(goal); this is already the traversal
	// order we want appended after aSide (aEnd meets bEnd, then walk back out
	// to goal), so no reversal is needed here (unlike GetPath's root->goal
	// convention for a single tree).
	bSide := []Configuration{bChain[0].Config}
	for i := 1; i < len(bChain); i++ {
		prev := bChain[i-1].Config
		cur := bChain[i].Config
		bSide = append(bSide, discretizeConfigs(o.Discretize, prev, cur)...)
		bSide = append(bSide, cur)
	}

	out := append([]Configuration(nil), aSide...)
	// aSide's last element is aEnd's config, bSide's first element is bEnd's
	// config; if the bridge landed exactly on the same point skip the
	// duplicate, otherwise include both (they are within one stepSize of
	// each other, not necessarily identical).
	if len(out) > 0 && out[len(out)-1].Equal(bSide[0]) {
		bSide = bSide[1:]
	}
	out = append(out, bSide...)
	return out
}
