package motionplan

import (
	"sync"

	"github.com/edaniels/golog"
	"golang.org/x/sync/errgroup"

	"github.com/tobiaskohlbau/RobotMotionPlanner/motionplan/env"
	"github.com/tobiaskohlbau/RobotMotionPlanner/motionplan/sampling"
	"github.com/tobiaskohlbau/RobotMotionPlanner/motionplan/validity"
)

// RRT implements the single-tree Rapidly-exploring Random Tree planner of
// spec §4.9: SetInit installs a root, Expand grows the tree by sampling
// towards random targets and steering a bounded step towards them, and
// ConnectGoal attaches the goal once some tree node can reach it directly.
//
// Grounded on original_source's RRTPlanner control flow (sample -> nearest ->
// steer -> validity -> trajectory check -> graph.add) and, for the
// worker-goroutine shape, on daoran-rdk/motionplan/armplanning/cBiRRT.go's
// rrtBackgroundRunner/constrainedExtend split between a serial outer loop and
// utils.PanicCapturingGo-spawned per-candidate goroutines — adapted here into
// an errgroup-based fixed worker pool rather than one goroutine per
// candidate, since Expand's workers are long-lived over the whole batch
// rather than one-shot.
type RRT struct {
	Env     *env.Environment
	Options PlannerOptions
	Graph   *Graph
	Logger  golog.Logger // debug-level progress logging only; never consulted for correctness

	root *Node

	mu       sync.Mutex          // serializes graph mutation, per spec §5's "shared resource policy"
	samplers []*sampling.Uniform // one reentrant sampler per worker, derived from Options.SamplerSeed
}

// simpleDistFunc adapts a plain func(a,b []float64) float64 to kdtree.Metric
// for Graph construction.
type simpleDistFunc func(a, b []float64) float64

// SimpleDist implements kdtree.Metric.
func (f simpleDistFunc) SimpleDist(a, b []float64) float64 { return f(a, b) }

// newGraph builds an empty Graph sized to e's dimension, using o's Metric and
// SortCount.
func newGraph(e *env.Environment, o PlannerOptions) *Graph {
	return NewGraph(e.Dim(), simpleDistFunc(o.Metric.SimpleDist), o.SortCount)
}

// NewRRT constructs an RRT planner over e with the given options. The graph
// starts empty; call SetInit before Expand.
func NewRRT(e *env.Environment, o PlannerOptions) *RRT {
	return &RRT{
		Env:     e,
		Options: o,
		Graph:   newGraph(e, o),
		Logger:  golog.Global(),
	}
}

// SetInit installs start as the tree's root, per spec §4.9 step 1: reject if
// invalid, clear the graph if a prior root differs, and otherwise leave the
// graph unchanged (idempotence property from spec §8).
func (p *RRT) SetInit(start Configuration) error {
	if start.IsNaN() {
		return WrapConfig(ErrInvalidConfiguration, start)
	}
	ok, err := checkValid(p.Options.Checker, start, validity.DefaultCollisionRequest())
	if err != nil {
		return err
	}
	if !ok {
		return WrapConfig(ErrInvalidConfiguration, start)
	}
	if p.root != nil && p.root.Config.Equal(start) {
		return nil
	}
	p.Graph = newGraph(p.Env, p.Options)
	root := NewNode(start)
	p.Graph.AddNode(root)
	p.root = root
	p.logger().Debugf("RRT root installed at %v", []float64(start))
	return nil
}

// Root returns the tree's root node, or nil if SetInit has not been called.
func (p *RRT) Root() *Node { return p.root }

// logger returns p.Logger, falling back to the global logger if unset (e.g.
// a planner built via a struct literal rather than NewRRT).
func (p *RRT) logger() golog.Logger {
	if p.Logger == nil {
		return golog.Global()
	}
	return p.Logger
}

// steer returns a Configuration at most stepSize from near along the straight
// line towards target, clamping at target if it is already closer. dist must
// be a true distance (e.g. Metric.Dist), not a monotone transform like
// SimpleDist, since its return value is compared directly against stepSize.
func steer(near, target Configuration, stepSize float64, dist func(a, b []float64) float64) Configuration {
	d := dist([]float64(near), []float64(target))
	if d <= stepSize || d == 0 {
		return target.Clone()
	}
	frac := stepSize / d
	out := make(Configuration, len(near))
	for i := range near {
		out[i] = near[i] + (target[i]-near[i])*frac
	}
	return out
}

// workerSampler returns (creating if necessary) the i-th worker's private
// Uniform sampler, seeded deterministically off Options.SamplerSeed so that
// workers=1 runs are reproducible per spec §8's determinism property.
func (p *RRT) workerSampler(i int) *sampling.Uniform {
	p.mu.Lock()
	defer p.mu.Unlock()
	for len(p.samplers) <= i {
		seed := p.Options.SamplerSeed + int64(len(p.samplers))
		p.samplers = append(p.samplers, sampling.NewUniform(seed))
	}
	return p.samplers[i]
}

// Expand grows the tree by batch candidate samples, partitioned evenly across
// workers goroutines (spec §4.9 step 2 / "Scheduling model"). Each worker
// independently draws a sample, finds the nearest tree node, steers a bounded
// step towards it, and — if the resulting edge passes both endpoint and
// trajectory validity — attaches it to the graph under p.mu. A rejected
// sample or failed validity check is silently discarded and does not abort
// the batch (spec §7 propagation policy).
func (p *RRT) Expand(batch, workers int) error {
	if p.root == nil {
		return ErrMisuse
	}
	if workers < 1 {
		workers = 1
	}
	p.logger().Debugf("expanding RRT by batch=%d across workers=%d, graph size=%d", batch, workers, p.Graph.Size())
	per := batch / workers
	rem := batch % workers

	var eg errgroup.Group
	for w := 0; w < workers; w++ {
		n := per
		if w < rem {
			n++
		}
		worker := w
		count := n
		eg.Go(func() error {
			return p.expandWorker(worker, count)
		})
	}
	return eg.Wait()
}

func (p *RRT) expandWorker(worker, count int) error {
	sampler := p.workerSampler(worker)
	lower, upper := p.Env.Bounds()
	req := validity.DefaultCollisionRequest()

	for i := 0; i < count; i++ {
		raw := sampler.Sample(lower, upper)
		if raw == nil {
			continue
		}
		q := Configuration(raw)

		nNear, ok := p.Graph.NearestNode(q)
		if !ok {
			continue
		}
		qNew := steer(nNear.Config, q, p.Options.StepSize, p.Options.Metric.Dist)

		valid, err := checkValid(p.Options.Checker, qNew, req)
		if err != nil {
			return err
		}
		if !valid {
			continue
		}
		trajOK, err := checkTrajectoryValid(p.Options.Checker, p.Options.Discretize, nNear.Config, qNew, req)
		if err != nil {
			return err
		}
		if !trajOK {
			continue
		}

		p.mu.Lock()
		edgeCost := p.Options.Metric.Dist([]float64(nNear.Config), []float64(qNew))
		child := NewNode(qNew)
		child.Attach(nNear, edgeCost)
		p.Graph.AddNode(child)
		p.mu.Unlock()
	}
	return nil
}

// ConnectGoal attaches goal as a new child of some graph node, if goal is
// itself valid and some node's trajectory to it passes validity, per spec
// §4.9 step 3. Returns the attached node and true on success.
func (p *RRT) ConnectGoal(goal Configuration) (*Node, bool, error) {
	if p.root == nil {
		return nil, false, ErrMisuse
	}
	req := validity.DefaultCollisionRequest()
	valid, err := checkValid(p.Options.Checker, goal, req)
	if err != nil {
		return nil, false, err
	}
	if !valid {
		return nil, false, nil
	}

	nNear, ok := p.Graph.NearestNode(goal)
	if !ok {
		return nil, false, nil
	}
	if nNear.Config.Equal(goal) {
		return nNear, true, nil
	}
	trajOK, err := checkTrajectoryValid(p.Options.Checker, p.Options.Discretize, nNear.Config, goal, req)
	if err != nil {
		return nil, false, err
	}
	if !trajOK {
		return nil, false, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	edgeCost := p.Options.Metric.Dist([]float64(nNear.Config), []float64(goal))
	node := NewNode(goal)
	node.Attach(nNear, edgeCost)
	p.Graph.AddNode(node)
	return node, true, nil
}

// ComputePath runs the standard computePath control flow of spec §3: repeat
// Evaluate / Expand until the evaluator reports done, attempting ConnectGoal
// after every batch. Returns the goal node and true on success.
func (p *RRT) ComputePath(start, goal Configuration, batch, workers int, evaluator Evaluator) (*Node, bool, error) {
	if err := p.SetInit(start); err != nil {
		return nil, false, err
	}
	if start.Equal(goal) {
		return p.root, true, nil
	}

	for !evaluator.Evaluate(p.Graph) {
		if err := p.Expand(batch, workers); err != nil {
			return nil, false, err
		}
		node, ok, err := p.ConnectGoal(goal)
		if err != nil {
			return nil, false, err
		}
		if ok {
			p.logger().Debugf("RRT connected to goal, graph size=%d", p.Graph.Size())
			return node, true, nil
		}
	}
	p.logger().Debug("RRT evaluator budget exceeded before goal connection")
	return nil, false, ErrBudgetExceeded
}

// GetPath walks parent pointers from goal to the tree root, reverses the
// result, then densifies every edge via discretizeConfigs, per spec §3's
// getPath contract.
func GetPath(goal *Node, o PlannerOptions) []Configuration {
	var chain []*Node
	for n := goal; n != nil; n = n.Parent() {
		chain = append(chain, n)
	}
	if len(chain) == 0 {
		return nil
	}
	// chain is goal -> ... -> root; reverse to root -> ... -> goal.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	out := []Configuration{chain[0].Config}
	for i := 1; i < len(chain); i++ {
		prev := chain[i-1].Config
		cur := chain[i].Config
		out = append(out, discretizeConfigs(o.Discretize, prev, cur)...)
		out = append(out, cur)
	}
	return out
}
