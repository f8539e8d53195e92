package motionplan

import "time"

// Evaluator is the termination oracle consulted between expansion batches
// (spec §4.8): it never preempts mid-batch, only between computePath's
// expand() calls. Grounded on original_source's planner loop shape (a
// boolean "are we done" check driving the outer planning loop, e.g.
// StarRRTPlanner.h's controlIsSolved pattern) and composed here the way Go
// idiomatically composes predicates — small funcs combined with And/Or
// rather than an enum of evaluator kinds.
type Evaluator interface {
	Evaluate(g *Graph) bool
}

// EvaluatorFunc adapts a plain function to Evaluator.
type EvaluatorFunc func(g *Graph) bool

// Evaluate implements Evaluator.
func (f EvaluatorFunc) Evaluate(g *Graph) bool { return f(g) }

// TreeConfig is true once any graph node's configuration lies within
// resolution of target under metric.
type TreeConfig struct {
	Target     Configuration
	Resolution float64
	Metric     func(a, b []float64) float64
}

// Evaluate implements Evaluator.
func (e TreeConfig) Evaluate(g *Graph) bool {
	for _, n := range g.Nodes() {
		if e.Metric([]float64(n.Config), []float64(e.Target)) <= e.Resolution {
			return true
		}
	}
	return false
}

// TreeConfigOrTime is TreeConfig, OR'd with a wall-clock deadline.
type TreeConfigOrTime struct {
	TreeConfig TreeConfig
	Deadline   time.Time
}

// Evaluate implements Evaluator.
func (e TreeConfigOrTime) Evaluate(g *Graph) bool {
	if e.TreeConfig.Evaluate(g) {
		return true
	}
	return !e.Deadline.IsZero() && !time.Now().Before(e.Deadline)
}

// TreeConnect is true once the two trees of a bidirectional planner
// (RRT*-Connect) share a node pair reachable under a trajectory check,
// i.e. a bridging edge has already been found and recorded by the planner.
type TreeConnect struct {
	// Connected is set by the planner once a bridge between the two trees
	// has been discovered; Evaluate simply reports its current value,
	// since the bridge search itself is the planner's responsibility (it
	// needs graph-internal state TreeConnect does not have access to).
	Connected *bool
}

// Evaluate implements Evaluator.
func (e TreeConnect) Evaluate(g *Graph) bool {
	return e.Connected != nil && *e.Connected
}

// PRMPose is true once a path exists between the PRM roadmap nodes
// containing start and goal, queried lazily via pathExists rather than
// cached, since roadmap connectivity can change on every AddNode.
type PRMPose struct {
	Start, Goal Configuration
	PathExists  func(g *Graph, start, goal Configuration) bool
}

// Evaluate implements Evaluator.
func (e PRMPose) Evaluate(g *Graph) bool {
	return e.PathExists(g, e.Start, e.Goal)
}

// Query is true once every target configuration in Targets is solved by
// Solved, supporting multi-goal planning requests.
type Query struct {
	Targets []Configuration
	Solved  func(g *Graph, target Configuration) bool
}

// Evaluate implements Evaluator.
func (e Query) Evaluate(g *Graph) bool {
	for _, target := range e.Targets {
		if !e.Solved(g, target) {
			return false
		}
	}
	return true
}

// Or returns an Evaluator true when any of evaluators is true.
func Or(evaluators ...Evaluator) Evaluator {
	return EvaluatorFunc(func(g *Graph) bool {
		for _, e := range evaluators {
			if e.Evaluate(g) {
				return true
			}
		}
		return false
	})
}

// And returns an Evaluator true only when every one of evaluators is true.
func And(evaluators ...Evaluator) Evaluator {
	return EvaluatorFunc(func(g *Graph) bool {
		for _, e := range evaluators {
			if !e.Evaluate(g) {
				return false
			}
		}
		return true
	})
}
