package motionplan

import (
	"testing"

	"go.viam.com/test"

	"github.com/tobiaskohlbau/RobotMotionPlanner/motionplan/validity"
)

func TestPRMBuildAddsNodesAndConnectsNeighbors(t *testing.T) {
	e := openPlaneEnv()
	o := openPlaneOptions(31)
	p := NewPRM(e, o, 60)

	test.That(t, p.Build(200, 2), test.ShouldBeNil)
	test.That(t, p.Graph.Size(), test.ShouldEqual, 200)

	var withEdges int
	for _, neighbors := range p.edges {
		if len(neighbors) > 0 {
			withEdges++
		}
	}
	test.That(t, withEdges > 0, test.ShouldBeTrue)
}

func TestPRMQueryFindsPathOnOpenPlane(t *testing.T) {
	e := openPlaneEnv()
	o := openPlaneOptions(32)
	p := NewPRM(e, o, 80)
	test.That(t, p.Build(600, 4), test.ShouldBeNil)

	start := Configuration{10, 10}
	goal := Configuration{900, 900}
	path, ok, err := p.Query(start, goal)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, len(path) > 0, test.ShouldBeTrue)
	test.That(t, path[0].Equal(start), test.ShouldBeTrue)
	test.That(t, path[len(path)-1].Equal(goal), test.ShouldBeTrue)
}

func TestPRMQueryFailsWhenGoalInvalid(t *testing.T) {
	e := openPlaneEnv()
	o := openPlaneOptions(33)
	o.Checker = validity.CheckerFunc(func(config []float64) bool { return config[0] >= 500 })
	p := NewPRM(e, o, 80)
	test.That(t, p.Build(100, 2), test.ShouldBeNil)

	_, ok, err := p.Query(Configuration{10, 10}, Configuration{999, 999})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestPRMPathExistsReflectsConnectivity(t *testing.T) {
	e := openPlaneEnv()
	o := openPlaneOptions(34)
	p := NewPRM(e, o, 80)

	start := Configuration{10, 10}
	goal := Configuration{900, 900}
	test.That(t, p.PathExists(p.Graph, start, goal), test.ShouldBeFalse)

	test.That(t, p.Build(600, 4), test.ShouldBeNil)
	_, ok, err := p.Query(start, goal)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, p.PathExists(p.Graph, start, goal), test.ShouldBeTrue)
}

func TestPRMComputePathStartEqualsGoal(t *testing.T) {
	e := openPlaneEnv()
	o := openPlaneOptions(35)
	p := NewPRM(e, o, 80)

	same := Configuration{5, 5}
	path, ok, err := p.ComputePath(same, same, 50, 1, EvaluatorFunc(func(g *Graph) bool { return false }))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, len(path), test.ShouldEqual, 1)
	test.That(t, path[0].Equal(same), test.ShouldBeTrue)
}

func TestPRMComputePathGrowsRoadmapUntilConnected(t *testing.T) {
	e := openPlaneEnv()
	o := openPlaneOptions(36)
	p := NewPRM(e, o, 80)

	start := Configuration{10, 10}
	goal := Configuration{900, 900}
	evaluator := PRMPose{Start: start, Goal: goal, PathExists: p.PathExists}
	sizeCap := EvaluatorFunc(func(g *Graph) bool { return g.Size() >= 3000 })

	path, ok, err := p.ComputePath(start, goal, 150, 2, Or(evaluator, sizeCap))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, path[0].Equal(start), test.ShouldBeTrue)
	test.That(t, path[len(path)-1].Equal(goal), test.ShouldBeTrue)
}
