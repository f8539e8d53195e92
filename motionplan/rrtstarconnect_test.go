package motionplan

import (
	"testing"

	"go.viam.com/test"
)

func TestRRTStarConnectSetInitTagsTreesAndRoots(t *testing.T) {
	e := openPlaneEnv()
	o := openPlaneOptions(21)
	p := NewRRTStarConnect(e, o)

	start := Configuration{10, 10}
	goal := Configuration{900, 900}
	test.That(t, p.SetInit(start, goal), test.ShouldBeNil)

	test.That(t, p.TreeA.Root().Tree(), test.ShouldEqual, 0)
	test.That(t, p.TreeB.Root().Tree(), test.ShouldEqual, 1)
	test.That(t, p.TreeA.Root().Config.Equal(start), test.ShouldBeTrue)
	test.That(t, p.TreeB.Root().Config.Equal(goal), test.ShouldBeTrue)
	test.That(t, p.Connected(), test.ShouldBeFalse)
}

func TestRRTStarConnectComputePathBridgesTrees(t *testing.T) {
	e := openPlaneEnv()
	o := openPlaneOptions(22)
	p := NewRRTStarConnect(e, o)

	start := Configuration{10, 10}
	goal := Configuration{60, 10}
	sizeCap := EvaluatorFunc(func(g *Graph) bool { return g.Size() >= 4000 })

	aEnd, bEnd, ok, err := p.ComputePath(start, goal, 100, 1, sizeCap)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, aEnd, test.ShouldNotBeNil)
	test.That(t, bEnd, test.ShouldNotBeNil)
	test.That(t, p.Connected(), test.ShouldBeTrue)

	path := p.GetPath(o)
	test.That(t, len(path) > 0, test.ShouldBeTrue)
	test.That(t, path[0].Equal(start), test.ShouldBeTrue)
	test.That(t, path[len(path)-1].Equal(goal), test.ShouldBeTrue)
}

func TestRRTStarConnectComputePathStartEqualsGoal(t *testing.T) {
	e := openPlaneEnv()
	o := openPlaneOptions(23)
	p := NewRRTStarConnect(e, o)

	same := Configuration{5, 5}
	aEnd, bEnd, ok, err := p.ComputePath(same, same, 10, 1, EvaluatorFunc(func(g *Graph) bool { return false }))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, aEnd.Config.Equal(same), test.ShouldBeTrue)
	test.That(t, bEnd.Config.Equal(same), test.ShouldBeTrue)
}

func TestRRTStarConnectTryBridgeRespectsStepSize(t *testing.T) {
	e := openPlaneEnv()
	o := openPlaneOptions(24)
	p := NewRRTStarConnect(e, o)
	test.That(t, p.SetInit(Configuration{0, 0}, Configuration{1000, 1000}), test.ShouldBeNil)

	target := NewNode(Configuration{20, 0})
	target.SetTree(0)
	p.TreeA.Graph.AddNode(target)

	test.That(t, p.tryBridge(p.TreeB, p.TreeA, target), test.ShouldBeNil)

	for _, n := range p.TreeB.Graph.Nodes() {
		if n.Parent() == nil {
			continue
		}
		d := o.Metric.Dist([]float64(n.Parent().Config), []float64(n.Config))
		test.That(t, d <= o.StepSize+1e-9, test.ShouldBeTrue)
	}
}
