package motionplan

import (
	"testing"
	"time"

	"go.viam.com/test"
)

func TestTreeConfigDetectsWithinResolution(t *testing.T) {
	g := NewGraph(2, metricFunc(sqL2), 0)
	g.AddNode(NewNode(Configuration{0, 0}))
	g.AddNode(NewNode(Configuration{5, 5}))

	e := TreeConfig{Target: Configuration{5.05, 5}, Resolution: 0.1, Metric: trueL2}
	test.That(t, e.Evaluate(g), test.ShouldBeTrue)

	farE := TreeConfig{Target: Configuration{50, 50}, Resolution: 0.1, Metric: trueL2}
	test.That(t, farE.Evaluate(g), test.ShouldBeFalse)
}

func TestTreeConfigOrTimeFallsBackToDeadline(t *testing.T) {
	g := NewGraph(2, metricFunc(sqL2), 0)
	g.AddNode(NewNode(Configuration{0, 0}))

	notYet := TreeConfigOrTime{
		TreeConfig: TreeConfig{Target: Configuration{100, 100}, Resolution: 0.1, Metric: trueL2},
		Deadline:   time.Now().Add(time.Hour),
	}
	test.That(t, notYet.Evaluate(g), test.ShouldBeFalse)

	expired := TreeConfigOrTime{
		TreeConfig: TreeConfig{Target: Configuration{100, 100}, Resolution: 0.1, Metric: trueL2},
		Deadline:   time.Now().Add(-time.Second),
	}
	test.That(t, expired.Evaluate(g), test.ShouldBeTrue)
}

func TestTreeConnectReportsFlag(t *testing.T) {
	connected := false
	e := TreeConnect{Connected: &connected}
	test.That(t, e.Evaluate(nil), test.ShouldBeFalse)
	connected = true
	test.That(t, e.Evaluate(nil), test.ShouldBeTrue)
}

func TestQueryRequiresAllTargetsSolved(t *testing.T) {
	solvedSet := map[float64]bool{1: true}
	e := Query{
		Targets: []Configuration{{1}, {2}},
		Solved: func(g *Graph, target Configuration) bool {
			return solvedSet[target[0]]
		},
	}
	test.That(t, e.Evaluate(nil), test.ShouldBeFalse)
	solvedSet[2] = true
	test.That(t, e.Evaluate(nil), test.ShouldBeTrue)
}

func TestOrAndAnd(t *testing.T) {
	trueE := EvaluatorFunc(func(g *Graph) bool { return true })
	falseE := EvaluatorFunc(func(g *Graph) bool { return false })

	test.That(t, Or(falseE, trueE).Evaluate(nil), test.ShouldBeTrue)
	test.That(t, Or(falseE, falseE).Evaluate(nil), test.ShouldBeFalse)
	test.That(t, And(trueE, trueE).Evaluate(nil), test.ShouldBeTrue)
	test.That(t, And(trueE, falseE).Evaluate(nil), test.ShouldBeFalse)
}
