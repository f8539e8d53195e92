package motionplan

import (
	"testing"

	"go.viam.com/test"
)

func TestAttachSetsPathCost(t *testing.T) {
	root := NewNode(NewConfiguration(2))
	child := NewNode(Configuration{1, 0})
	child.Attach(root, 1.5)
	test.That(t, child.Parent(), test.ShouldEqual, root)
	test.That(t, child.PathCost(), test.ShouldAlmostEqual, 1.5)
	test.That(t, child.EdgeCost(), test.ShouldAlmostEqual, 1.5)

	grandchild := NewNode(Configuration{2, 0})
	grandchild.Attach(child, 2.0)
	test.That(t, grandchild.PathCost(), test.ShouldAlmostEqual, 3.5)
}

func TestAttachRegistersChild(t *testing.T) {
	root := NewNode(NewConfiguration(2))
	child := NewNode(Configuration{1, 0})
	child.Attach(root, 1.0)
	children := root.Children()
	test.That(t, len(children), test.ShouldEqual, 1)
	test.That(t, children[0], test.ShouldEqual, child)
}

func TestReparentMovesChildSetAndReturnsDelta(t *testing.T) {
	rootA := NewNode(NewConfiguration(1))
	rootB := NewNode(NewConfiguration(1))
	n := NewNode(Configuration{1})
	n.Attach(rootA, 5.0)
	test.That(t, len(rootA.Children()), test.ShouldEqual, 1)

	delta := n.Reparent(rootB, 2.0)
	test.That(t, delta, test.ShouldAlmostEqual, -3.0)
	test.That(t, len(rootA.Children()), test.ShouldEqual, 0)
	test.That(t, len(rootB.Children()), test.ShouldEqual, 1)
	test.That(t, n.PathCost(), test.ShouldAlmostEqual, 2.0)
}

func TestDescendantsBFSOverWholeSubtree(t *testing.T) {
	root := NewNode(NewConfiguration(1))
	a := NewNode(Configuration{1})
	a.Attach(root, 1)
	b := NewNode(Configuration{2})
	b.Attach(root, 1)
	aa := NewNode(Configuration{3})
	aa.Attach(a, 1)
	ab := NewNode(Configuration{4})
	ab.Attach(a, 1)

	desc := root.Descendants()
	test.That(t, len(desc), test.ShouldEqual, 4)
	seen := make(map[*Node]bool)
	for _, n := range desc {
		seen[n] = true
	}
	test.That(t, seen[a], test.ShouldBeTrue)
	test.That(t, seen[b], test.ShouldBeTrue)
	test.That(t, seen[aa], test.ShouldBeTrue)
	test.That(t, seen[ab], test.ShouldBeTrue)
}

func TestApplyCostDeltaPropagatesManually(t *testing.T) {
	root := NewNode(NewConfiguration(1))
	a := NewNode(Configuration{1})
	a.Attach(root, 3.0)
	aa := NewNode(Configuration{2})
	aa.Attach(a, 2.0)
	test.That(t, aa.PathCost(), test.ShouldAlmostEqual, 5.0)

	delta := a.Reparent(root, 1.0) // cheaper edge found during rewire
	test.That(t, delta, test.ShouldAlmostEqual, -2.0)
	for _, d := range a.Descendants() {
		d.ApplyCostDelta(delta)
	}
	test.That(t, aa.PathCost(), test.ShouldAlmostEqual, 3.0)
}
