package sampling

import (
	"testing"

	"go.viam.com/test"
)

func TestUniformWithinBounds(t *testing.T) {
	u := NewUniform(1)
	lower := []float64{-1, -1}
	upper := []float64{1, 1}
	for i := 0; i < 50; i++ {
		s := u.Sample(lower, upper)
		for j := range s {
			test.That(t, s[j] >= lower[j], test.ShouldBeTrue)
			test.That(t, s[j] <= upper[j], test.ShouldBeTrue)
		}
	}
}

func TestUniformDeterministic(t *testing.T) {
	lower := []float64{0, 0}
	upper := []float64{10, 10}
	a := NewUniform(7)
	b := NewUniform(7)
	for i := 0; i < 10; i++ {
		sa := a.Sample(lower, upper)
		sb := b.Sample(lower, upper)
		test.That(t, sa, test.ShouldResemble, sb)
	}
}

func TestUniformBiasedPullsTowardBias(t *testing.T) {
	b := NewUniformBiased(3, []float64{5, 5}, 1.0)
	s := b.Sample([]float64{0, 0}, []float64{10, 10})
	test.That(t, s[0], test.ShouldAlmostEqual, 5.0)
	test.That(t, s[1], test.ShouldAlmostEqual, 5.0)
}

func TestNormalClampsToBounds(t *testing.T) {
	n := NewNormal(1, []float64{0, 0}, 1000)
	lower := []float64{-1, -1}
	upper := []float64{1, 1}
	for i := 0; i < 50; i++ {
		s := n.Sample(lower, upper)
		for j := range s {
			test.That(t, s[j] >= lower[j], test.ShouldBeTrue)
			test.That(t, s[j] <= upper[j], test.ShouldBeTrue)
		}
	}
}

func TestHaltonDeterministicAndDistinct(t *testing.T) {
	lower := []float64{0, 0}
	upper := []float64{1, 1}
	h1 := NewHalton(2)
	h2 := NewHalton(2)
	var prev []float64
	for i := 0; i < 5; i++ {
		s1 := h1.Sample(lower, upper)
		s2 := h2.Sample(lower, upper)
		test.That(t, s1, test.ShouldResemble, s2)
		test.That(t, s1, test.ShouldNotResemble, prev)
		prev = s1
	}
}

func TestGridEnumeratesDistinctCells(t *testing.T) {
	g := NewGrid(3)
	lower := []float64{0, 0}
	upper := []float64{2, 2}
	seen := make(map[[2]float64]bool)
	for i := 0; i < 9; i++ {
		s := g.Sample(lower, upper)
		key := [2]float64{s[0], s[1]}
		test.That(t, seen[key], test.ShouldBeFalse)
		seen[key] = true
	}
}
