package kdtree

import (
	"math"
	"math/rand"
	"testing"

	"go.viam.com/test"
)

func l2(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func l2True(a, b []float64) float64 { return math.Sqrt(l2(a, b)) }

func bruteNearest(query []float64, entries []Entry) (Entry, bool) {
	best := math.Inf(1)
	var bestEntry Entry
	found := false
	for _, e := range entries {
		if equalConfig(e.Config, query) {
			continue
		}
		d := l2(query, e.Config)
		if d < best {
			best = d
			bestEntry = e
			found = true
		}
	}
	return bestEntry, found
}

func TestAddAndNearestBasic(t *testing.T) {
	tr := New(1, MetricFunc(l2))
	for i := 0; i < 20; i++ {
		tr.Add([]float64{float64(i)}, i)
	}
	v, cfg, ok := tr.Nearest([]float64{10.4})
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, v, test.ShouldEqual, 10)
	test.That(t, cfg[0], test.ShouldEqual, 10.0)
}

func TestNearestExcludesExactMatch(t *testing.T) {
	tr := New(1, MetricFunc(l2))
	tr.Add([]float64{5}, "five")
	tr.Add([]float64{5}, "five-again")
	tr.Add([]float64{9}, "nine")
	v, _, ok := tr.Nearest([]float64{5})
	test.That(t, ok, test.ShouldBeTrue)
	// Both entries at {5} equal the query and are excluded, so {9} is the nearest match.
	test.That(t, v, test.ShouldEqual, "nine")
}

func TestWithinExcludesSelfAndRespectsRadius(t *testing.T) {
	tr := New(2, MetricFunc(l2))
	tr.Add([]float64{0, 0}, "origin")
	tr.Add([]float64{1, 0}, "a")
	tr.Add([]float64{5, 0}, "b")
	res := tr.Within([]float64{0, 0}, 2, l2True)
	test.That(t, len(res), test.ShouldEqual, 1)
	test.That(t, res[0].Value, test.ShouldEqual, "a")
}

func TestDeterminismAgainstBruteForce(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	dim := 3
	tr := New(dim, MetricFunc(l2))
	var entries []Entry
	for i := 0; i < 1000; i++ {
		cfg := []float64{rnd.Float64() * 100, rnd.Float64() * 100, rnd.Float64() * 100}
		tr.Add(cfg, i)
		entries = append(entries, Entry{Config: cfg, Value: i})
	}
	for q := 0; q < 100; q++ {
		query := []float64{rnd.Float64() * 100, rnd.Float64() * 100, rnd.Float64() * 100}
		_, cfg, ok := tr.Nearest(query)
		test.That(t, ok, test.ShouldBeTrue)
		brute, found := bruteNearest(query, entries)
		test.That(t, found, test.ShouldBeTrue)
		test.That(t, l2(query, cfg), test.ShouldAlmostEqual, l2(query, brute.Config))
	}
}

func TestRebuildProducesSameContent(t *testing.T) {
	tr := New(1, MetricFunc(l2))
	var batch []Entry
	for i := 0; i < 50; i++ {
		batch = append(batch, Entry{Config: []float64{float64(i)}, Value: i})
	}
	tr.Rebuild(batch)
	test.That(t, tr.Size(), test.ShouldEqual, 50)
	v, _, ok := tr.Nearest([]float64{24.6})
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, v, test.ShouldEqual, 25)
}
