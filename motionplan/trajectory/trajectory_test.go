package trajectory

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func l2(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func TestDiscretizeContExcludesEndpoints(t *testing.T) {
	l := Linear{StepSize: 1, PosMetric: l2}
	pts := l.DiscretizeCont([]float64{0, 0}, []float64{10, 0})
	test.That(t, len(pts) > 0, test.ShouldBeTrue)
	for _, p := range pts {
		test.That(t, p[0], test.ShouldNotEqual, 0.0)
		test.That(t, p[0], test.ShouldNotEqual, 10.0)
	}
}

func TestDiscretizeContStepBound(t *testing.T) {
	l := Linear{StepSize: 1, PosMetric: l2}
	pts := l.DiscretizeCont([]float64{0, 0}, []float64{10, 0})
	all := append([][]float64{{0, 0}}, pts...)
	all = append(all, []float64{10, 0})
	for i := 1; i < len(all); i++ {
		d := l2(all[i-1], all[i])
		test.That(t, d <= 1.0+1e-9, test.ShouldBeTrue)
	}
}

func TestDiscretizeContShortEdgeIsEmpty(t *testing.T) {
	l := Linear{StepSize: 1, PosMetric: l2}
	pts := l.DiscretizeCont([]float64{0, 0}, []float64{0.5, 0})
	test.That(t, len(pts), test.ShouldEqual, 0)
}

func TestDiscretizeBinSameSetAsCont(t *testing.T) {
	l := Linear{StepSize: 1, PosMetric: l2}
	cont := l.DiscretizeCont([]float64{0, 0}, []float64{10, 0})
	bin := l.DiscretizeBin([]float64{0, 0}, []float64{10, 0})
	test.That(t, len(bin), test.ShouldEqual, len(cont))

	seen := make(map[float64]bool)
	for _, p := range cont {
		seen[math.Round(p[0]*1e6)/1e6] = true
	}
	for _, p := range bin {
		test.That(t, seen[math.Round(p[0]*1e6)/1e6], test.ShouldBeTrue)
	}
}

func TestDiscretizeBinMidpointFirst(t *testing.T) {
	l := Linear{StepSize: 1, PosMetric: l2}
	bin := l.DiscretizeBin([]float64{0, 0}, []float64{8, 0})
	test.That(t, len(bin) > 0, test.ShouldBeTrue)
	test.That(t, bin[0][0], test.ShouldAlmostEqual, 4.0)
}

func TestRotateAtSJoinsSegments(t *testing.T) {
	r := RotateAtS{
		PosStepSize:   1,
		OriStepSize:   0.1,
		PosMetric:     l2,
		OriMetric:     func(a, b []float64) float64 { return math.Abs(a[0] - b[0]) },
		PosMask:       []bool{true, true, false},
		RotationPoint: 0.5,
	}
	source := []float64{0, 0, 0}
	target := []float64{10, 0, math.Pi}
	pts := r.Discretize(source, target)
	test.That(t, len(pts) > 0, test.ShouldBeTrue)

	// The translational prefix should hold orientation fixed at source (axis
	// 2) while position (axis 0) genuinely sweeps towards target; the
	// rotational suffix should hold position fixed at target while
	// orientation sweeps monotonically from source's value to target's.
	var sawRotation bool
	var lastOri float64
	var oriStarted bool
	for _, p := range pts {
		if p[2] == source[2] {
			test.That(t, p[0] > source[0] || p[0] == source[0], test.ShouldBeTrue)
			continue
		}
		sawRotation = true
		test.That(t, p[0], test.ShouldAlmostEqual, target[0])
		if oriStarted {
			test.That(t, p[2] >= lastOri, test.ShouldBeTrue)
		}
		lastOri = p[2]
		oriStarted = true
	}
	test.That(t, sawRotation, test.ShouldBeTrue)

	// Position must actually vary across the translational prefix rather than
	// being pinned at source throughout (the original bug clobbered it back
	// to a constant after DiscretizeCont had already computed the sweep).
	var sawVaryingPosition bool
	for _, p := range pts {
		if p[2] == source[2] && p[0] != source[0] {
			sawVaryingPosition = true
			break
		}
	}
	test.That(t, sawVaryingPosition, test.ShouldBeTrue)
}
