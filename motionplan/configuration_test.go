package motionplan

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestConfigurationAddSub(t *testing.T) {
	a := Configuration{1, 2, 3}
	b := Configuration{0.5, -1, 2}
	sum := a.Add(b)
	test.That(t, sum, test.ShouldResemble, Configuration{1.5, 1, 5})

	diff := a.Sub(b)
	test.That(t, diff, test.ShouldResemble, Configuration{0.5, 3, 1})
}

func TestConfigurationScale(t *testing.T) {
	a := Configuration{1, -2, 3}
	test.That(t, a.Scale(2), test.ShouldResemble, Configuration{2, -4, 6})
	test.That(t, a.Scale(0), test.ShouldResemble, Configuration{0, 0, 0})
}

func TestConfigurationDot(t *testing.T) {
	a := Configuration{1, 2, 3}
	b := Configuration{4, 5, 6}
	test.That(t, a.Dot(b), test.ShouldAlmostEqual, 32.0)
}

func TestConfigurationNorms(t *testing.T) {
	a := Configuration{3, -4}
	test.That(t, a.NormL1(), test.ShouldAlmostEqual, 7.0)
	test.That(t, a.NormL2(), test.ShouldAlmostEqual, 5.0)
	test.That(t, a.NormLInf(), test.ShouldAlmostEqual, 4.0)
}

func TestConfigurationEqual(t *testing.T) {
	a := Configuration{1, 2, 3}
	test.That(t, a.Equal(Configuration{1, 2, 3}), test.ShouldBeTrue)
	test.That(t, a.Equal(Configuration{1, 2, 3.0001}), test.ShouldBeFalse)
	test.That(t, a.Equal(Configuration{1, 2}), test.ShouldBeFalse)
}

func TestConfigurationClone(t *testing.T) {
	a := Configuration{1, 2, 3}
	clone := a.Clone()
	test.That(t, clone, test.ShouldResemble, a)
	clone[0] = 99
	test.That(t, a[0], test.ShouldAlmostEqual, 1.0) // clone must not alias the original
}

func TestConfigurationIsNaN(t *testing.T) {
	test.That(t, Configuration{1, 2}.IsNaN(), test.ShouldBeFalse)
	test.That(t, NaNConfiguration(3).IsNaN(), test.ShouldBeTrue)
}

func TestWrapAngle(t *testing.T) {
	test.That(t, wrapAngle(0), test.ShouldAlmostEqual, 0.0)
	test.That(t, wrapAngle(math.Pi), test.ShouldAlmostEqual, math.Pi)
	test.That(t, wrapAngle(-math.Pi), test.ShouldAlmostEqual, math.Pi)
	test.That(t, wrapAngle(3*math.Pi/2), test.ShouldAlmostEqual, -math.Pi/2)
	test.That(t, wrapAngle(-3*math.Pi/2), test.ShouldAlmostEqual, math.Pi/2)
	test.That(t, wrapAngle(2*math.Pi), test.ShouldAlmostEqual, 0.0)
}

func TestAngularDelta(t *testing.T) {
	// Shortest arc from near +pi to near -pi should be small and positive,
	// not the long way around.
	d := angularDelta(math.Pi-0.1, -math.Pi+0.1)
	test.That(t, d, test.ShouldAlmostEqual, 0.2)

	// The reverse direction is the same magnitude, opposite sign.
	d2 := angularDelta(-math.Pi+0.1, math.Pi-0.1)
	test.That(t, d2, test.ShouldAlmostEqual, -0.2)

	// A quarter turn with no wraparound involved.
	test.That(t, angularDelta(0, math.Pi/2), test.ShouldAlmostEqual, math.Pi/2)
}

func TestDofTypeAngular(t *testing.T) {
	test.That(t, DofPlanarPosition.Angular(), test.ShouldBeFalse)
	test.That(t, DofPlanarRotation.Angular(), test.ShouldBeTrue)
	test.That(t, DofVolumetricPosition.Angular(), test.ShouldBeFalse)
	test.That(t, DofVolumetricRotation.Angular(), test.ShouldBeTrue)
	test.That(t, DofJoint.Angular(), test.ShouldBeFalse)
	test.That(t, DofPosition.Angular(), test.ShouldBeFalse)
	test.That(t, DofRotation.Angular(), test.ShouldBeTrue)
}

func TestDofTypesFromInts(t *testing.T) {
	got := DofTypesFromInts([]int{0, 1, 6})
	test.That(t, got, test.ShouldResemble, []DofType{DofPlanarPosition, DofPlanarRotation, DofRotation})
}

func TestDofAwareMetricAllLinear(t *testing.T) {
	m := DofAwareMetric{DofTypes: []DofType{DofPlanarPosition, DofPlanarPosition}}
	a := []float64{0, 0}
	b := []float64{3, 4}
	test.That(t, m.Dist(a, b), test.ShouldAlmostEqual, 5.0)
	test.That(t, m.SimpleDist(a, b), test.ShouldAlmostEqual, 25.0)
}

func TestDofAwareMetricWrapsAngularAxis(t *testing.T) {
	m := DofAwareMetric{DofTypes: []DofType{DofPlanarPosition, DofRotation}}
	// Position identical; orientation near the +pi/-pi seam should measure a
	// small distance rather than the ~2*pi raw difference.
	a := []float64{0, math.Pi - 0.1}
	b := []float64{0, -math.Pi + 0.1}
	test.That(t, m.Dist(a, b), test.ShouldAlmostEqual, 0.2)
}

func TestDofAwareMetricShortTrailingAxesDefaultLinear(t *testing.T) {
	// DofTypes shorter than the configuration: the un-listed trailing axis is
	// treated as linear.
	m := DofAwareMetric{DofTypes: []DofType{DofPlanarPosition}}
	a := []float64{0, 10}
	b := []float64{0, 4}
	test.That(t, m.Dist(a, b), test.ShouldAlmostEqual, 6.0)
}

func TestDofAwareDiscretizerLinearAxis(t *testing.T) {
	d := DofAwareDiscretizer{DofTypes: []DofType{DofPlanarPosition}, PosRes: 1}
	pts := d.Discretize([]float64{0}, []float64{10})
	test.That(t, len(pts) > 0, test.ShouldBeTrue)
	for i := 1; i < len(pts); i++ {
		test.That(t, pts[i][0] >= pts[i-1][0], test.ShouldBeTrue)
	}
	for _, p := range pts {
		test.That(t, p[0] > 0.0 && p[0] < 10.0, test.ShouldBeTrue)
	}
}

func TestDofAwareDiscretizerShortEdgeIsEmpty(t *testing.T) {
	d := DofAwareDiscretizer{DofTypes: []DofType{DofPlanarPosition}, PosRes: 1}
	pts := d.Discretize([]float64{0}, []float64{0.5})
	test.That(t, len(pts), test.ShouldEqual, 0)
}

func TestDofAwareDiscretizerAngularAxisWrapsAcrossSeam(t *testing.T) {
	// Source and target straddle the +pi/-pi seam; the shortest interpolation
	// path must stay within a small arc rather than sweeping the long way
	// around through 0.
	d := DofAwareDiscretizer{DofTypes: []DofType{DofRotation}, OriRes: 0.1}
	source := []float64{math.Pi - 0.1}
	target := []float64{-math.Pi + 0.1}
	pts := d.Discretize(source, target)
	test.That(t, len(pts) > 0, test.ShouldBeTrue)
	for _, p := range pts {
		// Every intermediate value must be within the 0.2-radian short arc,
		// wrapped into (-pi, pi], not near 0 (the long way around).
		test.That(t, p[0] > math.Pi-0.2 || p[0] < -math.Pi+0.2, test.ShouldBeTrue)
	}
}

func TestDofAwareDiscretizerUsesFinerResolutionAxis(t *testing.T) {
	// Position needs only 1 step at PosRes=100, orientation needs several at
	// OriRes=0.1; the overall step count must be driven by the angular axis.
	d := DofAwareDiscretizer{DofTypes: []DofType{DofPlanarPosition, DofRotation}, PosRes: 100, OriRes: 0.1}
	pts := d.Discretize([]float64{0, 0}, []float64{1, 1})
	test.That(t, len(pts) > 0, test.ShouldBeTrue)
	// Consecutive orientation values must be separated by at most OriRes.
	all := append([][]float64{{0, 0}}, pts...)
	all = append(all, []float64{1, 1})
	for i := 1; i < len(all); i++ {
		test.That(t, math.Abs(all[i][1]-all[i-1][1]) <= 0.1+1e-9, test.ShouldBeTrue)
	}
}
