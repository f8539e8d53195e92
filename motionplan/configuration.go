package motionplan

import "math"

// DofType describes what a single axis of a Configuration represents. It determines
// whether the axis wraps cyclically (angular) or is bounded linearly, and lets a
// DistanceMetric or TrajectoryDiscretizer treat the axis accordingly.
type DofType int

// The degree-of-freedom kinds a Configuration axis may carry, per the robot descriptor
// that produced it.
const (
	DofPlanarPosition DofType = iota
	DofPlanarRotation
	DofVolumetricPosition
	DofVolumetricRotation
	DofJoint
	DofPosition
	DofRotation
)

// Angular reports whether axes of this DofType wrap cyclically in [-pi, pi] and should
// be compared with a shortest-arc distance rather than a linear difference.
func (t DofType) Angular() bool {
	switch t {
	case DofPlanarRotation, DofVolumetricRotation, DofRotation:
		return true
	default:
		return false
	}
}

// Configuration is a fixed-dimension tuple of real values: a single point in the robot's
// joint space. The dimension D is determined by len(Configuration) and is expected to be
// constant across every Configuration a given planner instance produces or consumes.
//
// A Configuration with any NaN component is the "no sample" sentinel (see
// NaNConfiguration); the sampling strategies (§4.7) signal rejection with a nil slice instead.
type Configuration []float64

// NewConfiguration allocates a Configuration of the given dimension with all axes zeroed.
func NewConfiguration(dim int) Configuration {
	return make(Configuration, dim)
}

// NaNConfiguration returns the "no sample" sentinel configuration for dimension dim.
func NaNConfiguration(dim int) Configuration {
	c := make(Configuration, dim)
	for i := range c {
		c[i] = math.NaN()
	}
	return c
}

// Dim returns the number of axes in the configuration.
func (c Configuration) Dim() int {
	return len(c)
}

// At returns the value of the axis at the given index.
func (c Configuration) At(axis int) float64 {
	return c[axis]
}

// IsNaN reports whether any component of c is NaN, i.e. whether c is the "no sample"
// sentinel.
func (c Configuration) IsNaN() bool {
	for _, v := range c {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of c.
func (c Configuration) Clone() Configuration {
	out := make(Configuration, len(c))
	copy(out, c)
	return out
}

// Add returns c + other, componentwise. Panics if the dimensions differ.
func (c Configuration) Add(other Configuration) Configuration {
	out := make(Configuration, len(c))
	for i := range c {
		out[i] = c[i] + other[i]
	}
	return out
}

// Sub returns c - other, componentwise. Panics if the dimensions differ.
func (c Configuration) Sub(other Configuration) Configuration {
	out := make(Configuration, len(c))
	for i := range c {
		out[i] = c[i] - other[i]
	}
	return out
}

// Scale returns c scaled by a constant factor.
func (c Configuration) Scale(factor float64) Configuration {
	out := make(Configuration, len(c))
	for i := range c {
		out[i] = c[i] * factor
	}
	return out
}

// Dot returns the dot product of c and other.
func (c Configuration) Dot(other Configuration) float64 {
	var sum float64
	for i := range c {
		sum += c[i] * other[i]
	}
	return sum
}

// NormL1 returns the sum of absolute component values.
func (c Configuration) NormL1() float64 {
	var sum float64
	for _, v := range c {
		sum += math.Abs(v)
	}
	return sum
}

// NormL2 returns the Euclidean norm.
func (c Configuration) NormL2() float64 {
	return math.Sqrt(c.Dot(c))
}

// NormLInf returns the largest absolute component value.
func (c Configuration) NormLInf() float64 {
	var max float64
	for _, v := range c {
		if a := math.Abs(v); a > max {
			max = a
		}
	}
	return max
}

// Equal reports whether c and other have identical components. Unlike the metrics used
// for nearest-neighbor search, this is an exact comparison and is used only to detect
// literal self-matches (e.g. excluding the query configuration from KD-tree results).
func (c Configuration) Equal(other Configuration) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

// wrapAngle normalizes a radian value into (-pi, pi].
func wrapAngle(v float64) float64 {
	for v > math.Pi {
		v -= 2 * math.Pi
	}
	for v <= -math.Pi {
		v += 2 * math.Pi
	}
	return v
}

// angularDelta returns the shortest signed arc from a to b, both radians.
func angularDelta(a, b float64) float64 {
	return wrapAngle(b - a)
}

// DofTypesFromInts converts env.Robot.DofTypes' opaque per-axis int tags
// back into DofType, the boundary env deliberately stores as plain ints to
// avoid importing this package (see env.Robot's DofTypes doc comment).
func DofTypesFromInts(ints []int) []DofType {
	out := make([]DofType, len(ints))
	for i, v := range ints {
		out[i] = DofType(v)
	}
	return out
}

// DofAwareMetric is a DistanceMetric that measures each axis according to its
// DofType: angular axes (DofType.Angular()) use angularDelta's shortest
// signed arc, every other axis a plain linear difference, implementing spec
// §3's "wraps in [-pi, pi] by subtraction, treated cyclically for distance
// when metric enables it". A DofTypes entry shorter than the configuration's
// dimension leaves the remaining trailing axes linear.
//
// DofAwareMetric satisfies metric.DistanceMetric structurally (same Dist/
// SimpleDist signatures) without this package importing metric, since metric
// is itself imported by this package (via PlannerOptions) and an import back
// would cycle.
type DofAwareMetric struct {
	DofTypes []DofType
}

func (m DofAwareMetric) axisDelta(a, b []float64, i int) float64 {
	if i < len(m.DofTypes) && m.DofTypes[i].Angular() {
		return angularDelta(a[i], b[i])
	}
	return b[i] - a[i]
}

// Dist implements metric.DistanceMetric.
func (m DofAwareMetric) Dist(a, b []float64) float64 {
	return math.Sqrt(m.SimpleDist(a, b))
}

// SimpleDist implements metric.DistanceMetric: the pre-sqrt sum of squared
// per-axis deltas, each already wrapped where the axis is angular.
func (m DofAwareMetric) SimpleDist(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := m.axisDelta(a, b, i)
		sum += d * d
	}
	return sum
}

// DofAwareDiscretizer densifies an edge per spec §4.4's calcTrajCont
// contract: consecutive points "separated by at most posRes in linear
// components and oriRes in angular components". Every axis is interpolated
// along its own shortest path — a plain linear lerp for positional axes, the
// shortest signed arc (angularDelta) for angular axes — and the point count
// is driven by whichever axis needs the most subdivisions to respect its own
// resolution.
type DofAwareDiscretizer struct {
	DofTypes       []DofType
	PosRes, OriRes float64
}

// Discretize implements trajectory.Discretizer structurally, for the same
// reason DofAwareMetric does: this package already imports trajectory, so
// trajectory cannot import back.
func (d DofAwareDiscretizer) Discretize(source, target []float64) [][]float64 {
	n := d.steps(source, target)
	if n <= 1 {
		return nil
	}
	out := make([][]float64, 0, n-1)
	for i := 1; i < n; i++ {
		out = append(out, d.interpolate(source, target, float64(i)/float64(n)))
	}
	return out
}

func (d DofAwareDiscretizer) angular(i int) bool {
	return i < len(d.DofTypes) && d.DofTypes[i].Angular()
}

func (d DofAwareDiscretizer) steps(source, target []float64) int {
	steps := 1
	for i := range source {
		res := d.PosRes
		dist := math.Abs(target[i] - source[i])
		if d.angular(i) {
			res = d.OriRes
			dist = math.Abs(angularDelta(source[i], target[i]))
		}
		if res <= 0 {
			continue
		}
		if n := int(math.Ceil(dist / res)); n > steps {
			steps = n
		}
	}
	return steps
}

func (d DofAwareDiscretizer) interpolate(source, target []float64, frac float64) []float64 {
	out := make([]float64, len(source))
	for i := range source {
		if d.angular(i) {
			out[i] = wrapAngle(source[i] + angularDelta(source[i], target[i])*frac)
			continue
		}
		out[i] = source[i] + (target[i]-source[i])*frac
	}
	return out
}
