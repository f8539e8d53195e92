// Package trajectory implements the TrajectoryDiscretizer described in spec
// §4.7: turning a (source, target) edge into an ordered sequence of
// intermediate configurations for validity checking. Grounded on
// original_source/include/ippp/core/trajectoryPlanner/LinearTrajectory.hpp
// (calcTrajectoryCont / calcTrajectoryBin naming and the "excludes source and
// target" contract) and on
// original_source/include/ippp/modules/trajectoryPlanner/RotateAtS.hpp for the
// translate-then-rotate-at-fraction-s variant used by mobile robots whose
// configuration mixes positional and angular degrees of freedom.
package trajectory

import "math"

// Discretizer turns one edge into the sequence of intermediate configurations
// a planner must validity-check before accepting it.
type Discretizer interface {
	Discretize(source, target []float64) [][]float64
}

// Linear is the default Discretizer: straight-line interpolation at a fixed
// step size measured under posMetric, excluding source and target themselves.
type Linear struct {
	StepSize  float64
	PosMetric func(a, b []float64) float64 // true (non-squared) distance
}

// DiscretizeCont computes calcTrajectoryCont: a fixed number of evenly spaced
// points between source and target (exclusive), count = ceil(dist/StepSize)-1,
// so consecutive points (including the endpoints) are never farther apart
// than StepSize.
func (l Linear) DiscretizeCont(source, target []float64) [][]float64 {
	dist := l.PosMetric(source, target)
	if dist <= 0 || l.StepSize <= 0 {
		return nil
	}
	n := int(math.Ceil(dist / l.StepSize))
	if n <= 1 {
		return nil
	}
	out := make([][]float64, 0, n-1)
	for i := 1; i < n; i++ {
		frac := float64(i) / float64(n)
		out = append(out, lerp(source, target, frac))
	}
	return out
}

// Discretize implements Discretizer via DiscretizeCont.
func (l Linear) Discretize(source, target []float64) [][]float64 {
	return l.DiscretizeCont(source, target)
}

// DiscretizeBin computes calcTrajectoryBin: the same point set as
// DiscretizeCont, but ordered by binary subdivision (midpoint first, then the
// two quarter points, then the four eighth points, and so on) so a caller
// checking points in the returned order rejects a blocked edge after
// inspecting as few points as possible, rather than scanning linearly from one
// end.
func (l Linear) DiscretizeBin(source, target []float64) [][]float64 {
	cont := l.DiscretizeCont(source, target)
	if len(cont) == 0 {
		return cont
	}
	n := len(cont) + 1 // number of segments; cont has n-1 interior points at i/n
	order := binaryOrder(n)
	out := make([][]float64, 0, len(cont))
	for _, i := range order {
		out = append(out, cont[i-1]) // cont[k] holds fraction (k+1)/n
	}
	return out
}

// binaryOrder returns the indices 1..n-1 (the interior fractions i/n) ordered
// by binary subdivision depth: depth 0 is the midpoint, depth 1 the quarter
// points, depth 2 the eighth points, and so on, breadth-first.
func binaryOrder(n int) []int {
	type span struct{ lo, hi int }
	var order []int
	queue := []span{{0, n}}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if s.hi-s.lo < 2 {
			continue
		}
		mid := (s.lo + s.hi) / 2
		if mid > s.lo && mid < s.hi {
			order = append(order, mid)
		}
		queue = append(queue, span{s.lo, mid}, span{mid, s.hi})
	}
	return order
}

func lerp(source, target []float64, frac float64) []float64 {
	out := make([]float64, len(source))
	for i := range source {
		out[i] = source[i] + (target[i]-source[i])*frac
	}
	return out
}

// RotateAtS discretizes an edge as a translational segment followed by a
// rotational segment, joined at fraction RotationPoint of the translational
// segment's point count, matching RotateAtS.hpp's calcTrajectoryCont: the
// robot first translates along posMask degrees of freedom holding orientation
// fixed at source's values, then rotates along oriMask degrees of freedom
// holding the now-reached position fixed.
type RotateAtS struct {
	PosStepSize   float64
	OriStepSize   float64
	PosMetric     func(a, b []float64) float64
	OriMetric     func(a, b []float64) float64
	PosMask       []bool // true where the axis is positional
	RotationPoint float64 // in (0, 1); defaults to 0.5 if out of range
}

// Discretize implements Discretizer.
func (r RotateAtS) Discretize(source, target []float64) [][]float64 {
	rotPoint := r.RotationPoint
	if rotPoint <= 0 || rotPoint >= 1 {
		rotPoint = 0.5
	}

	// Translational segment: position sweeps from source to target, orientation
	// held fixed at source's values throughout.
	posSource := maskedCopy(source, r.PosMask, source)
	posTarget := maskedCopy(target, r.PosMask, source)
	posSegment := Linear{StepSize: r.PosStepSize, PosMetric: r.PosMetric}.DiscretizeCont(posSource, posTarget)

	// Rotational segment: orientation sweeps from source to target, position
	// held fixed at the now-reached target position throughout.
	oriMetric := r.OriMetric
	if oriMetric == nil {
		oriMetric = r.PosMetric
	}
	rotSource := maskedCopy(target, r.PosMask, source)
	rotTarget := maskedCopy(target, r.PosMask, target)
	rotSegment := Linear{StepSize: r.OriStepSize, PosMetric: oriMetric}.DiscretizeCont(rotSource, rotTarget)

	mid := int(float64(len(posSegment)) * rotPoint)
	if mid > len(posSegment) {
		mid = len(posSegment)
	}
	out := make([][]float64, 0, len(posSegment)+len(rotSegment))
	out = append(out, posSegment[:mid]...)
	out = append(out, rotSegment...)
	out = append(out, posSegment[mid:]...)
	return out
}

// maskedCopy builds a configuration that takes its positional axes (where
// mask[i] is true) from moving and its remaining axes from fixed.
func maskedCopy(moving []float64, mask []bool, fixed []float64) []float64 {
	out := append([]float64(nil), fixed...)
	applyMask(out, mask, moving)
	return out
}

// applyMask overwrites cfg's masked-true axes with the corresponding values
// from src.
func applyMask(cfg []float64, mask []bool, src []float64) {
	for i := range cfg {
		if i < len(mask) && mask[i] {
			cfg[i] = src[i]
		}
	}
}
