// Package metric provides the DistanceMetric plug-ins consumed by the planner core:
// pure, thread-safe functions over pairs of configurations. Grounded on
// original_source/include/core/distanceMetrics/WeightVecInfMetric.hpp and
// original_source/include/ippp/modules/distanceMetrics/{L1,WeightedL1}Metric.hpp, and
// named in the style of viamrobotics-rdk/motionplan/metrics_test.go's
// WeightedSquaredNormDistance.
package metric

import "math"

// DistanceMetric computes a non-negative real distance between two configurations of
// equal dimension. Implementations must be pure functions with no internal mutable
// state so a single instance can be shared, read-only, across concurrent planner
// workers (§5).
type DistanceMetric interface {
	// Dist returns the true distance between a and b: dist(a,a) == 0, dist(a,b) ==
	// dist(b,a), dist(a,b) >= 0.
	Dist(a, b []float64) float64

	// SimpleDist returns a monotone transform of Dist (typically cheaper to compute,
	// e.g. the pre-sqrt sum of squares for an L2 metric) suitable for comparisons in
	// nearest-neighbor inner loops where the absolute value is never surfaced.
	SimpleDist(a, b []float64) float64
}

// l1Metric implements the unweighted L1 (Manhattan) distance.
type l1Metric struct{}

// NewL1Metric returns the unweighted sum-of-absolute-differences metric. simpleDist and
// dist coincide for L1 since there is no monotone transform to elide.
func NewL1Metric() DistanceMetric { return l1Metric{} }

func (l1Metric) Dist(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum
}

func (m l1Metric) SimpleDist(a, b []float64) float64 { return m.Dist(a, b) }

// l2Metric implements the unweighted Euclidean distance.
type l2Metric struct{}

// NewL2Metric returns the unweighted Euclidean distance metric.
func NewL2Metric() DistanceMetric { return l2Metric{} }

func (l2Metric) Dist(a, b []float64) float64 {
	return math.Sqrt(sumSquares(a, b, nil))
}

func (l2Metric) SimpleDist(a, b []float64) float64 {
	return sumSquares(a, b, nil)
}

// linfMetric implements the unweighted Chebyshev (max-coefficient) distance.
type linfMetric struct{}

// NewLInfMetric returns the unweighted max-coefficient distance metric. There is no
// cheaper monotone transform, so SimpleDist equals Dist.
func NewLInfMetric() DistanceMetric { return linfMetric{} }

func (linfMetric) Dist(a, b []float64) float64 {
	var max float64
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > max {
			max = d
		}
	}
	return max
}

func (m linfMetric) SimpleDist(a, b []float64) float64 { return m.Dist(a, b) }

// weightedL1Metric implements a per-axis weighted L1 distance.
type weightedL1Metric struct{ weights []float64 }

// NewWeightedL1Metric returns an L1 distance scaling each axis difference by weights[i].
func NewWeightedL1Metric(weights []float64) DistanceMetric {
	return weightedL1Metric{weights: append([]float64(nil), weights...)}
}

func (m weightedL1Metric) Dist(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(a[i]-b[i]) * m.weights[i]
	}
	return sum
}

func (m weightedL1Metric) SimpleDist(a, b []float64) float64 { return m.Dist(a, b) }

// weightedL2Metric implements a per-axis weighted Euclidean distance.
type weightedL2Metric struct{ weights []float64 }

// NewWeightedL2Metric returns an L2 distance scaling each axis' squared difference by
// weights[i] before summation, matching WeightVecInfMetric.hpp's weighted quadratic
// form.
func NewWeightedL2Metric(weights []float64) DistanceMetric {
	return weightedL2Metric{weights: append([]float64(nil), weights...)}
}

func (m weightedL2Metric) Dist(a, b []float64) float64 {
	return math.Sqrt(sumSquares(a, b, m.weights))
}

func (m weightedL2Metric) SimpleDist(a, b []float64) float64 {
	return sumSquares(a, b, m.weights)
}

// weightedLInfMetric implements a per-axis weighted Chebyshev distance.
type weightedLInfMetric struct{ weights []float64 }

// NewWeightedLInfMetric returns a max-coefficient distance scaling each axis difference
// by weights[i], grounded on WeightVecInfMetric.hpp.
func NewWeightedLInfMetric(weights []float64) DistanceMetric {
	return weightedLInfMetric{weights: append([]float64(nil), weights...)}
}

func (m weightedLInfMetric) Dist(a, b []float64) float64 {
	var max float64
	for i := range a {
		if d := math.Abs(a[i]-b[i]) * m.weights[i]; d > max {
			max = d
		}
	}
	return max
}

func (m weightedLInfMetric) SimpleDist(a, b []float64) float64 { return m.Dist(a, b) }

// sumSquares computes the (optionally weighted) sum of squared axis differences between
// a and b; weights of nil means unit weight on every axis.
func sumSquares(a, b []float64, weights []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		d *= d
		if weights != nil {
			d *= weights[i]
		}
		sum += d
	}
	return sum
}

// Simplify converts a distance value x (as returned by Dist) into the equivalent
// SimpleDist-space value for the given metric, i.e. the inverse of the monotone
// transform Dist applies on top of SimpleDist (squaring undoes L2's square
// root). Only L2-family metrics have a nontrivial transform.
func Simplify(m DistanceMetric, x float64) float64 {
	switch m.(type) {
	case l2Metric, weightedL2Metric:
		return x * x
	default:
		return x
	}
}
