package sampling

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Checker is the subset of motionplan/validity.Checker a strategy needs: a
// single-point collision predicate.
type Checker interface {
	Valid(config []float64) bool
}

// CheckerFunc adapts a plain predicate to Checker.
type CheckerFunc func(config []float64) bool

// Valid implements Checker.
func (f CheckerFunc) Valid(config []float64) bool { return f(config) }

// Strategy produces one candidate configuration per call, or nil if the
// strategy's internal attempt budget is exhausted without success (mirroring
// original_source's util::NaNVector<dim>() sentinel, expressed in Go as a nil
// slice rather than a NaN-filled one).
type Strategy interface {
	GetSample() []float64
}

// Straight is the trivial strategy: delegate directly to Sampler, with no
// validity feedback loop.
type Straight struct {
	Sampler     Sampler
	Lower, Upper []float64
}

// GetSample implements Strategy.
func (s Straight) GetSample() []float64 { return s.Sampler.Sample(s.Lower, s.Upper) }

// NearObstacle samples once; if the sample collides, it binary-searches along
// the segment from a known-valid reference point towards the invalid sample
// for the deepest-still-valid point near the obstacle boundary, per
// BerensonSampling's "sample in collision, refine towards the boundary" idea
// generalized to a plain obstacle-proximity strategy (no constraint
// projection).
type NearObstacle struct {
	Sampler       Sampler
	Lower, Upper  []float64
	Checker       Checker
	Reference     []float64 // a known-valid configuration to search from
	BisectionIters int
}

// GetSample implements Strategy.
func (n NearObstacle) GetSample() []float64 {
	cand := n.Sampler.Sample(n.Lower, n.Upper)
	if n.Checker.Valid(cand) {
		return cand
	}
	if n.Reference == nil || !n.Checker.Valid(n.Reference) {
		return nil
	}
	lo, hi := 0.0, 1.0 // lo: fraction known valid (at Reference), hi: fraction known invalid (at cand)
	best := append([]float64(nil), n.Reference...)
	iters := n.BisectionIters
	if iters <= 0 {
		iters = 20
	}
	for i := 0; i < iters; i++ {
		mid := (lo + hi) / 2
		p := lerp(n.Reference, cand, mid)
		if n.Checker.Valid(p) {
			lo = mid
			best = p
		} else {
			hi = mid
		}
	}
	return best
}

func lerp(a, b []float64, frac float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + (b[i]-a[i])*frac
	}
	return out
}

// Bridge implements the "bridge test": draw two samples, and if both collide,
// the midpoint between them frequently lands in a narrow passage between two
// obstacles — concretely, draw a collision sample and a second sample within
// Distance of it along a random ray; if both are invalid, return their
// midpoint, but only once the midpoint's own validity has been confirmed (an
// invalid pair can just as easily straddle a single obstacle rather than a
// gap between two), per spec §4.7's "if the displaced point s2 is also
// invalid, return their midpoint if it is valid".
type Bridge struct {
	Uniform      *Uniform
	Lower, Upper []float64
	Checker      Checker
	Distance     float64
	Attempts     int
}

// GetSample implements Strategy.
func (b Bridge) GetSample() []float64 {
	attempts := b.Attempts
	if attempts <= 0 {
		attempts = 10
	}
	for i := 0; i < attempts; i++ {
		s1 := b.Uniform.Sample(b.Lower, b.Upper)
		ray := b.Uniform.RandomRay(len(s1))
		scale := b.Distance * b.Uniform.RandomNumber()
		s2 := make([]float64, len(s1))
		for j := range s1 {
			s2[j] = s1[j] + ray[j]*scale
		}
		if b.Checker.Valid(s1) || b.Checker.Valid(s2) {
			continue
		}
		mid := midpoint(s1, s2)
		if b.Checker.Valid(mid) {
			return mid
		}
	}
	return nil
}

func midpoint(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = (a[i] + b[i]) / 2
	}
	return out
}

// Gaussian implements GaussianSampling.getSample directly: draw sample1, then
// sample2 = sample1 + randomRay*distance*U(0,1); if exactly one of the pair
// collides, return the free one.
type Gaussian struct {
	Uniform      *Uniform
	Lower, Upper []float64
	Checker      Checker
	Distance     float64
	Attempts     int
}

// GetSample implements Strategy.
func (g Gaussian) GetSample() []float64 {
	attempts := g.Attempts
	if attempts <= 0 {
		attempts = 10
	}
	for i := 0; i < attempts; i++ {
		s1 := g.Uniform.Sample(g.Lower, g.Upper)
		ray := g.Uniform.RandomRay(len(s1))
		scale := g.Distance * g.Uniform.RandomNumber()
		s2 := make([]float64, len(s1))
		for j := range s1 {
			s2[j] = s1[j] + ray[j]*scale
		}
		v1, v2 := g.Checker.Valid(s1), g.Checker.Valid(s2)
		if !v1 && v2 {
			return s1
		}
		if v1 && !v2 {
			return s2
		}
	}
	return nil
}

// Jacobian evaluates the constraint Jacobian (rows = constraint equations,
// cols = configuration axes) and the Euclidean constraint error at config, the
// two quantities BerensonSampling's project() needs each iteration.
type Jacobian func(config []float64) (j *mat.Dense, err []float64)

// Berenson implements BerensonSampling<dim>::getSample/project: draw a
// sample; if it collides, step it towards the nearest graph node by at most
// StepSize, then iteratively correct it onto the constraint manifold via the
// Moore-Penrose pseudo-inverse of the constraint Jacobian (computed through
// gonum's SVD, mirroring Eigen's completeOrthogonalDecomposition().
// pseudoInverse() call in the original), aborting if the correction leaves
// the robot's joint bounds or drifts the candidate's SimpleDist from the
// reference node above 2*StepSize*StepSize.
type Berenson struct {
	Sampler       Sampler
	Lower, Upper  []float64
	Checker       Checker
	NearestNode   func(config []float64) []float64
	SimpleDist    func(a, b []float64) float64
	Jacobian      Jacobian
	ConstraintOK  func(config []float64) bool
	BoundsOK      func(config []float64) bool
	StepSize      float64
	Attempts      int
}

// GetSample implements Strategy.
func (b Berenson) GetSample() []float64 {
	cand := b.Sampler.Sample(b.Lower, b.Upper)
	if b.Checker.Valid(cand) {
		return cand
	}
	near := b.NearestNode(cand)
	dist := b.SimpleDist(cand, near)
	if dist == 0 {
		return nil
	}
	step := math.Min(b.StepSize, dist)
	scale := step / dist
	stepped := make([]float64, len(cand))
	for i := range cand {
		stepped[i] = near[i] + scale*(cand[i]-near[i])
	}
	if !b.project(stepped, near) {
		return nil
	}
	if b.Checker.Valid(stepped) {
		return stepped
	}
	return nil
}

func (b Berenson) project(config, near []float64) bool {
	attempts := b.Attempts
	if attempts <= 0 {
		attempts = 10
	}
	simplifiedStep := b.StepSize * b.StepSize // SimpleDist is the squared-style transform for L2 metrics
	for i := 0; i < attempts; i++ {
		if b.ConstraintOK(config) {
			return true
		}
		j, eucErr := b.Jacobian(config)
		delta, ok := pseudoInverseSolve(j, eucErr)
		if !ok {
			return false
		}
		for k := range config {
			config[k] -= delta[k]
		}
		if !b.BoundsOK(config) || b.SimpleDist(config, near) > 2*simplifiedStep {
			return false
		}
	}
	return false
}

// pseudoInverseSolve computes invJ * eucErr via J's Moore-Penrose
// pseudo-inverse, built from its singular value decomposition, matching the
// Eigen completeOrthogonalDecomposition().pseudoInverse() call in
// BerensonSampling<dim>::project.
func pseudoInverseSolve(j *mat.Dense, eucErr []float64) ([]float64, bool) {
	var svd mat.SVD
	if !svd.Factorize(j, mat.SVDFull) {
		return nil, false
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	values := svd.Values(nil)

	rows, cols := j.Dims()
	uT := mat.NewDense(cols, rows, nil)
	// uT = diag(1/sigma_i) * U^T, truncated to rank(J) via a small epsilon.
	const eps = 1e-10
	for i := 0; i < len(values) && i < cols && i < rows; i++ {
		if values[i] < eps {
			continue
		}
		inv := 1 / values[i]
		for r := 0; r < rows; r++ {
			uT.Set(i, r, inv*u.At(r, i))
		}
	}
	var pinv mat.Dense
	pinv.Mul(&v, uT)

	errVec := mat.NewVecDense(len(eucErr), eucErr)
	var out mat.VecDense
	out.MulVec(&pinv, errVec)
	delta := make([]float64, cols)
	for i := 0; i < cols; i++ {
		delta[i] = out.AtVec(i)
	}
	return delta, true
}

// Informed implements the ellipsoidal/informed sampling used during RRT*'s
// optimize phase (supplemented beyond spec.md's explicit strategy list,
// matching the narrowing-search behavior real RRT* implementations use once a
// first solution is found): draws uniformly within Lower/Upper (the full
// sampling bounds, not a box fitted to the ellipsoid), then rejects points
// outside the prolate hyperspheroid with foci Start/Goal and major axis
// BestCost, so the
// distribution concentrates around the straight line between start and goal
// as BestCost shrinks towards the straight-line distance.
type Informed struct {
	Uniform      *Uniform
	Lower, Upper []float64
	Start, Goal  []float64
	BestCost     float64
	DistMetric   func(a, b []float64) float64
	Attempts     int
}

// GetSample implements Strategy.
func (s Informed) GetSample() []float64 {
	cMin := s.DistMetric(s.Start, s.Goal)
	if s.BestCost <= cMin {
		return s.Uniform.Sample(s.Lower, s.Upper)
	}
	attempts := s.Attempts
	if attempts <= 0 {
		attempts = 20
	}
	for i := 0; i < attempts; i++ {
		cand := s.Uniform.Sample(s.Lower, s.Upper)
		if s.DistMetric(s.Start, cand)+s.DistMetric(cand, s.Goal) <= s.BestCost {
			return cand
		}
	}
	return nil
}
