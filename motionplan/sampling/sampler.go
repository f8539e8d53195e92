// Package sampling implements the Sampler and Sampling-strategy contracts of
// spec §4.2/§4.3. Grounded on original_source/include/ippp/modules/sampler/
// SamplerNormalDist.hpp for the "deterministic given a seeded RNG" contract,
// original_source/include/core/sampling/GaussianSampling.hpp for the
// obstacle-straddling Gaussian/Bridge strategy shape, and
// original_source/include/ippp/modules/sampling/BerensonSampling.hpp for the
// constrained-projection strategy. Samplers here are deterministic pure
// functions of (seed, call index), matching viamrobotics-rdk's preference for
// explicitly seeded math/rand sources over global state
// (motionplan/rrtPlannerShared.go's per-worker *rand.Rand idiom).
package sampling

import (
	"math"
	"math/rand"
)

// Sampler draws one configuration from the space bounded by lower/upper.
// Implementations must be deterministic: the same
// seed and the same sequence of Sample calls always produce the same
// sequence of configurations, so that workers=1 runs are exactly
// reproducible (spec §8).
type Sampler interface {
	Sample(lower, upper []float64) []float64
}

// Uniform draws each axis independently from U(lower[i], upper[i]).
type Uniform struct {
	rng *rand.Rand
}

// NewUniform constructs a Uniform sampler seeded deterministically from seed.
func NewUniform(seed int64) *Uniform { return &Uniform{rng: rand.New(rand.NewSource(seed))} }

// Sample implements Sampler.
func (u *Uniform) Sample(lower, upper []float64) []float64 {
	out := make([]float64, len(lower))
	for i := range lower {
		out[i] = lower[i] + u.rng.Float64()*(upper[i]-lower[i])
	}
	return out
}

// RandomNumber returns one U(0,1) draw, used by strategies (Bridge, Gaussian)
// that need a scalar alongside a full configuration sample.
func (u *Uniform) RandomNumber() float64 { return u.rng.Float64() }

// RandomRay returns a uniformly-distributed unit vector of the given
// dimension, used by GaussianSampling's "random direction, random distance"
// construction.
func (u *Uniform) RandomRay(dim int) []float64 {
	v := make([]float64, dim)
	var norm float64
	for i := range v {
		v[i] = u.rng.NormFloat64()
		norm += v[i] * v[i]
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		v[0] = 1
		return v
	}
	for i := range v {
		v[i] /= norm
	}
	return v
}

// UniformBiased draws uniformly but weights the draw towards a bias point by
// interpolating a fraction Bias of the way from a fresh uniform draw to the
// bias point, giving denser sampling near goals/seeds without a hard cutoff.
type UniformBiased struct {
	u         *Uniform
	BiasPoint []float64
	Bias      float64 // in [0, 1]; 0 = pure uniform, 1 = always BiasPoint
}

// NewUniformBiased constructs a UniformBiased sampler.
func NewUniformBiased(seed int64, biasPoint []float64, bias float64) *UniformBiased {
	return &UniformBiased{u: NewUniform(seed), BiasPoint: biasPoint, Bias: bias}
}

// Sample implements Sampler.
func (b *UniformBiased) Sample(lower, upper []float64) []float64 {
	raw := b.u.Sample(lower, upper)
	if b.BiasPoint == nil || b.Bias <= 0 {
		return raw
	}
	out := make([]float64, len(raw))
	for i := range raw {
		out[i] = raw[i] + (b.BiasPoint[i]-raw[i])*b.Bias
	}
	return out
}

// Normal draws each axis from a Gaussian centered on Mean with standard
// deviation StdDev, clamped into [lower, upper], matching SamplerNormalDist's
// "sample around a point" contract.
type Normal struct {
	rng    *rand.Rand
	Mean   []float64
	StdDev float64
}

// NewNormal constructs a Normal sampler seeded deterministically from seed.
func NewNormal(seed int64, mean []float64, stdDev float64) *Normal {
	return &Normal{rng: rand.New(rand.NewSource(seed)), Mean: mean, StdDev: stdDev}
}

// Sample implements Sampler.
func (n *Normal) Sample(lower, upper []float64) []float64 {
	out := make([]float64, len(lower))
	for i := range lower {
		v := n.Mean[i] + n.rng.NormFloat64()*n.StdDev
		if v < lower[i] {
			v = lower[i]
		}
		if v > upper[i] {
			v = upper[i]
		}
		out[i] = v
	}
	return out
}

// Halton draws a deterministic low-discrepancy sequence using one prime base
// per axis, indexed by an internal call counter rather than an RNG, so two
// Halton samplers over the same dimension always produce the same sequence
// regardless of seed.
type Halton struct {
	bases []int
	index int
}

var primes = []int{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47}

// NewHalton constructs a Halton sampler over dim axes, assigning axis i the
// i-th prime base (wrapping around primes if dim exceeds the table).
func NewHalton(dim int) *Halton {
	bases := make([]int, dim)
	for i := range bases {
		bases[i] = primes[i%len(primes)]
	}
	return &Halton{bases: bases}
}

// Sample implements Sampler.
func (h *Halton) Sample(lower, upper []float64) []float64 {
	h.index++
	out := make([]float64, len(lower))
	for i := range lower {
		frac := haltonValue(h.index, h.bases[i])
		out[i] = lower[i] + frac*(upper[i]-lower[i])
	}
	return out
}

func haltonValue(index, base int) float64 {
	f, r := 1.0, 0.0
	i := index
	for i > 0 {
		f /= float64(base)
		r += f * float64(i%base)
		i /= base
	}
	return r
}

// Grid draws configurations from a fixed-resolution axis-aligned grid,
// enumerated in row-major order and wrapping once exhausted, giving exhaustive
// deterministic coverage for low-dimensional spaces.
type Grid struct {
	Resolution int
	counter    int
}

// NewGrid constructs a Grid sampler with the given per-axis resolution.
func NewGrid(resolution int) *Grid { return &Grid{Resolution: resolution} }

// Sample implements Sampler.
func (g *Grid) Sample(lower, upper []float64) []float64 {
	dim := len(lower)
	out := make([]float64, dim)
	idx := g.counter
	g.counter++
	res := g.Resolution
	if res < 1 {
		res = 1
	}
	for i := 0; i < dim; i++ {
		cell := idx % res
		idx /= res
		frac := 0.0
		if res > 1 {
			frac = float64(cell) / float64(res-1)
		}
		out[i] = lower[i] + frac*(upper[i]-lower[i])
	}
	return out
}
