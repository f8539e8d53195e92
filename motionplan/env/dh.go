package env

import (
	"math"

	"github.com/golang/geo/r3"
)

// affine16 is a row-major 4x4 affine transform, flattened as in Pose.Affine.
type affine16 = [16]float64

// dhAffine builds the 4x4 affine transform for one Denavit-Hartenberg row (the
// "classic" DH convention: rotate about x by alpha, translate along x by a, translate
// along z by d, rotate about z by theta), grounded on the serial-robot chaining
// described in original_source/include/ippp/environment/robot/RobotBase.h.
func dhAffine(alpha, a, d, theta float64) affine16 {
	ca, sa := math.Cos(alpha), math.Sin(alpha)
	ct, st := math.Cos(theta), math.Sin(theta)
	return affine16{
		ct, -st * ca, st * sa, a * ct,
		st, ct * ca, -ct * sa, a * st,
		0, sa, ca, d,
		0, 0, 0, 1,
	}
}

// mulAffine composes two 4x4 affine transforms: a then b (result = a * b).
func mulAffine(a, b affine16) affine16 {
	var out affine16
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += a[row*4+k] * b[k*4+col]
			}
			out[row*4+col] = sum
		}
	}
	return out
}

// poseFromAffine extracts a Pose (translation + axis-angle rotation) from a 4x4 affine
// transform, inverting the Rodrigues construction used by Pose.Affine.
func poseFromAffine(m affine16) Pose {
	point := r3.Vector{X: m[3], Y: m[7], Z: m[11]}

	trace := m[0] + m[5] + m[10]
	angle := math.Acos(clamp((trace-1)/2, -1, 1))
	if angle < 1e-12 {
		return Pose{Point: point, Axis: r3.Vector{X: 0, Y: 0, Z: 1}, AngleRadians: 0}
	}
	denom := 2 * math.Sin(angle)
	axis := r3.Vector{
		X: (m[9] - m[6]) / denom,
		Y: (m[2] - m[8]) / denom,
		Z: (m[4] - m[1]) / denom,
	}
	if n := axis.Norm(); n > 1e-12 {
		axis = axis.Mul(1 / n)
	}
	return Pose{Point: point, Axis: axis, AngleRadians: angle}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
