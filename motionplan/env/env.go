// Package env implements the Environment boundary described in spec §6: a workspace
// bounding box, a robot descriptor (dimension, per-axis bounds and DofType, and pose),
// an obstacle set, and the robot-transform function mapping a configuration to pose(s)
// in the workspace. These are external-collaborator contracts the planner core
// consumes; this package gives them a concrete, minimal implementation grounded on
// original_source/include/ippp/environment/{robot/RobotBase.h,ObstacleObject.h} and the
// teacher's own use of github.com/golang/geo/r3 for vector math
// (viamrobotics-rdk/motionplan/metrics_test.go imports r3 directly).
package env

import (
	"math"

	"github.com/golang/geo/r3"
)

// AABB is an axis-aligned bounding box in R^3.
type AABB struct {
	Min, Max r3.Vector
}

// Contains reports whether p lies within the box, inclusive of the boundary.
func (b AABB) Contains(p r3.Vector) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Intersects reports whether two AABBs overlap.
func (b AABB) Intersects(o AABB) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y &&
		b.Min.Z <= o.Max.Z && b.Max.Z >= o.Min.Z
}

// Pose is a minimal rigid transform: a translation plus an axis-angle rotation. It is
// intentionally smaller than a full spatialmath.Pose (no quaternion/orientation-vector
// machinery) since the planner core only needs enough pose algebra to evaluate robot
// transforms and obstacle placement, per §6.
type Pose struct {
	Point r3.Vector
	// Axis is the rotation axis (unit vector); AngleRadians is the rotation about it.
	Axis         r3.Vector
	AngleRadians float64
}

// IdentityPose returns the zero transform.
func IdentityPose() Pose {
	return Pose{Point: r3.Vector{}, Axis: r3.Vector{X: 0, Y: 0, Z: 1}, AngleRadians: 0}
}

// Affine returns the 4x4 affine transform (row-major, 16 values) represented by p, via
// Rodrigues' rotation formula.
func (p Pose) Affine() [16]float64 {
	x, y, z := p.Axis.X, p.Axis.Y, p.Axis.Z
	norm := p.Axis.Norm()
	if norm > 0 {
		x, y, z = x/norm, y/norm, z/norm
	}
	c := math.Cos(p.AngleRadians)
	s := math.Sin(p.AngleRadians)
	t := 1 - c

	var m [16]float64
	m[0] = t*x*x + c
	m[1] = t*x*y - s*z
	m[2] = t*x*z + s*y
	m[3] = p.Point.X

	m[4] = t*x*y + s*z
	m[5] = t*y*y + c
	m[6] = t*y*z - s*x
	m[7] = p.Point.Y

	m[8] = t*x*z - s*y
	m[9] = t*y*z + s*x
	m[10] = t*z*z + c
	m[11] = p.Point.Z

	m[12], m[13], m[14] = 0, 0, 0
	m[15] = 1
	return m
}

// DHParam is a single Denavit-Hartenberg row describing one link of a serial robot:
// link twist alpha, link length a, link offset d, and the joint's home theta offset.
type DHParam struct {
	Alpha, A, D, ThetaOffset float64
}

// Robot describes the kinematic model the planner searches configurations for: its
// fixed dimension, per-axis bounds, per-axis DofType (as an opaque int tag — the core
// package maps these to motionplan.DofType), and either a mobile base pose or a serial
// DH chain.
type Robot struct {
	Dimension int
	Lower     []float64
	Upper     []float64
	// DofTypes holds one motionplan.DofType value (as int) per axis; stored as int here
	// to avoid this package depending on the root motionplan package.
	DofTypes []int

	// BasePose is the robot's fixed placement in the workspace for mobile robots.
	BasePose Pose

	// DHChain, if non-empty, makes this a serial robot: one DHParam per joint axis.
	DHChain []DHParam
}

// TransformMobile returns the single workspace pose of a mobile robot at configuration
// q, by composing the robot's base pose with a planar/volumetric offset encoded in q.
// q is expected to supply [x, y, theta] (planar) or [x, y, z, rx, ry, rz] style axes;
// callers construct q according to their Robot.DofTypes.
func (r Robot) TransformMobile(q []float64) Pose {
	switch len(q) {
	case 3:
		return Pose{
			Point:        r3.Vector{X: r.BasePose.Point.X + q[0], Y: r.BasePose.Point.Y + q[1], Z: r.BasePose.Point.Z},
			Axis:         r3.Vector{X: 0, Y: 0, Z: 1},
			AngleRadians: r.BasePose.AngleRadians + q[2],
		}
	default:
		p := r.BasePose
		p.Point = p.Point.Add(r3.Vector{X: q[0], Y: q[1], Z: q[2]})
		if len(q) >= 6 {
			p.AngleRadians += q[5]
		}
		return p
	}
}

// TransformSerial returns one pose per link of a serial robot at joint configuration q,
// composing the DH chain successively from the robot's base pose.
func (r Robot) TransformSerial(q []float64) []Pose {
	poses := make([]Pose, len(r.DHChain))
	acc := r.BasePose.Affine()
	for i, dh := range r.DHChain {
		theta := dh.ThetaOffset
		if i < len(q) {
			theta += q[i]
		}
		acc = mulAffine(acc, dhAffine(dh.Alpha, dh.A, dh.D, theta))
		poses[i] = poseFromAffine(acc)
	}
	return poses
}

// Obstacle is a named workspace obstacle with a bounding box; the planner core treats
// obstacles as opaque to any ValidityChecker implementation that needs them (mesh
// content itself is out of this core's scope, per §1).
type Obstacle struct {
	Name string
	Box  AABB
	Pose Pose
}

// Workspace bundles the bounding volume of the environment and its obstacle set.
type Workspace struct {
	Bounds    AABB
	Obstacles []Obstacle
}

// Environment bundles the robot model and workspace a planner searches
// against, matching spec §6's framing of "a robot model, a workspace
// populated with obstacles" as the two inputs the planner core treats as an
// external boundary.
type Environment struct {
	Robot     Robot
	Workspace Workspace
}

// Dim returns the robot's configuration-space dimension.
func (e Environment) Dim() int { return e.Robot.Dimension }

// Bounds returns the robot's per-axis lower and upper configuration bounds.
func (e Environment) Bounds() ([]float64, []float64) {
	return e.Robot.Lower, e.Robot.Upper
}

