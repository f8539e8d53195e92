// Package validity implements the ValidityChecker contract from spec §4.4: a
// pluggable obstacle/self-collision test a planner calls on every sampled
// configuration and every discretized trajectory point. Grounded on
// original_source/include/ippp/modules/collisionDetection/{CollisionRequest.h,
// CollisionDetection2D.hpp} for the request shape and the 2-D point/triangle
// algorithm, and on erh-rdk/motionplan/collision.go for the Go idiom of
// reporting a collision as a result carrying distance and penetration-depth
// fields rather than a bare bool.
package validity

import "math"

// CollisionRequest selects which collision facets a Checker computes, mirroring
// original_source's CollisionRequest.h. Checkers that cannot cheaply provide a
// requested facet (e.g. distance on a boolean-only grid) leave the
// corresponding CollisionResult field at its zero value.
type CollisionRequest struct {
	CheckInterRobot         bool
	CheckObstacle           bool
	ComputeDistance         bool
	ComputePenetrationDepth bool
}

// DefaultCollisionRequest matches original_source's CollisionRequest defaults:
// obstacle and inter-robot checks on, distance and penetration depth off.
func DefaultCollisionRequest() CollisionRequest {
	return CollisionRequest{CheckInterRobot: true, CheckObstacle: true}
}

// CollisionResult is the outcome of one CheckConfig call.
type CollisionResult struct {
	InCollision      bool
	Distance         float64
	PenetrationDepth float64
}

// Checker is the runtime-dimension ValidityChecker: it judges whether a single
// configuration, or every point of an already-discretized trajectory, is free
// of collision under req.
type Checker interface {
	CheckConfig(config []float64, req CollisionRequest) (CollisionResult, error)
	CheckTrajectory(configs [][]float64, req CollisionRequest) (bool, error)
}

// CheckerFunc adapts a plain config-only predicate to the Checker interface
// for cases (unit tests, trivial obstacle-free spaces) where the full
// CollisionResult machinery is unneeded.
type CheckerFunc func(config []float64) bool

// CheckConfig implements Checker.
func (f CheckerFunc) CheckConfig(config []float64, _ CollisionRequest) (CollisionResult, error) {
	return CollisionResult{InCollision: f(config)}, nil
}

// CheckTrajectory implements Checker.
func (f CheckerFunc) CheckTrajectory(configs [][]float64, req CollisionRequest) (bool, error) {
	for _, c := range configs {
		res, err := f.CheckConfig(c, req)
		if err != nil {
			return false, err
		}
		if res.InCollision {
			return true, nil
		}
	}
	return false, nil
}

// Triangle2D is one obstacle face in the plane, used by TriangleChecker2D.
type Triangle2D struct {
	A, B, C [2]float64
}

// containsPoint runs the barycentric point-in-triangle test from
// CollisionDetection2D.hpp's checkPoint2D verbatim (same alpha/beta/gamma
// formulation), returning true when (x, y) lies strictly inside the triangle.
func (t Triangle2D) containsPoint(x, y float64) bool {
	denom := (t.B[1]-t.C[1])*(t.A[0]-t.C[0]) + (t.C[0]-t.B[0])*(t.A[1]-t.C[1])
	if denom == 0 {
		return false
	}
	alpha := ((t.B[1]-t.C[1])*(x-t.C[0]) + (t.C[0]-t.B[0])*(y-t.C[1])) / denom
	beta := ((t.C[1]-t.A[1])*(x-t.C[0]) + (t.A[0]-t.C[0])*(y-t.C[1])) / denom
	gamma := 1.0 - alpha - beta
	return alpha > 0 && beta > 0 && gamma > 0
}

// TriangleChecker2D checks a 2-degree-of-freedom point configuration (x, y, in
// config[0], config[1]) against a set of 2-D triangular obstacle faces and a
// rectangular workspace boundary, grounded directly on
// CollisionDetection2D<dim>::checkPoint2D: out-of-bounds counts as collision,
// and a point is in collision when it falls strictly inside any obstacle face.
type TriangleChecker2D struct {
	MinX, MinY, MaxX, MaxY float64
	Obstacles              []Triangle2D
}

// CheckConfig implements Checker.
func (c *TriangleChecker2D) CheckConfig(config []float64, req CollisionRequest) (CollisionResult, error) {
	x, y := config[0], config[1]
	if !req.CheckObstacle {
		return CollisionResult{}, nil
	}
	if x <= c.MinX || x >= c.MaxX || y <= c.MinY || y >= c.MaxY {
		return CollisionResult{InCollision: true}, nil
	}
	for _, tri := range c.Obstacles {
		if tri.containsPoint(x, y) {
			return CollisionResult{InCollision: true}, nil
		}
	}
	return CollisionResult{InCollision: false}, nil
}

// CheckTrajectory implements Checker.
func (c *TriangleChecker2D) CheckTrajectory(configs [][]float64, req CollisionRequest) (bool, error) {
	if len(configs) == 0 {
		return false, nil
	}
	for _, cfg := range configs {
		res, err := c.CheckConfig(cfg, req)
		if err != nil {
			return false, err
		}
		if res.InCollision {
			return true, nil
		}
	}
	return false, nil
}

// GridChecker2D checks a 2-D point configuration against a boolean occupancy
// grid: cell (i, j) covers the world-space square
// [MinX+i*CellSize, MinX+(i+1)*CellSize) x [MinY+j*CellSize, MinY+(j+1)*CellSize).
// A point outside the grid's world bounds is treated as in collision, matching
// TriangleChecker2D's out-of-bounds convention.
type GridChecker2D struct {
	MinX, MinY float64
	CellSize   float64
	Occupied   [][]bool // Occupied[i][j], i indexes X, j indexes Y
}

// CheckConfig implements Checker.
func (g *GridChecker2D) CheckConfig(config []float64, req CollisionRequest) (CollisionResult, error) {
	if !req.CheckObstacle {
		return CollisionResult{}, nil
	}
	i := int(math.Floor((config[0] - g.MinX) / g.CellSize))
	j := int(math.Floor((config[1] - g.MinY) / g.CellSize))
	if i < 0 || i >= len(g.Occupied) || j < 0 || j >= len(g.Occupied[i]) {
		return CollisionResult{InCollision: true}, nil
	}
	return CollisionResult{InCollision: g.Occupied[i][j]}, nil
}

// CheckTrajectory implements Checker.
func (g *GridChecker2D) CheckTrajectory(configs [][]float64, req CollisionRequest) (bool, error) {
	for _, cfg := range configs {
		res, err := g.CheckConfig(cfg, req)
		if err != nil {
			return false, err
		}
		if res.InCollision {
			return true, nil
		}
	}
	return false, nil
}

// MeshChecker is an external-contract interface for full 3-D triangle-mesh
// collision (the general-dimension analogue of TriangleChecker2D). No
// concrete implementation ships in this package; callers wire in their own
// mesh library behind this interface.
type MeshChecker interface {
	Checker
	LoadMesh(name string, vertices [][3]float64, faces [][3]int) error
}

// FCLChecker is an external-contract interface for a Flexible Collision
// Library-backed Checker. No concrete implementation ships in this package.
type FCLChecker interface {
	Checker
}

// PQPChecker is an external-contract interface for a PQP (Proximity Query
// Package)-backed Checker providing penetration-depth and signed-distance
// queries. No concrete implementation ships in this package.
type PQPChecker interface {
	Checker
	PenetrationDepth(config []float64) (float64, error)
}
