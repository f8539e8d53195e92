package main

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/tobiaskohlbau/RobotMotionPlanner/motionplan/env"
	"github.com/tobiaskohlbau/RobotMotionPlanner/motionplan/validity"
)

// environmentConfig is the on-disk shape of environment.json within a --dir
// asset directory, per spec §6's "Environment config: workspace AABB, robot
// type, ... obstacle list with poses" persisted artifact. Scoped here to the
// 2-D triangle-obstacle case TriangleChecker2D already implements, since that
// is the one in-scope collision backend this repo ships a concrete checker
// for. DofTypes is optional: a bare [x, y] world leaves it empty (every axis
// linear); a robot with an orientation axis (e.g. a planar [x, y, theta]
// base) lists one motionplan.DofType int per axis so the CLI can select the
// cyclic-aware metric/discretizer pair instead of the plain Cartesian ones.
type environmentConfig struct {
	MinX, MinY, MaxX, MaxY float64
	DofTypes               []int            `json:"dofTypes"`
	Obstacles              []triangleConfig `json:"obstacles"`
}

type triangleConfig struct {
	A, B, C [2]float64
}

// loadEnvironment reads <dir>/environment.json and builds the corresponding
// env.Environment plus a TriangleChecker2D validity checker over its
// obstacles and bounds.
func loadEnvironment(dir string) (*env.Environment, validity.Checker, error) {
	path := filepath.Join(dir, "environment.json")
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading environment config %s", path)
	}

	var cfg environmentConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, nil, errors.Wrapf(err, "parsing environment config %s", path)
	}

	dimension := 2
	if len(cfg.DofTypes) > dimension {
		dimension = len(cfg.DofTypes)
	}
	lower := make([]float64, dimension)
	upper := make([]float64, dimension)
	lower[0], lower[1] = cfg.MinX, cfg.MinY
	upper[0], upper[1] = cfg.MaxX, cfg.MaxY
	for i := 2; i < dimension; i++ {
		// Additional (e.g. orientation) axes are unbounded by the 2-D AABB;
		// a cyclic axis wraps regardless, so [-pi, pi] is a representative
		// sampling range rather than a hard limit.
		lower[i], upper[i] = -math.Pi, math.Pi
	}

	e := &env.Environment{
		Robot: env.Robot{
			Dimension: dimension,
			Lower:     lower,
			Upper:     upper,
			DofTypes:  cfg.DofTypes,
		},
	}

	obstacles := make([]validity.Triangle2D, len(cfg.Obstacles))
	for i, t := range cfg.Obstacles {
		obstacles[i] = validity.Triangle2D{A: t.A, B: t.B, C: t.C}
	}
	checker := &validity.TriangleChecker2D{
		MinX: cfg.MinX, MinY: cfg.MinY, MaxX: cfg.MaxX, MaxY: cfg.MaxY,
		Obstacles: obstacles,
	}
	return e, checker, nil
}
