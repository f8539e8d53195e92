package motionplan

import (
	"github.com/tobiaskohlbau/RobotMotionPlanner/motionplan/sampling"
	"github.com/tobiaskohlbau/RobotMotionPlanner/motionplan/trajectory"
	"github.com/tobiaskohlbau/RobotMotionPlanner/motionplan/validity"
)

// This file bridges the root package's Configuration-typed planner API to
// the plain-[]float64 subpackages (metric, sampling, trajectory, validity):
// those subpackages stay free of any Configuration-like type to avoid an
// import cycle back into this package, so every boundary crossing goes
// through the trivial conversions below.

// sample draws one Configuration from a sampling.Strategy.
func sample(s sampling.Strategy) (Configuration, bool) {
	cfg := s.GetSample()
	if cfg == nil {
		return nil, false
	}
	return Configuration(cfg), true
}

// checkValid reports whether config passes req under checker.
func checkValid(checker validity.Checker, config Configuration, req validity.CollisionRequest) (bool, error) {
	res, err := checker.CheckConfig([]float64(config), req)
	if err != nil {
		return false, err
	}
	return !res.InCollision, nil
}

// checkTrajectoryValid discretizes the source->target edge with
// discretizer.Discretize and runs checker over every intermediate point in
// the order Discretize returns them (not the binary-subdivision order), for
// spec §4.9's "validity.checkTrajectory(trajectory.calcTrajBin(...))" step.
func checkTrajectoryValid(
	checker validity.Checker,
	discretizer trajectory.Discretizer,
	source, target Configuration,
	req validity.CollisionRequest,
) (bool, error) {
	pts := discretizer.Discretize([]float64(source), []float64(target))
	configs := make([][]float64, len(pts))
	copy(configs, pts)
	hit, err := checker.CheckTrajectory(configs, req)
	if err != nil {
		return false, err
	}
	return !hit, nil
}

// discretizeConfigs runs a Discretizer and converts its output back into
// Configuration values, used by getPath's densification step.
func discretizeConfigs(discretizer trajectory.Discretizer, source, target Configuration) []Configuration {
	pts := discretizer.Discretize([]float64(source), []float64(target))
	out := make([]Configuration, len(pts))
	for i, p := range pts {
		out[i] = Configuration(p)
	}
	return out
}

// checkerValidFunc adapts a validity.Checker + CollisionRequest pair into the
// sampling.Checker predicate shape the sampling strategies expect.
func checkerValidFunc(checker validity.Checker, req validity.CollisionRequest) sampling.CheckerFunc {
	return func(config []float64) bool {
		res, err := checker.CheckConfig(config, req)
		if err != nil {
			return false
		}
		return !res.InCollision
	}
}
