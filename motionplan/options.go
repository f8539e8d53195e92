package motionplan

import (
	"github.com/tobiaskohlbau/RobotMotionPlanner/motionplan/metric"
	"github.com/tobiaskohlbau/RobotMotionPlanner/motionplan/sampling"
	"github.com/tobiaskohlbau/RobotMotionPlanner/motionplan/trajectory"
	"github.com/tobiaskohlbau/RobotMotionPlanner/motionplan/validity"
)

// PlannerOptions bundles the numeric parameters and pluggable components a
// planner needs, grounded on
// original_source/source/pathPlanner/options/PlannerOptions.cpp's
// trajectoryStepSize/samplingMethod/samplingStrategy/edgeHeuristic/
// nodeHeuristic bundle, generalized to Go's functional-options idiom rather
// than a setter-laden class: callers build a PlannerOptions with
// NewPlannerOptions(requiredArgs..., opts...) and override only what they
// need.
type PlannerOptions struct {
	StepSize          float64
	TrajPosRes        float64
	TrajOriRes        float64
	SortCount         int
	SamplingAttempts  int
	SamplerSeed       int64
	EvaluatorTimeoutS float64
	RotationPoint     float64

	Metric     metric.DistanceMetric
	Checker    validity.Checker
	Discretize trajectory.Discretizer
	Strategy   sampling.Strategy
}

// Option mutates a PlannerOptions under construction.
type Option func(*PlannerOptions)

// defaultPlannerOptions matches the original's setTrajectoryStepSize fallback
// of 1 for a non-positive step size, extended with this port's own
// reasonable defaults for the fields the original didn't have.
func defaultPlannerOptions() PlannerOptions {
	return PlannerOptions{
		StepSize:          1,
		TrajPosRes:        1,
		TrajOriRes:        0.1,
		SortCount:         0,
		SamplingAttempts:  10,
		SamplerSeed:       1,
		EvaluatorTimeoutS: 0, // 0 disables the time-budget evaluator facet
		RotationPoint:     0.5,
	}
}

// NewPlannerOptions constructs a PlannerOptions with this package's defaults,
// applying opts in order. A non-positive StepSize override is rejected back
// to the default of 1, mirroring setTrajectoryStepSize's guard.
func NewPlannerOptions(opts ...Option) PlannerOptions {
	o := defaultPlannerOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.StepSize <= 0 {
		o.StepSize = 1
	}
	return o
}

// WithStepSize overrides the planner's expansion step size.
func WithStepSize(stepSize float64) Option {
	return func(o *PlannerOptions) { o.StepSize = stepSize }
}

// WithTrajectoryResolution overrides the positional and angular trajectory
// discretization resolutions.
func WithTrajectoryResolution(posRes, oriRes float64) Option {
	return func(o *PlannerOptions) {
		o.TrajPosRes = posRes
		o.TrajOriRes = oriRes
	}
}

// WithSortCount overrides the Graph's KD-tree rebuild interval; 0 disables
// periodic rebuilds.
func WithSortCount(sortCount int) Option {
	return func(o *PlannerOptions) { o.SortCount = sortCount }
}

// WithSamplingAttempts overrides the per-sample retry budget used by
// strategies like NearObstacle/Bridge/Gaussian/Berenson.
func WithSamplingAttempts(attempts int) Option {
	return func(o *PlannerOptions) { o.SamplingAttempts = attempts }
}

// WithSamplerSeed overrides the deterministic seed used to construct the
// planner's samplers, the knob spec §8's workers=1 determinism tests pin.
func WithSamplerSeed(seed int64) Option {
	return func(o *PlannerOptions) { o.SamplerSeed = seed }
}

// WithEvaluatorTimeout overrides the wall-clock budget (seconds) an Evaluator
// enforces; 0 disables the time facet.
func WithEvaluatorTimeout(seconds float64) Option {
	return func(o *PlannerOptions) { o.EvaluatorTimeoutS = seconds }
}

// WithRotationPoint overrides the fraction (0, 1) at which a RotateAtS
// discretizer switches from translation to rotation; out-of-range values are
// corrected to 0.5 by the RotateAtS discretizer itself, mirroring
// RotateAtS::setRotationPoint's validation.
func WithRotationPoint(point float64) Option {
	return func(o *PlannerOptions) { o.RotationPoint = point }
}

// WithMetric overrides the distance metric.
func WithMetric(m metric.DistanceMetric) Option {
	return func(o *PlannerOptions) { o.Metric = m }
}

// WithChecker overrides the validity checker.
func WithChecker(c validity.Checker) Option {
	return func(o *PlannerOptions) { o.Checker = c }
}

// WithDiscretizer overrides the trajectory discretizer.
func WithDiscretizer(d trajectory.Discretizer) Option {
	return func(o *PlannerOptions) { o.Discretize = d }
}

// WithStrategy overrides the sampling strategy.
func WithStrategy(s sampling.Strategy) Option {
	return func(o *PlannerOptions) { o.Strategy = s }
}
