package motionplan

import (
	"testing"

	"go.viam.com/test"
)

func TestNewPlannerOptionsDefaults(t *testing.T) {
	o := NewPlannerOptions()
	test.That(t, o.StepSize, test.ShouldAlmostEqual, 1.0)
	test.That(t, o.TrajPosRes, test.ShouldAlmostEqual, 1.0)
	test.That(t, o.SamplingAttempts, test.ShouldEqual, 10)
}

func TestNewPlannerOptionsRejectsNonPositiveStepSize(t *testing.T) {
	o := NewPlannerOptions(WithStepSize(-5))
	test.That(t, o.StepSize, test.ShouldAlmostEqual, 1.0)
}

func TestNewPlannerOptionsAppliesOverrides(t *testing.T) {
	o := NewPlannerOptions(
		WithStepSize(2.5),
		WithTrajectoryResolution(0.5, 0.05),
		WithSortCount(500),
		WithSamplingAttempts(25),
		WithSamplerSeed(42),
		WithEvaluatorTimeout(10),
		WithRotationPoint(0.25),
	)
	test.That(t, o.StepSize, test.ShouldAlmostEqual, 2.5)
	test.That(t, o.TrajPosRes, test.ShouldAlmostEqual, 0.5)
	test.That(t, o.TrajOriRes, test.ShouldAlmostEqual, 0.05)
	test.That(t, o.SortCount, test.ShouldEqual, 500)
	test.That(t, o.SamplingAttempts, test.ShouldEqual, 25)
	test.That(t, o.SamplerSeed, test.ShouldEqual, int64(42))
	test.That(t, o.EvaluatorTimeoutS, test.ShouldAlmostEqual, 10.0)
	test.That(t, o.RotationPoint, test.ShouldAlmostEqual, 0.25)
}
