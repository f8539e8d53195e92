package motionplan

import "github.com/pkg/errors"

// Sentinel errors returned by planners and the interfaces they drive, per
// spec §7 ERROR HANDLING DESIGN. Propagation semantics are enforced by the
// callers, not by these values themselves: ErrConfigOutOfBounds and
// ErrInvalidConfiguration are silently discarded inside expand's sampling
// loop (a rejected sample is not a planner failure), ErrBudgetExceeded is
// surfaced through the Evaluator rather than returned from expand directly,
// and ErrMisuse is logged by the caller and treated as an immediate false
// return rather than a panic.
var (
	// ErrConfigOutOfBounds indicates a configuration fell outside the
	// robot's per-axis bounds.
	ErrConfigOutOfBounds = errors.New("motionplan: configuration out of bounds")

	// ErrInvalidConfiguration indicates a configuration failed validity
	// checking (collision, constraint violation).
	ErrInvalidConfiguration = errors.New("motionplan: invalid configuration")

	// ErrNoConnection indicates a planner exhausted its sampling/expansion
	// budget without connecting start to goal.
	ErrNoConnection = errors.New("motionplan: no connection found between start and goal")

	// ErrBudgetExceeded indicates an Evaluator's time or iteration budget
	// was exceeded before a connection was found.
	ErrBudgetExceeded = errors.New("motionplan: evaluator budget exceeded")

	// ErrMisuse indicates the caller violated an API precondition (e.g.
	// mismatched configuration dimension, nil required option).
	ErrMisuse = errors.New("motionplan: misuse of planner API")
)

// WrapConfig annotates err (expected to be one of the above sentinels, or
// nil) with the offending configuration's coordinates for diagnostic
// logging, preserving errors.Is/errors.Cause compatibility with the sentinel.
func WrapConfig(err error, config Configuration) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, "config=%v", []float64(config))
}
