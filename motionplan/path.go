package motionplan

import (
	"math/rand"

	"github.com/tobiaskohlbau/RobotMotionPlanner/motionplan/validity"
)

// ShortenPath implements spec §4.9's "optionally apply a path modifier" step
// and SPEC_FULL.md's supplemented node-cut shortening feature. It repeatedly
// picks two points partway along two randomly chosen edges of path and
// checks whether the direct trajectory between them validates; if it does,
// every waypoint strictly between the two picked points is discarded and
// replaced by the two interpolated points themselves. A pair of adjacent
// edges is skipped, since splicing it would add a waypoint rather than remove
// one, so neither the path's length nor its waypoint count ever grows. It
// runs at most O(iterations) trajectory checks regardless of path length.
//
// Grounded directly on other_examples's smoothPath (the teacher's sibling
// fork AdamMagaluk-rdk/motionplan/motionPlanner.go): the same "random pair of
// edges, random quarter-point on each, splice if the shortcut validates"
// shape, re-expressed against this repo's Configuration/Checker/Discretizer
// rather than frame.Input/constraint-checked trajectories.
func ShortenPath(path []Configuration, o PlannerOptions, rng *rand.Rand, iterations int) []Configuration {
	if len(path) <= 2 || iterations <= 0 {
		return path
	}

	waypointFractions := []float64{0.25, 0.5, 0.75}
	req := validity.DefaultCollisionRequest()

	for iter := 0; iter < iterations; iter++ {
		if len(path) <= 2 {
			break
		}
		firstEdge := rng.Intn(len(path) - 2)
		secondEdge := firstEdge + 1 + rng.Intn((len(path)-2)-firstEdge)
		if secondEdge == firstEdge+1 {
			continue
		}

		p1 := interpolate(path[firstEdge], path[firstEdge+1], waypointFractions[rng.Intn(3)])
		p2 := interpolate(path[secondEdge], path[secondEdge+1], waypointFractions[rng.Intn(3)])

		ok, err := checkTrajectoryValid(o.Checker, o.Discretize, p1, p2, req)
		if err != nil || !ok {
			continue
		}

		shortened := make([]Configuration, 0, firstEdge+1+2+(len(path)-secondEdge-1))
		shortened = append(shortened, path[:firstEdge+1]...)
		shortened = append(shortened, p1, p2)
		shortened = append(shortened, path[secondEdge+1:]...)
		path = shortened
	}
	return path
}

// interpolate returns the point a fraction t of the way from a to b,
// componentwise. Used only for picking candidate shortcut endpoints; the
// planners' own edges are produced by steer, not this.
func interpolate(a, b Configuration, t float64) Configuration {
	out := make(Configuration, len(a))
	for i := range a {
		out[i] = a[i] + t*(b[i]-a[i])
	}
	return out
}
