// Command motionplan is the peripheral CLI driver named in spec §6's
// external interfaces: it owns everything the core package explicitly keeps
// out of scope (asset loading, CLI flag parsing, JSON persistence) and drives
// the core's planner types against an environment.json asset directory.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/edaniels/golog"
	"github.com/urfave/cli/v2"
	"go.viam.com/utils"

	"github.com/tobiaskohlbau/RobotMotionPlanner/motionplan"
	"github.com/tobiaskohlbau/RobotMotionPlanner/motionplan/env"
	"github.com/tobiaskohlbau/RobotMotionPlanner/motionplan/metric"
	"github.com/tobiaskohlbau/RobotMotionPlanner/motionplan/trajectory"
)

// Exit codes per spec §6's CLI surface: "exit code 0 on success, nonzero if
// start, goal, or path computation failed."
const (
	exitOK = iota
	exitBadArgs
	exitInvalidStart
	exitInvalidGoal
	exitNoPath
	exitInternal
)

func main() {
	logger := golog.NewDevelopmentLogger("motionplan")

	app := &cli.App{
		Name:      "motionplan",
		Usage:     "plan a collision-free path with the RRT/RRT*/RRT*-Connect/PRM family",
		ArgsUsage: "<start vector> <goal vector>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Required: true, Usage: "asset directory containing environment.json"},
			&cli.StringFlag{Name: "algorithm", Value: "rrtstar", Usage: "rrt | rrtstar | rrtstarconnect | prm"},
			&cli.Float64Flag{Name: "step-size", Value: 30},
			&cli.Float64Flag{Name: "traj-res", Value: 1, Usage: "trajectory discretization step size for validity checking (positional axes)"},
			&cli.Float64Flag{Name: "ori-res", Value: 0.1, Usage: "trajectory discretization step size for angular axes, used only when the environment declares one"},
			&cli.IntFlag{Name: "batch", Value: 50},
			&cli.IntFlag{Name: "workers", Value: 4},
			&cli.IntFlag{Name: "max-batches", Value: 200, Usage: "evaluator budget: give up once the graph holds max-batches*batch nodes"},
			&cli.Float64Flag{Name: "timeout-seconds", Value: 0, Usage: "0 disables the wall-clock evaluator facet"},
			&cli.Int64Flag{Name: "seed", Value: 1},
			&cli.Float64Flag{Name: "radius", Value: 0, Usage: "PRM connection radius; 0 defaults to 2*step-size"},
			&cli.IntFlag{Name: "optimize-iterations", Value: 0, Usage: "RRT* Optimize() rounds after the first solution"},
			&cli.BoolFlag{Name: "informed", Value: true, Usage: "use ellipsoidal informed sampling during optimize"},
			&cli.IntFlag{Name: "shorten-iterations", Value: 200, Usage: "0 disables ShortenPath"},
			&cli.Float64Flag{Name: "scale", Value: 1, Usage: "scale factor applied to the persisted Path document"},
			&cli.StringFlag{Name: "out", Usage: "output file for the Path JSON document; default stdout"},
		},
		Action: func(c *cli.Context) error {
			return run(c, logger)
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Errorw("motionplan run failed", "error", err)
		if code, ok := err.(cli.ExitCoder); ok {
			os.Exit(code.ExitCode())
		}
		os.Exit(exitInternal)
	}
}

func run(c *cli.Context, logger golog.Logger) error {
	if c.Args().Len() != 2 {
		return cli.Exit("expected exactly two positional arguments: start and goal vectors", exitBadArgs)
	}
	start, err := parseVector(c.Args().Get(0))
	if err != nil {
		return cli.Exit(errorf("parsing start vector: %v", err), exitBadArgs)
	}
	goal, err := parseVector(c.Args().Get(1))
	if err != nil {
		return cli.Exit(errorf("parsing goal vector: %v", err), exitBadArgs)
	}

	e, checker, err := loadEnvironment(c.String("dir"))
	if err != nil {
		return cli.Exit(errorf("loading environment: %v", err), exitBadArgs)
	}

	stepSize := c.Float64("step-size")
	trajRes := c.Float64("traj-res")
	oriRes := c.Float64("ori-res")

	// A robot whose environment.json declares any angular DofType axis (e.g.
	// a planar [x, y, theta] base) gets the cyclic-aware metric/discretizer
	// pair instead of the plain Cartesian ones, so an orientation axis wraps
	// in [-pi, pi] and measures/interpolates by shortest arc rather than a
	// raw linear difference (spec §3).
	dofTypes := motionplan.DofTypesFromInts(e.Robot.DofTypes)
	var plannerMetric metric.DistanceMetric = metric.NewL2Metric()
	var discretizer trajectory.Discretizer = trajectory.Linear{StepSize: trajRes, PosMetric: plannerMetric.Dist}
	for _, d := range dofTypes {
		if d.Angular() {
			plannerMetric = motionplan.DofAwareMetric{DofTypes: dofTypes}
			discretizer = motionplan.DofAwareDiscretizer{DofTypes: dofTypes, PosRes: trajRes, OriRes: oriRes}
			break
		}
	}

	options := motionplan.NewPlannerOptions(
		motionplan.WithStepSize(stepSize),
		motionplan.WithTrajectoryResolution(trajRes, oriRes),
		motionplan.WithSamplerSeed(c.Int64("seed")),
		motionplan.WithMetric(plannerMetric),
		motionplan.WithChecker(checker),
		motionplan.WithDiscretizer(discretizer),
	)

	batch := c.Int("batch")
	workers := c.Int("workers")
	evaluator := budgetEvaluator(c, batch, workers)

	radius := c.Float64("radius")
	if radius <= 0 {
		radius = 2 * stepSize
	}

	algorithm := strings.ToLower(c.String("algorithm"))

	type planResult struct {
		path []motionplan.Configuration
		ok   bool
		err  error
	}
	resultChan := make(chan planResult, 1)

	// Run the selected planner's computePath on a background goroutine wrapped
	// in utils.PanicCapturingGo so a planner-internal panic is logged and
	// recovered rather than crashing the CLI process, matching
	// daoran-rdk/motionplan/armplanning/cBiRRT.go's Plan/rrtBackgroundRunner
	// split.
	utils.PanicCapturingGo(func() {
		result := planResult{err: fmt.Errorf("planner panicked")}
		defer func() { resultChan <- result }()
		path, ok, err := computePath(algorithm, e, options, logger, start, goal, batch, workers, evaluator, radius, c)
		result = planResult{path, ok, err}
	})
	result := <-resultChan

	if result.err != nil {
		return cli.Exit(errorf("computing path: %v", result.err), exitInternal)
	}
	if !result.ok {
		return cli.Exit("no path found within the evaluator budget", exitNoPath)
	}

	path := result.path
	if n := c.Int("shorten-iterations"); n > 0 {
		rng := rand.New(rand.NewSource(c.Int64("seed")))
		path = motionplan.ShortenPath(path, options, rng, n)
	}

	doc := newPathDocument(path, c.Float64("scale"))
	return writePathDocument(doc, c.String("out"))
}

// budgetEvaluator builds the evaluator bounding how long a planner may run:
// a node-count cap (max-batches * batch) OR'd with an optional wall-clock
// deadline. Goal detection itself is handled separately, by each planner's
// own ConnectGoal/PathExists — this evaluator only enforces the "give up"
// budget, per spec §4.8.
func budgetEvaluator(c *cli.Context, batch, workers int) motionplan.Evaluator {
	maxBatches := c.Int("max-batches")
	sizeCap := motionplan.EvaluatorFunc(func(g *motionplan.Graph) bool {
		return g.Size() >= maxBatches*batch
	})
	if seconds := c.Float64("timeout-seconds"); seconds > 0 {
		deadline := time.Now().Add(time.Duration(seconds * float64(time.Second)))
		return motionplan.Or(sizeCap, motionplan.EvaluatorFunc(func(g *motionplan.Graph) bool {
			return !time.Now().Before(deadline)
		}))
	}
	return sizeCap
}

func computePath(
	algorithm string,
	e *env.Environment,
	options motionplan.PlannerOptions,
	logger golog.Logger,
	start, goal motionplan.Configuration,
	batch, workers int,
	evaluator motionplan.Evaluator,
	radius float64,
	c *cli.Context,
) ([]motionplan.Configuration, bool, error) {
	switch algorithm {
	case "rrt":
		p := motionplan.NewRRT(e, options)
		p.Logger = logger
		node, ok, err := p.ComputePath(start, goal, batch, workers, evaluator)
		if err != nil || !ok {
			return nil, ok, err
		}
		return motionplan.GetPath(node, options), true, nil

	case "rrtstar":
		p := motionplan.NewRRTStar(e, options)
		p.Logger = logger
		node, ok, err := p.ComputePath(start, goal, batch, workers, evaluator)
		if err != nil || !ok {
			return nil, ok, err
		}
		if iterations := c.Int("optimize-iterations"); iterations > 0 {
			if err := p.Optimize(iterations, batch, workers, c.Bool("informed")); err != nil {
				return nil, false, err
			}
			node = p.BestGoalNode
		}
		return motionplan.GetPath(node, options), true, nil

	case "rrtstarconnect":
		p := motionplan.NewRRTStarConnect(e, options)
		p.Logger = logger
		_, _, ok, err := p.ComputePath(start, goal, batch, workers, evaluator)
		if err != nil || !ok {
			return nil, ok, err
		}
		return p.GetPath(options), true, nil

	case "prm":
		p := motionplan.NewPRM(e, options, radius)
		p.Logger = logger
		return p.ComputePath(start, goal, batch, workers, evaluator)

	default:
		return nil, false, fmt.Errorf("unknown algorithm %q", algorithm)
	}
}

// parseVector parses a comma-separated list of floats, e.g. "10,10".
func parseVector(raw string) (motionplan.Configuration, error) {
	fields := strings.Split(raw, ",")
	out := make(motionplan.Configuration, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid component %q: %w", f, err)
		}
		out[i] = v
	}
	return out, nil
}

func errorf(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}
