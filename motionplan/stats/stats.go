// Package stats implements the timing/counting collectors referenced in
// spec §9 design notes, grounded on
// original_source/include/ippp/statistic/StatsTimeCollector.h (start/stop
// timing windows collected under a mutex) and
// original_source/include/ippp/statistic/StatsPropertyCollector.h (collecting
// scalar run properties alongside timings), aggregated with
// github.com/montanaflynn/stats the way viamrobotics-rdk pulls in small
// focused math libraries rather than hand-rolling percentile/mean logic.
package stats

import (
	"sync"
	"time"

	mstats "github.com/montanaflynn/stats"
)

// TimeCollector accumulates named timing windows (start/stop pairs), mirroring
// StatsTimeCollector's start()/stop() contract. Safe for concurrent use by
// planner worker goroutines.
type TimeCollector struct {
	name string

	mu      sync.Mutex
	running time.Time
	samples []float64 // durations in seconds
}

// NewTimeCollector constructs a named TimeCollector.
func NewTimeCollector(name string) *TimeCollector {
	return &TimeCollector{name: name}
}

// Start begins a timing window.
func (c *TimeCollector) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = nowFunc()
}

// Stop ends the current timing window and records its duration.
func (c *TimeCollector) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running.IsZero() {
		return
	}
	c.samples = append(c.samples, nowFunc().Sub(c.running).Seconds())
	c.running = time.Time{}
}

// nowFunc is indirected so tests can inject a deterministic clock.
var nowFunc = time.Now

// Name returns the collector's name.
func (c *TimeCollector) Name() string { return c.name }

// Count returns the number of recorded samples.
func (c *TimeCollector) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.samples)
}

// Summary aggregates mean/median/percentile statistics over every recorded
// duration so far.
type Summary struct {
	Count    int
	Mean     float64
	Median   float64
	P95      float64
	Min      float64
	Max      float64
}

// Summarize computes a Summary over all samples recorded so far. Returns the
// zero Summary (Count: 0) if nothing has been recorded.
func (c *TimeCollector) Summarize() (Summary, error) {
	c.mu.Lock()
	data := append([]float64(nil), c.samples...)
	c.mu.Unlock()

	if len(data) == 0 {
		return Summary{}, nil
	}
	fd := mstats.Float64Data(data)
	mean, err := fd.Mean()
	if err != nil {
		return Summary{}, err
	}
	median, err := fd.Median()
	if err != nil {
		return Summary{}, err
	}
	p95, err := fd.Percentile(95)
	if err != nil {
		return Summary{}, err
	}
	min, err := fd.Min()
	if err != nil {
		return Summary{}, err
	}
	max, err := fd.Max()
	if err != nil {
		return Summary{}, err
	}
	return Summary{Count: len(data), Mean: mean, Median: median, P95: p95, Min: min, Max: max}, nil
}

// Counter accumulates a named count of discrete events (e.g. rejected
// samples, rewires performed), the counting-side analogue of TimeCollector.
type Counter struct {
	name string
	mu   sync.Mutex
	n    int64
}

// NewCounter constructs a named Counter starting at zero.
func NewCounter(name string) *Counter { return &Counter{name: name} }

// Add increments the counter by delta.
func (c *Counter) Add(delta int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n += delta
}

// Value returns the counter's current value.
func (c *Counter) Value() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

// Name returns the counter's name.
func (c *Counter) Name() string { return c.name }

// RunProperties records the scalar configuration of one planning run,
// grounded on StatsPropertyCollector's setProperties: the planner's shape
// rather than its timing behavior.
type RunProperties struct {
	PlannerType    string
	Dimension      int
	UseObstacle    bool
	UseConstraint  bool
	Optimized      bool
	StepSize       float64
	SamplerType    string
	SamplingType   string
	PathShortened  bool
}
