// Package sweep runs a configuration over a parameter grid with seeded
// replicas on a bounded pool of workers.
package sweep

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/mdsim/internal/config"
	"github.com/san-kum/mdsim/internal/ensemble"
	"github.com/san-kum/mdsim/internal/experiment"
	"github.com/san-kum/mdsim/internal/md"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// Outcome is the result of a single replica at one grid point.
type Outcome struct {
	Point   Point
	Replica int
	Seed    int64
	Metrics map[string]float64
	Steps   int
	Err     error
}

// Runner evaluates every grid point Replicas times. Replica r of every
// point runs with seed Base.Seed + r, so points are compared on the same
// random streams. Each run is itself sequential; Workers only bounds how
// many independent runs are in flight (default one).
type Runner struct {
	Base     *config.Config
	Replicas int
	Workers  int
}

func NewRunner(base *config.Config, replicas, workers int) *Runner {
	return &Runner{Base: base, Replicas: replicas, Workers: workers}
}

// Run evaluates the grid. A failing replica is recorded in its Outcome and
// does not stop the sweep; only a cancelled context or an invalid grid
// point is returned as an error. On cancellation every replica that did not
// finish carries the context error.
func (r *Runner) Run(ctx context.Context, g *Grid) ([]Outcome, error) {
	if r.Base == nil {
		return nil, fmt.Errorf("%w: sweep needs a base config", md.ErrInvalidInput)
	}
	replicas := r.Replicas
	if replicas < 1 {
		replicas = 1
	}
	workers := r.Workers
	if workers < 1 {
		workers = 1
	}

	points := g.Points()
	configs := make([]*config.Config, 0, len(points)*replicas)
	outcomes := make([]Outcome, 0, len(points)*replicas)
	for _, p := range points {
		cfg, err := Apply(r.Base, p)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("sweep point %s: %w", p, err)
		}
		for rep := 0; rep < replicas; rep++ {
			c := cfg.Clone()
			c.Seed = r.Base.Seed + int64(rep)
			configs = append(configs, c)
			outcomes = append(outcomes, Outcome{Point: p, Replica: rep, Seed: c.Seed})
		}
	}

	logrus.Infof("sweep: %d points x %d replicas on %d workers", len(points), replicas, workers)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	started := 0
	for i := range configs {
		if egCtx.Err() != nil {
			break
		}
		started++
		eg.Go(func() error {
			res, err := runOne(egCtx, configs[i])
			if res != nil {
				outcomes[i].Metrics = res.Metrics
				outcomes[i].Steps = res.StepsTaken
			}
			if err != nil {
				if egCtx.Err() != nil {
					outcomes[i].Err = egCtx.Err()
					return egCtx.Err()
				}
				logrus.Warnf("sweep: %s replica %d: %v", outcomes[i].Point, outcomes[i].Replica, err)
				outcomes[i].Err = err
			}
			return nil
		})
	}
	err := eg.Wait()
	for i := started; i < len(outcomes); i++ {
		outcomes[i].Err = ctx.Err()
	}
	if err != nil {
		return outcomes, err
	}
	return outcomes, ctx.Err()
}

func runOne(ctx context.Context, cfg *config.Config) (*ensemble.Result, error) {
	exp, err := experiment.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := exp.Setup(); err != nil {
		return nil, err
	}
	return exp.Run(ctx)
}

// Summary aggregates the successful replicas of one point.
type Summary struct {
	Point  Point
	Runs   int
	Failed int
	Mean   map[string]float64
	StdDev map[string]float64
}

// Summarize groups outcomes by point, in first-seen order. StdDev is zero
// for a single replica.
func Summarize(outcomes []Outcome) []Summary {
	var order []string
	groups := make(map[string][]Outcome)
	for _, o := range outcomes {
		key := o.Point.String()
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], o)
	}

	summaries := make([]Summary, 0, len(order))
	for _, key := range order {
		group := groups[key]
		s := Summary{
			Point:  group[0].Point,
			Mean:   make(map[string]float64),
			StdDev: make(map[string]float64),
		}
		values := make(map[string][]float64)
		for _, o := range group {
			if o.Err != nil {
				s.Failed++
				continue
			}
			s.Runs++
			for name, v := range o.Metrics {
				values[name] = append(values[name], v)
			}
		}
		for name, vs := range values {
			if len(vs) == 1 {
				s.Mean[name] = vs[0]
				continue
			}
			s.Mean[name], s.StdDev[name] = stat.MeanStdDev(vs, nil)
		}
		summaries = append(summaries, s)
	}
	return summaries
}

// Best returns the summary with the lowest mean of metric. Points without
// the metric are skipped.
func Best(summaries []Summary, metric string) (Summary, bool) {
	best := math.Inf(1)
	idx := -1
	for i, s := range summaries {
		v, ok := s.Mean[metric]
		if !ok || math.IsNaN(v) {
			continue
		}
		if v < best {
			best, idx = v, i
		}
	}
	if idx < 0 {
		return Summary{}, false
	}
	return summaries[idx], true
}

// MetricNames lists every metric present in the summaries, sorted.
func MetricNames(summaries []Summary) []string {
	seen := make(map[string]bool)
	for _, s := range summaries {
		for name := range s.Mean {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
