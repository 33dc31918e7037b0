// Package sweep runs the simulator over a grid of capacities and arrival
// transforms and ranks the configurations by scaling activity.
package sweep

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/inference-sim/scalesim/sim"
)

// ErrEmptyGrid is returned when a grid expands to no configuration.
var ErrEmptyGrid = errors.New("sweep grid has no configurations")

// Grid lists the values to combine. Strides and stretches are never combined
// with each other: every capacity is paired with the identity transform, each
// stride > 1 and each stretch > 1.
type Grid struct {
	Capacities []sim.CapacityConfig
	Strides    []int
	Stretches  []float64
}

// Point is one configuration of the grid.
type Point struct {
	Index      int
	Capacity   sim.CapacityConfig
	Preprocess sim.PreprocessConfig
}

func (p Point) String() string {
	return fmt.Sprintf("units=%d/min=%d stride=%d stretch=%v",
		p.Capacity.TotalUnits, p.Capacity.MinUnitsPerJob, p.Preprocess.SubsampleStride, p.Preprocess.StretchFactor)
}

// Points expands the grid in capacity-major order.
func (g Grid) Points() []Point {
	points := make([]Point, 0)
	add := func(c sim.CapacityConfig, p sim.PreprocessConfig) {
		points = append(points, Point{Index: len(points), Capacity: c, Preprocess: p})
	}
	for _, c := range g.Capacities {
		add(c, sim.IdentityPreprocess())
		for _, k := range g.Strides {
			if k > 1 {
				add(c, sim.PreprocessConfig{SubsampleStride: k, StretchFactor: 1})
			}
		}
		for _, s := range g.Stretches {
			if s > 1 {
				add(c, sim.PreprocessConfig{SubsampleStride: 1, StretchFactor: s})
			}
		}
	}
	return points
}

// Outcome is the metrics of one simulated point.
type Outcome struct {
	Point
	Metrics *sim.Metrics
}

// Run simulates every grid point with at most workers concurrent simulations
// (workers <= 0 means unbounded). Outcomes are returned in grid order. The
// first failing configuration cancels the remaining work.
func Run(ctx context.Context, jobs []*sim.Job, grid Grid, workers int) ([]Outcome, error) {
	points := grid.Points()
	if len(points) == 0 {
		return nil, ErrEmptyGrid
	}
	outcomes := make([]Outcome, len(points))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for _, p := range points {
		p := p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := sim.Simulate(jobs, sim.Config{Capacity: p.Capacity, Preprocess: p.Preprocess})
			if err != nil {
				return fmt.Errorf("sweep point %s: %w", p, err)
			}
			m := sim.ComputeMetrics(res.Jobs, res.Slots)
			outcomes[p.Index] = Outcome{Point: p, Metrics: m}
			logrus.Infof("Sweep %s: %d scale events", p, m.TotalScalingEvents())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// Best returns the outcome with the most scaling events; ties keep the earliest point.
func Best(outcomes []Outcome) (Outcome, bool) {
	if len(outcomes) == 0 {
		return Outcome{}, false
	}
	best := outcomes[0]
	for _, o := range outcomes[1:] {
		if o.Metrics.TotalScalingEvents() > best.Metrics.TotalScalingEvents() {
			best = o
		}
	}
	return best, true
}
