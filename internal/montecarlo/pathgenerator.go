// Package montecarlo generates simulated trajectories of one-dimensional
// stochastic processes for Monte Carlo estimation of path-dependent
// quantities. A PathGenerator couples a sequence of normal variates with a
// process evolution rule, optionally routing the variates through a Brownian
// bridge that reallocates variance across the path; this pairing is what
// makes low-discrepancy sources effective.
package montecarlo

import (
	"fmt"

	"github.com/quanttiger/quantlib/pkg/timegrid"
)

// Path holds simulated process values, one per grid time point. Element 0 is
// the process's initial value.
type Path []float64

// Clone returns an independent copy of the path.
func (p Path) Clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Sample couples one generated path with its probability weight.
type Sample struct {
	Path   Path
	Weight float64
}

// StochasticProcess1D is the one-dimensional process capability a
// PathGenerator requires at construction: initial value, per-step drift
// expectation, a full evolution rule, and the rule applying a Wiener shock
// to a drifted value.
//
// Shocks handed to Apply are Wiener increments (variance dt over a step of
// width dt); processes scale them by their own diffusion coefficient.
type StochasticProcess1D interface {
	// X0 returns the initial value of the process.
	X0() float64
	// Expectation returns the expected value after dt, starting from x0 at
	// t0, with the diffusion term suppressed.
	Expectation(t0, x0, dt float64) float64
	// Evolve returns the value after dt, starting from x0 at t0, driven by
	// the unit normal variate dw.
	Evolve(t0, x0, dt, dw float64) float64
	// Apply moves x0 by the Wiener increment dx according to the process
	// algebra (additive or multiplicative).
	Apply(x0, dx float64) float64
}

// drawMode selects whether a generation call consumes a fresh draw or
// replays the retained one with flipped signs.
type drawMode int

const (
	drawFresh drawMode = iota
	drawReuseNegated
)

// PathGenerator builds one path per call from a process, a time grid and a
// sequence generator whose dimension equals the grid's step count. With the
// bridge enabled, variates are turned into time-ordered cumulative Brownian
// values and differenced back into per-step increments before being applied.
//
// Every call returns an owned Sample; the only state retained between calls
// is the last transformed shock vector, kept for antithetic replay. A
// PathGenerator is not safe for concurrent use.
type PathGenerator struct {
	process   StochasticProcess1D
	generator SequenceGenerator
	grid      *timegrid.Grid
	dimension int
	bridge    *BrownianBridge // nil when the bridge is disabled

	lastShocks []float64
	lastWeight float64
	haveDraw   bool

	bridged []float64 // scratch for bridge output
}

// NewPathGenerator creates a path generator over a uniform grid of timeSteps
// subintervals covering [0, horizon]. It fails with a ConfigurationError if
// the generator dimension does not equal timeSteps.
func NewPathGenerator(process StochasticProcess1D, horizon float64, timeSteps int, generator SequenceGenerator, brownianBridge bool) (*PathGenerator, error) {
	if generator.Dimension() != timeSteps {
		return nil, &ConfigurationError{Dimension: generator.Dimension(), TimeSteps: timeSteps}
	}
	grid, err := timegrid.NewUniform(horizon, timeSteps)
	if err != nil {
		return nil, fmt.Errorf("failed to build time grid: %w", err)
	}
	return newPathGenerator(process, grid, generator, brownianBridge), nil
}

// NewPathGeneratorWithGrid creates a path generator over an explicit time
// grid. It fails with a ConfigurationError if the generator dimension does
// not equal the grid's step count.
func NewPathGeneratorWithGrid(process StochasticProcess1D, grid *timegrid.Grid, generator SequenceGenerator, brownianBridge bool) (*PathGenerator, error) {
	if generator.Dimension() != grid.Steps() {
		return nil, &ConfigurationError{Dimension: generator.Dimension(), TimeSteps: grid.Steps()}
	}
	return newPathGenerator(process, grid, generator, brownianBridge), nil
}

func newPathGenerator(process StochasticProcess1D, grid *timegrid.Grid, generator SequenceGenerator, brownianBridge bool) *PathGenerator {
	pg := &PathGenerator{
		process:    process,
		generator:  generator,
		grid:       grid,
		dimension:  generator.Dimension(),
		lastShocks: make([]float64, generator.Dimension()),
	}
	if brownianBridge {
		pg.bridge = NewBrownianBridge(grid)
		pg.bridged = make([]float64, pg.dimension)
	}
	return pg
}

// Next draws a fresh variate vector and builds a new path. Generation cannot
// fail once construction succeeded.
func (pg *PathGenerator) Next() Sample {
	return pg.generate(drawFresh)
}

// Antithetic rebuilds a path from the most recent fresh draw with every
// shock sign-flipped. It fails with ErrNoPreviousDraw if Next has not been
// called yet.
func (pg *PathGenerator) Antithetic() (Sample, error) {
	if !pg.haveDraw {
		return Sample{}, ErrNoPreviousDraw
	}
	return pg.generate(drawReuseNegated), nil
}

// Size returns the generator dimension, equal to the number of path steps.
func (pg *PathGenerator) Size() int { return pg.dimension }

// TimeGrid returns the grid the paths are built on.
func (pg *PathGenerator) TimeGrid() *timegrid.Grid { return pg.grid }

func (pg *PathGenerator) generate(mode drawMode) Sample {
	if mode == drawFresh {
		seq := pg.generator.NextSequence()
		if pg.bridge != nil {
			// The bridge emits cumulative Brownian values in time order;
			// differencing recovers the per-step increments.
			pg.bridge.transform(pg.bridged, seq.Values)
			pg.lastShocks[0] = pg.bridged[0]
			for i := 1; i < pg.dimension; i++ {
				pg.lastShocks[i] = pg.bridged[i] - pg.bridged[i-1]
			}
		} else {
			copy(pg.lastShocks, seq.Values)
		}
		pg.lastWeight = seq.Weight
		pg.haveDraw = true
	}

	sign := 1.0
	if mode == drawReuseNegated {
		sign = -1.0
	}

	path := make(Path, pg.grid.Size())
	path[0] = pg.process.X0()
	for i := 1; i < len(path); i++ {
		t := pg.grid.At(i - 1)
		dt := pg.grid.Dt(i - 1)
		mean := pg.process.Expectation(t, path[i-1], dt)
		path[i] = pg.process.Apply(mean, sign*pg.lastShocks[i-1])
	}
	return Sample{Path: path, Weight: pg.lastWeight}
}
