// Package simulation turns validated scenarios into batches of simulated
// paths.
package simulation

import (
	"context"
	"fmt"

	"github.com/quanttiger/quantlib/internal/domain"
	"github.com/quanttiger/quantlib/internal/montecarlo"
	"github.com/quanttiger/quantlib/internal/process"
	"github.com/quanttiger/quantlib/pkg/dateutil"
	"github.com/quanttiger/quantlib/pkg/timegrid"
)

// Result holds the output of a scenario run: the grid times and one entry
// per generated path.
type Result struct {
	ScenarioName string
	Times        []float64
	Paths        []montecarlo.Path
	Weights      []float64
}

// Runner orchestrates scenario simulation runs
type Runner struct {
	Logger Logger
}

// NewRunner creates a new simulation runner
func NewRunner() *Runner {
	return &Runner{Logger: NopLogger{}}
}

// SetLogger sets the logger for the runner. If nil is provided, a no-op
// logger is used.
func (r *Runner) SetLogger(l Logger) {
	if l == nil {
		r.Logger = NopLogger{}
		return
	}
	r.Logger = l
}

// Run simulates the scenario and collects every generated path. The
// scenario is assumed to have passed configuration validation; the context
// is checked between draws so long runs can be cancelled.
func (r *Runner) Run(ctx context.Context, scenario *domain.Scenario) (*Result, error) {
	grid, err := r.buildGrid(&scenario.Simulation)
	if err != nil {
		return nil, fmt.Errorf("failed to build time grid: %w", err)
	}

	proc, err := r.buildProcess(&scenario.Process)
	if err != nil {
		return nil, fmt.Errorf("failed to build process: %w", err)
	}

	generator, err := r.buildSequenceGenerator(&scenario.Simulation, grid)
	if err != nil {
		return nil, fmt.Errorf("failed to build sequence generator: %w", err)
	}

	pathGen, err := montecarlo.NewPathGeneratorWithGrid(proc, grid, generator, scenario.Simulation.BrownianBridge)
	if err != nil {
		return nil, fmt.Errorf("failed to create path generator: %w", err)
	}

	total := scenario.Simulation.TotalPaths()
	r.Logger.Infof("Simulating %d %s paths over %d steps", total, scenario.Process.Model, grid.Steps())

	result := &Result{
		ScenarioName: scenario.Name,
		Times:        grid.Times(),
		Paths:        make([]montecarlo.Path, 0, total),
		Weights:      make([]float64, 0, total),
	}

	for i := 0; i < scenario.Simulation.Paths; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("simulation cancelled after %d paths: %w", len(result.Paths), err)
		}

		sample := pathGen.Next()
		result.Paths = append(result.Paths, sample.Path)
		result.Weights = append(result.Weights, sample.Weight)

		if scenario.Simulation.AntitheticPairs {
			anti, err := pathGen.Antithetic()
			if err != nil {
				return nil, fmt.Errorf("failed to generate antithetic path: %w", err)
			}
			result.Paths = append(result.Paths, anti.Path)
			result.Weights = append(result.Weights, anti.Weight)
		}

		if (i+1)%1000 == 0 {
			r.Logger.Debugf("Generated %d of %d draws", i+1, scenario.Simulation.Paths)
		}
	}

	r.Logger.Infof("Simulation complete: %d paths", len(result.Paths))
	return result, nil
}

// buildGrid constructs the time grid from whichever horizon mode the
// scenario uses
func (r *Runner) buildGrid(s *domain.SimulationSettings) (*timegrid.Grid, error) {
	switch {
	case len(s.ObservationDates) > 0:
		times := dateutil.YearFractions(s.ObservationDates[0], s.ObservationDates)
		return timegrid.New(times)
	case s.StartDate != nil && s.EndDate != nil:
		horizon := dateutil.YearFraction(*s.StartDate, *s.EndDate)
		return timegrid.NewUniform(horizon, s.TimeSteps)
	default:
		return timegrid.NewUniform(s.HorizonYears, s.TimeSteps)
	}
}

// buildProcess constructs the process model from the scenario coefficients
func (r *Runner) buildProcess(p *domain.ProcessParameters) (montecarlo.StochasticProcess1D, error) {
	initial := p.InitialValue.InexactFloat64()
	drift := p.Drift.InexactFloat64()
	volatility := p.Volatility.InexactFloat64()

	switch p.Model {
	case domain.ModelGeometric:
		return process.NewGeometricBrownianMotion(initial, drift, volatility)
	case domain.ModelArithmetic:
		return process.NewArithmeticBrownianMotion(initial, drift, volatility)
	case domain.ModelOrnsteinUhlenbeck:
		return process.NewOrnsteinUhlenbeck(initial, p.ReversionSpeed.InexactFloat64(), p.ReversionLevel.InexactFloat64(), volatility)
	default:
		return nil, fmt.Errorf("unsupported process model '%s'", p.Model)
	}
}

// buildSequenceGenerator constructs the variate source. The bridge consumes
// unit normals and embeds the sqrt(dt) scaling in its construction, while
// direct evolution needs increments already scaled per step.
func (r *Runner) buildSequenceGenerator(s *domain.SimulationSettings, grid *timegrid.Grid) (montecarlo.SequenceGenerator, error) {
	switch s.Sequence {
	case domain.SequencePseudorandom:
		if s.BrownianBridge {
			return montecarlo.NewGaussianSequenceGenerator(grid.Steps(), s.Seed)
		}
		return montecarlo.NewBrownianIncrementGenerator(grid, s.Seed), nil
	case domain.SequenceHalton:
		return montecarlo.NewHaltonSequenceGenerator(grid.Steps())
	default:
		return nil, fmt.Errorf("unsupported sequence type '%s'", s.Sequence)
	}
}
