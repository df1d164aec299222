// Package config handles parsing, defaulting and validation of scenario
// files.
package config

import (
	"fmt"
	"math"
	"os"

	"github.com/quanttiger/quantlib/internal/domain"
	"github.com/quanttiger/quantlib/pkg/dateutil"
	"github.com/quanttiger/quantlib/pkg/rate"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Default simulation settings applied to fields left unset in a scenario
// file.
const (
	DefaultPaths        = 1000
	DefaultSeed         = 42
	DefaultPrecision    = 6
	DefaultStepsPerYear = 12
)

// InputParser handles parsing of scenario configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadScenario loads a scenario from a YAML file
func (ip *InputParser) LoadScenario(filename string) (*domain.Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseScenario(data)
}

// ParseScenario parses a scenario from YAML bytes, applies defaults and
// validates the result
func (ip *InputParser) ParseScenario(data []byte) (*domain.Scenario, error) {
	var scenario domain.Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.ApplyDefaults(&scenario)

	if err := ip.ValidateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}

	return &scenario, nil
}

// ApplyDefaults fills unset simulation and output fields with defaults:
// 1000 paths, seed 42, pseudorandom variates, monthly steps, CSV output
// with 6 digits of precision.
func (ip *InputParser) ApplyDefaults(scenario *domain.Scenario) {
	sim := &scenario.Simulation

	if sim.Paths == 0 {
		sim.Paths = DefaultPaths
	}
	if sim.Seed == 0 {
		sim.Seed = DefaultSeed
	}
	if sim.Sequence == "" {
		sim.Sequence = domain.SequencePseudorandom
	}

	// Derive monthly steps from the horizon when none are given. Explicit
	// observation dates carry their own grid.
	if sim.TimeSteps == 0 && len(sim.ObservationDates) == 0 {
		horizon := sim.HorizonYears
		if horizon == 0 && sim.StartDate != nil && sim.EndDate != nil {
			horizon = dateutil.YearFraction(*sim.StartDate, *sim.EndDate)
		}
		if horizon > 0 {
			steps := int(math.Round(DefaultStepsPerYear * horizon))
			if steps < 1 {
				steps = 1
			}
			sim.TimeSteps = steps
		}
	}

	if scenario.Output.Format == "" {
		scenario.Output.Format = domain.FormatCSV
	}
	if scenario.Output.Precision == 0 {
		scenario.Output.Precision = DefaultPrecision
	}
}

// ValidateScenario validates a scenario after defaults have been applied
func (ip *InputParser) ValidateScenario(scenario *domain.Scenario) error {
	if err := ip.validateProcess(&scenario.Process); err != nil {
		return fmt.Errorf("process validation failed: %w", err)
	}
	if err := ip.validateSimulation(&scenario.Simulation); err != nil {
		return fmt.Errorf("simulation validation failed: %w", err)
	}
	if err := ip.validateOutput(&scenario.Output); err != nil {
		return fmt.Errorf("output validation failed: %w", err)
	}
	return nil
}

// validateProcess validates the model choice and its coefficients
func (ip *InputParser) validateProcess(p *domain.ProcessParameters) error {
	if p.Model == "" {
		return fmt.Errorf("process model is required")
	}

	switch p.Model {
	case domain.ModelGeometric:
		if p.InitialValue.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("initial value must be positive for model %s", p.Model)
		}
	case domain.ModelArithmetic:
		// Any initial value is valid
	case domain.ModelOrnsteinUhlenbeck:
		if p.ReversionSpeed.LessThan(decimal.Zero) {
			return fmt.Errorf("reversion speed cannot be negative")
		}
	default:
		return fmt.Errorf("unknown process model '%s' (supported: %s, %s, %s)",
			p.Model, domain.ModelGeometric, domain.ModelArithmetic, domain.ModelOrnsteinUhlenbeck)
	}

	if p.Volatility.LessThan(decimal.Zero) {
		return fmt.Errorf("volatility cannot be negative")
	}
	// Volatility above 500% almost always means someone entered percent
	// instead of a decimal rate.
	if p.Volatility.GreaterThan(decimal.NewFromInt(5)) {
		return fmt.Errorf("volatility %s seems too high, expected decimal format like 0.20",
			p.Volatility.Percent())
	}

	return nil
}

// validateSimulation validates the horizon mode, discretization and
// variate source
func (ip *InputParser) validateSimulation(s *domain.SimulationSettings) error {
	// Exactly one way of specifying the horizon
	modes := 0
	if s.HorizonYears != 0 {
		modes++
	}
	if s.StartDate != nil || s.EndDate != nil {
		modes++
	}
	if len(s.ObservationDates) > 0 {
		modes++
	}
	if modes == 0 {
		return fmt.Errorf("one of horizon_years, start_date/end_date or observation_dates is required")
	}
	if modes > 1 {
		return fmt.Errorf("horizon_years, start_date/end_date and observation_dates are mutually exclusive")
	}

	if s.HorizonYears < 0 {
		return fmt.Errorf("horizon_years must be positive")
	}

	if s.StartDate != nil || s.EndDate != nil {
		if s.StartDate == nil || s.EndDate == nil {
			return fmt.Errorf("start_date and end_date must be specified together")
		}
		if !s.EndDate.After(*s.StartDate) {
			return fmt.Errorf("end_date %s must be after start_date %s",
				s.EndDate.Format("2006-01-02"), s.StartDate.Format("2006-01-02"))
		}
	}

	if len(s.ObservationDates) > 0 {
		// The first date anchors the grid at time zero
		if len(s.ObservationDates) < 2 {
			return fmt.Errorf("at least 2 observation_dates are required")
		}
		for i := 1; i < len(s.ObservationDates); i++ {
			if !s.ObservationDates[i].After(s.ObservationDates[i-1]) {
				return fmt.Errorf("observation_dates must be strictly increasing: %s does not follow %s",
					s.ObservationDates[i].Format("2006-01-02"), s.ObservationDates[i-1].Format("2006-01-02"))
			}
		}
	} else if s.TimeSteps < 1 {
		return fmt.Errorf("time_steps must be at least 1")
	}

	if s.Paths < 1 {
		return fmt.Errorf("paths must be at least 1")
	}

	switch s.Sequence {
	case domain.SequencePseudorandom:
		// Works with or without the bridge
	case domain.SequenceHalton:
		if !s.BrownianBridge {
			return fmt.Errorf("halton sequences require brownian_bridge: true")
		}
	default:
		return fmt.Errorf("unknown sequence type '%s' (supported: %s, %s)",
			s.Sequence, domain.SequencePseudorandom, domain.SequenceHalton)
	}

	return nil
}

// validateOutput validates the export settings
func (ip *InputParser) validateOutput(o *domain.OutputSettings) error {
	switch o.Format {
	case domain.FormatCSV, domain.FormatJSON:
	default:
		return fmt.Errorf("unknown output format '%s' (supported: %s, %s)",
			o.Format, domain.FormatCSV, domain.FormatJSON)
	}

	if o.Precision < 1 || o.Precision > 17 {
		return fmt.Errorf("precision must be between 1 and 17")
	}

	return nil
}

// CreateExampleScenario creates an example scenario suitable for writing
// out as a starter configuration file
func (ip *InputParser) CreateExampleScenario() *domain.Scenario {
	return &domain.Scenario{
		Name: "Example GBM scenario",
		Process: domain.ProcessParameters{
			Model:        domain.ModelGeometric,
			InitialValue: decimal.NewFromInt(100),
			Drift:        rate.New(0.05),
			Volatility:   rate.New(0.20),
		},
		Simulation: domain.SimulationSettings{
			HorizonYears:    1.0,
			TimeSteps:       12,
			Paths:           1000,
			Seed:            42,
			Sequence:        domain.SequencePseudorandom,
			AntitheticPairs: true,
		},
		Output: domain.OutputSettings{
			Format:    domain.FormatCSV,
			Precision: 6,
		},
	}
}
