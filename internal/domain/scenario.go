// Package domain contains the core domain models for path simulation
// scenarios.
package domain

import (
	"time"

	"github.com/quanttiger/quantlib/pkg/rate"
	"github.com/shopspring/decimal"
)

// Process model identifiers accepted in scenario files.
const (
	ModelGeometric         = "gbm"
	ModelArithmetic        = "arithmetic"
	ModelOrnsteinUhlenbeck = "ornstein-uhlenbeck"
)

// Variate source identifiers accepted in scenario files.
const (
	SequencePseudorandom = "pseudorandom"
	SequenceHalton       = "halton"
)

// Output format identifiers accepted in scenario files.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Scenario represents a complete simulation request: the process to
// simulate, how to discretize and drive it, and where the paths go.
type Scenario struct {
	Name       string             `json:"name" yaml:"name"`
	Process    ProcessParameters  `json:"process" yaml:"process"`
	Simulation SimulationSettings `json:"simulation" yaml:"simulation"`
	Output     OutputSettings     `json:"output" yaml:"output"`
}

// ProcessParameters holds the model choice and its coefficients. Levels are
// exact decimals and rates carry percentage rendering; reversion fields
// only apply to the Ornstein-Uhlenbeck model.
type ProcessParameters struct {
	Model          string          `json:"model" yaml:"model"`
	InitialValue   decimal.Decimal `json:"initial_value" yaml:"initial_value"`
	Drift          rate.Rate       `json:"drift" yaml:"drift"`
	Volatility     rate.Rate       `json:"volatility" yaml:"volatility"`
	ReversionSpeed rate.Rate       `json:"reversion_speed,omitempty" yaml:"reversion_speed,omitempty"`
	ReversionLevel decimal.Decimal `json:"reversion_level,omitempty" yaml:"reversion_level,omitempty"`
}

// SimulationSettings controls the time discretization and the variate
// source. Exactly one horizon mode must be set: a year count, a start and
// end date pair, or explicit observation dates whose first entry anchors
// the grid.
type SimulationSettings struct {
	HorizonYears     float64     `json:"horizon_years,omitempty" yaml:"horizon_years,omitempty"`
	StartDate        *time.Time  `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate          *time.Time  `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	ObservationDates []time.Time `json:"observation_dates,omitempty" yaml:"observation_dates,omitempty"`
	TimeSteps        int         `json:"time_steps,omitempty" yaml:"time_steps,omitempty"`
	Paths            int         `json:"paths" yaml:"paths"`
	Seed             uint64      `json:"seed,omitempty" yaml:"seed,omitempty"`
	Sequence         string      `json:"sequence,omitempty" yaml:"sequence,omitempty"`
	BrownianBridge   bool        `json:"brownian_bridge,omitempty" yaml:"brownian_bridge,omitempty"`
	AntitheticPairs  bool        `json:"antithetic_pairs,omitempty" yaml:"antithetic_pairs,omitempty"`
}

// TotalPaths returns the number of paths a run will produce. Paths counts
// fresh draws; antithetic pairing doubles the output.
func (s *SimulationSettings) TotalPaths() int {
	if s.AntitheticPairs {
		return 2 * s.Paths
	}
	return s.Paths
}

// OutputSettings selects the export format and destination. An empty path
// means standard output.
type OutputSettings struct {
	Format    string `json:"format" yaml:"format"`
	Path      string `json:"path,omitempty" yaml:"path,omitempty"`
	Precision int    `json:"precision,omitempty" yaml:"precision,omitempty"`
}
