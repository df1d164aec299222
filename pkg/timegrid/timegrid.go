// Package timegrid provides the discrete time axis paths are simulated on:
// an increasing sequence of time points starting at zero, with per-step
// deltas precomputed for the generation loop.
package timegrid

import (
	"errors"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrNonPositiveHorizon is returned when a uniform grid is requested over
	// a zero or negative horizon.
	ErrNonPositiveHorizon = errors.New("timegrid: horizon must be positive")
	// ErrNonPositiveSteps is returned when a uniform grid is requested with
	// fewer than one subinterval.
	ErrNonPositiveSteps = errors.New("timegrid: steps must be at least 1")
	// ErrTooFewTimes is returned when an explicit grid has fewer than two
	// time points.
	ErrTooFewTimes = errors.New("timegrid: at least two time points required")
	// ErrFirstTimeNotZero is returned when an explicit grid does not start
	// at time zero.
	ErrFirstTimeNotZero = errors.New("timegrid: first time point must be 0")
	// ErrNotIncreasing is returned when an explicit grid is not strictly
	// increasing.
	ErrNotIncreasing = errors.New("timegrid: time points must be strictly increasing")
)

// Grid is an increasing sequence of N+1 time points t0=0 .. tN=horizon.
// A grid is immutable after construction.
type Grid struct {
	times []float64
	dt    []float64
}

// NewUniform creates a grid of steps equal subintervals covering [0, horizon].
func NewUniform(horizon float64, steps int) (*Grid, error) {
	if horizon <= 0 {
		return nil, ErrNonPositiveHorizon
	}
	if steps < 1 {
		return nil, ErrNonPositiveSteps
	}
	times := make([]float64, steps+1)
	floats.Span(times, 0, horizon)
	return newGrid(times), nil
}

// New creates a grid from explicit time points. The first point must be 0
// and the sequence strictly increasing.
func New(times []float64) (*Grid, error) {
	if len(times) < 2 {
		return nil, ErrTooFewTimes
	}
	if times[0] != 0 {
		return nil, ErrFirstTimeNotZero
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return nil, ErrNotIncreasing
		}
	}
	owned := make([]float64, len(times))
	copy(owned, times)
	return newGrid(owned), nil
}

func newGrid(times []float64) *Grid {
	dt := make([]float64, len(times)-1)
	for i := range dt {
		dt[i] = times[i+1] - times[i]
	}
	return &Grid{times: times, dt: dt}
}

// Size returns the number of time points (N+1).
func (g *Grid) Size() int { return len(g.times) }

// Steps returns the number of subintervals (N).
func (g *Grid) Steps() int { return len(g.dt) }

// At returns the i-th time point.
func (g *Grid) At(i int) float64 { return g.times[i] }

// Dt returns the width of the i-th subinterval, t[i+1] - t[i].
func (g *Grid) Dt(i int) float64 { return g.dt[i] }

// Horizon returns the last time point.
func (g *Grid) Horizon() float64 { return g.times[len(g.times)-1] }

// Times returns a copy of the time points.
func (g *Grid) Times() []float64 {
	out := make([]float64, len(g.times))
	copy(out, g.times)
	return out
}
