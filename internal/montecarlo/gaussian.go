package montecarlo

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/quanttiger/quantlib/pkg/timegrid"
)

// GaussianSequenceGenerator draws vectors of independent normal variates
// from a seeded pseudo-random source, with weight 1. Not safe for concurrent
// use.
type GaussianSequenceGenerator struct {
	dimension int
	sigmas    []float64 // nil means unit variates
	dist      distuv.Normal
	last      Sequence
}

// NewGaussianSequenceGenerator creates a generator of unit normal vectors.
// This is the source to pair with a Brownian bridge, which scales unit
// variates itself.
func NewGaussianSequenceGenerator(dimension int, seed uint64) (*GaussianSequenceGenerator, error) {
	if dimension < 1 {
		return nil, fmt.Errorf("montecarlo: dimension must be at least 1, got %d", dimension)
	}
	return newGaussian(dimension, nil, seed), nil
}

// NewBrownianIncrementGenerator creates a generator whose i-th variate is a
// Wiener increment over step i of the grid, i.e. normal with standard
// deviation sqrt(dt_i). This is the source to pair with direct (bridge-less)
// path construction.
func NewBrownianIncrementGenerator(grid *timegrid.Grid, seed uint64) *GaussianSequenceGenerator {
	sigmas := make([]float64, grid.Steps())
	for i := range sigmas {
		sigmas[i] = math.Sqrt(grid.Dt(i))
	}
	return newGaussian(len(sigmas), sigmas, seed)
}

func newGaussian(dimension int, sigmas []float64, seed uint64) *GaussianSequenceGenerator {
	return &GaussianSequenceGenerator{
		dimension: dimension,
		sigmas:    sigmas,
		dist: distuv.Normal{
			Mu:    0,
			Sigma: 1,
			Src:   rand.NewSource(seed),
		},
		last: Sequence{Values: make([]float64, dimension), Weight: 1.0},
	}
}

// Dimension returns the length of generated vectors.
func (g *GaussianSequenceGenerator) Dimension() int { return g.dimension }

// NextSequence draws a fresh vector of variates.
func (g *GaussianSequenceGenerator) NextSequence() Sequence {
	values := make([]float64, g.dimension)
	for i := range values {
		values[i] = g.dist.Rand()
		if g.sigmas != nil {
			values[i] *= g.sigmas[i]
		}
	}
	g.last = Sequence{Values: values, Weight: 1.0}
	return g.last.Clone()
}

// LastSequence returns the most recent draw without advancing the source.
func (g *GaussianSequenceGenerator) LastSequence() Sequence {
	return g.last.Clone()
}
