package montecarlo

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"
)

// HaltonSequenceGenerator produces low-discrepancy normal vectors: the d-th
// coordinate of draw n is the radical inverse of n in the d-th prime base,
// mapped through the inverse normal CDF. The index starts at 1 so every
// uniform lies strictly inside (0, 1).
//
// Halton points fill dimensions unevenly, with the lowest bases best
// distributed; pair this source with a Brownian bridge so those coordinates
// land on the coarsest path features.
type HaltonSequenceGenerator struct {
	dimension int
	bases     []int
	index     uint64
	last      Sequence
}

// NewHaltonSequenceGenerator creates a Halton generator of the given
// dimension.
func NewHaltonSequenceGenerator(dimension int) (*HaltonSequenceGenerator, error) {
	if dimension < 1 {
		return nil, fmt.Errorf("montecarlo: dimension must be at least 1, got %d", dimension)
	}
	return &HaltonSequenceGenerator{
		dimension: dimension,
		bases:     firstPrimes(dimension),
		index:     1,
		last:      Sequence{Values: make([]float64, dimension), Weight: 1.0},
	}, nil
}

// Dimension returns the length of generated vectors.
func (h *HaltonSequenceGenerator) Dimension() int { return h.dimension }

// NextSequence produces the next point of the sequence as normal variates.
func (h *HaltonSequenceGenerator) NextSequence() Sequence {
	values := make([]float64, h.dimension)
	for d := range values {
		values[d] = distuv.UnitNormal.Quantile(radicalInverse(h.index, h.bases[d]))
	}
	h.index++
	h.last = Sequence{Values: values, Weight: 1.0}
	return h.last.Clone()
}

// LastSequence returns the most recent draw without advancing the sequence.
func (h *HaltonSequenceGenerator) LastSequence() Sequence {
	return h.last.Clone()
}

// radicalInverse reflects the base-b digits of n around the radix point:
// n = d0 + d1*b + d2*b^2 + ... maps to d0/b + d1/b^2 + d2/b^3 + ...
func radicalInverse(n uint64, base int) float64 {
	var (
		b      = uint64(base)
		invB   = 1.0 / float64(base)
		f      = invB
		result float64
	)
	for n > 0 {
		result += float64(n%b) * f
		n /= b
		f *= invB
	}
	return result
}

// firstPrimes returns the first n primes by trial division.
func firstPrimes(n int) []int {
	primes := make([]int, 0, n)
	for candidate := 2; len(primes) < n; candidate++ {
		isPrime := true
		for _, p := range primes {
			if p*p > candidate {
				break
			}
			if candidate%p == 0 {
				isPrime = false
				break
			}
		}
		if isPrime {
			primes = append(primes, candidate)
		}
	}
	return primes
}
