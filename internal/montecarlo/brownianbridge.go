package montecarlo

import (
	"fmt"
	"math"

	"github.com/quanttiger/quantlib/pkg/timegrid"
)

// BrownianBridge turns independent unit variates into a standard Brownian
// path sampled at the intermediate times of a grid. Points are constructed
// by interval bisection: the terminal value first, then recursively the
// midpoint of each bracketed gap, so the earliest variates carry the most
// variance. Transform returns the values already reordered into time order.
type BrownianBridge struct {
	size        int
	t           []float64
	bridgeIndex []int
	leftIndex   []int
	rightIndex  []int
	leftWeight  []float64
	rightWeight []float64
	stdDev      []float64
}

// NewBrownianBridge creates a bridge over the steps of grid.
func NewBrownianBridge(grid *timegrid.Grid) *BrownianBridge {
	size := grid.Steps()
	b := &BrownianBridge{
		size:        size,
		t:           make([]float64, size),
		bridgeIndex: make([]int, size),
		leftIndex:   make([]int, size),
		rightIndex:  make([]int, size),
		leftWeight:  make([]float64, size),
		rightWeight: make([]float64, size),
		stdDev:      make([]float64, size),
	}
	for i := 0; i < size; i++ {
		b.t[i] = grid.At(i + 1)
	}
	b.initialize()
	return b
}

func (b *BrownianBridge) initialize() {
	// mapped[i] is true once the point at t[i] has a construction slot.
	mapped := make([]bool, b.size)

	// The terminal point is built first, from the first variate.
	mapped[b.size-1] = true
	b.bridgeIndex[0] = b.size - 1
	b.stdDev[0] = math.Sqrt(b.t[b.size-1])
	b.leftWeight[0] = 0
	b.rightWeight[0] = 0

	j := 0
	for i := 1; i < b.size; i++ {
		// Find the first unconstructed point and the constructed point
		// closing the gap it sits in.
		for mapped[j] {
			j++
		}
		k := j
		for !mapped[k] {
			k++
		}
		// The next point to construct is the midpoint of the gap.
		l := j + ((k - 1 - j) >> 1)
		b.bridgeIndex[i] = l
		b.leftIndex[i] = j
		b.rightIndex[i] = k
		if j != 0 {
			b.leftWeight[i] = (b.t[k] - b.t[l]) / (b.t[k] - b.t[j-1])
			b.rightWeight[i] = (b.t[l] - b.t[j-1]) / (b.t[k] - b.t[j-1])
			b.stdDev[i] = math.Sqrt((b.t[l] - b.t[j-1]) * (b.t[k] - b.t[l]) / (b.t[k] - b.t[j-1]))
		} else {
			// The left bracket is the path origin at time 0.
			b.leftWeight[i] = (b.t[k] - b.t[l]) / b.t[k]
			b.rightWeight[i] = b.t[l] / b.t[k]
			b.stdDev[i] = math.Sqrt(b.t[l] * (b.t[k] - b.t[l]) / b.t[k])
		}
		mapped[l] = true
		j = k + 1
		if j >= b.size {
			j = 0
		}
	}
}

// Size returns the number of variates consumed and values produced.
func (b *BrownianBridge) Size() int { return b.size }

// Transform maps unit variates into cumulative Brownian values at the grid's
// intermediate times, in time order.
func (b *BrownianBridge) Transform(variates []float64) ([]float64, error) {
	if len(variates) != b.size {
		return nil, fmt.Errorf("montecarlo: brownian bridge expects %d variates, got %d", b.size, len(variates))
	}
	out := make([]float64, b.size)
	b.transform(out, variates)
	return out, nil
}

// transform assumes len(out) == len(variates) == size.
func (b *BrownianBridge) transform(out, variates []float64) {
	out[b.size-1] = b.stdDev[0] * variates[0]
	for i := 1; i < b.size; i++ {
		j := b.leftIndex[i]
		k := b.rightIndex[i]
		l := b.bridgeIndex[i]
		if j != 0 {
			out[l] = b.leftWeight[i]*out[j-1] + b.rightWeight[i]*out[k] + b.stdDev[i]*variates[i]
		} else {
			out[l] = b.rightWeight[i]*out[k] + b.stdDev[i]*variates[i]
		}
	}
}

// BridgeIndex returns the time indices in construction order.
func (b *BrownianBridge) BridgeIndex() []int { return copyInts(b.bridgeIndex) }

// LeftIndex returns, per construction step, the first time index of the gap
// being bisected.
func (b *BrownianBridge) LeftIndex() []int { return copyInts(b.leftIndex) }

// RightIndex returns, per construction step, the time index of the
// constructed point closing the gap being bisected.
func (b *BrownianBridge) RightIndex() []int { return copyInts(b.rightIndex) }

// LeftWeight returns the interpolation weights on the left bracket.
func (b *BrownianBridge) LeftWeight() []float64 { return copyFloats(b.leftWeight) }

// RightWeight returns the interpolation weights on the right bracket.
func (b *BrownianBridge) RightWeight() []float64 { return copyFloats(b.rightWeight) }

// StdDeviation returns the conditional standard deviation applied to each
// variate in construction order.
func (b *BrownianBridge) StdDeviation() []float64 { return copyFloats(b.stdDev) }

func copyInts(src []int) []int {
	out := make([]int, len(src))
	copy(out, src)
	return out
}

func copyFloats(src []float64) []float64 {
	out := make([]float64, len(src))
	copy(out, src)
	return out
}
