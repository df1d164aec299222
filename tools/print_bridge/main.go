// print_bridge dumps the construction tables of a Brownian bridge over a
// uniform grid, useful for checking point ordering and variance allocation
// by hand.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/quanttiger/quantlib/internal/montecarlo"
	"github.com/quanttiger/quantlib/pkg/timegrid"
)

func main() {
	steps := flag.Int("steps", 8, "number of uniform time steps")
	horizon := flag.Float64("horizon", 1.0, "grid horizon in years")
	flag.Parse()

	grid, err := timegrid.NewUniform(*horizon, *steps)
	if err != nil {
		log.Fatalf("Failed to build grid: %v", err)
	}

	bridge := montecarlo.NewBrownianBridge(grid)
	bridgeIndex := bridge.BridgeIndex()
	leftIndex := bridge.LeftIndex()
	rightIndex := bridge.RightIndex()
	leftWeight := bridge.LeftWeight()
	rightWeight := bridge.RightWeight()
	stdDev := bridge.StdDeviation()

	fmt.Printf("Brownian bridge over [0, %g] with %d steps\n\n", *horizon, *steps)
	fmt.Println("draw  fills  left  right  leftWeight  rightWeight  stdDev")
	for i := 0; i < bridge.Size(); i++ {
		fmt.Printf("%4d  %5d  %4d  %5d  %10.6f  %11.6f  %.6f\n",
			i, bridgeIndex[i], leftIndex[i], rightIndex[i], leftWeight[i], rightWeight[i], stdDev[i])
	}

	// A unit impulse on the first variate shows which path points the
	// terminal draw reaches.
	impulse := make([]float64, bridge.Size())
	impulse[0] = 1.0
	values, err := bridge.Transform(impulse)
	if err != nil {
		log.Fatalf("Failed to transform impulse: %v", err)
	}

	fmt.Println("\nResponse to a unit first variate:")
	for i, v := range values {
		fmt.Printf("  W(%g) = %.6f\n", grid.At(i+1), v)
	}
}
