// print_halton dumps the first points of a Halton sequence before and after
// the normal quantile mapping, for eyeballing coordinate spread across
// dimensions.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/quanttiger/quantlib/internal/montecarlo"
)

func main() {
	dimension := flag.Int("dimension", 4, "sequence dimension")
	count := flag.Int("count", 10, "number of points to print")
	flag.Parse()

	gen, err := montecarlo.NewHaltonSequenceGenerator(*dimension)
	if err != nil {
		log.Fatalf("Failed to create generator: %v", err)
	}

	fmt.Printf("First %d Halton points in dimension %d (as normal variates)\n\n", *count, *dimension)
	for n := 1; n <= *count; n++ {
		seq := gen.NextSequence()
		fmt.Printf("%3d:", n)
		for _, v := range seq.Values {
			fmt.Printf(" %9.5f", v)
		}
		fmt.Println()
	}
}
