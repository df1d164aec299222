// Package dateutil converts calendar dates into the year-fraction times used
// on simulation grids.
package dateutil

import (
	"time"
)

const hoursPerYear = 24 * 365.25

// YearFraction calculates the time between two dates in years, on an
// actual/365.25 basis. The result is negative when end precedes start.
func YearFraction(start, end time.Time) float64 {
	return end.Sub(start).Hours() / hoursPerYear
}

// YearFractions calculates the year fraction from start to each date, in
// order. Passing start as the first date yields a sequence beginning at 0,
// suitable for an observation-date time grid.
func YearFractions(start time.Time, dates []time.Time) []float64 {
	out := make([]float64, len(dates))
	for i, d := range dates {
		out[i] = YearFraction(start, d)
	}
	return out
}
