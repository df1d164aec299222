package montecarlo

import (
	"errors"
	"fmt"
)

// ErrNoPreviousDraw is returned by PathGenerator.Antithetic when no fresh
// draw has been made yet.
var ErrNoPreviousDraw = errors.New("montecarlo: antithetic sample requested before any fresh draw")

// ConfigurationError reports a sequence generator whose dimensionality does
// not match the number of time steps it is asked to drive.
type ConfigurationError struct {
	Dimension int
	TimeSteps int
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("montecarlo: sequence generator dimensionality (%d) != time steps (%d)", e.Dimension, e.TimeSteps)
}
