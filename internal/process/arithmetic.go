package process

import (
	"fmt"
	"math"
)

// ArithmeticBrownianMotion models dX = mu dt + sigma dW, Brownian motion
// with constant drift. Values may go negative, which suits spreads and
// other signed quantities.
type ArithmeticBrownianMotion struct {
	initial    float64
	drift      float64
	volatility float64
}

// NewArithmeticBrownianMotion creates an arithmetic Brownian motion with
// the given initial value, drift and volatility. The volatility must be
// non-negative.
func NewArithmeticBrownianMotion(initial, drift, volatility float64) (*ArithmeticBrownianMotion, error) {
	if volatility < 0 {
		return nil, fmt.Errorf("process: volatility must be non-negative, got %v", volatility)
	}
	return &ArithmeticBrownianMotion{initial: initial, drift: drift, volatility: volatility}, nil
}

// X0 returns the initial value of the process.
func (p *ArithmeticBrownianMotion) X0() float64 { return p.initial }

// Expectation returns x0 + mu * dt.
func (p *ArithmeticBrownianMotion) Expectation(t0, x0, dt float64) float64 {
	return x0 + p.drift*dt
}

// Apply shifts x0 by sigma * dx, treating dx as a Wiener increment.
func (p *ArithmeticBrownianMotion) Apply(x0, dx float64) float64 {
	return x0 + p.volatility*dx
}

// Evolve returns the exact normal value after dt driven by the unit normal
// variate dw.
func (p *ArithmeticBrownianMotion) Evolve(t0, x0, dt, dw float64) float64 {
	return p.Apply(p.Expectation(t0, x0, dt), math.Sqrt(dt)*dw)
}
