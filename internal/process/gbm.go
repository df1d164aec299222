// Package process provides one-dimensional stochastic process models that
// plug into the path generation machinery. Each model exposes its initial
// value, a conditional expectation over a step, an exact one-step evolution
// driven by a unit normal variate, and the rule applying a Wiener increment
// to a drifted value.
package process

import (
	"fmt"
	"math"
)

// GeometricBrownianMotion models dS = mu*S dt + sigma*S dW, the standard
// lognormal dynamics for prices.
type GeometricBrownianMotion struct {
	initial    float64
	drift      float64
	volatility float64
}

// NewGeometricBrownianMotion creates a geometric Brownian motion with the
// given initial value, drift and volatility. The initial value must be
// strictly positive and the volatility non-negative.
func NewGeometricBrownianMotion(initial, drift, volatility float64) (*GeometricBrownianMotion, error) {
	if initial <= 0 {
		return nil, fmt.Errorf("process: initial value must be positive, got %v", initial)
	}
	if volatility < 0 {
		return nil, fmt.Errorf("process: volatility must be non-negative, got %v", volatility)
	}
	return &GeometricBrownianMotion{initial: initial, drift: drift, volatility: volatility}, nil
}

// X0 returns the initial value of the process.
func (p *GeometricBrownianMotion) X0() float64 { return p.initial }

// Expectation returns the drift leg of the exact lognormal step,
// x0 * exp((mu - sigma^2/2) * dt).
func (p *GeometricBrownianMotion) Expectation(t0, x0, dt float64) float64 {
	return x0 * math.Exp((p.drift-0.5*p.volatility*p.volatility)*dt)
}

// Apply multiplies x0 by exp(sigma * dx), treating dx as a Wiener increment.
func (p *GeometricBrownianMotion) Apply(x0, dx float64) float64 {
	return x0 * math.Exp(p.volatility*dx)
}

// Evolve returns the exact lognormal value after dt driven by the unit
// normal variate dw.
func (p *GeometricBrownianMotion) Evolve(t0, x0, dt, dw float64) float64 {
	return p.Apply(p.Expectation(t0, x0, dt), math.Sqrt(dt)*dw)
}
