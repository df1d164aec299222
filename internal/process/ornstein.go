package process

import (
	"fmt"
	"math"
)

// OrnsteinUhlenbeck models dX = kappa*(theta - X) dt + sigma dW, a
// mean-reverting process pulled toward the level theta at speed kappa.
type OrnsteinUhlenbeck struct {
	initial    float64
	speed      float64
	level      float64
	volatility float64
}

// NewOrnsteinUhlenbeck creates an Ornstein-Uhlenbeck process with the given
// initial value, reversion speed, reversion level and volatility. Speed and
// volatility must be non-negative.
func NewOrnsteinUhlenbeck(initial, speed, level, volatility float64) (*OrnsteinUhlenbeck, error) {
	if speed < 0 {
		return nil, fmt.Errorf("process: reversion speed must be non-negative, got %v", speed)
	}
	if volatility < 0 {
		return nil, fmt.Errorf("process: volatility must be non-negative, got %v", volatility)
	}
	return &OrnsteinUhlenbeck{initial: initial, speed: speed, level: level, volatility: volatility}, nil
}

// X0 returns the initial value of the process.
func (p *OrnsteinUhlenbeck) X0() float64 { return p.initial }

// Expectation returns the exact conditional mean,
// theta + (x0 - theta) * exp(-kappa * dt).
func (p *OrnsteinUhlenbeck) Expectation(t0, x0, dt float64) float64 {
	return p.level + (x0-p.level)*math.Exp(-p.speed*dt)
}

// Apply shifts x0 by sigma * dx, treating dx as a Wiener increment. Paths
// built from Wiener increments therefore carry the Euler diffusion term,
// while Evolve uses the exact conditional standard deviation.
func (p *OrnsteinUhlenbeck) Apply(x0, dx float64) float64 {
	return x0 + p.volatility*dx
}

// Evolve returns the exact transition value after dt driven by the unit
// normal variate dw.
func (p *OrnsteinUhlenbeck) Evolve(t0, x0, dt, dw float64) float64 {
	return p.Apply(p.Expectation(t0, x0, dt), p.stdScale(dt)*dw)
}

// stdScale returns the exact conditional standard deviation of the unit
// volatility transition, sqrt((1 - exp(-2*kappa*dt)) / (2*kappa)), falling
// back to sqrt(dt) as kappa approaches zero.
func (p *OrnsteinUhlenbeck) stdScale(dt float64) float64 {
	if p.speed < 1e-10 {
		return math.Sqrt(dt)
	}
	return math.Sqrt((1 - math.Exp(-2*p.speed*dt)) / (2 * p.speed))
}
