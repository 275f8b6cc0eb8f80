package models

import (
	"math"

	"github.com/bcdannyboy/mcengine/rng"
)

// GBMParams holds the geometric Brownian motion parameters plus the
// precomputed constants its step function needs, so the hot loop performs
// only adds, multiplies, and one exponential per step.
type GBMParams struct {
	S0, R, Sigma, T float64

	driftT   float64 // (r - 0.5*sigma^2) * T, for the terminal-only shape
	sigmaSqT float64 // sigma * sqrt(T)
}

// NewGBMParams precomputes the constants used by both the terminal and
// stepped GBM shapes.
func NewGBMParams(s0, r, sigma, t float64) GBMParams {
	return GBMParams{
		S0: s0, R: r, Sigma: sigma, T: t,
		driftT:   (r - 0.5*sigma*sigma) * t,
		sigmaSqT: sigma * math.Sqrt(t),
	}
}

// Terminal draws S(T) directly from a single normal, using the closed-form
// drift available under GBM.
func (p GBMParams) Terminal(z float64) float64 {
	if p.S0 <= 0 {
		return 0
	}
	return p.S0 * math.Exp(p.driftT+p.sigmaSqT*z)
}

// TerminalDraw draws a fresh normal from st and returns S(T).
func (p GBMParams) TerminalDraw(st rng.Source) float64 {
	return p.Terminal(st.NextNormal())
}

// SimulatePath advances S(t) step by step, writing step+1 values into out
// (out[0] = S0), drawing one normal per step from st.
func (p GBMParams) SimulatePath(st rng.Source, out []float64) {
	steps := len(out) - 1
	if steps <= 0 {
		if len(out) == 1 {
			out[0] = p.S0
		}
		return
	}
	dt := p.T / float64(steps)
	drift := (p.R - 0.5*p.Sigma*p.Sigma) * dt
	diff := p.Sigma * math.Sqrt(dt)

	out[0] = p.S0
	s := p.S0
	for i := 1; i <= steps; i++ {
		z := st.NextNormal()
		s *= math.Exp(drift + diff*z)
		out[i] = s
	}
}
