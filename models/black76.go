package models

import (
	"math"

	"github.com/bcdannyboy/mcengine/rng"
)

// Black76Params holds forward-price log-normal dynamics with no cost of
// carry: the drift each step is purely the Ito correction, since a
// forward earns no risk-free drift under the T-forward measure.
type Black76Params struct {
	F0, Sigma, T float64
}

// NewBlack76Params constructs the parameter block for a forward F0.
func NewBlack76Params(f0, sigma, t float64) Black76Params {
	return Black76Params{F0: f0, Sigma: sigma, T: t}
}

// Terminal draws F(T) directly; the caller applies exp(-rT) discounting
// to the resulting payoff, not to this kernel's output.
func (p Black76Params) Terminal(z float64) float64 {
	if p.F0 <= 0 {
		return 0
	}
	drift := -0.5 * p.Sigma * p.Sigma * p.T
	return p.F0 * math.Exp(drift+p.Sigma*math.Sqrt(p.T)*z)
}

// TerminalDraw draws a fresh normal from st and returns F(T).
func (p Black76Params) TerminalDraw(st rng.Source) float64 {
	return p.Terminal(st.NextNormal())
}

// SimulatePath advances F(t) step by step with zero cost-of-carry drift.
func (p Black76Params) SimulatePath(st rng.Source, out []float64) {
	steps := len(out) - 1
	if steps <= 0 {
		if len(out) == 1 {
			out[0] = p.F0
		}
		return
	}
	dt := p.T / float64(steps)
	drift := -0.5 * p.Sigma * p.Sigma * dt
	diff := p.Sigma * math.Sqrt(dt)

	out[0] = p.F0
	f := p.F0
	for i := 1; i <= steps; i++ {
		z := st.NextNormal()
		f *= math.Exp(drift + diff*z)
		out[i] = f
	}
}
