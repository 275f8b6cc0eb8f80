package models

import (
	"math"

	"github.com/bcdannyboy/mcengine/rng"
)

// MertonParams holds the Merton (1976) jump-diffusion parameters: a
// diffusive component plus compound-Poisson log-normal jumps.
type MertonParams struct {
	S0, R, Sigma, T   float64
	Lambda            float64 // jump intensity
	MuJ, SigmaJ       float64 // jump log-return mean and std dev

	kappa float64 // E[e^J]-1, the mean jump-size compensator
}

// NewMertonParams precomputes the jump-size compensator kappa.
func NewMertonParams(s0, r, sigma, t, lambda, muJ, sigmaJ float64) MertonParams {
	return MertonParams{
		S0: s0, R: r, Sigma: sigma, T: t,
		Lambda: lambda, MuJ: muJ, SigmaJ: sigmaJ,
		kappa: math.Exp(muJ+0.5*sigmaJ*sigmaJ) - 1,
	}
}

// poissonCount draws a Poisson count with mean lambdaDt. For lambdaDt <
// 0.1 it uses a Bernoulli approximation (at most one jump); otherwise it
// uses an inverse-transform loop on a product of uniforms, allowing
// multiple jumps in a single step.
func poissonCount(st rng.Source, lambdaDt float64) int {
	if lambdaDt < 0.1 {
		if st.NextUniform() < lambdaDt {
			return 1
		}
		return 0
	}

	l := math.Exp(-lambdaDt)
	k := 0
	p := 1.0
	for {
		p *= st.NextUniform()
		if p <= l {
			break
		}
		k++
	}
	return k
}

// SimulatePath advances S(t) step by step, drawing one diffusive normal
// and a Poisson jump count per step.
func (p MertonParams) SimulatePath(st rng.Source, out []float64) {
	steps := len(out) - 1
	if steps <= 0 {
		if len(out) == 1 {
			out[0] = p.S0
		}
		return
	}
	dt := p.T / float64(steps)
	drift := (p.R - p.Lambda*p.kappa - 0.5*p.Sigma*p.Sigma) * dt
	diff := p.Sigma * math.Sqrt(dt)
	lambdaDt := p.Lambda * dt

	out[0] = p.S0
	s := p.S0
	for i := 1; i <= steps; i++ {
		z := st.NextNormal()
		jumpLogReturn := 0.0
		n := poissonCount(st, lambdaDt)
		for j := 0; j < n; j++ {
			jumpLogReturn += p.MuJ + p.SigmaJ*st.NextNormal()
		}
		s *= math.Exp(drift + diff*z + jumpLogReturn)
		out[i] = s
	}
}

// TerminalDraw returns S(T) by allocating a path of steps+1 points and
// running SimulatePath over it, so its per-step jump behavior is the
// same as a stepped path's.
func (p MertonParams) TerminalDraw(st rng.Source, steps int) float64 {
	out := make([]float64, steps+1)
	p.SimulatePath(st, out)
	return out[steps]
}
