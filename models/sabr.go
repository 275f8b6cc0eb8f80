package models

import (
	"math"

	"github.com/bcdannyboy/mcengine/rng"
)

// SABRParams holds the SABR stochastic-volatility parameters for a
// forward F under the CEV exponent beta.
type SABRParams struct {
	F0, Alpha0, Beta, Nu, Rho, T float64

	sqrtOneMinusRhoSq float64
}

const sabrSigmaFloor = 1e-10

// NewSABRParams precomputes the Cholesky correlation constant.
func NewSABRParams(f0, alpha0, beta, nu, rho, t float64) SABRParams {
	return SABRParams{
		F0: f0, Alpha0: alpha0, Beta: beta, Nu: nu, Rho: rho, T: t,
		sqrtOneMinusRhoSq: math.Sqrt(math.Max(0, 1-rho*rho)),
	}
}

// SimulatePath advances (F, alpha) jointly via an Euler scheme with
// absorption at F = 0: once the forward hits zero it stays zero for the
// rest of the path. Volatility alpha is floored at 1e-10 to avoid
// division by zero and negative-power blowup in F^beta.
func (p SABRParams) SimulatePath(st rng.Source, out []float64) {
	steps := len(out) - 1
	if steps <= 0 {
		if len(out) == 1 {
			out[0] = p.F0
		}
		return
	}
	dt := p.T / float64(steps)
	sqrtDt := math.Sqrt(dt)

	out[0] = p.F0
	f, alpha := p.F0, p.Alpha0
	absorbed := f <= 0

	for i := 1; i <= steps; i++ {
		if absorbed {
			out[i] = 0
			continue
		}

		z1 := st.NextNormal()
		z2 := st.NextNormal()
		w2 := p.Rho*z1 + p.sqrtOneMinusRhoSq*z2

		if alpha < sabrSigmaFloor {
			alpha = sabrSigmaFloor
		}

		fBeta := math.Pow(math.Max(f, 0), p.Beta)
		f += alpha * fBeta * sqrtDt * z1
		alpha += p.Nu * alpha * sqrtDt * w2

		if f <= 0 {
			f = 0
			absorbed = true
		}
		out[i] = f
	}
}

// TerminalDraw simulates a full path of the given step count and
// returns F(T).
func (p SABRParams) TerminalDraw(st rng.Source, steps int) float64 {
	out := make([]float64, steps+1)
	p.SimulatePath(st, out)
	return out[steps]
}
