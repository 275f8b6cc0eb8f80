package models

import (
	"math"

	"github.com/bcdannyboy/mcengine/rng"
)

// HestonScheme selects the discretization used to advance the variance
// process one step.
type HestonScheme int

const (
	// SchemeFullTruncationEuler is the default: negative variance is
	// truncated to zero for the diffusion term only, the drift term
	// keeps the untruncated value.
	SchemeFullTruncationEuler HestonScheme = iota
	// SchemeQuadraticExponential is the Andersen (2008) QE scheme.
	SchemeQuadraticExponential
)

// HestonParams holds the Heston stochastic-volatility parameters.
type HestonParams struct {
	S0, R, T                  float64
	V0, Kappa, Theta, Xi, Rho float64
	Scheme                    HestonScheme

	sqrtOneMinusRhoSq float64
}

// NewHestonParams precomputes the Cholesky correlation constant.
func NewHestonParams(s0, r, t, v0, kappa, theta, xi, rho float64, scheme HestonScheme) HestonParams {
	return HestonParams{
		S0: s0, R: r, T: t,
		V0: v0, Kappa: kappa, Theta: theta, Xi: xi, Rho: rho,
		Scheme:            scheme,
		sqrtOneMinusRhoSq: math.Sqrt(math.Max(0, 1-rho*rho)),
	}
}

// FellerSatisfied reports whether 2*kappa*theta > xi^2, the condition
// under which the CIR variance process stays strictly positive almost
// surely. Violating it is not an error; it biases the Euler scheme.
func (p HestonParams) FellerSatisfied() bool {
	return 2*p.Kappa*p.Theta > p.Xi*p.Xi
}

// correlatedNormals draws two correlated standard normals via Cholesky:
// w1 = z1, w2 = rho*z1 + sqrt(1-rho^2)*z2.
func (p HestonParams) correlatedNormals(st rng.Source) (w1, w2 float64) {
	z1 := st.NextNormal()
	z2 := st.NextNormal()
	return z1, p.Rho*z1 + p.sqrtOneMinusRhoSq*z2
}

// SimulatePath advances (S, v) jointly, writing spot values into out
// (out[0] = S0). The variance path itself is not retained.
func (p HestonParams) SimulatePath(st rng.Source, out []float64) {
	steps := len(out) - 1
	if steps <= 0 {
		if len(out) == 1 {
			out[0] = p.S0
		}
		return
	}
	dt := p.T / float64(steps)
	out[0] = p.S0
	s, v := p.S0, p.V0

	for i := 1; i <= steps; i++ {
		switch p.Scheme {
		case SchemeQuadraticExponential:
			s, v = p.stepQE(st, s, v, dt)
		default:
			s, v = p.stepEuler(st, s, v, dt)
		}
		out[i] = s
	}
}

// TerminalDraw simulates a full path of the given step count and
// returns S(T), for callers that only need the terminal value.
func (p HestonParams) TerminalDraw(st rng.Source, steps int) float64 {
	out := make([]float64, steps+1)
	p.SimulatePath(st, out)
	return out[steps]
}

// stepEuler advances one full-truncation Euler step. The drift of the
// variance SDE uses the untruncated v; the diffusion of both S and v use
// v+ = max(v, 0).
func (p HestonParams) stepEuler(st rng.Source, s, v, dt float64) (float64, float64) {
	w1, w2 := p.correlatedNormals(st)
	vPlus := math.Max(v, 0)
	sqrtVPlus := math.Sqrt(vPlus)
	sqrtDt := math.Sqrt(dt)

	sNext := s * math.Exp((p.R-0.5*vPlus)*dt+sqrtVPlus*sqrtDt*w1)
	vNext := v + p.Kappa*(p.Theta-v)*dt + p.Xi*sqrtVPlus*sqrtDt*w2

	return sNext, vNext
}

// stepQE advances one Andersen (2008) quadratic-exponential step.
func (p HestonParams) stepQE(st rng.Source, s, v, dt float64) (float64, float64) {
	expKappaDt := math.Exp(-p.Kappa * dt)
	m := p.Theta + (v-p.Theta)*expKappaDt
	s2 := v*p.Xi*p.Xi*expKappaDt*(1-expKappaDt)/p.Kappa +
		p.Theta*p.Xi*p.Xi*(1-expKappaDt)*(1-expKappaDt)/(2*p.Kappa)

	psi := s2 / (m * m)

	var vNext float64
	if psi <= 1.5 {
		invPsi := 1.0 / psi
		b2 := 2*invPsi - 1 + math.Sqrt(2*invPsi)*math.Sqrt(2*invPsi-1)
		a := m / (1 + b2)
		z := st.NextNormal()
		b := math.Sqrt(b2)
		vNext = a * (b + z) * (b + z)
	} else {
		pAtom := (psi - 1) / (psi + 1)
		beta := (1 - pAtom) / m
		u := st.NextUniform()
		if u <= pAtom {
			vNext = 0
		} else {
			vNext = math.Log((1-pAtom)/(1-u)) / beta
		}
	}

	// Trapezoidal integrated-variance approximation with the rho/xi
	// correction term, gamma1 = gamma2 = 0.5.
	const gamma1, gamma2 = 0.5, 0.5
	z2 := st.NextNormal()
	kappaTerm := -p.Kappa*p.Theta*dt + p.Kappa*gamma1*v*dt + p.Kappa*gamma2*vNext*dt
	meanVarTerm := gamma1*v + gamma2*vNext

	logDrift := p.R*dt - 0.5*meanVarTerm*dt + (p.Rho/p.Xi)*(vNext-v+kappaTerm)
	diffVar := math.Max(0, (1-p.Rho*p.Rho)*meanVarTerm*dt)

	sNext := s * math.Exp(logDrift+math.Sqrt(diffVar)*z2)

	return sNext, vNext
}
