package calibrate

import (
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/bcdannyboy/mcengine/analytic"
)

// VolQuote is one SABR calibration target: an implied volatility
// observed at Strike for a forward expiring at Maturity.
type VolQuote struct {
	Strike     float64
	Maturity   float64
	ImpliedVol float64
}

// SABRResult holds a fitted parameter set and the achieved mean-squared
// implied-volatility error.
type SABRResult struct {
	Alpha, Beta, Rho, Nu float64
	MSE                  float64
}

// CalibrateSABR fits (alpha, rho, nu) to a slice of implied-volatility
// quotes at a fixed forward via Nelder-Mead on the Hagan asymptotic
// formula, holding beta fixed (the usual practitioner convention, since
// beta and rho trade off against each other if both float). This uses
// the closed-form analytic collaborator rather than Monte Carlo, since
// fitting a volatility smile from analytic quotes has no need for path
// simulation.
func CalibrateSABR(quotes []VolQuote, forward, beta float64, initialAlpha, initialRho, initialNu float64) (SABRResult, error) {
	return CalibrateSABRWithSeed(quotes, forward, beta, initialAlpha, initialRho, initialNu, 0)
}

// CalibrateSABRWithSeed behaves like CalibrateSABR but takes an explicit
// seed for the multi-start restart jitter, for callers that need
// reproducible calibration runs.
func CalibrateSABRWithSeed(quotes []VolQuote, forward, beta float64, initialAlpha, initialRho, initialNu float64, seed uint64) (SABRResult, error) {
	objective := func(x []float64) float64 {
		alpha, rho, nu := x[0], x[1], x[2]
		if alpha <= 0 || rho <= -0.999 || rho >= 0.999 || nu <= 0 {
			return math.Inf(1)
		}

		mse := 0.0
		for _, q := range quotes {
			iv := analytic.HaganSABRImpliedVol(forward, q.Strike, q.Maturity, alpha, beta, rho, nu)
			diff := iv - q.ImpliedVol
			mse += diff * diff
		}
		return mse / float64(len(quotes))
	}

	problem := optimize.Problem{Func: objective}
	x0 := []float64{initialAlpha, initialRho, initialNu}
	starts := perturbedStarts(x0, defaultRestarts, seed)

	result, err := bestOf(problem, starts)
	if err != nil {
		return SABRResult{}, err
	}

	return SABRResult{
		Alpha: result.X[0],
		Beta:  beta,
		Rho:   result.X[1],
		Nu:    result.X[2],
		MSE:   result.F,
	}, nil
}
