package instruments

import (
	"math"

	"github.com/bcdannyboy/mcengine/rng"
)

// PathSampler advances a full path of len(out) values (out[0] = spot at
// t=0) using draws from st. Each model kernel adapts to this shape via
// its own SimulatePath method.
type PathSampler func(st rng.Source, out []float64)

// AsianParams configures an Asian option: fixed strike averages the
// path against K; floating strike averages the path and compares it to
// the terminal value.
type AsianParams struct {
	K            float64
	R, T         float64
	Type         OptionType
	Observations int  // number of averaging observations, path length = Observations+1
	Geometric    bool // arithmetic average if false
	Floating     bool // floating strike if true
}

// PriceAsian loops n paths of length Observations+1, computes the
// arithmetic or geometric average over indices [1, Observations], and
// evaluates the fixed- or floating-strike payoff.
func PriceAsian(st rng.Source, sample PathSampler, p AsianParams, n int) (price, sampleVariance float64) {
	path := make([]float64, p.Observations+1)
	sum, sumSq := 0.0, 0.0

	for i := 0; i < n; i++ {
		sample(st, path)
		avg := average(path, p.Geometric)

		var payoff float64
		if p.Floating {
			sT := path[len(path)-1]
			if p.Type == Call {
				payoff = math.Max(sT-avg, 0)
			} else {
				payoff = math.Max(avg-sT, 0)
			}
		} else {
			payoff = VanillaPayoff(avg, p.K, p.Type)
		}

		sum += payoff
		sumSq += payoff * payoff
	}

	mean := sum / float64(n)
	variance := sumSq/float64(n) - mean*mean
	discount := math.Exp(-p.R * p.T)
	return discount * mean, variance
}

// average computes the arithmetic or geometric mean of path[1:],
// excluding the initial spot at index 0.
func average(path []float64, geometric bool) float64 {
	observations := path[1:]
	if !geometric {
		sum := 0.0
		for _, v := range observations {
			sum += v
		}
		return sum / float64(len(observations))
	}

	sumLog := 0.0
	for _, v := range observations {
		sumLog += math.Log(v)
	}
	return math.Exp(sumLog / float64(len(observations)))
}

// GeometricAsianClosedForm returns the closed-form price of a
// fixed-strike geometric-average Asian call/put under GBM, used both as
// a standalone reference and as the control-variate expectation E[Z]
// for arithmetic-Asian pricing (property 11 and the control-variate
// pairing in package variance).
func GeometricAsianClosedForm(s0, k, r, sigma, t float64, observations int, typ OptionType) float64 {
	n := float64(observations)
	// Adjusted volatility and drift for the geometric average of n
	// equally spaced observations under GBM.
	sigmaG := sigma * math.Sqrt((n+1)*(2*n+1)/(6*n*n))
	muG := (r-0.5*sigma*sigma)*(n+1)/(2*n) + 0.5*sigmaG*sigmaG

	d1 := (math.Log(s0/k) + (muG+0.5*sigmaG*sigmaG)*t) / (sigmaG * math.Sqrt(t))
	d2 := d1 - sigmaG*math.Sqrt(t)

	discount := math.Exp(-r * t)
	driftAdj := math.Exp(muG*t) * s0

	if typ == Call {
		return discount * (driftAdj*normCDF(d1) - k*normCDF(d2))
	}
	return discount * (k*normCDF(-d2) - driftAdj*normCDF(-d1))
}

func normCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}
