package analytic

import "math"

// Black76Call returns the Black-76 price of a European call on a
// forward, ported from original_source's mco_black76_call.
func Black76Call(forward, strike, rate, sigma, t float64) float64 {
	if t <= 0 {
		return math.Max(forward-strike, 0)
	}
	if sigma <= 0 {
		return math.Exp(-rate*t) * math.Max(forward-strike, 0)
	}
	if forward <= 0 || strike <= 0 {
		return 0
	}
	d1, d2 := black76D1D2(forward, strike, sigma, t)
	df := math.Exp(-rate * t)
	return df * (forward*normCDF(d1) - strike*normCDF(d2))
}

// Black76Put returns the Black-76 price of a European put on a forward.
func Black76Put(forward, strike, rate, sigma, t float64) float64 {
	if t <= 0 {
		return math.Max(strike-forward, 0)
	}
	if sigma <= 0 {
		return math.Exp(-rate*t) * math.Max(strike-forward, 0)
	}
	if forward <= 0 || strike <= 0 {
		return 0
	}
	d1, d2 := black76D1D2(forward, strike, sigma, t)
	df := math.Exp(-rate * t)
	return df * (strike*normCDF(-d2) - forward*normCDF(-d1))
}

func black76D1D2(forward, strike, sigma, t float64) (d1, d2 float64) {
	sqrtT := math.Sqrt(t)
	d1 = (math.Log(forward/strike) + 0.5*sigma*sigma*t) / (sigma * sqrtT)
	d2 = d1 - sigma*sqrtT
	return
}

// Black76Greeks returns Delta/Gamma/Theta/Vega/Rho for a forward
// option, grounded on original_source's mco_black76_{delta,gamma,vega,theta}.
func Black76Greeks(forward, strike, rate, sigma, t float64, isCall bool) Greeks {
	df := math.Exp(-rate * t)

	if t <= 0 || sigma <= 0 {
		var delta float64
		if isCall {
			if forward > strike {
				delta = df
			}
		} else if forward < strike {
			delta = -df
		}
		return Greeks{Delta: delta}
	}

	d1, d2 := black76D1D2(forward, strike, sigma, t)
	sqrtT := math.Sqrt(t)

	gamma := df * normPDF(d1) / (forward * sigma * sqrtT)
	vega := df * forward * normPDF(d1) * sqrtT

	term1 := -forward * normPDF(d1) * sigma / (2 * sqrtT)
	var delta, theta, rho float64
	if isCall {
		delta = df * normCDF(d1)
		theta = df * (term1 + rate*forward*normCDF(d1) - rate*strike*normCDF(d2))
		rho = -t * df * (forward*normCDF(d1) - strike*normCDF(d2))
	} else {
		delta = df * (normCDF(d1) - 1)
		theta = df * (term1 - rate*forward*normCDF(-d1) + rate*strike*normCDF(-d2))
		rho = -t * df * (strike*normCDF(-d2) - forward*normCDF(-d1))
	}

	return Greeks{Delta: delta, Gamma: gamma, Theta: theta, Vega: vega, Rho: rho}
}
