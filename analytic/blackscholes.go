// Package analytic implements the closed-form reference formulas the
// core routes control-variate expectations and implied-volatility
// inversions through: Black-Scholes, Black-76, Merton's jump-diffusion
// series, Hagan's SABR asymptotic, and the digital/barrier/lookback
// closed forms.
package analytic

import "math"

const (
	maxIterations = 100
	epsilon       = 1e-8
)

// Greeks bundles the standard first- and second-order sensitivities.
type Greeks struct {
	Delta float64
	Gamma float64
	Theta float64
	Vega  float64
	Rho   float64
}

func normCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

func normPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
}

func d1d2(s, k, t, r, sigma float64) (d1, d2 float64) {
	d1 = (math.Log(s/k) + (r+0.5*sigma*sigma)*t) / (sigma * math.Sqrt(t))
	d2 = d1 - sigma*math.Sqrt(t)
	return
}

// BlackScholesCall returns the Black-Scholes price of a European call.
func BlackScholesCall(s, k, t, r, sigma float64) float64 {
	if t <= 0 || sigma <= 0 {
		return math.Max(s-k, 0)
	}
	d1, d2 := d1d2(s, k, t, r, sigma)
	return s*normCDF(d1) - k*math.Exp(-r*t)*normCDF(d2)
}

// BlackScholesPut returns the Black-Scholes price of a European put.
func BlackScholesPut(s, k, t, r, sigma float64) float64 {
	if t <= 0 || sigma <= 0 {
		return math.Max(k-s, 0)
	}
	d1, d2 := d1d2(s, k, t, r, sigma)
	return k*math.Exp(-r*t)*normCDF(-d2) - s*normCDF(-d1)
}

// BlackScholesGreeks returns Delta/Gamma/Theta/Vega/Rho for a call or
// put under Black-Scholes.
func BlackScholesGreeks(s, k, t, r, sigma float64, isCall bool) Greeks {
	if t <= 0 || sigma <= 0 {
		return Greeks{}
	}
	d1, d2 := d1d2(s, k, t, r, sigma)

	gamma := normPDF(d1) / (s * sigma * math.Sqrt(t))
	vega := s * normPDF(d1) * math.Sqrt(t)

	var delta, theta, rho float64
	if isCall {
		delta = normCDF(d1)
		theta = -(s*normPDF(d1)*sigma)/(2*math.Sqrt(t)) - r*k*math.Exp(-r*t)*normCDF(d2)
		rho = k * t * math.Exp(-r*t) * normCDF(d2)
	} else {
		delta = normCDF(d1) - 1
		theta = -(s*normPDF(d1)*sigma)/(2*math.Sqrt(t)) + r*k*math.Exp(-r*t)*normCDF(-d2)
		rho = -k * t * math.Exp(-r*t) * normCDF(-d2)
	}

	return Greeks{Delta: delta, Gamma: gamma, Theta: theta, Vega: vega, Rho: rho}
}

// ImpliedVolatility inverts the Black-Scholes price via Newton-Raphson
// starting from an initial guess of 0.5, matching the reference's
// fixed-guess/maxIterations/epsilon triple. Returns NaN if the
// iteration fails to converge within maxIterations steps.
func ImpliedVolatility(targetPrice, s, k, t, r float64, isCall bool) float64 {
	sigma := 0.5
	for i := 0; i < maxIterations; i++ {
		var price float64
		if isCall {
			price = BlackScholesCall(s, k, t, r, sigma)
		} else {
			price = BlackScholesPut(s, k, t, r, sigma)
		}
		vega := BlackScholesGreeks(s, k, t, r, sigma, isCall).Vega

		diff := price - targetPrice
		if math.Abs(diff) < epsilon {
			return sigma
		}
		if vega == 0 {
			break
		}

		sigma -= diff / vega
		if sigma <= 0 {
			sigma = 0.0001
		}
	}
	return math.NaN()
}
