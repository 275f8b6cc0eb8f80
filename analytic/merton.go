package analytic

import "math"

// MertonSeries prices a European call under Merton jump-diffusion by
// the closed-form Poisson-weighted sum of Black-Scholes terms, ported
// from original_source's mco_merton_call: lambda is the jump intensity,
// muJ/sigmaJ the mean and standard deviation of the log-jump size. Put
// prices are recovered via put-call parity, matching mco_merton_put.
func MertonSeries(s, k, t, r, sigma, lambda, muJ, sigmaJ float64, isCall bool) float64 {
	if s <= 0 || k <= 0 || t <= 0 {
		if isCall {
			return math.Max(s-k, 0)
		}
		return math.Max(k-s, 0)
	}

	call := mertonCall(s, k, t, r, sigma, lambda, muJ, sigmaJ)
	if isCall {
		return call
	}
	return call - s + k*math.Exp(-r*t)
}

func mertonCall(s, k, t, r, sigma, lambda, muJ, sigmaJ float64) float64 {
	kJump := math.Exp(muJ+0.5*sigmaJ*sigmaJ) - 1
	lambdaPrime := lambda * (1 + kJump)

	price := 0.0
	weight := math.Exp(-lambdaPrime * t)

	const maxTerms = 50
	for n := 0; n < maxTerms; n++ {
		if n > 0 {
			weight *= (lambdaPrime * t) / float64(n)
		}

		rN := r - lambda*kJump + float64(n)*math.Log(1+kJump)/t
		sigmaN := math.Sqrt(sigma*sigma + float64(n)*sigmaJ*sigmaJ/t)

		price += weight * BlackScholesCall(s, k, t, rN, sigmaN)

		if weight < 1e-15 && n > 10 {
			break
		}
	}

	return price
}
