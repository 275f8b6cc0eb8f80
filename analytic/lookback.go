package analytic

import "math"

// LookbackAnalytic returns the Goldman-Sosin-Gatto closed-form price of
// a continuously-monitored floating-strike lookback option, assuming
// the running extremum coincides with spot at inception (Smin = S0 for
// a call, Smax = S0 for a put). Re-derived from the published formula
// (Hull, Options Futures and Other Derivatives) rather than ported from
// original_source's lookback.c: see DESIGN.md's Open Question
// resolution for why. rate values within 1e-8 of zero are floored to
// avoid the formula's removable singularity at r=0.
func LookbackAnalytic(spot, rate, vol, t float64, isCall bool) float64 {
	if t <= 0 || vol <= 0 {
		return 0
	}
	r := rate
	if math.Abs(r) < 1e-8 {
		if r >= 0 {
			r = 1e-8
		} else {
			r = -1e-8
		}
	}

	sqrtT := math.Sqrt(t)
	sigma2Over2r := vol * vol / (2 * r)

	if isCall {
		a1 := ((r + 0.5*vol*vol) * sqrtT) / vol
		a2 := a1 - vol*sqrtT
		a3 := a1 - (2*r/vol)*sqrtT

		return spot*normCDF(a1) - spot*sigma2Over2r*normCDF(-a1) -
			spot*math.Exp(-r*t)*(normCDF(a2)-sigma2Over2r*normCDF(-a3))
	}

	b1 := ((-r + 0.5*vol*vol) * sqrtT) / vol
	b2 := b1 - vol*sqrtT
	b3 := ((r - 0.5*vol*vol) * sqrtT) / vol

	return spot*math.Exp(-r*t)*(normCDF(b1)-sigma2Over2r*normCDF(-b3)) +
		spot*sigma2Over2r*normCDF(-b2) - spot*normCDF(b2)
}

// LookbackFixedAnalytic returns the closed-form price of a
// continuously-monitored fixed-strike lookback option whose running
// extremum starts at spot. For a call with strike <= spot (a put with
// strike >= spot) the payoff is always max(S) - K (K - min(S)), so the
// price is the floating-strike put plus spot minus the discounted strike
// (the floating-strike call plus the discounted strike minus spot).
func LookbackFixedAnalytic(spot, strike, rate, vol, t float64, isCall bool) float64 {
	if t <= 0 || vol <= 0 {
		if isCall {
			return math.Max(spot-strike, 0)
		}
		return math.Max(strike-spot, 0)
	}
	if isCall && strike <= spot {
		return LookbackAnalytic(spot, rate, vol, t, false) + spot - strike*math.Exp(-rate*t)
	}
	if !isCall && strike >= spot {
		return LookbackAnalytic(spot, rate, vol, t, true) + strike*math.Exp(-rate*t) - spot
	}
	if isCall {
		return LookbackAnalytic(spot, rate, vol, t, true)
	}
	return LookbackAnalytic(spot, rate, vol, t, false)
}
