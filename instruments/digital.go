package instruments

import (
	"math"

	"github.com/bcdannyboy/mcengine/rng"
)

// DigitalParams configures a digital (binary) option: cash-or-nothing
// pays Q on the winning side, asset-or-nothing pays S(T).
type DigitalParams struct {
	K, Q, R, T float64
	Type       OptionType
	CashOrNothing bool
}

// PriceDigital loops n terminal draws and evaluates the indicator
// payoff.
func PriceDigital(st rng.Source, sample TerminalSampler, p DigitalParams, n int) (price, sampleVariance float64) {
	sum, sumSq := 0.0, 0.0

	for i := 0; i < n; i++ {
		sT := sample(st)

		var hit bool
		if p.Type == Call {
			hit = sT > p.K
		} else {
			hit = sT < p.K
		}

		var payoff float64
		if hit {
			if p.CashOrNothing {
				payoff = p.Q
			} else {
				payoff = sT
			}
		}

		sum += payoff
		sumSq += payoff * payoff
	}

	mean := sum / float64(n)
	variance := sumSq/float64(n) - mean*mean
	discount := math.Exp(-p.R * p.T)
	return discount * mean, variance
}
