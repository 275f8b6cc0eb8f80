package instruments

import (
	"math"

	"github.com/bcdannyboy/mcengine/rng"
)

// LookbackParams configures a lookback option. Floating-strike calls pay
// S(T)-min, puts pay max-S(T) (both non-negative by construction).
// Fixed-strike variants pay max(max(S)-K,0) / max(K-min(S),0).
type LookbackParams struct {
	K        float64
	R, T     float64
	Type     OptionType
	Steps    int
	Floating bool
}

// PriceLookback loops n paths of length Steps+1, tracking the running
// min and max, and evaluates the floating- or fixed-strike payoff.
func PriceLookback(st rng.Source, sample PathSampler, p LookbackParams, n int) (price, sampleVariance float64) {
	path := make([]float64, p.Steps+1)
	sum, sumSq := 0.0, 0.0

	for i := 0; i < n; i++ {
		sample(st, path)

		min, max := path[0], path[0]
		for _, v := range path[1:] {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}

		var payoff float64
		sT := path[len(path)-1]
		switch {
		case p.Floating && p.Type == Call:
			payoff = sT - min
		case p.Floating && p.Type == Put:
			payoff = max - sT
		case !p.Floating && p.Type == Call:
			payoff = math.Max(max-p.K, 0)
		default:
			payoff = math.Max(p.K-min, 0)
		}

		sum += payoff
		sumSq += payoff * payoff
	}

	mean := sum / float64(n)
	variance := sumSq/float64(n) - mean*mean
	discount := math.Exp(-p.R * p.T)
	return discount * mean, variance
}
