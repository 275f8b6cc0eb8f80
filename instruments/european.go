package instruments

import (
	"math"

	"github.com/bcdannyboy/mcengine/rng"
)

// TerminalSampler draws one terminal underlying value S(T) (or F(T) for
// forward-based models) from the supplied RNG source. Each model kernel
// in package models is adapted to this shape by a small closure at the
// call site.
type TerminalSampler func(st rng.Source) float64

// PriceEuropean loops n paths, accumulates the vanilla payoff at each
// terminal draw, and returns the discounted mean plus the sample
// variance of the (undiscounted) payoff, used by the variance-reduction
// and reporting layers.
func PriceEuropean(st rng.Source, sample TerminalSampler, k, r, t float64, typ OptionType, n int) (price, sampleVariance float64) {
	sum, sumSq := 0.0, 0.0
	for i := 0; i < n; i++ {
		sT := sample(st)
		payoff := VanillaPayoff(sT, k, typ)
		sum += payoff
		sumSq += payoff * payoff
	}
	mean := sum / float64(n)
	variance := sumSq/float64(n) - mean*mean
	discount := math.Exp(-r * t)
	return discount * mean, variance
}

// PriceEuropeanAntithetic consumes one pair of mirrored draws per
// iteration via rng.Recorder/rng.Mirror: sample is invoked once against
// the underlying *rng.State through a Recorder, then replayed through
// that Recorder's Mirror to produce the antithetic counterpart, so any
// model kernel -- however many normals or uniforms it consumes per path
// -- gets a correct (Z,-Z) antithetic pairing without per-model-specific
// mirroring logic. The reported path count is 2*pairs; sampleVariance is
// the variance of the per-pair average (undiscounted) payoff.
func PriceEuropeanAntithetic(base *rng.State, sample TerminalSampler, k, r, t float64, typ OptionType, pairs int) (price, sampleVariance float64) {
	rec := rng.NewRecorder(base)
	sum, sumSq := 0.0, 0.0
	for i := 0; i < pairs; i++ {
		rec.Reset()
		sPlus := sample(rec)
		sMinus := sample(rec.Mirror())

		pPlus := VanillaPayoff(sPlus, k, typ)
		pMinus := VanillaPayoff(sMinus, k, typ)
		pairMean := 0.5 * (pPlus + pMinus)
		sum += pairMean
		sumSq += pairMean * pairMean
	}
	mean := sum / float64(pairs)
	variance := sumSq/float64(pairs) - mean*mean
	discount := math.Exp(-r * t)
	return discount * mean, variance
}
