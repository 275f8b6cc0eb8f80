package instruments

import (
	"math"

	"github.com/bcdannyboy/mcengine/rng"
)

// BarrierDirection is the four-valued barrier style.
type BarrierDirection int

const (
	DownIn BarrierDirection = iota
	DownOut
	UpIn
	UpOut
)

// BarrierParams configures a discretely monitored barrier option under
// GBM dynamics, corrected toward continuous-time monitoring via a
// Brownian-bridge hit probability between path vertices.
type BarrierParams struct {
	S0, K, H, Rebate float64
	R, Sigma, T      float64
	Steps            int
	Type             OptionType
	Direction        BarrierDirection
}

func isDown(d BarrierDirection) bool {
	return d == DownIn || d == DownOut
}

func isKnockIn(d BarrierDirection) bool {
	return d == DownIn || d == UpIn
}

// segmentHitProbability returns the Brownian-bridge probability that a
// GBM path between s1 and s2 (over an interval of length dt at
// volatility sigma) crosses barrier h during the interval, given that
// neither endpoint alone violates the barrier.
func segmentHitProbability(s1, s2, h, sigma, dt float64, down bool) float64 {
	if sigma <= 0 || dt <= 0 {
		return 0
	}
	// The bridge-crossing probability has the same closed form for both
	// directions: log(s1/h)*log(s2/h) is positive whenever both
	// endpoints are on the same (safe) side of the barrier, whether
	// that side is above (up barrier) or below (down barrier).
	logRatio1 := math.Log(s1 / h)
	logRatio2 := math.Log(s2 / h)
	return math.Exp(-2 * logRatio1 * logRatio2 / (sigma * sigma * dt))
}

func violates(s, h float64, down bool) bool {
	if down {
		return s <= h
	}
	return s >= h
}

// simulateBarrierPath draws one full GBM path against p from st, always
// consuming exactly one normal and one bridge uniform per step
// regardless of when (or whether) the barrier is touched -- the barrier
// check itself is skipped once hit, but the draws that feed it are not,
// so the draw sequence is independent of the realized path. That
// independence is what makes PriceBarrierAntithetic's rng.Mirror replay
// safe: a variable-length draw trace would desynchronize the mirrored
// leg's replay position from the recorded leg's.
func simulateBarrierPath(st rng.Source, p BarrierParams) (terminal float64, hit bool) {
	dt := p.T / float64(p.Steps)
	drift := (p.R - 0.5*p.Sigma*p.Sigma) * dt
	diff := p.Sigma * math.Sqrt(dt)
	down := isDown(p.Direction)

	s := p.S0
	hit = violates(s, p.H, down)

	for step := 0; step < p.Steps; step++ {
		z := st.NextNormal()
		sNext := s * math.Exp(drift+diff*z)
		u := st.NextUniform()

		if !hit {
			if violates(sNext, p.H, down) {
				hit = true
			} else {
				prob := segmentHitProbability(s, sNext, p.H, p.Sigma, dt, down)
				if u < prob {
					hit = true
				}
			}
		}
		s = sNext
	}
	return s, hit
}

func barrierPayoff(terminal float64, hit bool, p BarrierParams) float64 {
	vanilla := VanillaPayoff(terminal, p.K, p.Type)
	if isKnockIn(p.Direction) {
		if hit {
			return vanilla
		}
		return 0
	}
	if hit {
		return p.Rebate
	}
	return vanilla
}

// PriceBarrier simulates n GBM paths step by step, checking each segment
// against the barrier both at its endpoints and via a single
// Brownian-bridge uniform draw per segment (drawn from the same RNG
// stream as the path, immediately after the segment's second endpoint is
// generated, preserving determinism).
func PriceBarrier(st rng.Source, p BarrierParams, n int) (price, sampleVariance float64) {
	sum, sumSq := 0.0, 0.0

	for i := 0; i < n; i++ {
		terminal, hit := simulateBarrierPath(st, p)
		payoff := barrierPayoff(terminal, hit, p)
		sum += payoff
		sumSq += payoff * payoff
	}

	mean := sum / float64(n)
	variance := sumSq/float64(n) - mean*mean
	discount := math.Exp(-p.R * p.T)
	return discount * mean, variance
}

// PriceBarrierAntithetic prices mirrored path pairs via
// rng.Recorder/Mirror, reporting the mean of each pair like
// PriceEuropeanAntithetic. Safe against Mirror desynchronization because
// simulateBarrierPath's draw count is fixed at 2*p.Steps regardless of
// path outcome.
func PriceBarrierAntithetic(base *rng.State, p BarrierParams, pairs int) (price, sampleVariance float64) {
	rec := rng.NewRecorder(base)
	sum, sumSq := 0.0, 0.0
	for i := 0; i < pairs; i++ {
		rec.Reset()
		tPlus, hitPlus := simulateBarrierPath(rec, p)
		tMinus, hitMinus := simulateBarrierPath(rec.Mirror(), p)

		pPlus := barrierPayoff(tPlus, hitPlus, p)
		pMinus := barrierPayoff(tMinus, hitMinus, p)
		pairMean := 0.5 * (pPlus + pMinus)
		sum += pairMean
		sumSq += pairMean * pairMean
	}
	mean := sum / float64(pairs)
	variance := sumSq/float64(pairs) - mean*mean
	discount := math.Exp(-p.R * p.T)
	return discount * mean, variance
}
