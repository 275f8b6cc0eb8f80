// Package instruments implements the path-dependent and terminal payoff
// evaluators: European, Asian, Barrier, Lookback, and Digital pricers
// driven by the model kernels in package models.
package instruments

import "math"

// OptionType discriminates calls from puts, matching the reference
// engine's call=0/put=1 encoding.
type OptionType int

const (
	Call OptionType = iota
	Put
)

// VanillaPayoff returns max(S-K, 0) for a call or max(K-S, 0) for a put.
func VanillaPayoff(s, k float64, t OptionType) float64 {
	if t == Call {
		return math.Max(s-k, 0)
	}
	return math.Max(k-s, 0)
}

// Params bundles the scalar inputs shared by every terminal pricer in
// this package.
type Params struct {
	S0, K, R, Sigma, T float64
	Type               OptionType
}

// Valid reports whether p meets the numeric preconditions S0>0, K>0,
// sigma>=0, T>=0. No pricer in this package calls it.
func (p Params) Valid() bool {
	return p.S0 > 0 && p.K > 0 && p.Sigma >= 0 && p.T >= 0
}
