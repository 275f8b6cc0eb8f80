package instruments

import (
	"math"
	"testing"

	"github.com/bcdannyboy/mcengine/models"
	"github.com/bcdannyboy/mcengine/rng"
)

func TestVanillaPayoff(t *testing.T) {
	cases := []struct {
		s, k float64
		typ  OptionType
		want float64
	}{
		{110, 100, Call, 10},
		{90, 100, Call, 0},
		{90, 100, Put, 10},
		{110, 100, Put, 0},
	}
	for _, c := range cases {
		if got := VanillaPayoff(c.s, c.k, c.typ); got != c.want {
			t.Errorf("VanillaPayoff(%v,%v,%v) = %v, want %v", c.s, c.k, c.typ, got, c.want)
		}
	}
}

func TestParamsValid(t *testing.T) {
	if !(Params{S0: 100, K: 100, Sigma: 0.2, T: 1}).Valid() {
		t.Error("expected valid params to report valid")
	}
	if (Params{S0: 0, K: 100, Sigma: 0.2, T: 1}).Valid() {
		t.Error("expected S0<=0 to be invalid")
	}
	if (Params{S0: 100, K: 100, Sigma: -0.1, T: 1}).Valid() {
		t.Error("expected negative sigma to be invalid")
	}
}

func TestPriceEuropeanMatchesBlackScholesApprox(t *testing.T) {
	s0, k, r, sigma, tt := 100.0, 100.0, 0.05, 0.2, 1.0
	p := models.NewGBMParams(s0, r, sigma, tt)
	st := rng.Seed(7)

	price, _ := PriceEuropean(&st, p.TerminalDraw, k, r, tt, Call, 200000)

	// closed-form Black-Scholes call for the same parameters.
	d1 := (math.Log(s0/k) + (r+0.5*sigma*sigma)*tt) / (sigma * math.Sqrt(tt))
	d2 := d1 - sigma*math.Sqrt(tt)
	bs := s0*normCDF(d1) - k*math.Exp(-r*tt)*normCDF(d2)

	if math.Abs(price-bs) > 0.2 {
		t.Errorf("MC price %v too far from Black-Scholes %v", price, bs)
	}
}

func TestPriceEuropeanAntitheticReducesVariance(t *testing.T) {
	s0, k, r, sigma, tt := 100.0, 100.0, 0.05, 0.3, 1.0
	p := models.NewGBMParams(s0, r, sigma, tt)

	plain := rng.Seed(11)
	_, plainVar := PriceEuropean(&plain, p.TerminalDraw, k, r, tt, Call, 20000)

	anti := rng.Seed(11)
	_, antiVar := PriceEuropeanAntithetic(&anti, p.TerminalDraw, k, r, tt, Call, 10000)

	if antiVar >= plainVar {
		t.Errorf("antithetic variance %v not lower than plain variance %v", antiVar, plainVar)
	}
}

func TestPriceEuropeanAntitheticPathCount(t *testing.T) {
	p := models.NewGBMParams(100, 0.05, 0.2, 1)
	st := rng.Seed(3)
	// Verify the reported mean is stable and finite; the pairing itself
	// is exercised by the variance-reduction test above.
	price, variance := PriceEuropeanAntithetic(&st, p.TerminalDraw, 100, 0.05, 1, Call, 5000)
	if math.IsNaN(price) || math.IsInf(price, 0) {
		t.Fatalf("price is not finite: %v", price)
	}
	if variance < 0 {
		t.Errorf("variance must be non-negative, got %v", variance)
	}
}

func TestPriceAsianFixedStrikeArithmetic(t *testing.T) {
	p := models.NewGBMParams(100, 0.05, 0.2, 1)
	st := rng.Seed(5)
	params := AsianParams{K: 100, R: 0.05, T: 1, Type: Call, Observations: 12}

	price, _ := PriceAsian(&st, p.SimulatePath, params, 50000)
	if price <= 0 || math.IsNaN(price) {
		t.Fatalf("expected positive finite Asian price, got %v", price)
	}

	// Averaging strictly reduces the effective volatility of the
	// underlying relative to the terminal spot, so a fixed-strike
	// at-the-money arithmetic Asian call must price below the
	// corresponding vanilla European call.
	stEuro := rng.Seed(5)
	euroPrice, _ := PriceEuropean(&stEuro, p.TerminalDraw, 100, 0.05, 1, Call, 50000)
	if price >= euroPrice+0.5 {
		t.Errorf("Asian price %v should be below vanilla price %v (plus MC slack)", price, euroPrice)
	}
}

func TestGeometricAsianClosedFormCallAndPutPlausible(t *testing.T) {
	s0, k, r, sigma, tt := 100.0, 100.0, 0.03, 0.25, 1.0
	n := 12

	call := GeometricAsianClosedForm(s0, k, r, sigma, tt, n, Call)
	put := GeometricAsianClosedForm(s0, k, r, sigma, tt, n, Put)

	if call <= 0 || put <= 0 {
		t.Fatalf("expected both call and put to be positive, got call=%v put=%v", call, put)
	}
	// At the money, call and put should be reasonably close given the
	// small drift adjustment from averaging; this simply guards against
	// a wildly broken formula rather than exact parity.
	if math.Abs(call-put) > 10 {
		t.Errorf("call %v and put %v are implausibly far apart at the money", call, put)
	}
}

func TestPriceLookbackFloatingIsNonNegative(t *testing.T) {
	p := models.NewGBMParams(100, 0.05, 0.2, 1)
	st := rng.Seed(9)
	params := LookbackParams{R: 0.05, T: 1, Type: Call, Steps: 50, Floating: true}

	price, _ := PriceLookback(&st, p.SimulatePath, params, 20000)
	if price < 0 {
		t.Errorf("floating-strike lookback call price must be non-negative, got %v", price)
	}
}

func TestPriceLookbackFixedCallDominatesVanilla(t *testing.T) {
	p := models.NewGBMParams(100, 0.05, 0.2, 1)
	stLook := rng.Seed(13)
	lookParams := LookbackParams{K: 100, R: 0.05, T: 1, Type: Call, Steps: 50, Floating: false}
	lookPrice, _ := PriceLookback(&stLook, p.SimulatePath, lookParams, 20000)

	stEuro := rng.Seed(13)
	euroPrice, _ := PriceEuropean(&stEuro, p.TerminalDraw, 100, 0.05, 1, Call, 20000)

	// A fixed-strike lookback call pays off on the path maximum, which
	// dominates the terminal spot pathwise, so it must price at or
	// above the corresponding vanilla call.
	if lookPrice < euroPrice-0.5 {
		t.Errorf("fixed-strike lookback price %v should not be far below vanilla price %v", lookPrice, euroPrice)
	}
}

func TestPriceDigitalCashOrNothing(t *testing.T) {
	p := models.NewGBMParams(100, 0.05, 0.2, 1)
	st := rng.Seed(17)
	params := DigitalParams{K: 100, Q: 1, R: 0.05, T: 1, Type: Call, CashOrNothing: true}

	price, _ := PriceDigital(&st, p.TerminalDraw, params, 50000)
	discount := math.Exp(-0.05 * 1)
	if price < 0 || price > discount {
		t.Errorf("cash-or-nothing digital price %v out of [0, %v]", price, discount)
	}
}

func TestPriceBarrierDownAndOutBelowVanilla(t *testing.T) {
	s0, k, h, r, sigma, tt := 100.0, 100.0, 80.0, 0.05, 0.2, 1.0
	st := rng.Seed(19)
	params := BarrierParams{
		S0: s0, K: k, H: h, R: r, Sigma: sigma, T: tt,
		Steps: 50, Type: Call, Direction: DownOut,
	}
	barrierPrice, _ := PriceBarrier(&st, params, 20000)

	// The vanilla reference is priced on the same bridge paths (same
	// seed, same draws), so the knock-out payoff never exceeds it.
	stEuro := rng.Seed(19)
	euroPrice, _ := PriceEuropean(&stEuro, func(src rng.Source) float64 {
		s, _ := simulateBarrierPath(src, params)
		return s
	}, k, r, tt, Call, 20000)

	if barrierPrice > euroPrice+1e-9 {
		t.Errorf("down-and-out barrier price %v should not exceed vanilla price %v", barrierPrice, euroPrice)
	}
}

func TestPriceBarrierInOutParitySumsToVanilla(t *testing.T) {
	s0, k, h, r, sigma, tt := 100.0, 100.0, 80.0, 0.05, 0.2, 1.0
	stOut := rng.Seed(23)
	outParams := BarrierParams{S0: s0, K: k, H: h, R: r, Sigma: sigma, T: tt, Steps: 50, Type: Call, Direction: DownOut}
	outPrice, _ := PriceBarrier(&stOut, outParams, 30000)

	stIn := rng.Seed(23)
	inParams := outParams
	inParams.Direction = DownIn
	inPrice, _ := PriceBarrier(&stIn, inParams, 30000)

	p := models.NewGBMParams(s0, r, sigma, tt)
	stEuro := rng.Seed(23)
	euroPrice, _ := PriceEuropean(&stEuro, p.TerminalDraw, k, r, tt, Call, 30000)

	sum := outPrice + inPrice
	if math.Abs(sum-euroPrice) > 0.5 {
		t.Errorf("down-in + down-out = %v should approximate vanilla price %v", sum, euroPrice)
	}
}

func TestPriceBarrierAntitheticReducesVariance(t *testing.T) {
	s0, k, h, r, sigma, tt := 100.0, 100.0, 80.0, 0.05, 0.2, 1.0
	params := BarrierParams{S0: s0, K: k, H: h, R: r, Sigma: sigma, T: tt, Steps: 50, Type: Call, Direction: DownOut}

	plain := rng.Seed(29)
	_, plainVar := PriceBarrier(&plain, params, 20000)

	anti := rng.Seed(29)
	_, antiVar := PriceBarrierAntithetic(&anti, params, 10000)

	if antiVar >= plainVar {
		t.Errorf("antithetic barrier variance %v not lower than plain variance %v", antiVar, plainVar)
	}
}

func TestPriceBarrierAntitheticAgreesWithPlainOnAverage(t *testing.T) {
	s0, k, h, r, sigma, tt := 100.0, 100.0, 80.0, 0.05, 0.2, 1.0
	params := BarrierParams{S0: s0, K: k, H: h, R: r, Sigma: sigma, T: tt, Steps: 50, Type: Call, Direction: DownOut}

	plain := rng.Seed(31)
	plainPrice, _ := PriceBarrier(&plain, params, 40000)

	anti := rng.Seed(31)
	antiPrice, _ := PriceBarrierAntithetic(&anti, params, 20000)

	if math.Abs(plainPrice-antiPrice) > 0.5 {
		t.Errorf("antithetic barrier price %v should approximate plain price %v", antiPrice, plainPrice)
	}
}
