package analytic

import (
	"math"
	"testing"
)

const tol = 1e-6

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestBlackScholesPutCallParity(t *testing.T) {
	s, k, tt, r, sigma := 100.0, 95.0, 1.0, 0.03, 0.25
	call := BlackScholesCall(s, k, tt, r, sigma)
	put := BlackScholesPut(s, k, tt, r, sigma)

	lhs := call - put
	rhs := s - k*math.Exp(-r*tt)
	if !approxEqual(lhs, rhs, 1e-9) {
		t.Errorf("put-call parity violated: call-put=%v, want %v", lhs, rhs)
	}
}

func TestBlackScholesGreeksDeltaBounds(t *testing.T) {
	g := BlackScholesGreeks(100, 100, 1, 0.03, 0.2, true)
	if g.Delta < 0 || g.Delta > 1 {
		t.Errorf("call delta out of [0,1]: %v", g.Delta)
	}
	gp := BlackScholesGreeks(100, 100, 1, 0.03, 0.2, false)
	if gp.Delta < -1 || gp.Delta > 0 {
		t.Errorf("put delta out of [-1,0]: %v", gp.Delta)
	}
}

func TestImpliedVolatilityRoundTrip(t *testing.T) {
	s, k, tt, r, sigma := 100.0, 100.0, 0.5, 0.02, 0.3
	price := BlackScholesCall(s, k, tt, r, sigma)

	iv := ImpliedVolatility(price, s, k, tt, r, true)
	if math.IsNaN(iv) {
		t.Fatal("implied volatility failed to converge")
	}
	if !approxEqual(iv, sigma, 1e-4) {
		t.Errorf("ImpliedVolatility() = %v, want %v", iv, sigma)
	}
}

func TestBlack76PutCallParity(t *testing.T) {
	f, k, r, sigma, tt := 50.0, 55.0, 0.01, 0.3, 2.0
	call := Black76Call(f, k, r, sigma, tt)
	put := Black76Put(f, k, r, sigma, tt)

	lhs := call - put
	rhs := math.Exp(-r*tt) * (f - k)
	if !approxEqual(lhs, rhs, 1e-9) {
		t.Errorf("Black-76 put-call parity violated: %v, want %v", lhs, rhs)
	}
}

func TestMertonSeriesReducesToBlackScholes(t *testing.T) {
	s, k, tt, r, sigma := 100.0, 100.0, 1.0, 0.02, 0.2
	bs := BlackScholesCall(s, k, tt, r, sigma)
	merton := MertonSeries(s, k, tt, r, sigma, 0, 0, 0, true)

	if !approxEqual(bs, merton, 1e-6) {
		t.Errorf("MertonSeries(lambda=0) = %v, want BlackScholesCall = %v", merton, bs)
	}
}

func TestDigitalCashComplementarity(t *testing.T) {
	s, k, payout, r, vol, tt := 100.0, 100.0, 10.0, 0.02, 0.2, 1.0
	call := DigitalCashCall(s, k, payout, r, vol, tt)
	put := DigitalCashPut(s, k, payout, r, vol, tt)

	lhs := call + put
	rhs := payout * math.Exp(-r*tt)
	if !approxEqual(lhs, rhs, 1e-9) {
		t.Errorf("digital cash call+put = %v, want %v", lhs, rhs)
	}
}

func TestBarrierInOutParity(t *testing.T) {
	s, k, h, rebate, r, vol, tt := 100.0, 100.0, 90.0, 0.0, 0.03, 0.2, 1.0

	vanilla := BlackScholesCall(s, k, tt, r, vol)
	in := BarrierAnalytic(s, k, h, rebate, r, vol, tt, DownIn, true)
	out := BarrierAnalytic(s, k, h, rebate, r, vol, tt, DownOut, true)

	if !approxEqual(in+out, vanilla, 1e-6) {
		t.Errorf("down-in + down-out = %v, want vanilla %v", in+out, vanilla)
	}
}

func TestLookbackAnalyticFiniteAndPositive(t *testing.T) {
	price := LookbackAnalytic(100, 0.03, 0.2, 1.0, true)
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		t.Errorf("floating lookback call price = %v, want finite positive", price)
	}
	put := LookbackAnalytic(100, 0.03, 0.2, 1.0, false)
	if math.IsNaN(put) || math.IsInf(put, 0) || put <= 0 {
		t.Errorf("floating lookback put price = %v, want finite positive", put)
	}
}

func TestHaganSABRImpliedVolATM(t *testing.T) {
	iv := HaganSABRImpliedVol(100, 100, 1.0, 0.2, 0.5, -0.3, 0.4)
	if math.IsNaN(iv) || iv <= 0 {
		t.Errorf("HaganSABRImpliedVol ATM = %v, want positive finite", iv)
	}
}
