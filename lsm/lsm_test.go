package lsm

import (
	"math"
	"testing"

	"github.com/bcdannyboy/mcengine/instruments"
	"github.com/bcdannyboy/mcengine/models"
	"github.com/bcdannyboy/mcengine/rng"
)

func TestAmericanPutAtLeastEuropeanPut(t *testing.T) {
	s0, k, r, sigma, tt := 100.0, 100.0, 0.05, 0.3, 1.0
	params := models.NewGBMParams(s0, r, sigma, tt)

	stAmerican := rng.Seed(31)
	americanPrice := American(&stAmerican, params, k, instruments.Put, 50, 20000)

	stEuro := rng.Seed(31)
	euroPrice, _ := instruments.PriceEuropean(&stEuro, params.TerminalDraw, k, r, tt, instruments.Put, 20000)

	// Early-exercise optionality can only add value, so the American put
	// must price at or above the European put (within Monte Carlo slack).
	if americanPrice < euroPrice-0.5 {
		t.Errorf("American put price %v should not be far below European put price %v", americanPrice, euroPrice)
	}
}

func TestAmericanCallNoDividendMatchesEuropean(t *testing.T) {
	s0, k, r, sigma, tt := 100.0, 100.0, 0.05, 0.2, 1.0
	params := models.NewGBMParams(s0, r, sigma, tt)

	stAmerican := rng.Seed(37)
	americanPrice := American(&stAmerican, params, k, instruments.Call, 50, 20000)

	stEuro := rng.Seed(37)
	euroPrice, _ := instruments.PriceEuropean(&stEuro, params.TerminalDraw, k, r, tt, instruments.Call, 20000)

	// With no dividends, early exercise of a call is never optimal, so
	// the American and European call prices should closely agree.
	if math.Abs(americanPrice-euroPrice) > 0.5 {
		t.Errorf("American call price %v should closely match European call price %v", americanPrice, euroPrice)
	}
}

func TestAmericanRejectsNonPositiveInputs(t *testing.T) {
	params := models.NewGBMParams(100, 0.05, 0.2, 1)
	st := rng.Seed(1)
	if got := American(&st, params, 100, instruments.Call, 0, 100); got != 0 {
		t.Errorf("expected 0 for numSteps<=0, got %v", got)
	}
	if got := American(&st, params, 100, instruments.Call, 50, 0); got != 0 {
		t.Errorf("expected 0 for numPaths<=0, got %v", got)
	}
}

func TestUniformScheduleEndsAtOne(t *testing.T) {
	sched := UniformSchedule(4)
	if len(sched) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(sched))
	}
	if sched[len(sched)-1] != 1.0 {
		t.Errorf("expected schedule to terminate at 1.0, got %v", sched[len(sched)-1])
	}
	for i := 1; i < len(sched); i++ {
		if sched[i] <= sched[i-1] {
			t.Errorf("expected strictly ascending schedule, got %v", sched)
		}
	}
}

func TestBermudanDenseScheduleNotBelowSparseSchedule(t *testing.T) {
	s0, k, r, sigma, tt := 100.0, 100.0, 0.05, 0.3, 1.0
	params := models.NewGBMParams(s0, r, sigma, tt)

	stSparse := rng.Seed(41)
	sparse := Bermudan(&stSparse, params, k, instruments.Put, UniformSchedule(2), 20000)

	stDense := rng.Seed(41)
	dense := Bermudan(&stDense, params, k, instruments.Put, UniformSchedule(50), 20000)

	// More exercise opportunities can only add value, so the
	// densely-scheduled Bermudan put should not price below the
	// sparsely-scheduled one by more than Monte Carlo slack.
	if dense < sparse-0.5 {
		t.Errorf("denser Bermudan schedule price %v should not be far below sparser schedule price %v", dense, sparse)
	}
}

func TestBermudanRejectsEmptyScheduleOrPaths(t *testing.T) {
	params := models.NewGBMParams(100, 0.05, 0.2, 1)
	st := rng.Seed(1)
	if got := Bermudan(&st, params, 100, instruments.Call, nil, 100); got != 0 {
		t.Errorf("expected 0 for empty schedule, got %v", got)
	}
	if got := Bermudan(&st, params, 100, instruments.Call, UniformSchedule(4), 0); got != 0 {
		t.Errorf("expected 0 for numPaths<=0, got %v", got)
	}
}

func TestBasisFunctionsAtOrigin(t *testing.T) {
	b := basis(0)
	want := [NumBasis]float64{1, 1, 1}
	if b != want {
		t.Errorf("basis(0) = %v, want %v", b, want)
	}
}
