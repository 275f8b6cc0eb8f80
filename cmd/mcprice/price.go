package main

import (
	"context"
	"fmt"
	"math"

	"github.com/bcdannyboy/mcengine/dispatch"
	"github.com/bcdannyboy/mcengine/instruments"
	"github.com/bcdannyboy/mcengine/lsm"
	"github.com/bcdannyboy/mcengine/models"
	"github.com/bcdannyboy/mcengine/rng"
	"github.com/bcdannyboy/mcengine/simcontext"
)

// Result is the JSON response written to stdout.
type Result struct {
	Price          float64 `json:"price"`
	SampleStdError float64 `json:"sample_std_error"`
	Paths          int     `json:"paths"`
	Threads        int     `json:"threads"`
}

// terminalSamplerFor adapts one of the model kernels to
// instruments.TerminalSampler by drawing a full path and returning its
// terminal value, or the closed-form terminal draw for models that
// support one directly.
func terminalSamplerFor(req Request) (instruments.TerminalSampler, error) {
	switch req.Model {
	case "", "gbm":
		p := models.NewGBMParams(req.S0, req.R, req.Sigma, req.T)
		return func(st rng.Source) float64 { return p.TerminalDraw(st) }, nil

	case "black76":
		p := models.NewBlack76Params(req.S0, req.Sigma, req.T)
		return func(st rng.Source) float64 { return p.TerminalDraw(st) }, nil

	case "heston":
		if req.Heston == nil {
			return nil, fmt.Errorf("mcprice: heston model requires a \"heston\" block")
		}
		h := req.Heston
		p := models.NewHestonParams(req.S0, req.R, req.T, h.V0, h.Kappa, h.Theta, h.Xi, h.Rho, req.hestonScheme())
		steps := req.Steps
		if steps <= 0 {
			steps = 100
		}
		return func(st rng.Source) float64 { return p.TerminalDraw(st, steps) }, nil

	case "sabr":
		if req.SABR == nil {
			return nil, fmt.Errorf("mcprice: sabr model requires a \"sabr\" block")
		}
		sb := req.SABR
		p := models.NewSABRParams(req.S0, sb.Alpha0, sb.Beta, sb.Nu, sb.Rho, req.T)
		steps := req.Steps
		if steps <= 0 {
			steps = 100
		}
		return func(st rng.Source) float64 { return p.TerminalDraw(st, steps) }, nil

	case "merton":
		if req.Merton == nil {
			return nil, fmt.Errorf("mcprice: merton model requires a \"merton\" block")
		}
		mj := req.Merton
		p := models.NewMertonParams(req.S0, req.R, req.Sigma, req.T, mj.Lambda, mj.MuJ, mj.SigmaJ)
		steps := req.Steps
		if steps <= 0 {
			steps = 100
		}
		return func(st rng.Source) float64 { return p.TerminalDraw(st, steps) }, nil

	default:
		return nil, fmt.Errorf("mcprice: unknown model %q", req.Model)
	}
}

// pathSamplerFor adapts a model kernel to instruments.PathSampler, for
// path-dependent instruments (Asian, lookback) that need the whole
// trajectory rather than just the terminal value.
func pathSamplerFor(req Request) (instruments.PathSampler, error) {
	switch req.Model {
	case "", "gbm":
		p := models.NewGBMParams(req.S0, req.R, req.Sigma, req.T)
		return p.SimulatePath, nil
	case "black76":
		p := models.NewBlack76Params(req.S0, req.Sigma, req.T)
		return p.SimulatePath, nil
	case "heston":
		if req.Heston == nil {
			return nil, fmt.Errorf("mcprice: heston model requires a \"heston\" block")
		}
		h := req.Heston
		p := models.NewHestonParams(req.S0, req.R, req.T, h.V0, h.Kappa, h.Theta, h.Xi, h.Rho, req.hestonScheme())
		return p.SimulatePath, nil
	case "sabr":
		if req.SABR == nil {
			return nil, fmt.Errorf("mcprice: sabr model requires a \"sabr\" block")
		}
		sb := req.SABR
		p := models.NewSABRParams(req.S0, sb.Alpha0, sb.Beta, sb.Nu, sb.Rho, req.T)
		return p.SimulatePath, nil
	default:
		return nil, fmt.Errorf("mcprice: model %q does not support path-dependent pricing", req.Model)
	}
}

// Price dispatches req across ctx's configured thread count and returns
// the priced result. onWorkerDone, if non-nil, is invoked once per
// completed worker thread for progress reporting.
func Price(ctx *simcontext.Context, req Request, onWorkerDone func(int)) (Result, error) {
	switch req.Instrument {
	case "", "european":
		return priceEuropean(ctx, req, onWorkerDone)
	case "asian":
		return priceAsian(ctx, req, onWorkerDone)
	case "lookback":
		return priceLookback(ctx, req, onWorkerDone)
	case "digital":
		return priceDigital(ctx, req, onWorkerDone)
	case "barrier":
		return priceBarrier(ctx, req, onWorkerDone)
	case "american":
		return priceAmerican(ctx, req)
	case "bermudan":
		return priceBermudan(ctx, req)
	default:
		return Result{}, fmt.Errorf("mcprice: unknown instrument %q", req.Instrument)
	}
}

func priceEuropean(ctx *simcontext.Context, req Request, onWorkerDone func(int)) (Result, error) {
	sample, err := terminalSamplerFor(req)
	if err != nil {
		return Result{}, ctx.Fail(err)
	}
	typ := req.optionType()

	fn := func(stream *rng.State) float64 {
		s := sample(stream)
		return instruments.VanillaPayoff(s, req.K, typ)
	}
	if ctx.Antithetic() {
		if req.Model == "merton" {
			return Result{}, ctx.Fail(fmt.Errorf("mcprice: antithetic variance reduction is not supported for the merton model"))
		}
		fn = func(stream *rng.State) float64 {
			price, _ := instruments.PriceEuropeanAntithetic(stream, sample, req.K, req.R, req.T, typ, 1)
			return price / discountFactor(req.R, req.T)
		}
	}

	partial, err := dispatch.RunWithProgress(context.Background(), ctx.MasterRNG(), req.Paths, ctx.Threads(), fn, onWorkerDone)
	if err != nil {
		return Result{}, ctx.Fail(err)
	}

	discount := discountFactor(req.R, req.T)
	return Result{
		Price:          discount * partial.Mean(),
		SampleStdError: discount * partial.StdError(),
		Paths:          partial.Count,
		Threads:        ctx.Threads(),
	}, nil
}

// antitheticPair drives a single-path payoff closure once through a
// rng.Recorder and once through that Recorder's Mirror, returning the
// mean of the two -- the same (Z,-Z) pairing
// instruments.PriceEuropeanAntithetic uses internally, generalized here
// for the instruments that only expose an n-path helper rather than a
// dedicated *Antithetic entry point.
func antitheticPair(stream *rng.State, payoff func(src rng.Source) float64) float64 {
	rec := rng.NewRecorder(stream)
	pPlus := payoff(rec)
	pMinus := payoff(rec.Mirror())
	return (pPlus + pMinus) / 2
}

// priceAsian, priceLookback, priceDigital and priceBarrier each drive
// their package-instruments pricer one path at a time inside the
// dispatch fan-out (undoing that pricer's own per-call discounting so
// dispatch.Partial accumulates undiscounted payoffs like every other
// instrument), then apply the discount once over the merged partial.
// When ctx.Antithetic() is set, each dispatch call reports the mean of
// a mirrored draw pair instead of a single draw: via antitheticPair in
// priceAsian, priceLookback and priceDigital, and via
// instruments.PriceBarrierAntithetic with one pair in priceBarrier.
func priceAsian(ctx *simcontext.Context, req Request, onWorkerDone func(int)) (Result, error) {
	if req.Asian == nil {
		return Result{}, ctx.Fail(fmt.Errorf("mcprice: asian instrument requires an \"asian\" block"))
	}
	sample, err := pathSamplerFor(req)
	if err != nil {
		return Result{}, ctx.Fail(err)
	}

	p := instruments.AsianParams{
		K: req.K, R: req.R, T: req.T, Type: req.optionType(),
		Observations: req.Asian.Observations,
		Geometric:    req.Asian.Geometric,
		Floating:     req.Asian.Floating,
	}

	fn := func(stream *rng.State) float64 {
		price, _ := instruments.PriceAsian(stream, sample, p, 1)
		return price / discountFactor(req.R, req.T)
	}
	if ctx.Antithetic() {
		fn = func(stream *rng.State) float64 {
			return antitheticPair(stream, func(src rng.Source) float64 {
				price, _ := instruments.PriceAsian(src, sample, p, 1)
				return price / discountFactor(req.R, req.T)
			})
		}
	}

	partial, err := dispatch.RunWithProgress(context.Background(), ctx.MasterRNG(), req.Paths, ctx.Threads(), fn, onWorkerDone)
	if err != nil {
		return Result{}, ctx.Fail(err)
	}

	discount := discountFactor(req.R, req.T)
	return Result{
		Price:          discount * partial.Mean(),
		SampleStdError: discount * partial.StdError(),
		Paths:          partial.Count,
		Threads:        ctx.Threads(),
	}, nil
}

func priceLookback(ctx *simcontext.Context, req Request, onWorkerDone func(int)) (Result, error) {
	sample, err := pathSamplerFor(req)
	if err != nil {
		return Result{}, ctx.Fail(err)
	}

	p := instruments.LookbackParams{K: req.K, R: req.R, T: req.T, Type: req.optionType(), Steps: req.Steps, Floating: req.K == 0}

	fn := func(stream *rng.State) float64 {
		price, _ := instruments.PriceLookback(stream, sample, p, 1)
		return price / discountFactor(req.R, req.T)
	}
	if ctx.Antithetic() {
		fn = func(stream *rng.State) float64 {
			return antitheticPair(stream, func(src rng.Source) float64 {
				price, _ := instruments.PriceLookback(src, sample, p, 1)
				return price / discountFactor(req.R, req.T)
			})
		}
	}

	partial, err := dispatch.RunWithProgress(context.Background(), ctx.MasterRNG(), req.Paths, ctx.Threads(), fn, onWorkerDone)
	if err != nil {
		return Result{}, ctx.Fail(err)
	}

	discount := discountFactor(req.R, req.T)
	return Result{
		Price:          discount * partial.Mean(),
		SampleStdError: discount * partial.StdError(),
		Paths:          partial.Count,
		Threads:        ctx.Threads(),
	}, nil
}

func priceDigital(ctx *simcontext.Context, req Request, onWorkerDone func(int)) (Result, error) {
	sample, err := terminalSamplerFor(req)
	if err != nil {
		return Result{}, ctx.Fail(err)
	}

	p := instruments.DigitalParams{K: req.K, Q: req.K, R: req.R, T: req.T, Type: req.optionType(), CashOrNothing: true}

	fn := func(stream *rng.State) float64 {
		price, _ := instruments.PriceDigital(stream, sample, p, 1)
		return price / discountFactor(req.R, req.T)
	}
	if ctx.Antithetic() {
		if req.Model == "merton" {
			return Result{}, ctx.Fail(fmt.Errorf("mcprice: antithetic variance reduction is not supported for the merton model"))
		}
		fn = func(stream *rng.State) float64 {
			return antitheticPair(stream, func(src rng.Source) float64 {
				price, _ := instruments.PriceDigital(src, sample, p, 1)
				return price / discountFactor(req.R, req.T)
			})
		}
	}

	partial, err := dispatch.RunWithProgress(context.Background(), ctx.MasterRNG(), req.Paths, ctx.Threads(), fn, onWorkerDone)
	if err != nil {
		return Result{}, ctx.Fail(err)
	}

	discount := discountFactor(req.R, req.T)
	return Result{
		Price:          discount * partial.Mean(),
		SampleStdError: discount * partial.StdError(),
		Paths:          partial.Count,
		Threads:        ctx.Threads(),
	}, nil
}

func priceBarrier(ctx *simcontext.Context, req Request, onWorkerDone func(int)) (Result, error) {
	dir, err := req.barrierDirection()
	if err != nil {
		return Result{}, ctx.Fail(err)
	}

	p := instruments.BarrierParams{
		S0: req.S0, K: req.K, H: req.Barrier.H, Rebate: req.Barrier.Rebate,
		R: req.R, Sigma: req.Sigma, T: req.T, Steps: req.Steps,
		Type: req.optionType(), Direction: dir,
	}

	fn := func(stream *rng.State) float64 {
		price, _ := instruments.PriceBarrier(stream, p, 1)
		return price / discountFactor(req.R, req.T)
	}
	if ctx.Antithetic() {
		fn = func(stream *rng.State) float64 {
			price, _ := instruments.PriceBarrierAntithetic(stream, p, 1)
			return price / discountFactor(req.R, req.T)
		}
	}

	partial, err := dispatch.RunWithProgress(context.Background(), ctx.MasterRNG(), req.Paths, ctx.Threads(), fn, onWorkerDone)
	if err != nil {
		return Result{}, ctx.Fail(err)
	}

	discount := discountFactor(req.R, req.T)
	return Result{
		Price:          discount * partial.Mean(),
		SampleStdError: discount * partial.StdError(),
		Paths:          partial.Count,
		Threads:        ctx.Threads(),
	}, nil
}

// priceAmerican and priceBermudan run single-threaded: the LSM
// regression basis is fit against the full path set at once, so it
// does not decompose into the fixed-count fan-out the other instruments
// use (see DESIGN.md's lsm section).
func priceAmerican(ctx *simcontext.Context, req Request) (Result, error) {
	if req.Model != "" && req.Model != "gbm" {
		return Result{}, ctx.Fail(fmt.Errorf("mcprice: american exercise is only wired for the gbm model"))
	}
	p := models.NewGBMParams(req.S0, req.R, req.Sigma, req.T)
	stream := ctx.MasterRNG()
	price := lsm.American(&stream, p, req.K, req.optionType(), req.Steps, req.Paths)
	return Result{Price: price, Paths: req.Paths, Threads: 1}, nil
}

func priceBermudan(ctx *simcontext.Context, req Request) (Result, error) {
	if req.Model != "" && req.Model != "gbm" {
		return Result{}, ctx.Fail(fmt.Errorf("mcprice: bermudan exercise is only wired for the gbm model"))
	}
	p := models.NewGBMParams(req.S0, req.R, req.Sigma, req.T)
	stream := ctx.MasterRNG()
	schedule := lsm.UniformSchedule(req.Steps)
	price := lsm.Bermudan(&stream, p, req.K, req.optionType(), schedule, req.Paths)
	return Result{Price: price, Paths: req.Paths, Threads: 1}, nil
}

func discountFactor(r, t float64) float64 {
	if t <= 0 {
		return 1
	}
	return math.Exp(-r * t)
}
