package calibrate

import (
	"errors"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/optimize"
)

// ErrCalibrationFailed is returned when every multi-start restart fails
// to converge.
var ErrCalibrationFailed = errors.New("calibrate: all restarts failed to converge")

// defaultRestarts is the number of Nelder-Mead restarts tried per
// calibration call: one from the caller's initial guess, the rest from
// independently jittered starts, guarding against the simplex settling
// into a poor local minimum on a non-convex objective surface.
const defaultRestarts = 4

// restartJitter is the fractional perturbation applied to each
// component of the initial guess for restarts after the first.
const restartJitter = 0.35

// perturbedStarts returns numRestarts starting points: x0 verbatim,
// followed by numRestarts-1 independently jittered copies drawn from a
// seeded generator, matching the teacher's models/heston.go and
// models/merton.go convention of driving stochastic sampling with
// golang.org/x/exp/rand rather than the core rng package (the core
// package's jump-ahead contract has no bearing on a one-shot restart
// seed here, so there is no reason to reach for the hand-rolled
// generator over the ecosystem one).
func perturbedStarts(x0 []float64, numRestarts int, seed uint64) [][]float64 {
	if numRestarts < 1 {
		numRestarts = 1
	}
	src := rand.New(rand.NewSource(seed))
	starts := make([][]float64, numRestarts)
	starts[0] = append([]float64(nil), x0...)
	for i := 1; i < numRestarts; i++ {
		x := make([]float64, len(x0))
		for j, v := range x0 {
			jitter := 1 + restartJitter*(2*src.Float64()-1)
			x[j] = v * jitter
		}
		starts[i] = x
	}
	return starts
}

// bestOf runs Nelder-Mead from each starting point and returns the
// result with the lowest achieved objective value.
func bestOf(problem optimize.Problem, starts [][]float64) (*optimize.Result, error) {
	var best *optimize.Result
	for _, x0 := range starts {
		result, err := optimize.Minimize(problem, x0, nil, &optimize.NelderMead{})
		if err != nil {
			continue
		}
		if best == nil || result.F < best.F {
			best = result
		}
	}
	if best == nil {
		return nil, ErrCalibrationFailed
	}
	return best, nil
}
