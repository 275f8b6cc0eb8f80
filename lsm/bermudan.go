package lsm

import (
	"math"

	"github.com/bcdannyboy/mcengine/instruments"
	"github.com/bcdannyboy/mcengine/models"
	"github.com/bcdannyboy/mcengine/rng"
)

// UniformSchedule returns numExercise ascending fractions of maturity,
// evenly spaced and terminating at 1.0.
func UniformSchedule(numExercise int) []float64 {
	sched := make([]float64, numExercise)
	for i := range sched {
		sched[i] = float64(i+1) / float64(numExercise)
	}
	return sched
}

// Bermudan prices a Bermudan option via LSM restricted to the exercise
// instants in schedule (ascending fractions of maturity, terminating at
// 1.0). It simulates a fine sub-stepped GBM path (>=10 sub-steps between
// exercise instants, floor of 50 sub-steps total) and snapshots values
// only at the exercise instants, then applies the same backward
// induction as American but with gap-specific discount factors.
func Bermudan(st rng.Source, params models.GBMParams, k float64, typ instruments.OptionType, schedule []float64, numPaths int) float64 {
	numExercise := len(schedule)
	if numExercise == 0 || numPaths <= 0 {
		return 0
	}

	simSteps := numExercise * 10
	if simSteps < 50 {
		simSteps = 50
	}

	exStep := make([]int, numExercise)
	for i, frac := range schedule {
		f := frac
		if f > 1 {
			f = 1
		}
		if f < 0 {
			f = 0
		}
		exStep[i] = int(f*float64(simSteps) + 0.5)
		if exStep[i] > simSteps {
			exStep[i] = simSteps
		}
	}

	spotAtEx := make([][]float64, numPaths)
	fullPath := make([]float64, simSteps+1)
	for i := 0; i < numPaths; i++ {
		params.SimulatePath(st, fullPath)
		snap := make([]float64, numExercise)
		for j, step := range exStep {
			snap[j] = fullPath[step]
		}
		spotAtEx[i] = snap
	}

	cashflow := make([]float64, numPaths)
	for i, snap := range spotAtEx {
		cashflow[i] = instruments.VanillaPayoff(snap[numExercise-1], k, typ)
	}

	for exIdx := numExercise - 2; exIdx >= 0; exIdx-- {
		tThis := schedule[exIdx] * params.T
		tNext := schedule[exIdx+1] * params.T
		df := math.Exp(-params.R * (tNext - tThis))

		for i := range cashflow {
			cashflow[i] *= df
		}

		var itmIdx []int
		var design [][NumBasis]float64
		var targets []float64

		for i, snap := range spotAtEx {
			sT := snap[exIdx]
			exVal := instruments.VanillaPayoff(sT, k, typ)
			if exVal > 0 {
				itmIdx = append(itmIdx, i)
				design = append(design, basis(sT/k))
				targets = append(targets, cashflow[i])
			}
		}

		if len(itmIdx) < NumBasis {
			continue
		}

		coeffs, ok := regress(design, targets)
		if !ok {
			continue
		}

		for j, i := range itmIdx {
			sT := spotAtEx[i][exIdx]
			exVal := instruments.VanillaPayoff(sT, k, typ)
			b := design[j]
			continuation := coeffs[0]*b[0] + coeffs[1]*b[1] + coeffs[2]*b[2]
			if exVal > continuation {
				cashflow[i] = exVal
			}
		}
	}

	tFirst := schedule[0] * params.T
	dfFirst := math.Exp(-params.R * tFirst)

	sum := 0.0
	for _, cf := range cashflow {
		sum += cf * dfFirst
	}
	return sum / float64(numPaths)
}
