// Package lsm implements Longstaff-Schwartz least-squares Monte Carlo
// pricing for American and Bermudan early-exercise options.
package lsm

import (
	"math"

	"github.com/bcdannyboy/mcengine/instruments"
	"github.com/bcdannyboy/mcengine/models"
	"github.com/bcdannyboy/mcengine/rng"
	"gonum.org/v1/gonum/mat"
)

// NumBasis is the regression basis dimension: {1, 1-x, 1-2x+0.5x^2}.
const NumBasis = 3

// basis evaluates the three Laguerre-derived basis functions at
// x = S/K.
func basis(x float64) [NumBasis]float64 {
	return [NumBasis]float64{
		1.0,
		1.0 - x,
		1.0 - 2.0*x + 0.5*x*x,
	}
}

// regress solves the normal equations (A'A)coeffs = A'b via gonum's LU
// decomposition. It reports ok=false on a near-singular design matrix,
// matching the reference engine's pivot-below-1e-12 guard.
func regress(designRows [][NumBasis]float64, targets []float64) (coeffs [NumBasis]float64, ok bool) {
	ata := mat.NewDense(NumBasis, NumBasis, nil)
	var atb [NumBasis]float64

	for i, row := range designRows {
		b := targets[i]
		for j := 0; j < NumBasis; j++ {
			atb[j] += row[j] * b
			for k := 0; k < NumBasis; k++ {
				ata.Set(j, k, ata.At(j, k)+row[j]*row[k])
			}
		}
	}

	var lu mat.LU
	lu.Factorize(ata)
	if lu.Cond() > 1e12 {
		return coeffs, false
	}

	bVec := mat.NewVecDense(NumBasis, atb[:])
	var xVec mat.VecDense
	if err := lu.SolveVecTo(&xVec, false, bVec); err != nil {
		return coeffs, false
	}
	for i := 0; i < NumBasis; i++ {
		coeffs[i] = xVec.AtVec(i)
	}
	return coeffs, true
}

// American prices an American option via Longstaff-Schwartz LSM on GBM
// paths with a uniform exercise schedule of numSteps opportunities.
func American(st rng.Source, params models.GBMParams, k float64, typ instruments.OptionType, numSteps, numPaths int) float64 {
	if numSteps <= 0 || numPaths <= 0 {
		return 0
	}

	dt := params.T / float64(numSteps)
	df := math.Exp(-params.R * dt)

	paths := make([][]float64, numPaths)
	for i := range paths {
		path := make([]float64, numSteps+1)
		params.SimulatePath(st, path)
		paths[i] = path
	}

	cashflow := make([]float64, numPaths)
	for i, path := range paths {
		cashflow[i] = instruments.VanillaPayoff(path[numSteps], k, typ)
	}

	for step := numSteps - 1; step >= 1; step-- {
		for i := range cashflow {
			cashflow[i] *= df
		}

		var itmIdx []int
		var design [][NumBasis]float64
		var targets []float64

		for i, path := range paths {
			sT := path[step]
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
			sT := paths[i][step]
			exVal := instruments.VanillaPayoff(sT, k, typ)
			b := design[j]
			continuation := coeffs[0]*b[0] + coeffs[1]*b[1] + coeffs[2]*b[2]
			if exVal > continuation {
				cashflow[i] = exVal
			}
		}
	}

	sum := 0.0
	for _, cf := range cashflow {
		sum += cf * df
	}
	return sum / float64(numPaths)
}
