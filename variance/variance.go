// Package variance implements the variance-reduction accumulators:
// antithetic pairing (folded into package instruments' antithetic
// pricers via rng.Recorder/Mirror) and the online control-variate
// estimator.
package variance

// ControlVariate accumulates running sums of x, z, x^2, z^2, xz plus a
// known expectation E[Z] and a sample count, applying the standard
// optimal-coefficient control-variate adjustment on read. E[Z] is fixed
// at construction and never mutated during accumulation.
type ControlVariate struct {
	ez                                 float64
	n                                  int
	sumX, sumZ, sumX2, sumZ2, sumXZ float64
}

// NewControlVariate constructs an accumulator with a known control
// expectation ez.
func NewControlVariate(ez float64) *ControlVariate {
	return &ControlVariate{ez: ez}
}

// Add records one (x, z) sample pair.
func (cv *ControlVariate) Add(x, z float64) {
	cv.n++
	cv.sumX += x
	cv.sumZ += z
	cv.sumX2 += x * x
	cv.sumZ2 += z * z
	cv.sumXZ += x * z
}

// N returns the number of samples accumulated.
func (cv *ControlVariate) N() int { return cv.n }

// Estimate returns the control-variate-adjusted mean:
// mean(X) - c*(mean(Z) - E[Z]), where c = sample Cov(X,Z)/sample Var(Z).
// If sample Var(Z) < 1e-12 (Z is effectively constant), the adjustment
// is skipped and mean(X) is returned unchanged.
func (cv *ControlVariate) Estimate() float64 {
	if cv.n == 0 {
		return 0
	}
	n := float64(cv.n)
	meanX := cv.sumX / n
	meanZ := cv.sumZ / n

	varZ := cv.sumZ2/n - meanZ*meanZ
	if varZ < 1e-12 {
		return meanX
	}

	covXZ := cv.sumXZ/n - meanX*meanZ
	c := covXZ / varZ

	return meanX - c*(meanZ-cv.ez)
}
