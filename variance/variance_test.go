package variance

import (
	"math"
	"testing"
)

func TestControlVariateConstantZ(t *testing.T) {
	cv := NewControlVariate(5.0)
	xs := []float64{1, 2, 3, 4, 5}
	for _, x := range xs {
		cv.Add(x, 5.0) // z is constant, var(z) == 0
	}
	want := 3.0 // mean(x)
	if got := cv.Estimate(); math.Abs(got-want) > 1e-9 {
		t.Errorf("Estimate() = %v, want %v", got, want)
	}
}

func TestControlVariatePerfectCorrelation(t *testing.T) {
	ez := 10.0
	cv := NewControlVariate(ez)
	for _, x := range []float64{8, 9, 10, 11, 12} {
		cv.Add(x, x) // X == Z exactly
	}
	if got := cv.Estimate(); math.Abs(got-ez) > 1e-9 {
		t.Errorf("Estimate() = %v, want E[Z]=%v", got, ez)
	}
}
