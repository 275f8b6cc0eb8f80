package calibrate

import (
	"math"
	"testing"

	"github.com/bcdannyboy/mcengine/analytic"
)

func TestCalibrateSABRRecoversSyntheticSmile(t *testing.T) {
	forward := 100.0
	trueAlpha, beta, trueRho, trueNu := 0.25, 0.5, -0.3, 0.4

	strikes := []float64{80, 90, 100, 110, 120}
	quotes := make([]VolQuote, len(strikes))
	for i, k := range strikes {
		iv := analytic.HaganSABRImpliedVol(forward, k, 1.0, trueAlpha, beta, trueRho, trueNu)
		quotes[i] = VolQuote{Strike: k, Maturity: 1.0, ImpliedVol: iv}
	}

	result, err := CalibrateSABR(quotes, forward, beta, 0.2, 0.0, 0.3)
	if err != nil {
		t.Fatalf("CalibrateSABR: %v", err)
	}
	if result.MSE > 1e-6 {
		t.Errorf("CalibrateSABR MSE = %v, want near-zero recovering a synthetic smile", result.MSE)
	}
	if math.Abs(result.Alpha-trueAlpha) > 0.05 {
		t.Errorf("fitted alpha = %v, want near %v", result.Alpha, trueAlpha)
	}
}
