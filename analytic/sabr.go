package analytic

import "math"

// HaganSABRImpliedVol returns the Hagan et al. (2002) asymptotic
// lognormal implied volatility for the SABR model, valid for beta in
// [0,1]. original_source's sabr_pricing.c prices SABR purely by Monte
// Carlo and carries no closed-form asymptotic; this formula is taken
// directly from the published paper to give the control-variate and
// calibration harnesses a fast approximate reference.
func HaganSABRImpliedVol(forward, strike, t, alpha, beta, rho, nu float64) float64 {
	if forward <= 0 || strike <= 0 || t <= 0 || alpha <= 0 {
		return 0
	}

	if math.Abs(forward-strike) < 1e-12 {
		return haganATM(forward, t, alpha, beta, rho, nu)
	}

	fk := forward * strike
	fkBeta := math.Pow(fk, (1-beta)/2)
	logFK := math.Log(forward / strike)

	z := (nu / alpha) * fkBeta * logFK
	x := math.Log((math.Sqrt(1-2*rho*z+z*z) + z - rho) / (1 - rho))

	oneMinusBeta := 1 - beta
	a := 1 + (oneMinusBeta*oneMinusBeta/24)*logFK*logFK +
		(math.Pow(oneMinusBeta, 4)/1920)*math.Pow(logFK, 4)

	numerator := alpha
	denominator := fkBeta * a

	zOverX := 1.0
	if math.Abs(z) > 1e-12 {
		zOverX = z / x
	}

	bracket := 1 + t*(
		(oneMinusBeta*oneMinusBeta/24)*(alpha*alpha)/(fkBeta*fkBeta)+
			0.25*(rho*beta*nu*alpha)/fkBeta+
			(2-3*rho*rho)*(nu*nu)/24)

	return (numerator / denominator) * zOverX * bracket
}

func haganATM(forward, t, alpha, beta, rho, nu float64) float64 {
	fBeta := math.Pow(forward, 1-beta)
	oneMinusBeta := 1 - beta

	bracket := 1 + t*(
		(oneMinusBeta*oneMinusBeta/24)*(alpha*alpha)/(fBeta*fBeta)+
			0.25*(rho*beta*nu*alpha)/fBeta+
			(2-3*rho*rho)*(nu*nu)/24)

	return (alpha / fBeta) * bracket
}
