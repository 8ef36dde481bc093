package classify

// Calibration constants of the PGD SiC classification scheme
// (Stephan et al. 2024, Presolar Grain Database, SiC). They are fitted
// boundaries and must not be re-derived.
const (
	// 26Al/27Al
	alLowRatio  = 0.02
	alHighRatio = 0.01

	// 12C/13C
	carbonSolarUpper = 100
	carbonLightLimit = 13.5
	carbonABUpper    = 25

	// 14N/15N
	nitrogenLower = 200
	nitrogenUpper = 272

	// δ29Si and δ30Si in permil
	siZero     = 0
	siHigh     = 200
	siLow29    = -200
	siX29      = -120
	siX30      = -100
	siLineBase = -19
	siSlope    = 1.342

	// AB subtypes
	abCarbon    = 4.5
	abNitrogen1 = 441
	abNitrogen2 = 272

	// C subtypes
	cCarbonSplit = 10

	// X subtypes
	xSlope     = 2.0 / 3
	xIntercept = 30
	xSlopeTilt = 0.05
)

// Reference lines in the silicon three-isotope plot (x = δ30Si, y = δ29Si).
// L0 is the mainstream line, L1/L2 bound it from above and below, L3/L4 are
// perpendicular cuts.
var (
	siLine0 = Line{Intercept: siLineBase, Slope: siSlope}
	siLine1 = Line{Intercept: siLineBase + 250*siSlope, Slope: siSlope}
	siLine2 = Line{Intercept: siLineBase - 100*siSlope, Slope: siSlope}
	siLine3 = Line{Intercept: siLineBase + 200*(siSlope+1/siSlope), Slope: -1 / siSlope}
	siLine4 = Line{Intercept: siLineBase - 75*(siSlope+1/siSlope), Slope: -1 / siSlope}
)

// uniform returns a table with the same probability for every category
func uniform(p float64) Probabilities {
	var out Probabilities
	for i := range out {
		out[i] = p
	}
	return out
}

func aluminiumProbabilities(msr Normalized, ok bool) Probabilities {
	probs := uniform(1)
	if !ok {
		return probs
	}

	low := ThresholdProbability(msr, alLowRatio)
	high := 0.05 + 0.95*(1-ThresholdProbability(msr, alHighRatio))
	probs[M], probs[Y], probs[Z] = low, low, low
	probs[X], probs[C], probs[D], probs[N] = high, high, high, high
	probs[AB] = 1
	return probs
}

func carbonProbabilities(msr Normalized, ok bool) Probabilities {
	if !ok {
		// AB, Y and N cannot be supported without carbon data
		return Probabilities{M: 1, AB: 0, Y: 0, Z: 1, X: 1, C: 1, D: 1, N: 0}
	}

	belowSolar := ThresholdProbability(msr, carbonSolarUpper)
	belowLight := ThresholdProbability(msr, carbonLightLimit)
	light := 0.8*belowLight + 0.2*ThresholdProbability(msr, carbonABUpper)

	probs := uniform(1)
	probs[M] = belowSolar - belowLight
	probs[Z] = probs[M]
	probs[Y] = 1 - belowSolar
	probs[AB] = light
	probs[N] = light
	return probs
}

func nitrogenProbabilities(msr Normalized, ok bool) Probabilities {
	probs := uniform(1)
	if !ok {
		return probs
	}

	heavy := 1 - ThresholdProbability(msr, nitrogenLower)
	light := ThresholdProbability(msr, nitrogenUpper)
	probs[M], probs[Y], probs[Z] = heavy, heavy, heavy
	probs[X], probs[C], probs[D], probs[N] = light, light, light, light
	return probs
}
