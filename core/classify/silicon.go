package classify

// siliconProbabilities scores δ29Si and δ30Si. Which formulas apply depends on
// which of the two delta values were measured.
func siliconProbabilities(d29, d30 Normalized, has29, has30 bool, rho float64) Probabilities {
	switch {
	case has29 && has30:
		return siliconBoth(d29, d30, rho)
	case has29:
		return siliconOnly29(d29)
	case has30:
		return siliconOnly30(d30)
	default:
		return Probabilities{M: 1, AB: 1, Y: 1, Z: 0, X: 0.2, C: 0, D: 0, N: 0}
	}
}

func siliconBoth(d29, d30 Normalized, rho float64) Probabilities {
	line := func(l Line) float64 {
		return LineProbability(d30, d29, l, rho)
	}
	below29 := func(t float64) float64 { return ThresholdProbability(d29, t) }
	below30 := func(t float64) float64 { return ThresholdProbability(d30, t) }

	var probs Probabilities

	probs[M] = (line(siLine1) - line(siLine2)) * (line(siLine3) - line(siLine4))
	probs[AB] = probs[M]

	probs[X] = below29(siZero) * below30(siZero) * (0.2 + 0.8*line(siLine4))

	probs[Y] = line(siLine1) *
		(1 - (1-line(siLine3))*(1-below29(siHigh))) *
		(1 - line(siLine4)*below30(siZero)) *
		(1 - below29(siLow29))

	probs[Z] = line(siLine2) *
		(below29(siHigh) - below29(siLow29)) *
		(1 - below30(siZero))

	probs[C] = (1 - below29(siHigh)) *
		(1 - below30(siHigh)) *
		(1 - line(siLine3))

	probs[D] = (1 - below29(siZero)) *
		below30(siHigh) *
		(1 - 0.8*line(siLine1) - 0.2*line(siLine0))

	probs[N] = line(siLine2) *
		below29(siHigh) *
		(1 - below30(siZero))

	return probs
}

func siliconOnly29(d29 Normalized) Probabilities {
	var probs Probabilities
	probs[M] = ThresholdProbability(d29, siHigh) - ThresholdProbability(d29, siX29)
	probs[AB] = probs[M]
	probs[X] = ThresholdProbability(d29, siX29)
	probs[Y] = ThresholdProbability(d29, siHigh) - ThresholdProbability(d29, siLow29)
	return probs
}

func siliconOnly30(d30 Normalized) Probabilities {
	var probs Probabilities
	probs[M] = ThresholdProbability(d30, siHigh) - ThresholdProbability(d30, siX30)
	probs[AB] = probs[M]
	probs[X] = ThresholdProbability(d30, siX30)
	probs[Y] = 1 - ThresholdProbability(d30, siX30)
	return probs
}
