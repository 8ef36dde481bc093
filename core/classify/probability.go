package classify

import "math"

// Line is an affine boundary y = Intercept + Slope*x in a three-isotope plot
type Line struct {
	Intercept float64
	Slope     float64
}

// Phi is the standard normal cumulative distribution function
func Phi(z float64) float64 {
	return 0.5 * (1 + math.Erf(z/math.Sqrt2))
}

// ThresholdProbability returns P(msr < threshold).
//
// The uncertainty used is the one governing a crossing of the threshold from
// the side the value currently sits on: SigmaPlus below the threshold,
// SigmaMinus at or above it.
func ThresholdProbability(msr Normalized, threshold float64) float64 {
	sigma := msr.SigmaMinus
	if msr.Value < threshold {
		sigma = msr.SigmaPlus
	}
	if sigma == 0 {
		return step(msr.Value < threshold)
	}
	return Phi((threshold - msr.Value) / sigma)
}

// LineProbability returns the probability that the point (x, y) lies below
// the line, given Gaussian errors on both axes with correlation rho.
// Both measurements are expected to be symmetric.
func LineProbability(x, y Normalized, line Line, rho float64) float64 {
	a, b := line.Intercept, line.Slope
	sx, sy := x.SigmaPlus, y.SigmaPlus

	variance := sy*sy + b*b*sx*sx - 2*b*sx*sy*rho
	distance := y.Value - b*x.Value - a
	if variance <= 0 {
		return step(distance < 0)
	}
	return Phi(-distance / math.Sqrt(variance))
}

func step(below bool) float64 {
	if below {
		return 1
	}
	return 0
}
