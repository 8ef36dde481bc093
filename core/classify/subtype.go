package classify

// subtype resolves the subtype of the winning type. It returns NoSubtype for
// types without subtypes or when the required measurements are missing.
func (n normalized) subtype(gtype Category) Subtype {
	switch gtype {
	case X:
		if !n.has29 || !n.has30 {
			return NoSubtype
		}
		return xSubtype(n.d29.Value, n.d30.Value)
	case AB:
		if !n.hasC || !n.hasN {
			return NoSubtype
		}
		return abSubtype(n.c12c13, n.n14n15)
	case C:
		if !n.hasC {
			return NoSubtype
		}
		if n.c12c13.Value >= cCarbonSplit {
			return C1
		}
		return C2
	default:
		return NoSubtype
	}
}

func xSubtype(d29, d30 float64) Subtype {
	switch {
	case d29 > xIntercept+(xSlope-xSlopeTilt)*d30:
		return X0
	case d29 < -xIntercept+(xSlope+xSlopeTilt)*d30:
		return X2
	default:
		return X1
	}
}

func abSubtype(carbon, nitrogen Normalized) Subtype {
	pc := ThresholdProbability(carbon, abCarbon)
	ab1 := pc * ThresholdProbability(nitrogen, abNitrogen1)
	ab2 := (1 - pc) * (1 - ThresholdProbability(nitrogen, abNitrogen2))

	switch {
	case ab1 > ab2 &&
		carbon.Value-carbon.SigmaMinus <= abCarbon &&
		nitrogen.Value-nitrogen.SigmaMinus <= abNitrogen1:
		return AB1
	case ab1 <= ab2 &&
		carbon.Value+carbon.SigmaPlus >= abCarbon &&
		nitrogen.Value+nitrogen.SigmaPlus >= abNitrogen2:
		return AB2
	default:
		return NoSubtype
	}
}
