// Package classify assigns presolar SiC grains to genetic types.
//
// A grain is described by up to five isotope measurements (12C/13C, 14N/15N,
// δ29Si, δ30Si and 26Al/27Al), each possibly absent and each with symmetric,
// asymmetric or unreported uncertainties, plus the correlation between the
// two silicon delta values. Each element is scored independently against the
// eight types M, AB, Y, Z, X, C, D and N; the per-element tables are
// multiplied, rounded to three decimals and the most probable type wins.
// Winners below 1% are reported as unclassified (U). Types X, AB and C are
// further split into subtypes.
//
// Everything in this package is pure and safe for concurrent use.
package classify

import (
	"fmt"
	"math"

	"presolar/internal/errors"
)

// MinProbability is the lowest winning probability that still yields a type
const MinProbability = 0.01

// Grain holds the measurements of a single grain. Absent measurements are
// the zero value.
type Grain struct {
	C12C13   Measurement `json:"c12_c13"`
	N14N15   Measurement `json:"n14_n15"`
	D29Si    Measurement `json:"d29si"`
	D30Si    Measurement `json:"d30si"`
	Al26Al27 Measurement `json:"al26_al27"`

	// RhoSi is the correlation between the δ30Si and δ29Si errors
	RhoSi float64 `json:"rho_si"`
}

// Result is the outcome of classifying one grain
type Result struct {
	Type          Category      `json:"type"`
	Subtype       Subtype       `json:"subtype,omitempty"`
	Probabilities Probabilities `json:"probabilities"`
}

// normalized is a grain after validation and error normalization
type normalized struct {
	c12c13, n14n15, d29, d30, al    Normalized
	hasC, hasN, has29, has30, hasAl bool
	rho                             float64
}

// Validate checks a grain for inputs the scheme cannot handle
func (g Grain) Validate() error {
	if math.IsNaN(g.RhoSi) || math.IsInf(g.RhoSi, 0) {
		return errors.InvalidMeasurement(fmt.Sprintf("rho_si must be finite, got %v", g.RhoSi), nil).
			WithContext("field", "rho_si")
	}
	for _, f := range []struct {
		name string
		msr  Measurement
	}{
		{"d29si", g.D29Si},
		{"d30si", g.D30Si},
	} {
		if f.msr.Kind() == KindAsymmetric {
			return errors.InvalidMeasurement(f.name+" must have a symmetric uncertainty", nil).
				WithContext("field", f.name)
		}
	}
	for _, f := range []struct {
		name string
		msr  Measurement
	}{
		{"c12_c13", g.C12C13},
		{"n14_n15", g.N14N15},
		{"d29si", g.D29Si},
		{"d30si", g.D30Si},
		{"al26_al27", g.Al26Al27},
	} {
		if f.msr.IsAbsent() {
			continue
		}
		if math.IsNaN(f.msr.Value()) || math.IsInf(f.msr.Value(), 0) {
			return errors.InvalidMeasurement(f.name+" value must be finite", nil).
				WithContext("field", f.name)
		}
		if !validSigma(f.msr.plus) || !validSigma(f.msr.minus) {
			return errors.InvalidMeasurement(f.name+" uncertainty must be finite and not negative", nil).
				WithContext("field", f.name)
		}
	}
	return nil
}

// validSigma accepts NaN, which marks an unreported uncertainty
func validSigma(s float64) bool {
	return math.IsNaN(s) || (s >= 0 && !math.IsInf(s, 0))
}

// HasIsotopeData reports whether any carbon, nitrogen or silicon value was
// measured. Aluminium alone cannot separate the types: its table only splits
// M/Y/Z from X/C/D/N, so a grain with nothing but 26Al/27Al is unclassified
// with all probabilities zero rather than scored against the priors of the
// missing elements.
func (g Grain) HasIsotopeData() bool {
	return !g.C12C13.IsAbsent() || !g.N14N15.IsAbsent() || !g.D29Si.IsAbsent() || !g.D30Si.IsAbsent()
}

func (g Grain) normalize() normalized {
	var n normalized
	n.c12c13, n.hasC = g.C12C13.Normalize()
	n.n14n15, n.hasN = g.N14N15.Normalize()
	n.d29, n.has29 = g.D29Si.Normalize()
	n.d30, n.has30 = g.D30Si.Normalize()
	n.al, n.hasAl = g.Al26Al27.Normalize()
	n.rho = math.Max(-1, math.Min(1, g.RhoSi))
	return n
}

// Classify returns the most probable type of the grain with its subtype.
// Grains without carbon, nitrogen or silicon data are unclassified with all
// probabilities zero, even when 26Al/27Al was measured (see HasIsotopeData).
func Classify(g Grain) (Result, error) {
	if err := g.Validate(); err != nil {
		return Result{Type: Unclassified}, err
	}
	if !g.HasIsotopeData() {
		return Result{Type: Unclassified}, nil
	}

	n := g.normalize()
	probs := n.probabilities()

	gtype, best := probs.Best()
	if best < MinProbability {
		gtype = Unclassified
	}

	return Result{
		Type:          gtype,
		Subtype:       n.subtype(gtype),
		Probabilities: probs,
	}, nil
}

// ClassifyProbabilities returns the rounded probability of every type without
// resolving a winner or subtype. It is all zero for grains without isotope
// data, as in Classify.
func ClassifyProbabilities(g Grain) (Probabilities, error) {
	if err := g.Validate(); err != nil {
		return Probabilities{}, err
	}
	if !g.HasIsotopeData() {
		return Probabilities{}, nil
	}
	return g.normalize().probabilities(), nil
}

func (n normalized) probabilities() Probabilities {
	al := aluminiumProbabilities(n.al, n.hasAl)
	c := carbonProbabilities(n.c12c13, n.hasC)
	nit := nitrogenProbabilities(n.n14n15, n.hasN)
	si := siliconProbabilities(n.d29, n.d30, n.has29, n.has30, n.rho)

	var probs Probabilities
	for _, cat := range Categories {
		probs[cat] = round3(al[cat] * c[cat] * nit[cat] * si[cat])
	}
	return probs
}

// round3 rounds half to even at three decimals
func round3(p float64) float64 {
	return math.RoundToEven(p*1000) / 1000
}
