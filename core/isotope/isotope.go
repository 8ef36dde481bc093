// Package isotope parses isotope names and builds the column labels used in
// presolar grain tables.
package isotope

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Isotope is a nuclide given by mass number and element symbol
type Isotope struct {
	A       int
	Element string
}

// Parse accepts "12C", "C12", "c-12" and similar spellings
func Parse(s string) (Isotope, error) {
	var letters, digits strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			letters.WriteRune(r)
		case unicode.IsDigit(r):
			digits.WriteRune(r)
		}
	}
	if letters.Len() == 0 || digits.Len() == 0 {
		return Isotope{}, fmt.Errorf("invalid isotope %q", s)
	}

	a, err := strconv.Atoi(digits.String())
	if err != nil {
		return Isotope{}, fmt.Errorf("invalid mass number in %q: %w", s, err)
	}

	ele := strings.ToLower(letters.String())
	return Isotope{A: a, Element: strings.ToUpper(ele[:1]) + ele[1:]}, nil
}

// MustParse is Parse for literals
func MustParse(s string) Isotope {
	iso, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return iso
}

// String returns the canonical form, mass number first: "12C"
func (i Isotope) String() string {
	return fmt.Sprintf("%d%s", i.A, i.Element)
}

// Ratio is an isotope ratio numerator/denominator
type Ratio struct {
	Num Isotope
	Den Isotope
}

// NewRatio parses both isotopes of a ratio
func NewRatio(num, den string) (Ratio, error) {
	n, err := Parse(num)
	if err != nil {
		return Ratio{}, err
	}
	d, err := Parse(den)
	if err != nil {
		return Ratio{}, err
	}
	return Ratio{Num: n, Den: d}, nil
}

// String returns "12C/13C"
func (r Ratio) String() string {
	return r.Num.String() + "/" + r.Den.String()
}

// DeltaLabel returns the delta-value column label, e.g. "d(29Si/28Si)"
func (r Ratio) DeltaLabel() string {
	return "d(" + r.String() + ")"
}

// ErrLabel returns the symmetric uncertainty column label, e.g. "err[12C/13C]"
func (r Ratio) ErrLabel() string {
	return "err[" + r.String() + "]"
}

// ErrPlusLabel returns the upper uncertainty column label
func (r Ratio) ErrPlusLabel() string {
	return "err+[" + r.String() + "]"
}

// ErrMinusLabel returns the lower uncertainty column label
func (r Ratio) ErrMinusLabel() string {
	return "err-[" + r.String() + "]"
}

// CorrelationLabel returns the correlation column label, e.g. "rho[30Si-29Si]"
func CorrelationLabel(a, b Isotope) string {
	return fmt.Sprintf("rho[%s-%s]", a, b)
}
