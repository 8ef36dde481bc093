package classify

import (
	"fmt"
	"strings"
)

// Category is a presolar SiC grain type. The declaration order is the
// tie-break priority: the earliest category wins equal probabilities.
type Category uint8

const (
	M Category = iota
	AB
	Y
	Z
	X
	C
	D
	N

	// Unclassified is only ever a final result, never a probability entry
	Unclassified
)

// NumCategories is the number of real grain types
const NumCategories = int(Unclassified)

// Categories lists the grain types in tie-break order
var Categories = [NumCategories]Category{M, AB, Y, Z, X, C, D, N}

var categoryNames = [...]string{"M", "AB", "Y", "Z", "X", "C", "D", "N", "U"}

// String returns the PGD label of the category
func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", c)
}

// ParseCategory parses a PGD type label such as "AB" or "U"
func ParseCategory(s string) (Category, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, name := range categoryNames {
		if name == s {
			return Category(i), nil
		}
	}
	return Unclassified, fmt.Errorf("unknown grain type %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Subtype is a finer label within types X, AB and C. The empty subtype means
// none could be assigned.
type Subtype string

const (
	NoSubtype Subtype = ""
	X0        Subtype = "X0"
	X1        Subtype = "X1"
	X2        Subtype = "X2"
	AB1       Subtype = "AB1"
	AB2       Subtype = "AB2"
	C1        Subtype = "C1"
	C2        Subtype = "C2"
)

var subtypes = map[Category][]Subtype{
	X:  {X0, X1, X2},
	AB: {AB1, AB2},
	C:  {C1, C2},
}

// SubtypesOf lists the subtypes a category can carry
func SubtypesOf(c Category) []Subtype {
	return append([]Subtype(nil), subtypes[c]...)
}

// Probabilities holds one probability per grain type, indexed by Category
type Probabilities [NumCategories]float64

// Best returns the category with the highest probability. Ties go to the
// category declared first.
func (p Probabilities) Best() (Category, float64) {
	best := M
	for _, c := range Categories[1:] {
		if p[c] > p[best] {
			best = c
		}
	}
	return best, p[best]
}

// Map returns the probabilities keyed by PGD label
func (p Probabilities) Map() map[string]float64 {
	out := make(map[string]float64, NumCategories)
	for _, c := range Categories {
		out[c.String()] = p[c]
	}
	return out
}

// MarshalJSON encodes the probabilities as an object keyed by PGD label
func (p Probabilities) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, c := range Categories {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%q:%g", c.String(), p[c])
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}
