package isotope

import (
	"fmt"
	"strings"
)

// Columns locates the value and uncertainty columns of one ratio in a table
// header. Missing columns are -1.
type Columns struct {
	Value    int
	IsDelta  bool
	Err      int
	ErrPlus  int
	ErrMinus int
}

// Header indexes the column labels of a grain table
type Header struct {
	labels []string
}

// NewHeader builds a header index from column labels
func NewHeader(labels []string) *Header {
	trimmed := make([]string, len(labels))
	for i, l := range labels {
		trimmed[i] = strings.TrimSpace(l)
	}
	return &Header{labels: trimmed}
}

// Labels returns the column labels
func (h *Header) Labels() []string {
	return h.labels
}

// Index returns the position of an exact label or -1
func (h *Header) Index(label string) int {
	for i, l := range h.labels {
		if l == label {
			return i
		}
	}
	return -1
}

// Ratio finds the columns for a ratio. The value column is the first label
// containing the ratio that is neither an uncertainty nor a correlation; it is
// a delta value when it starts with "d".
func (h *Header) Ratio(r Ratio) (Columns, error) {
	key := r.String()
	cols := Columns{Value: -1, Err: -1, ErrPlus: -1, ErrMinus: -1}

	for i, l := range h.labels {
		if !strings.Contains(l, key) {
			continue
		}
		switch {
		case strings.Contains(l, "err+["):
			cols.ErrPlus = i
		case strings.Contains(l, "err-["):
			cols.ErrMinus = i
		case strings.Contains(l, "err["):
			cols.Err = i
		case strings.Contains(l, "rho"):
		case cols.Value < 0:
			cols.Value = i
			cols.IsDelta = strings.HasPrefix(strings.ToLower(l), "d")
		}
	}

	if cols.Value < 0 {
		return cols, fmt.Errorf("isotope ratio %s not found in header", key)
	}
	return cols, nil
}

// Correlation returns the column of rho[a-b], trying both orders, or -1
func (h *Header) Correlation(a, b Isotope) int {
	if i := h.Index(CorrelationLabel(a, b)); i >= 0 {
		return i
	}
	return h.Index(CorrelationLabel(b, a))
}
