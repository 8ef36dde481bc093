// Package output provides output formatting interfaces.
// This package produces human and machine-readable classification reports.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"presolar/core/batch"
	"presolar/core/classify"
	"presolar/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable aligned table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatCSV is one row per grain
	FormatCSV Format = "csv"
)

// Options controls what a formatter includes
type Options struct {
	// ShowProbabilities adds one column per grain type
	ShowProbabilities bool

	// Compare adds the recorded type and a match flag
	Compare bool
}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given report
	Render(w io.Writer, report *batch.Report, opts Options) error
}

var formatters = map[Format]Formatter{
	FormatCLI:  tableFormatter{},
	FormatJSON: jsonFormatter{},
	FormatCSV:  csvFormatter{},
}

// Get returns the formatter for a format name
func Get(name string) (Formatter, error) {
	f, ok := formatters[Format(name)]
	if !ok {
		return nil, errors.NotSupported(
			fmt.Sprintf("output format %q (use %s)", name, strings.Join(Names(), ", ")))
	}
	return f, nil
}

// Names lists the supported formats
func Names() []string {
	names := make([]string, 0, len(formatters))
	for f := range formatters {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

// Probability renders a probability with exactly three decimals
func Probability(p float64) string {
	return decimal.NewFromFloat(p).StringFixed(3)
}

// ProbabilityMap renders probabilities as JSON numbers with three decimals,
// keyed by grain type in tie-break order
type ProbabilityMap classify.Probabilities

// MarshalJSON keeps category order and fixed precision
func (p ProbabilityMap) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, c := range classify.Categories {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, _ := json.Marshal(c.String())
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, Probability(p[c])...)
	}
	return append(buf, '}'), nil
}

func subtypeLabel(s classify.Subtype) string {
	if s == classify.NoSubtype {
		return "-"
	}
	return string(s)
}

func matchLabel(o batch.Outcome) string {
	switch {
	case o.Recorded == nil || o.Failed():
		return ""
	case o.Mismatch():
		return "no"
	default:
		return "yes"
	}
}

func recordedLabel(o batch.Outcome) string {
	if o.Recorded == nil {
		return ""
	}
	if o.Recorded.Subtype == classify.NoSubtype {
		return o.Recorded.Type.String()
	}
	return o.Recorded.Type.String() + "/" + string(o.Recorded.Subtype)
}
