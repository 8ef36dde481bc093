package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"presolar/core/batch"
	"presolar/core/classify"
)

type tableFormatter struct{}

func (tableFormatter) Format() Format { return FormatCLI }

func (tableFormatter) Render(w io.Writer, report *batch.Report, opts Options) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	header := []string{"GRAIN", "TYPE", "SUBTYPE"}
	if opts.ShowProbabilities {
		for _, c := range classify.Categories {
			header = append(header, "p("+c.String()+")")
		}
	}
	if opts.Compare {
		header = append(header, "RECORDED", "MATCH")
	}
	header = append(header, "ERROR")
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, o := range report.Outcomes {
		row := []string{o.ID}
		if o.Failed() {
			row = append(row, "-", "-")
		} else {
			row = append(row, o.Result.Type.String(), subtypeLabel(o.Result.Subtype))
		}
		if opts.ShowProbabilities {
			for _, c := range classify.Categories {
				if o.Failed() {
					row = append(row, "-")
				} else {
					row = append(row, Probability(o.Result.Probabilities[c]))
				}
			}
		}
		if opts.Compare {
			row = append(row, recordedLabel(o), matchLabel(o))
		}
		errText := ""
		if o.Failed() {
			errText = o.Err.Error()
		}
		row = append(row, errText)
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(report.Outcomes) > 1 {
		writeSummary(w, report.Stats, opts)
	}
	return nil
}

func writeSummary(w io.Writer, s batch.Stats, opts Options) {
	fmt.Fprintf(w, "\n%d grains, %d classified, %d failed", s.Total, s.Classified, s.Failed)
	if opts.Compare {
		fmt.Fprintf(w, ", %d mismatched", s.Mismatched)
	}
	fmt.Fprintln(w)

	types := make([]string, 0, len(s.ByType))
	for t := range s.ByType {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		a, _ := classify.ParseCategory(types[i])
		b, _ := classify.ParseCategory(types[j])
		return a < b
	})
	for _, t := range types {
		fmt.Fprintf(w, "  %-3s %d\n", t, s.ByType[t])
	}
}
