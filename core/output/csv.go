package output

import (
	"encoding/csv"
	"io"

	"presolar/core/batch"
	"presolar/core/classify"
)

type csvFormatter struct{}

func (csvFormatter) Format() Format { return FormatCSV }

func (csvFormatter) Render(w io.Writer, report *batch.Report, opts Options) error {
	cw := csv.NewWriter(w)

	header := []string{"PGD ID", "PGD Type", "PGD Subtype"}
	if opts.ShowProbabilities {
		for _, c := range classify.Categories {
			header = append(header, "p("+c.String()+")")
		}
	}
	if opts.Compare {
		header = append(header, "Recorded", "Match")
	}
	header = append(header, "Error")
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, o := range report.Outcomes {
		row := []string{o.ID, "", ""}
		if !o.Failed() {
			row[1] = o.Result.Type.String()
			row[2] = string(o.Result.Subtype)
		}
		if opts.ShowProbabilities {
			for _, c := range classify.Categories {
				if o.Failed() {
					row = append(row, "")
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
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
