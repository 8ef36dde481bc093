package output

import (
	"encoding/json"
	"io"

	"presolar/core/batch"
	"presolar/core/input"
)

type jsonFormatter struct{}

// GrainView is the JSON rendering of one outcome
type GrainView struct {
	ID            string          `json:"id"`
	Type          string          `json:"type,omitempty"`
	Subtype       string          `json:"subtype,omitempty"`
	Probabilities *ProbabilityMap `json:"probabilities,omitempty"`
	Recorded      *input.Recorded `json:"recorded,omitempty"`
	Match         *bool           `json:"match,omitempty"`
	Error         string          `json:"error,omitempty"`
}

// ReportView is the JSON rendering of a batch report
type ReportView struct {
	RunID  string      `json:"run_id"`
	Grains []GrainView `json:"grains"`
	Stats  batch.Stats `json:"stats"`
}

// NewGrainView converts an outcome for JSON output
func NewGrainView(o batch.Outcome, opts Options) GrainView {
	v := GrainView{ID: o.ID}
	if o.Failed() {
		v.Error = o.Err.Error()
		return v
	}

	v.Type = o.Result.Type.String()
	v.Subtype = string(o.Result.Subtype)
	if opts.ShowProbabilities {
		p := ProbabilityMap(o.Result.Probabilities)
		v.Probabilities = &p
	}
	if opts.Compare && o.Recorded != nil {
		match := !o.Mismatch()
		v.Recorded = o.Recorded
		v.Match = &match
	}
	return v
}

// NewReportView converts a report for JSON output
func NewReportView(report *batch.Report, opts Options) ReportView {
	view := ReportView{
		RunID:  report.RunID,
		Grains: make([]GrainView, len(report.Outcomes)),
		Stats:  report.Stats,
	}
	for i, o := range report.Outcomes {
		view.Grains[i] = NewGrainView(o, opts)
	}
	return view
}

func (jsonFormatter) Format() Format { return FormatJSON }

func (jsonFormatter) Render(w io.Writer, report *batch.Report, opts Options) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewReportView(report, opts))
}
