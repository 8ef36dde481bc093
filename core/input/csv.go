package input

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"presolar/core/classify"
	"presolar/core/isotope"
	"presolar/internal/errors"
)

// Table is a parsed grain table
type Table struct {
	// Records holds one entry per data row, in file order
	Records []Record

	// Missing lists the ratios without a value column in the header
	Missing []string
}

// columnSet locates everything ReadCSV needs in a header
type columnSet struct {
	id       int
	gtype    int
	subtype  int
	rho      int
	ratios   [5]isotope.Columns
	hasRatio [5]bool
}

var tableRatios = [5]isotope.Ratio{RatioC12C13, RatioN14N15, RatioSi29, RatioSi30, RatioAl26Al27}

// silicon is read as delta values, everything else as plain ratios
var deltaRatios = [5]bool{false, false, true, true, false}

// ReadCSV reads a grain table using PGD column conventions. Empty or "nan"
// cells are absent values or unreported uncertainties. A missing correlation
// is zero.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	labels, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, errors.Input("grain table is empty")
		}
		return nil, errors.Parsing("failed to read table header", err)
	}

	cols, missing, err := locateColumns(isotope.NewHeader(labels))
	if err != nil {
		return nil, err
	}
	table := &Table{Missing: missing}

	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Parsing("failed to read table row", err).WithContext("line", line)
		}

		rec, err := cols.record(row)
		if err != nil {
			return nil, errors.Wrapf(errors.TypeParsing, err, "line %d", line)
		}
		if rec.ID == "" {
			rec.ID = fmt.Sprintf("row-%d", line-1)
		}
		table.Records = append(table.Records, rec)
	}

	return table, nil
}

func locateColumns(h *isotope.Header) (columnSet, []string, error) {
	cols := columnSet{
		id:      h.Index(ColumnID),
		gtype:   h.Index(ColumnType),
		subtype: h.Index(ColumnSubtype),
		rho:     h.Correlation(RatioSi30.Num, RatioSi29.Num),
	}
	if cols.id < 0 {
		cols.id = 0
	}

	var missing []string
	for i, ratio := range tableRatios {
		c, err := h.Ratio(ratio)
		if err != nil {
			missing = append(missing, ratio.String())
			continue
		}
		if c.IsDelta != deltaRatios[i] {
			label := h.Labels()[c.Value]
			if deltaRatios[i] {
				return cols, nil, errors.Input(fmt.Sprintf("column %q must hold delta values, as %s", label, ratio.DeltaLabel())).
					WithContext("column", label)
			}
			return cols, nil, errors.Input(fmt.Sprintf("column %q must hold plain %s ratios", label, ratio)).
				WithContext("column", label)
		}
		cols.ratios[i] = c
		cols.hasRatio[i] = true
	}
	return cols, missing, nil
}

func (cols columnSet) record(row []string) (Record, error) {
	rec := Record{ID: cell(row, cols.id)}

	var msrs [5]classify.Measurement
	for i := range tableRatios {
		if !cols.hasRatio[i] {
			continue
		}
		m, err := measurementFromRow(row, cols.ratios[i])
		if err != nil {
			return rec, fmt.Errorf("%s: %w", tableRatios[i], err)
		}
		msrs[i] = m
	}
	rec.C12C13, rec.N14N15, rec.D29Si, rec.D30Si, rec.Al26Al27 = msrs[0], msrs[1], msrs[2], msrs[3], msrs[4]

	if cols.rho >= 0 {
		rho, ok, err := parseNumber(cell(row, cols.rho))
		if err != nil {
			return rec, fmt.Errorf("correlation: %w", err)
		}
		if ok {
			rec.RhoSi = rho
		}
	}

	if cols.gtype >= 0 {
		if gtype, err := classify.ParseCategory(cell(row, cols.gtype)); err == nil {
			rec.Recorded = &Recorded{Type: gtype}
			if cols.subtype >= 0 {
				sub := cell(row, cols.subtype)
				if !isMissing(sub) {
					rec.Recorded.Subtype = classify.Subtype(sub)
				}
			}
		}
	}

	return rec, nil
}

func measurementFromRow(row []string, c isotope.Columns) (classify.Measurement, error) {
	value, ok, err := parseNumber(cell(row, c.Value))
	if err != nil || !ok {
		return classify.Absent(), err
	}

	plus, hasPlus, err := parseNumber(cell(row, c.ErrPlus))
	if err != nil {
		return classify.Absent(), err
	}
	minus, hasMinus, err := parseNumber(cell(row, c.ErrMinus))
	if err != nil {
		return classify.Absent(), err
	}
	if hasPlus || hasMinus {
		return classify.Asymmetric(value, plus, minus), nil
	}

	if c.Err < 0 {
		return classify.Bare(value), nil
	}
	sigma, _, err := parseNumber(cell(row, c.Err))
	if err != nil {
		return classify.Absent(), err
	}
	return classify.Symmetric(value, sigma), nil
}

// parseNumber returns NaN and false for missing cells
func parseNumber(s string) (float64, bool, error) {
	if isMissing(s) {
		return math.NaN(), false, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN(), false, errors.InvalidMeasurement(fmt.Sprintf("%q is not a number", s), err)
	}
	return v, true, nil
}

func isMissing(s string) bool {
	switch strings.ToLower(s) {
	case "", "nan", "na", "none", "null":
		return true
	}
	return false
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
