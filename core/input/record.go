// Package input reads grain measurements from tables and JSON documents.
package input

import (
	"presolar/core/classify"
	"presolar/core/isotope"
)

// Record is one grain to classify
type Record struct {
	// ID is the grain identifier, e.g. "SiC-1994-HOP-000425"
	ID string `json:"id"`

	classify.Grain

	// Recorded is the type stored alongside the measurements, if any
	Recorded *Recorded `json:"recorded,omitempty"`
}

// Recorded is a previously assigned type and subtype
type Recorded struct {
	Type    classify.Category `json:"type"`
	Subtype classify.Subtype  `json:"subtype,omitempty"`
}

// Ratios used by the classifier, in grain field order
var (
	RatioC12C13   = isotope.Ratio{Num: isotope.MustParse("12C"), Den: isotope.MustParse("13C")}
	RatioN14N15   = isotope.Ratio{Num: isotope.MustParse("14N"), Den: isotope.MustParse("15N")}
	RatioSi29     = isotope.Ratio{Num: isotope.MustParse("29Si"), Den: isotope.MustParse("28Si")}
	RatioSi30     = isotope.Ratio{Num: isotope.MustParse("30Si"), Den: isotope.MustParse("28Si")}
	RatioAl26Al27 = isotope.Ratio{Num: isotope.MustParse("26Al"), Den: isotope.MustParse("27Al")}
)

const (
	// ColumnID is the grain identifier column of PGD tables
	ColumnID = "PGD ID"

	// ColumnType is the recorded grain type column
	ColumnType = "PGD Type"

	// ColumnSubtype is the recorded subtype column
	ColumnSubtype = "PGD Subtype"
)
