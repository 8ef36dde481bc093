package classify

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"presolar/internal/errors"
)

// ParseMeasurement reads the compact form used on the command line:
//
//	""  or "-"        absent
//	"20.1"            value, uncertainty not reported
//	"20.1:0.15"       symmetric
//	"529:+67.3:-53.7" asymmetric; either side may be left empty
func ParseMeasurement(s string) (Measurement, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return Absent(), nil
	}

	parts := strings.Split(s, ":")
	value, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return Absent(), errors.InvalidMeasurement(fmt.Sprintf("invalid value in %q", s), err)
	}

	switch len(parts) {
	case 1:
		return Bare(value), nil
	case 2:
		sigma, err := parseSigma(parts[1], "")
		if err != nil {
			return Absent(), err
		}
		return Symmetric(value, sigma), nil
	case 3:
		plus, err := parseSigma(parts[1], "+")
		if err != nil {
			return Absent(), err
		}
		minus, err := parseSigma(parts[2], "-")
		if err != nil {
			return Absent(), err
		}
		return Asymmetric(value, plus, minus), nil
	default:
		return Absent(), errors.InvalidMeasurement(
			fmt.Sprintf("%q has %d uncertainties, expected at most two", s, len(parts)-1), nil)
	}
}

func parseSigma(s, sign string) (float64, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), sign)
	if s == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.InvalidMeasurement(fmt.Sprintf("invalid uncertainty %q", s), err)
	}
	return v, nil
}
