package classify

import (
	"encoding/json"
	"fmt"
	"math"

	"presolar/internal/errors"
)

// Kind identifies which variant a Measurement holds
type Kind uint8

const (
	// KindAbsent means the isotope ratio was not measured
	KindAbsent Kind = iota

	// KindBare is a value reported without any uncertainty
	KindBare

	// KindSymmetric is a value with one symmetric uncertainty
	KindSymmetric

	// KindAsymmetric is a value with separate upper and lower uncertainties
	KindAsymmetric
)

// Measurement is one isotope ratio (or delta value) with its reported error.
// The zero value is an absent measurement. A NaN uncertainty means the error
// was not reported.
type Measurement struct {
	kind  Kind
	value float64
	plus  float64
	minus float64
}

// Normalized is a present measurement with every uncertainty filled in.
// Symmetric measurements have SigmaPlus == SigmaMinus.
type Normalized struct {
	Value      float64
	SigmaPlus  float64
	SigmaMinus float64
}

// Absent returns a measurement that was not taken
func Absent() Measurement {
	return Measurement{}
}

// Bare returns a measurement without any uncertainty information
func Bare(value float64) Measurement {
	return Measurement{kind: KindBare, value: value, plus: math.NaN(), minus: math.NaN()}
}

// Symmetric returns a measurement with a symmetric uncertainty
func Symmetric(value, sigma float64) Measurement {
	return Measurement{kind: KindSymmetric, value: value, plus: sigma, minus: sigma}
}

// Asymmetric returns a measurement with upper and lower uncertainties
func Asymmetric(value, sigmaPlus, sigmaMinus float64) Measurement {
	return Measurement{kind: KindAsymmetric, value: value, plus: sigmaPlus, minus: sigmaMinus}
}

// Kind returns the variant of the measurement
func (m Measurement) Kind() Kind {
	return m.kind
}

// IsAbsent reports whether the measurement was not taken
func (m Measurement) IsAbsent() bool {
	return m.kind == KindAbsent
}

// Value returns the measured value. It is zero for absent measurements.
func (m Measurement) Value() float64 {
	return m.value
}

// Normalize fills unreported uncertainties with |value|/10. It returns false
// for absent measurements.
func (m Measurement) Normalize() (Normalized, bool) {
	if m.kind == KindAbsent {
		return Normalized{}, false
	}

	fallback := math.Abs(m.value / 10)
	n := Normalized{Value: m.value, SigmaPlus: m.plus, SigmaMinus: m.minus}
	if m.kind == KindBare || math.IsNaN(n.SigmaPlus) {
		n.SigmaPlus = fallback
	}
	if m.kind == KindBare || math.IsNaN(n.SigmaMinus) {
		n.SigmaMinus = fallback
	}
	return n, true
}

// String renders the measurement in the CLI flag grammar
func (m Measurement) String() string {
	switch m.kind {
	case KindBare:
		return fmt.Sprintf("%g", m.value)
	case KindSymmetric:
		return fmt.Sprintf("%g:%s", m.value, sigmaString(m.plus))
	case KindAsymmetric:
		return fmt.Sprintf("%g:+%s:-%s", m.value, sigmaString(m.plus), sigmaString(m.minus))
	default:
		return "-"
	}
}

func sigmaString(s float64) string {
	if math.IsNaN(s) {
		return ""
	}
	return fmt.Sprintf("%g", s)
}

// MarshalJSON encodes the measurement as null, a number, [value, sigma] or
// [value, [sigmaPlus, sigmaMinus]]. Unreported uncertainties become null.
func (m Measurement) MarshalJSON() ([]byte, error) {
	switch m.kind {
	case KindBare:
		return json.Marshal(m.value)
	case KindSymmetric:
		return json.Marshal([]interface{}{m.value, jsonSigma(m.plus)})
	case KindAsymmetric:
		return json.Marshal([]interface{}{m.value, []interface{}{jsonSigma(m.plus), jsonSigma(m.minus)}})
	default:
		return []byte("null"), nil
	}
}

func jsonSigma(s float64) interface{} {
	if math.IsNaN(s) {
		return nil
	}
	return s
}

// UnmarshalJSON accepts the forms produced by MarshalJSON. An uncertainty
// pair with other than two entries is an invalid measurement.
func (m *Measurement) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.InvalidMeasurement("measurement is not valid JSON", err)
	}

	switch v := raw.(type) {
	case nil:
		*m = Absent()
		return nil
	case float64:
		*m = Bare(v)
		return nil
	case []interface{}:
		return m.fromPair(v)
	default:
		return errors.InvalidMeasurement(fmt.Sprintf("unsupported measurement %s", string(data)), nil)
	}
}

func (m *Measurement) fromPair(pair []interface{}) error {
	if len(pair) != 2 {
		return errors.InvalidMeasurement(
			fmt.Sprintf("measurement must be [value, uncertainty], got %d entries", len(pair)), nil)
	}
	value, ok := pair[0].(float64)
	if !ok {
		return errors.InvalidMeasurement(fmt.Sprintf("measurement value %v is not a number", pair[0]), nil)
	}

	switch unc := pair[1].(type) {
	case nil:
		*m = Symmetric(value, math.NaN())
	case float64:
		*m = Symmetric(value, unc)
	case []interface{}:
		if len(unc) != 2 {
			return errors.InvalidMeasurement(
				fmt.Sprintf("asymmetric uncertainty must have two entries, got %d", len(unc)), nil)
		}
		plus, err := optionalSigma(unc[0])
		if err != nil {
			return err
		}
		minus, err := optionalSigma(unc[1])
		if err != nil {
			return err
		}
		*m = Asymmetric(value, plus, minus)
	default:
		return errors.InvalidMeasurement(fmt.Sprintf("uncertainty %v is not a number or pair", pair[1]), nil)
	}
	return nil
}

func optionalSigma(v interface{}) (float64, error) {
	switch s := v.(type) {
	case nil:
		return math.NaN(), nil
	case float64:
		return s, nil
	default:
		return 0, errors.InvalidMeasurement(fmt.Sprintf("uncertainty %v is not a number", v), nil)
	}
}
