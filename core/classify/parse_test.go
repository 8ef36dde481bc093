package classify

import (
	"math"
	"testing"

	"presolar/internal/errors"
)

func TestParseMeasurement(t *testing.T) {
	tests := []struct {
		in   string
		want Measurement
	}{
		{"", Absent()},
		{"-", Absent()},
		{"  ", Absent()},
		{"20.1", Bare(20.1)},
		{"-525", Bare(-525)},
		{"20.1:0.15", Symmetric(20.1, 0.15)},
		{"529:+67.3:-53.7", Asymmetric(529, 67.3, 53.7)},
		{"529:67.3:53.7", Asymmetric(529, 67.3, 53.7)},
	}

	for _, tt := range tests {
		got, err := ParseMeasurement(tt.in)
		if err != nil {
			t.Errorf("ParseMeasurement(%q) error = %v", tt.in, err)
			continue
		}
		if !sameMeasurement(got, tt.want) {
			t.Errorf("ParseMeasurement(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// TestParseMeasurementEmptySide proves an empty uncertainty means unreported
func TestParseMeasurementEmptySide(t *testing.T) {
	m, err := ParseMeasurement("100:+:-3")
	if err != nil {
		t.Fatalf("ParseMeasurement() error = %v", err)
	}
	if m.Kind() != KindAsymmetric {
		t.Fatalf("Kind() = %v, want asymmetric", m.Kind())
	}
	n, _ := m.Normalize()
	if n.SigmaPlus != 10 || n.SigmaMinus != 3 {
		t.Errorf("Normalize() = %+v, want sigma+ 10 and sigma- 3", n)
	}

	m, err = ParseMeasurement("-20:")
	if err != nil {
		t.Fatalf("ParseMeasurement() error = %v", err)
	}
	if n, _ := m.Normalize(); n.SigmaPlus != 2 || n.SigmaMinus != 2 {
		t.Errorf("Normalize() = %+v, want sigma 2", n)
	}
}

func TestParseMeasurementInvalid(t *testing.T) {
	for _, in := range []string{"abc", "1:x", "1:+2:-y", "1:2:3:4", ":1"} {
		if _, err := ParseMeasurement(in); !errors.IsType(err, errors.TypeMeasurement) {
			t.Errorf("ParseMeasurement(%q) error = %v, want %s", in, err, errors.TypeMeasurement)
		}
	}
}

func TestParseMeasurementRoundTrip(t *testing.T) {
	for _, m := range []Measurement{
		Bare(0.00089),
		Symmetric(-21.34, 10.44),
		Asymmetric(250.734, 13.3598, 12.0732),
		Asymmetric(1, math.NaN(), 2),
	} {
		got, err := ParseMeasurement(m.String())
		if err != nil {
			t.Errorf("ParseMeasurement(%q) error = %v", m.String(), err)
			continue
		}
		if !sameMeasurement(got, m) {
			t.Errorf("round trip of %q gave %q", m.String(), got.String())
		}
	}
}
