package classify

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPhi(t *testing.T) {
	tests := []struct {
		z, want float64
	}{
		{0, 0.5},
		{1, 0.8413447460685429},
		{-1, 0.15865525393145707},
		{1.96, 0.9750021048517795},
		{-40, 0},
		{40, 1},
	}
	for _, tt := range tests {
		if got := Phi(tt.z); !almostEqual(got, tt.want) {
			t.Errorf("Phi(%v) = %v, want %v", tt.z, got, tt.want)
		}
	}
}

// TestThresholdProbabilitySigmaSide proves the uncertainty is picked by the
// side of the threshold the value sits on
func TestThresholdProbabilitySigmaSide(t *testing.T) {
	tests := []struct {
		name      string
		msr       Normalized
		threshold float64
		want      float64
	}{
		{"below uses sigma plus", Normalized{Value: 90, SigmaPlus: 10, SigmaMinus: 1000}, 100, Phi(1)},
		{"above uses sigma minus", Normalized{Value: 110, SigmaPlus: 1000, SigmaMinus: 10}, 100, Phi(-1)},
		{"at threshold uses sigma minus", Normalized{Value: 100, SigmaPlus: 0, SigmaMinus: 10}, 100, 0.5},
		{"exact below", Normalized{Value: 5, SigmaPlus: 0, SigmaMinus: 0}, 10, 1},
		{"exact above", Normalized{Value: 15, SigmaPlus: 0, SigmaMinus: 0}, 10, 0},
		{"exact at threshold", Normalized{Value: 10, SigmaPlus: 0, SigmaMinus: 0}, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ThresholdProbability(tt.msr, tt.threshold); !almostEqual(got, tt.want) {
				t.Errorf("ThresholdProbability() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLineProbability(t *testing.T) {
	diag := Line{Intercept: 0, Slope: 1}
	sym := func(v, s float64) Normalized { return Normalized{Value: v, SigmaPlus: s, SigmaMinus: s} }

	tests := []struct {
		name string
		x, y Normalized
		line Line
		rho  float64
		want float64
	}{
		{"on the line", sym(10, 1), sym(10, 1), diag, 0, 0.5},
		{"far below", sym(10, 1), sym(-100, 1), diag, 0, 1},
		{"far above", sym(10, 1), sym(100, 1), diag, 0, 0},
		// distance 1, variance 1 + 1 - 2*0.5 = 1
		{"correlated", sym(0, 1), sym(1, 1), diag, 0.5, Phi(-1)},
		// distance 1, variance 2
		{"uncorrelated", sym(0, 1), sym(1, 1), diag, 0, Phi(-1 / math.Sqrt2)},
		{"zero variance below", sym(0, 0), sym(-1, 0), diag, 0, 1},
		{"zero variance above", sym(0, 0), sym(1, 0), diag, 0, 0},
		// fully correlated equal errors on a unit slope cancel out
		{"degenerate variance", sym(0, 1), sym(1, 1), diag, 1, 0},
		{"intercept", sym(0, 1), sym(5, 1), Line{Intercept: 5, Slope: 2}, 0, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineProbability(tt.x, tt.y, tt.line, tt.rho); !almostEqual(got, tt.want) {
				t.Errorf("LineProbability() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestElementPriors pins the tables used for unmeasured elements
func TestElementPriors(t *testing.T) {
	if got := aluminiumProbabilities(Normalized{}, false); got != uniform(1) {
		t.Errorf("aluminium prior = %v, want all 1", got.Map())
	}
	if got := nitrogenProbabilities(Normalized{}, false); got != uniform(1) {
		t.Errorf("nitrogen prior = %v, want all 1", got.Map())
	}
	wantC := Probabilities{M: 1, AB: 0, Y: 0, Z: 1, X: 1, C: 1, D: 1, N: 0}
	if got := carbonProbabilities(Normalized{}, false); got != wantC {
		t.Errorf("carbon prior = %v, want %v", got.Map(), wantC.Map())
	}
	wantSi := Probabilities{M: 1, AB: 1, Y: 1, Z: 0, X: 0.2, C: 0, D: 0, N: 0}
	if got := siliconProbabilities(Normalized{}, Normalized{}, false, false, 0); got != wantSi {
		t.Errorf("silicon prior = %v, want %v", got.Map(), wantSi.Map())
	}
}

func TestAluminiumProbabilities(t *testing.T) {
	// far above both thresholds: M, Y and Z excluded, X-like types favoured
	got := aluminiumProbabilities(Normalized{Value: 0.5, SigmaPlus: 0.001, SigmaMinus: 0.001}, true)
	want := Probabilities{M: 0, AB: 1, Y: 0, Z: 0, X: 1, C: 1, D: 1, N: 1}
	for _, c := range Categories {
		if !almostEqual(got[c], want[c]) {
			t.Errorf("high ratio p(%s) = %v, want %v", c, got[c], want[c])
		}
	}

	// far below: X-like types keep the 5% floor
	got = aluminiumProbabilities(Normalized{Value: 0.0001, SigmaPlus: 0.00001, SigmaMinus: 0.00001}, true)
	for _, c := range []Category{X, C, D, N} {
		if !almostEqual(got[c], 0.05) {
			t.Errorf("low ratio p(%s) = %v, want 0.05", c, got[c])
		}
	}
	if got[M] != 1 || got[AB] != 1 {
		t.Errorf("low ratio p(M), p(AB) = %v, %v, want 1, 1", got[M], got[AB])
	}
}

func TestXSubtype(t *testing.T) {
	tests := []struct {
		d29, d30 float64
		want     Subtype
	}{
		{-500, -700, X1},
		{-400, -700, X0},
		{-900, -700, X2},
		{0, 0, X1},
		{31, 0, X0},
		{-31, 0, X2},
	}
	for _, tt := range tests {
		if got := xSubtype(tt.d29, tt.d30); got != tt.want {
			t.Errorf("xSubtype(%v, %v) = %s, want %s", tt.d29, tt.d30, got, tt.want)
		}
	}
}
