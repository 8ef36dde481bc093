package classify

import "testing"

func TestABSubtype(t *testing.T) {
	sym := func(v, s float64) Normalized { return Normalized{Value: v, SigmaPlus: s, SigmaMinus: s} }

	tests := []struct {
		name     string
		carbon   Normalized
		nitrogen Normalized
		want     Subtype
	}{
		{"light carbon and nitrogen", sym(3, 0.1), sym(300, 10), AB1},
		{"heavy carbon and nitrogen", sym(5.5, 0.5), sym(500, 10), AB2},
		// AB1 wins on probability but carbon sits too far above the split
		{"carbon out of AB1 range", sym(5.5, 0.5), sym(150, 10), NoSubtype},
		{"nitrogen out of both ranges", sym(4, 0.1), sym(600, 10), NoSubtype},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := abSubtype(tt.carbon, tt.nitrogen); got != tt.want {
				t.Errorf("abSubtype() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSiliconOnly29(t *testing.T) {
	sym := func(v, s float64) Normalized { return Normalized{Value: v, SigmaPlus: s, SigmaMinus: s} }

	tests := []struct {
		name string
		d29  Normalized
		want Probabilities
	}{
		{"mainstream range", sym(50, 1), Probabilities{M: 1, AB: 1, Y: 1}},
		{"below X cut", sym(-300, 1), Probabilities{X: 1}},
		{"between X and Y cuts", sym(-150, 1), Probabilities{X: 1, Y: 1}},
		{"on X cut", sym(-120, 10), Probabilities{M: 0.5, AB: 0.5, X: 0.5, Y: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := siliconOnly29(tt.d29)
			for i := range got {
				if !almostEqual(got[i], tt.want[i]) {
					t.Errorf("siliconOnly29()[%s] = %v, want %v", Category(i), got[i], tt.want[i])
				}
			}
		})
	}
}
