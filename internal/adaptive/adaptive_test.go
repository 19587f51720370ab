package adaptive

import (
	"testing"

	"github.com/san-kum/fractalab/internal/fractal"
)

func TestEffectiveNeverBelowBase(t *testing.T) {
	controllers := []Controller{NewMultiplicative(), NewAdditive()}
	zooms := []float64{1, 50, 200, 2000, 1e6, 1e12}
	bases := []int{10, 100, 500, 5000}

	for _, ctrl := range controllers {
		for _, base := range bases {
			for _, zoom := range zooms {
				eff := ctrl.Effective(base, zoom)
				if eff < base {
					t.Errorf("%s: effective(%d, %g) = %d below base", ctrl.Name(), base, zoom, eff)
				}
				if eff > fractal.IterCeiling {
					t.Errorf("%s: effective(%d, %g) = %d above ceiling", ctrl.Name(), base, zoom, eff)
				}
			}
		}
	}
}

func TestEffectiveMonotonicInZoom(t *testing.T) {
	controllers := []Controller{NewMultiplicative(), NewAdditive()}
	zooms := []float64{1, 100, 200, 500, 2000, 2e4, 2e5, 2e6, 2e9}

	for _, ctrl := range controllers {
		prev := 0
		for _, zoom := range zooms {
			eff := ctrl.Effective(500, zoom)
			if eff < prev {
				t.Errorf("%s: effective decreased from %d to %d at zoom %g", ctrl.Name(), prev, eff, zoom)
			}
			prev = eff
		}
	}
}

func TestMultiplicativeScaling(t *testing.T) {
	ctrl := NewMultiplicative()

	tests := []struct {
		base int
		zoom float64
		want int
	}{
		{500, 200, 500},    // reference zoom: unchanged
		{500, 100, 500},    // below reference: unchanged
		{500, 2000, 500},   // one decade: log10=1, unchanged
		{500, 2e5, 1500},   // three decades: x3
		{500, 2e6, 2000},   // four decades: x4
		{2000, 2e6, 5000},  // capped at ceiling
		{5000, 1e12, 5000}, // base already at ceiling
	}
	for _, tt := range tests {
		got := ctrl.Effective(tt.base, tt.zoom)
		// Decade boundaries sit on log10 rounding edges; allow one
		// iteration of slack there.
		if got < tt.want-1 || got > tt.want+1 {
			t.Errorf("effective(%d, %g): expected ~%d, got %d", tt.base, tt.zoom, tt.want, got)
		}
	}
}

func TestAdditiveBonus(t *testing.T) {
	ctrl := NewAdditive()

	tests := []struct {
		base int
		zoom float64
		want int
	}{
		{500, 200, 500},  // reference zoom: no bonus
		{500, 100, 500},  // below reference: no bonus
		{500, 2000, 550}, // one decade: +50
		{500, 2e5, 650},  // three decades: +150
		{4990, 2e6, 5000},
	}
	for _, tt := range tests {
		got := ctrl.Effective(tt.base, tt.zoom)
		if got < tt.want-1 || got > tt.want+1 {
			t.Errorf("effective(%d, %g): expected ~%d, got %d", tt.base, tt.zoom, tt.want, got)
		}
	}
}

func TestRegistry(t *testing.T) {
	for name, want := range map[string]string{
		"":               "multiplicative",
		"multiplicative": "multiplicative",
		"additive":       "additive",
	} {
		ctrl, err := New(name)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		if ctrl.Name() != want {
			t.Errorf("New(%q): expected %s, got %s", name, want, ctrl.Name())
		}
	}

	if _, err := New("quadratic"); err == nil {
		t.Error("expected error for unknown policy")
	}
}
