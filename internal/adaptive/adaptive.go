// Package adaptive derives an effective iteration cap from the zoom level.
// Deeper zooms need more iterations to resolve boundary detail; shallow views
// should not pay for them. Two policies exist because the tradeoff is a
// judgment call: multiplicative scales the user's base cap by the zoom
// decade, additive grants a flat per-decade bonus.
package adaptive

import (
	"fmt"
	"math"

	"github.com/san-kum/fractalab/internal/fractal"
)

// ReferenceZoom is the magnification below which no extra iterations are
// granted.
const ReferenceZoom = fractal.DefaultZoom

// Controller maps (base cap, zoom) to an effective cap. Implementations
// guarantee effective >= base and effective <= fractal.IterCeiling, and are
// monotonically non-decreasing in zoom.
type Controller interface {
	Name() string
	Effective(base int, zoom float64) int
}

type Multiplicative struct {
	refZoom float64
}

func NewMultiplicative() *Multiplicative {
	return &Multiplicative{refZoom: ReferenceZoom}
}

func (m *Multiplicative) Name() string { return "multiplicative" }

func (m *Multiplicative) Effective(base int, zoom float64) int {
	zoomFactor := math.Max(zoom/m.refZoom, 1)
	scaled := int(float64(base) * math.Max(math.Log10(zoomFactor), 1))
	return clampCap(scaled, base)
}

type Additive struct {
	refZoom   float64
	perDecade float64
}

func NewAdditive() *Additive {
	return &Additive{refZoom: ReferenceZoom, perDecade: 50}
}

func (a *Additive) Name() string { return "additive" }

func (a *Additive) Effective(base int, zoom float64) int {
	zoomFactor := zoom / a.refZoom
	bonus := 0.0
	if zoomFactor > 1 {
		bonus = a.perDecade * math.Log10(zoomFactor)
	}
	return clampCap(base+int(bonus), base)
}

func clampCap(effective, base int) int {
	if effective < base {
		effective = base
	}
	if effective > fractal.IterCeiling {
		effective = fractal.IterCeiling
	}
	return effective
}

// New returns the controller registered under name.
func New(name string) (Controller, error) {
	switch name {
	case "multiplicative", "":
		return NewMultiplicative(), nil
	case "additive":
		return NewAdditive(), nil
	default:
		return nil, fmt.Errorf("unknown iteration policy: %s", name)
	}
}
