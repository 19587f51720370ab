package fractal

import "fmt"

const (
	// DefaultZoom is the reference magnification: pixels per unit of the
	// complex plane at 1x.
	DefaultZoom = 200.0

	// IterCeiling bounds worst-case compute per pixel regardless of how
	// deep the view zooms.
	IterCeiling = 5000
)

// ViewParams is an immutable snapshot of the view for one frame. The owning
// shell keeps the mutable current view and passes a copy into each render
// call, so worker goroutines never observe a half-updated view.
type ViewParams struct {
	CenterX      float64
	CenterY      float64
	Zoom         float64
	MaxIter      int
	EscapeRadius float64
	ColorOffset  float64
	ColorScale   float64
	JuliaMode    bool
	JuliaCReal   float64
	JuliaCImag   float64
}

func DefaultView() ViewParams {
	return ViewParams{
		CenterX:      -0.75,
		CenterY:      0.0,
		Zoom:         DefaultZoom,
		MaxIter:      500,
		EscapeRadius: 2.0,
		ColorOffset:  0.0,
		ColorScale:   1.0,
		JuliaMode:    false,
		JuliaCReal:   -0.7,
		JuliaCImag:   0.27015,
	}
}

func (p ViewParams) Validate() error {
	if p.Zoom <= 0 {
		return fmt.Errorf("zoom must be positive, got %f", p.Zoom)
	}
	if p.EscapeRadius <= 0 {
		return fmt.Errorf("escape radius must be positive, got %f", p.EscapeRadius)
	}
	if p.ColorScale <= 0 {
		return fmt.Errorf("color scale must be positive, got %f", p.ColorScale)
	}
	if p.MaxIter < 1 || p.MaxIter > IterCeiling {
		return fmt.Errorf("max iterations must be in [1,%d], got %d", IterCeiling, p.MaxIter)
	}
	return nil
}

// Clamp returns a copy with MaxIter forced into [1, IterCeiling].
func (p ViewParams) Clamp() ViewParams {
	if p.MaxIter < 1 {
		p.MaxIter = 1
	}
	if p.MaxIter > IterCeiling {
		p.MaxIter = IterCeiling
	}
	return p
}

// PointAt maps a pixel coordinate to its complex-plane point for a
// width x height grid centered on the view.
func (p ViewParams) PointAt(x, y, width, height int) (re, im float64) {
	re = p.CenterX + (float64(x)-float64(width)/2)/p.Zoom
	im = p.CenterY + (float64(y)-float64(height)/2)/p.Zoom
	return re, im
}
