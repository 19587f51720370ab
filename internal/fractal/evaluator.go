package fractal

import (
	"fmt"
	"math"
)

// Evaluator computes smooth escape-time values for the quadratic map
// z <- z^2 + c. It is stateless apart from the escape radius, so a single
// instance is safe to share across render workers.
type Evaluator struct {
	escapeRadius float64
	radiusSq     float64
}

func NewEvaluator(escapeRadius float64) (*Evaluator, error) {
	if escapeRadius <= 0 {
		return nil, fmt.Errorf("escape radius must be positive, got %f", escapeRadius)
	}
	return &Evaluator{
		escapeRadius: escapeRadius,
		radiusSq:     escapeRadius * escapeRadius,
	}, nil
}

func (e *Evaluator) EscapeRadius() float64 { return e.escapeRadius }

// Mandelbrot iterates z from 0 with c equal to the sampled point and returns
// a continuous value in [0, maxIter]. Points that never escape return exactly
// maxIter. Points inside the main cardioid or the period-2 bulb are known
// bounded and skip the iteration loop entirely.
func (e *Evaluator) Mandelbrot(cr, ci float64, maxIter int) float64 {
	if inCardioidOrBulb(cr, ci) {
		return float64(maxIter)
	}
	return e.iterate(0, 0, cr, ci, maxIter)
}

// Julia iterates z from the sampled point with a fixed constant c. The
// cardioid test does not apply here: it is only valid when the constant
// under test is the point itself.
func (e *Evaluator) Julia(zr, zi, cr, ci float64, maxIter int) float64 {
	return e.iterate(zr, zi, cr, ci, maxIter)
}

func (e *Evaluator) iterate(zr, zi, cr, ci float64, maxIter int) float64 {
	iter := 0
	for zr*zr+zi*zi <= e.radiusSq && iter < maxIter {
		zr, zi = zr*zr-zi*zi+cr, 2*zr*zi+ci
		iter++
	}

	if iter >= maxIter {
		return float64(maxIter)
	}

	// Smooth coloring: fractional escape count from the double log of the
	// final magnitude. The escape test guarantees |z| > escapeRadius here.
	mag := math.Sqrt(zr*zr + zi*zi)
	return float64(iter) + 1 - math.Log(math.Log(mag)/math.Ln2)/math.Ln2
}

// inCardioidOrBulb reports whether (x,y) lies in the main cardioid or the
// period-2 bulb of the Mandelbrot set.
func inCardioidOrBulb(x, y float64) bool {
	q := (x-0.25)*(x-0.25) + y*y
	if q*(q+x-0.25) < 0.25*y*y {
		return true
	}
	return (x+1)*(x+1)+y*y < 1.0/16
}
