package palette

import "math"

// Black is the in-set color.
const Black uint32 = 0x000000

// Map converts a continuous escape value to a packed 0xRRGGBB pixel.
// Values at or beyond maxIter are in the set and render black. The palette
// is a fixed cubic/quartic blend periodic in t with period 1, so offset
// cyclically shifts the colors and scale controls banding density.
func Map(value float64, maxIter int, scale, offset float64) uint32 {
	if value >= float64(maxIter) {
		return Black
	}

	t := fract(value/float64(maxIter)*scale + offset)

	r := uint32(9 * (1 - t) * t * t * t * 255)
	g := uint32(15 * (1 - t) * (1 - t) * t * t * 255)
	b := uint32(8.5 * (1 - t) * (1 - t) * (1 - t) * t * 255)

	return r<<16 | g<<8 | b
}

// fract returns the fractional part of x, always in [0,1).
func fract(x float64) float64 {
	f := x - math.Floor(x)
	if f >= 1 {
		return 0
	}
	return f
}
