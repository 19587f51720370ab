package config

import "sort"

// Presets are classic views: well-known landmarks in the Mandelbrot set and
// a few named Julia constants. Zoom values assume a frame around 800px wide.
var Presets = map[string]ViewConfig{
	"home": {
		CenterX: -0.75, CenterY: 0.0, Zoom: 200,
		MaxIter: 500, EscapeRadius: 2.0, ColorScale: 1.0,
		JuliaCReal: -0.7, JuliaCImag: 0.27015,
	},
	"seahorse": {
		CenterX: -0.75, CenterY: 0.1, Zoom: 8000,
		MaxIter: 800, EscapeRadius: 2.0, ColorScale: 1.0,
		JuliaCReal: -0.7, JuliaCImag: 0.27015,
	},
	"elephant": {
		CenterX: -1.8, CenterY: -0.06, Zoom: 8000,
		MaxIter: 800, EscapeRadius: 2.0, ColorScale: 1.0,
		JuliaCReal: -0.7, JuliaCImag: 0.27015,
	},
	"spiral_minibrot": {
		CenterX: -0.74275, CenterY: 0.13175, Zoom: 530000,
		MaxIter: 1200, EscapeRadius: 2.0, ColorScale: 1.0,
		JuliaCReal: -0.7, JuliaCImag: 0.27015,
	},
	"triple_spiral": {
		CenterX: -0.7465, CenterY: 0.0965, Zoom: 260000,
		MaxIter: 1200, EscapeRadius: 2.0, ColorScale: 1.0,
		JuliaCReal: -0.7, JuliaCImag: 0.27015,
	},
	"dragon": {
		CenterX: -0.7375, CenterY: 0.1825, Zoom: 160000,
		MaxIter: 1500, EscapeRadius: 2.0, ColorScale: 1.0,
		JuliaCReal: -0.7, JuliaCImag: 0.27015,
	},
	"julia": {
		CenterX: 0.0, CenterY: 0.0, Zoom: 200,
		MaxIter: 500, EscapeRadius: 2.0, ColorScale: 1.0,
		JuliaMode: true, JuliaCReal: -0.7, JuliaCImag: 0.27015,
	},
	"rabbit": {
		CenterX: 0.0, CenterY: 0.0, Zoom: 200,
		MaxIter: 500, EscapeRadius: 2.0, ColorScale: 1.0,
		JuliaMode: true, JuliaCReal: -0.123, JuliaCImag: 0.745,
	},
	"dendrite": {
		CenterX: 0.0, CenterY: 0.0, Zoom: 200,
		MaxIter: 500, EscapeRadius: 2.0, ColorScale: 1.0,
		JuliaMode: true, JuliaCReal: 0.0, JuliaCImag: 1.0,
	},
	"san_marco": {
		CenterX: 0.0, CenterY: 0.0, Zoom: 250,
		MaxIter: 500, EscapeRadius: 2.0, ColorScale: 1.0,
		JuliaMode: true, JuliaCReal: -0.75, JuliaCImag: 0.0,
	},
}

// GetPreset returns a full config with the named view applied, or nil if the
// name is unknown.
func GetPreset(name string) *Config {
	view, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.View = view
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
