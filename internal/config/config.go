package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fractalab/internal/anim"
	"github.com/san-kum/fractalab/internal/fractal"
	"github.com/san-kum/fractalab/internal/render"
)

const (
	DefaultWidth     = 800
	DefaultHeight    = 600
	DefaultDuration  = 20.0
	DefaultPolicy    = "multiplicative"
	DefaultZoomSpeed = 1.02
)

type Config struct {
	View      ViewConfig       `yaml:"view"`
	Policy    string           `yaml:"policy"`
	BlockSize int              `yaml:"block_size"`
	Workers   int              `yaml:"workers"`
	ZoomSpeed float64          `yaml:"zoom_speed"`
	Animation AnimationConfig  `yaml:"animation"`
	Keyframes []KeyframeConfig `yaml:"keyframes"`
}

type ViewConfig struct {
	CenterX      float64 `yaml:"center_x"`
	CenterY      float64 `yaml:"center_y"`
	Zoom         float64 `yaml:"zoom"`
	MaxIter      int     `yaml:"max_iter"`
	EscapeRadius float64 `yaml:"escape_radius"`
	ColorOffset  float64 `yaml:"color_offset"`
	ColorScale   float64 `yaml:"color_scale"`
	JuliaMode    bool    `yaml:"julia_mode"`
	JuliaCReal   float64 `yaml:"julia_c_real"`
	JuliaCImag   float64 `yaml:"julia_c_imag"`
}

type AnimationConfig struct {
	Duration float64 `yaml:"duration"`
}

type KeyframeConfig struct {
	Time  float64 `yaml:"time"`
	CReal float64 `yaml:"c_real"`
	CImag float64 `yaml:"c_imag"`
}

func DefaultConfig() *Config {
	view := fractal.DefaultView()
	keyframes := make([]KeyframeConfig, 0, 5)
	for _, kf := range anim.DefaultKeyframes() {
		keyframes = append(keyframes, KeyframeConfig{Time: kf.Time, CReal: kf.CReal, CImag: kf.CImag})
	}
	return &Config{
		View: ViewConfig{
			CenterX:      view.CenterX,
			CenterY:      view.CenterY,
			Zoom:         view.Zoom,
			MaxIter:      view.MaxIter,
			EscapeRadius: view.EscapeRadius,
			ColorOffset:  view.ColorOffset,
			ColorScale:   view.ColorScale,
			JuliaMode:    view.JuliaMode,
			JuliaCReal:   view.JuliaCReal,
			JuliaCImag:   view.JuliaCImag,
		},
		Policy:    DefaultPolicy,
		BlockSize: render.DefaultBlockSize,
		ZoomSpeed: DefaultZoomSpeed,
		Animation: AnimationConfig{Duration: DefaultDuration},
		Keyframes: keyframes,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ViewParams converts the view section to an engine snapshot with the
// iteration cap clamped to a sane range.
func (c *Config) ViewParams() fractal.ViewParams {
	return fractal.ViewParams{
		CenterX:      c.View.CenterX,
		CenterY:      c.View.CenterY,
		Zoom:         c.View.Zoom,
		MaxIter:      c.View.MaxIter,
		EscapeRadius: c.View.EscapeRadius,
		ColorOffset:  c.View.ColorOffset,
		ColorScale:   c.View.ColorScale,
		JuliaMode:    c.View.JuliaMode,
		JuliaCReal:   c.View.JuliaCReal,
		JuliaCImag:   c.View.JuliaCImag,
	}.Clamp()
}

func (c *Config) KeyframeList() []anim.Keyframe {
	if len(c.Keyframes) == 0 {
		return anim.DefaultKeyframes()
	}
	kfs := make([]anim.Keyframe, 0, len(c.Keyframes))
	for _, kf := range c.Keyframes {
		kfs = append(kfs, anim.Keyframe{Time: kf.Time, CReal: kf.CReal, CImag: kf.CImag})
	}
	return kfs
}
