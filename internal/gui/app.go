// Package gui is the windowed shell: it owns the mutable current view,
// translates mouse and keyboard gestures into view deltas and fidelity
// hints, and uploads the rendered buffer as a texture each frame. All
// fractal computation stays in the render scheduler; this is an adapter.
package gui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/san-kum/fractalab/internal/adaptive"
	"github.com/san-kum/fractalab/internal/anim"
	"github.com/san-kum/fractalab/internal/config"
	"github.com/san-kum/fractalab/internal/fractal"
	"github.com/san-kum/fractalab/internal/render"
)

const (
	minWidth  = 200
	minHeight = 150
	maxWidth  = 2000
	maxHeight = 1500
)

type game struct {
	view      fractal.ViewParams
	scheduler *render.Scheduler
	tracker   *render.Tracker
	animator  *anim.Animator
	zoomSpeed float64
	autoZoom  bool

	buf    render.Buffer
	tex    *ebiten.Image
	width  int
	height int
	dirty  bool

	dragging   bool
	lastX      int
	lastY      int
	wheelQuiet int

	lastStats render.Stats
}

func newGame(cfg *config.Config) (*game, error) {
	ctrl, err := adaptive.New(cfg.Policy)
	if err != nil {
		return nil, err
	}
	scheduler := render.New(ctrl)
	scheduler.SetBlockSize(cfg.BlockSize)
	if cfg.Workers > 0 {
		scheduler.SetWorkers(cfg.Workers)
	}

	return &game{
		view:      cfg.ViewParams(),
		scheduler: scheduler,
		tracker:   render.NewTracker(),
		animator:  anim.NewAnimator(cfg.KeyframeList(), cfg.Animation.Duration),
		zoomSpeed: cfg.ZoomSpeed,
		width:     config.DefaultWidth,
		height:    config.DefaultHeight,
		dirty:     true,
	}, nil
}

func (g *game) Update() error {
	g.handleKeyboard()
	g.handleMouse()

	if g.autoZoom {
		g.view.Zoom *= g.zoomSpeed
		g.tracker.Interact()
		g.dirty = true
	}

	if g.animator.Active() && g.view.JuliaMode {
		cr, ci, _ := g.animator.Tick(1.0 / float64(ebiten.TPS()))
		g.view.JuliaCReal = cr
		g.view.JuliaCImag = ci
		g.dirty = true
	}

	// A wheel gesture has no release event; treat a short quiet period as
	// the gesture end.
	if g.wheelQuiet > 0 {
		g.wheelQuiet--
		if g.wheelQuiet == 0 && !g.dragging && !g.autoZoom {
			g.tracker.Release()
		}
	}

	fidelity, due := g.tracker.Next()
	if !due && !g.dirty {
		return nil
	}

	if len(g.buf) != g.width*g.height {
		g.buf = render.NewBuffer(g.width, g.height)
	}
	req := render.Request{
		Params:   g.view,
		Width:    g.width,
		Height:   g.height,
		Fidelity: fidelity,
	}
	stats, err := g.scheduler.Render(req, g.buf)
	if err != nil {
		return err
	}
	g.lastStats = stats
	g.dirty = false
	return nil
}

func (g *game) handleKeyboard() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ):
		if g.view.MaxIter+10 <= fractal.IterCeiling {
			g.view.MaxIter += 10
			g.dirty = true
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		if g.view.MaxIter > 10 {
			g.view.MaxIter -= 10
			g.dirty = true
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.view = fractal.DefaultView()
		g.autoZoom = false
		g.animator.Stop()
		g.dirty = true
	case inpututil.IsKeyJustPressed(ebiten.KeyJ):
		g.view.JuliaMode = !g.view.JuliaMode
		g.dirty = true
	case inpututil.IsKeyJustPressed(ebiten.KeyZ):
		g.autoZoom = !g.autoZoom
		if !g.autoZoom {
			g.tracker.Release()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		if g.animator.Active() {
			g.animator.Stop()
		} else if g.view.JuliaMode {
			g.animator.Start()
		}
	}
}

func (g *game) handleMouse() {
	x, y := ebiten.CursorPosition()

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if g.dragging {
			dx, dy := x-g.lastX, y-g.lastY
			if dx != 0 || dy != 0 {
				g.view.CenterX -= float64(dx) / g.view.Zoom
				g.view.CenterY -= float64(dy) / g.view.Zoom
				g.tracker.Interact()
				g.dirty = true
			}
		} else {
			g.dragging = true
			g.tracker.Interact()
		}
		g.lastX, g.lastY = x, y
	} else if g.dragging {
		g.dragging = false
		g.tracker.Release()
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		factor := 1.1
		if wy < 0 {
			factor = 1 / 1.1
		}
		g.view.Zoom *= factor
		g.tracker.Interact()
		g.wheelQuiet = 12
		g.dirty = true
	}

	// Shift-click recenters and zooms in on the clicked point.
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && ebiten.IsKeyPressed(ebiten.KeyShift) {
		re, im := g.view.PointAt(x, y, g.width, g.height)
		g.view.CenterX = re
		g.view.CenterY = im
		g.view.Zoom *= 2
		g.tracker.Interact()
		g.wheelQuiet = 12
		g.dirty = true
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.tex == nil || g.tex.Bounds().Dx() != g.width || g.tex.Bounds().Dy() != g.height {
		if g.tex != nil {
			g.tex.Deallocate()
		}
		g.tex = ebiten.NewImage(g.width, g.height)
	}
	if len(g.buf) == g.width*g.height {
		g.tex.WritePixels(g.buf.RGBA())
	}
	screen.DrawImage(g.tex, nil)

	mode := "mandelbrot"
	if g.view.JuliaMode {
		mode = fmt.Sprintf("julia c=(%.4f,%.4f)", g.view.JuliaCReal, g.view.JuliaCImag)
	}
	msg := fmt.Sprintf("%s  zoom %.0fx  iter %d  %s %.1fms",
		mode, g.view.Zoom/fractal.DefaultZoom, g.lastStats.EffectiveIter,
		g.lastStats.Fidelity, float64(g.lastStats.Elapsed.Microseconds())/1000)
	ebitenutil.DebugPrint(screen, msg)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := outsideWidth, outsideHeight
	if w < minWidth {
		w = minWidth
	}
	if w > maxWidth {
		w = maxWidth
	}
	if h < minHeight {
		h = minHeight
	}
	if h > maxHeight {
		h = maxHeight
	}
	if w != g.width || h != g.height {
		g.width, g.height = w, h
		g.dirty = true
	}
	return g.width, g.height
}

// Run opens the explorer window and blocks until it closes.
func Run(cfg *config.Config) error {
	g, err := newGame(cfg)
	if err != nil {
		return err
	}
	ebiten.SetWindowTitle("fractalab")
	ebiten.SetWindowSize(config.DefaultWidth, config.DefaultHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}
