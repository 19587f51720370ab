package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/fractalab/internal/adaptive"
	"github.com/san-kum/fractalab/internal/anim"
	"github.com/san-kum/fractalab/internal/config"
	"github.com/san-kum/fractalab/internal/fractal"
	"github.com/san-kum/fractalab/internal/render"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

// settleDelay is how long after the last navigation key a gesture counts as
// finished, triggering the one high-quality settle frame.
const settleDelay = 300 * time.Millisecond

type state int

const (
	stateMenu state = iota
	stateView
)

type model struct {
	state   state
	cursor  int
	presets []string

	view      fractal.ViewParams
	scheduler *render.Scheduler
	tracker   *render.Tracker
	animator  *anim.Animator
	policy    string
	zoomSpeed float64

	buf      render.Buffer
	imgW     int
	imgH     int
	dirty    bool
	autoZoom bool

	lastStats render.Stats
	lastKey   time.Time
	lastTick  time.Time

	width  int
	height int
}

func newModel(cfg *config.Config) (*model, error) {
	ctrl, err := adaptive.New(cfg.Policy)
	if err != nil {
		return nil, err
	}
	scheduler := render.New(ctrl)
	scheduler.SetBlockSize(cfg.BlockSize)
	if cfg.Workers > 0 {
		scheduler.SetWorkers(cfg.Workers)
	}

	return &model{
		state:     stateMenu,
		presets:   config.ListPresets(),
		view:      cfg.ViewParams(),
		scheduler: scheduler,
		tracker:   render.NewTracker(),
		animator:  anim.NewAnimator(cfg.KeyframeList(), cfg.Animation.Duration),
		policy:    ctrl.Name(),
		zoomSpeed: cfg.ZoomSpeed,
		dirty:     true,
		width:     80,
		height:    24,
	}, nil
}

func (m *model) Init() tea.Cmd { return nil }

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(33*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeFrame()
		m.dirty = true
		return m, nil
	case tickMsg:
		if m.state != stateView {
			return m, nil
		}
		m.advance()
		return m, tick()
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state == stateMenu {
		return m.menuKey(msg)
	}
	return m.viewKey(msg)
}

func (m *model) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		if cfg := config.GetPreset(m.presets[m.cursor]); cfg != nil {
			m.view = cfg.ViewParams()
		}
		m.state = stateView
		m.resizeFrame()
		m.dirty = true
		m.lastTick = time.Time{}
		return m, tea.Batch(tea.ClearScreen, tick())
	}
	return m, nil
}

func (m *model) viewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pan := 24 / m.view.Zoom

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "escape":
		m.state = stateMenu
		m.autoZoom = false
		m.animator.Stop()
		return m, tea.ClearScreen
	case "h", "left":
		m.view.CenterX -= pan
		m.navigate()
	case "l", "right":
		m.view.CenterX += pan
		m.navigate()
	case "k", "up":
		m.view.CenterY -= pan
		m.navigate()
	case "j", "down":
		m.view.CenterY += pan
		m.navigate()
	case "i", "+", "=":
		m.view.Zoom *= 1.25
		m.navigate()
	case "o", "-", "_":
		m.view.Zoom /= 1.25
		m.navigate()
	case "I":
		if m.view.MaxIter+50 <= fractal.IterCeiling {
			m.view.MaxIter += 50
		}
		m.dirty = true
	case "O":
		if m.view.MaxIter > 50 {
			m.view.MaxIter -= 50
		}
		m.dirty = true
	case "m":
		m.view.JuliaMode = !m.view.JuliaMode
		m.dirty = true
	case "c":
		m.view.ColorOffset += 0.05
		if m.view.ColorOffset >= 1 {
			m.view.ColorOffset -= 1
		}
		m.dirty = true
	case "z":
		m.autoZoom = !m.autoZoom
		if !m.autoZoom {
			m.tracker.Release()
		}
	case "a":
		if m.animator.Active() {
			m.animator.Stop()
		} else if m.view.JuliaMode {
			m.animator.Start()
		}
	case "r":
		m.view = fractal.DefaultView()
		m.autoZoom = false
		m.animator.Stop()
		m.dirty = true
	}
	return m, nil
}

// navigate marks a pan/zoom gesture: fast frames until the keys go quiet.
func (m *model) navigate() {
	m.tracker.Interact()
	m.lastKey = time.Now()
	m.dirty = true
}

func (m *model) resizeFrame() {
	w := m.width
	if w < 16 {
		w = 16
	}
	h := (m.height - 3) * 2
	if h < 16 {
		h = 16
	}
	m.imgW = w
	m.imgH = h
	m.buf = render.NewBuffer(m.imgW, m.imgH)
}

// advance runs once per tick: progress animations, settle finished gestures,
// and re-render when anything changed.
func (m *model) advance() {
	now := time.Now()
	dt := 0.033
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick).Seconds()
	}
	m.lastTick = now

	if m.autoZoom {
		m.view.Zoom *= m.zoomSpeed
		m.tracker.Interact()
		m.dirty = true
	}

	if m.animator.Active() && m.view.JuliaMode {
		cr, ci, _ := m.animator.Tick(dt)
		m.view.JuliaCReal = cr
		m.view.JuliaCImag = ci
		m.dirty = true
	}

	if m.tracker.Phase() == render.PhaseInteracting && !m.autoZoom && time.Since(m.lastKey) > settleDelay {
		m.tracker.Release()
	}

	fidelity, due := m.tracker.Next()
	if !due && !m.dirty {
		return
	}

	req := render.Request{
		Params:   m.view,
		Width:    m.imgW,
		Height:   m.imgH,
		Fidelity: fidelity,
	}
	stats, err := m.scheduler.Render(req, m.buf)
	if err == nil {
		m.lastStats = stats
	}
	m.dirty = false
}

func (m *model) View() string {
	if m.state == stateMenu {
		return m.viewMenu()
	}
	return m.viewFrame()
}

func (m *model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("         " + cyan.Render("f r a c t a l a b") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range m.presets {
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(name) + "\n")
		} else {
			b.WriteString("        " + dim.Render(name) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter explore   q quit") + "\n")

	return b.String()
}

// viewFrame draws the pixel buffer with upper-half-block cells: each
// terminal cell stacks two buffer rows, foreground on top.
func (m *model) viewFrame() string {
	var b strings.Builder

	for y := 0; y+1 < m.imgH; y += 2 {
		for x := 0; x < m.imgW; x++ {
			top := m.buf[y*m.imgW+x]
			bot := m.buf[(y+1)*m.imgW+x]
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(hexColor(top))).
				Background(lipgloss.Color(hexColor(bot)))
			b.WriteString(style.Render("▀"))
		}
		b.WriteString("\n")
	}

	mode := "mandelbrot"
	if m.view.JuliaMode {
		mode = fmt.Sprintf("julia c=(%.4f,%.4f)", m.view.JuliaCReal, m.view.JuliaCImag)
	}
	status := fmt.Sprintf(" %s  center=(%.6f,%.6f)  zoom=%.0fx  iter=%d(%d)  %s %.1fms",
		mode, m.view.CenterX, m.view.CenterY, m.view.Zoom/fractal.DefaultZoom,
		m.view.MaxIter, m.lastStats.EffectiveIter,
		m.lastStats.Fidelity, float64(m.lastStats.Elapsed.Microseconds())/1000)
	b.WriteString(cyan.Render(status) + "\n")

	if m.animator.Active() {
		b.WriteString(yellow.Render(fmt.Sprintf(" animating %.0f%%", m.animator.Progress()*100)) + " ")
	}
	b.WriteString(dim.Render(" hjkl pan  i/o zoom  I/O iter  m julia  a anim  z autozoom  c color  r reset  q back"))

	return b.String()
}

func hexColor(pix uint32) string {
	return fmt.Sprintf("#%06x", pix&0xFFFFFF)
}

// RunExplore starts the terminal explorer.
func RunExplore(cfg *config.Config) error {
	m, err := newModel(cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
