package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/fractalab/internal/adaptive"
	"github.com/san-kum/fractalab/internal/anim"
	"github.com/san-kum/fractalab/internal/config"
	"github.com/san-kum/fractalab/internal/export"
	"github.com/san-kum/fractalab/internal/fractal"
	"github.com/san-kum/fractalab/internal/gui"
	"github.com/san-kum/fractalab/internal/render"
	"github.com/san-kum/fractalab/internal/storage"
	"github.com/san-kum/fractalab/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	width      int
	height     int
	outPath    string
	policy     string
	blockSize  int
	workers    int
	fast       bool
	frames     int
	duration   float64
	centerX    float64
	centerY    float64
	zoom       float64
	maxIter    int
	juliaMode  bool
	juliaCR    float64
	juliaCI    float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fractalab",
		Short: "escape-time fractal rendering lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return tui.RunExplore(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fractalab", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render a single frame to PNG",
		RunE:  renderFrame,
	}
	addViewFlags(renderCmd)
	renderCmd.Flags().StringVar(&outPath, "out", "fractal.png", "output image path")
	renderCmd.Flags().BoolVar(&fast, "fast", false, "use the fast preview tier")

	animateCmd := &cobra.Command{
		Use:   "animate",
		Short: "render a Julia keyframe sweep to numbered frames",
		RunE:  animateFrames,
	}
	addViewFlags(animateCmd)
	animateCmd.Flags().IntVar(&frames, "frames", 120, "number of frames")
	animateCmd.Flags().Float64Var(&duration, "duration", config.DefaultDuration, "sweep duration in seconds")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark render time across zoom levels",
		RunE:  benchZooms,
	}
	addViewFlags(benchCmd)

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "interactive terminal explorer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return tui.RunExplore(cfg)
		},
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "interactive windowed explorer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return gui.Run(cfg)
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list named views",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				view := config.Presets[name]
				mode := "mandelbrot"
				if view.JuliaMode {
					mode = "julia"
				}
				fmt.Printf("  %-16s %-10s center=(%g,%g) zoom=%g\n", name, mode, view.CenterX, view.CenterY, view.Zoom)
			}
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved render runs",
		RunE:  listRuns,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "fractalab.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}

	rootCmd.AddCommand(renderCmd, animateCmd, benchCmd, exploreCmd, guiCmd, presetsCmd, listCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "start from a named view")
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "frame width")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "frame height")
	cmd.Flags().Float64Var(&centerX, "center-x", -0.75, "view center, real part")
	cmd.Flags().Float64Var(&centerY, "center-y", 0.0, "view center, imaginary part")
	cmd.Flags().Float64Var(&zoom, "zoom", fractal.DefaultZoom, "pixels per unit")
	cmd.Flags().IntVar(&maxIter, "iter", 500, "base iteration cap")
	cmd.Flags().BoolVar(&juliaMode, "julia", false, "render a Julia set")
	cmd.Flags().Float64Var(&juliaCR, "c-real", -0.7, "Julia constant, real part")
	cmd.Flags().Float64Var(&juliaCI, "c-imag", 0.27015, "Julia constant, imaginary part")
	cmd.Flags().StringVar(&policy, "policy", "", "iteration policy (multiplicative|additive)")
	cmd.Flags().IntVar(&blockSize, "block", render.DefaultBlockSize, "fast-tier sampling block size")
	cmd.Flags().IntVar(&workers, "workers", 0, "render workers (0 = all cores)")
}

// loadConfig resolves the effective config: defaults, then preset, then
// config file, then explicit CLI flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flagOverride := func(name string, apply func()) {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	flagOverride("center-x", func() { cfg.View.CenterX = centerX })
	flagOverride("center-y", func() { cfg.View.CenterY = centerY })
	flagOverride("zoom", func() { cfg.View.Zoom = zoom })
	flagOverride("iter", func() { cfg.View.MaxIter = maxIter })
	flagOverride("julia", func() { cfg.View.JuliaMode = juliaMode })
	flagOverride("c-real", func() { cfg.View.JuliaCReal = juliaCR })
	flagOverride("c-imag", func() { cfg.View.JuliaCImag = juliaCI })
	flagOverride("policy", func() { cfg.Policy = policy })
	flagOverride("block", func() { cfg.BlockSize = blockSize })
	flagOverride("workers", func() { cfg.Workers = workers })

	return cfg, nil
}

func newScheduler(cfg *config.Config) (*render.Scheduler, adaptive.Controller, error) {
	ctrl, err := adaptive.New(cfg.Policy)
	if err != nil {
		return nil, nil, err
	}
	s := render.New(ctrl)
	s.SetBlockSize(cfg.BlockSize)
	if cfg.Workers > 0 {
		s.SetWorkers(cfg.Workers)
	}
	return s, ctrl, nil
}

func renderFrame(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	scheduler, ctrl, err := newScheduler(cfg)
	if err != nil {
		return err
	}

	fidelity := render.HighQuality
	if fast {
		fidelity = render.Fast
	}

	params := cfg.ViewParams()
	buf := render.NewBuffer(width, height)
	stats, err := scheduler.Render(render.Request{
		Params:   params,
		Width:    width,
		Height:   height,
		Fidelity: fidelity,
	}, buf)
	if err != nil {
		return err
	}

	if err := export.WritePNG(outPath, buf, width, height); err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Mode:          mode(params),
		Width:         width,
		Height:        height,
		CenterX:       params.CenterX,
		CenterY:       params.CenterY,
		Zoom:          params.Zoom,
		MaxIter:       params.MaxIter,
		EffectiveIter: stats.EffectiveIter,
		Policy:        ctrl.Name(),
		Fidelity:      stats.Fidelity.String(),
		ElapsedMS:     float64(stats.Elapsed.Microseconds()) / 1000,
	}, nil)
	if err != nil {
		return err
	}

	fmt.Printf("rendered %dx%d in %v (%d workers, cap %d)\n", width, height, stats.Elapsed, stats.Workers, stats.EffectiveIter)
	fmt.Printf("wrote %s\n", outPath)
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func animateFrames(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if frames < 2 {
		return fmt.Errorf("need at least 2 frames, got %d", frames)
	}
	scheduler, ctrl, err := newScheduler(cfg)
	if err != nil {
		return err
	}

	params := cfg.ViewParams()
	params.JuliaMode = true

	animator := anim.NewAnimator(cfg.KeyframeList(), duration)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	meta := storage.RunMetadata{
		Mode:    "julia",
		Width:   width,
		Height:  height,
		CenterX: params.CenterX,
		CenterY: params.CenterY,
		Zoom:    params.Zoom,
		MaxIter: params.MaxIter,
		Policy:  ctrl.Name(),
	}

	buf := render.NewBuffer(width, height)
	timings := make([]storage.FrameTiming, 0, frames)

	fmt.Printf("rendering %d frames...\n", frames)
	start := time.Now()

	// Reserve the run directory up front so frames land next to the
	// metadata that will describe them.
	runID, err := st.Save(meta, nil)
	if err != nil {
		return err
	}
	runDir := st.Dir(runID)

	for i := 0; i < frames; i++ {
		progress := float64(i) / float64(frames-1)
		cr, ci := animator.At(progress)
		params.JuliaCReal = cr
		params.JuliaCImag = ci

		stats, err := scheduler.Render(render.Request{
			Params:   params,
			Width:    width,
			Height:   height,
			Fidelity: render.HighQuality,
		}, buf)
		if err != nil {
			return err
		}
		meta.EffectiveIter = stats.EffectiveIter
		meta.Fidelity = stats.Fidelity.String()

		framePath := filepath.Join(runDir, fmt.Sprintf("frame_%04d.png", i))
		if err := export.WritePNG(framePath, buf, width, height); err != nil {
			return err
		}
		timings = append(timings, storage.FrameTiming{
			Frame:     i,
			ElapsedMS: float64(stats.Elapsed.Microseconds()) / 1000,
			CReal:     cr,
			CImag:     ci,
		})
	}

	meta.ElapsedMS = float64(time.Since(start).Microseconds()) / 1000
	if err := st.Update(runID, meta, timings); err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("run id: %s\n", runID)

	data := make([]float64, len(timings))
	for i, ft := range timings {
		data[i] = ft.ElapsedMS
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("per-frame render time (ms)"),
	)
	fmt.Println(graph)
	return nil
}

func benchZooms(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	scheduler, ctrl, err := newScheduler(cfg)
	if err != nil {
		return err
	}

	params := cfg.ViewParams()
	buf := render.NewBuffer(width, height)
	zooms := []float64{200, 2e3, 2e4, 2e5, 2e6}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "zoom\tcap\thigh\tfast\tspeedup")

	hqTimes := make([]float64, 0, len(zooms))
	for _, z := range zooms {
		params.Zoom = z

		hq, err := scheduler.Render(render.Request{Params: params, Width: width, Height: height, Fidelity: render.HighQuality}, buf)
		if err != nil {
			return err
		}
		fastStats, err := scheduler.Render(render.Request{Params: params, Width: width, Height: height, Fidelity: render.Fast}, buf)
		if err != nil {
			return err
		}

		speedup := 0.0
		if fastStats.Elapsed > 0 {
			speedup = float64(hq.Elapsed) / float64(fastStats.Elapsed)
		}
		fmt.Fprintf(w, "%.0fx\t%d\t%v\t%v\t%.1fx\n",
			z/fractal.DefaultZoom, hq.EffectiveIter, hq.Elapsed.Round(time.Microsecond),
			fastStats.Elapsed.Round(time.Microsecond), speedup)
		hqTimes = append(hqTimes, float64(hq.Elapsed.Microseconds())/1000)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\npolicy: %s, %dx%d\n", ctrl.Name(), width, height)
	graph := asciigraph.Plot(hqTimes,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption("high-quality render time by zoom decade (ms)"),
	)
	fmt.Println(graph)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "id\tmode\tsize\tzoom\tcap\tframes\telapsed")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%.0fx\t%d\t%d\t%.1fms\n",
			run.ID, run.Mode, run.Width, run.Height,
			run.Zoom/fractal.DefaultZoom, run.EffectiveIter, run.Frames, run.ElapsedMS)
	}
	return w.Flush()
}

func mode(params fractal.ViewParams) string {
	if params.JuliaMode {
		return "julia"
	}
	return "mandelbrot"
}
