package render

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/san-kum/fractalab/internal/adaptive"
	"github.com/san-kum/fractalab/internal/fractal"
	"github.com/san-kum/fractalab/internal/palette"
)

// Fidelity selects the quality/speed tradeoff for one render pass.
type Fidelity int

const (
	// Fast samples one point per block and replicates it, at a reduced
	// iteration cap. Used while a pan or zoom gesture is in flight.
	Fast Fidelity = iota
	// HighQuality evaluates every pixel at the full effective cap.
	HighQuality
)

func (f Fidelity) String() string {
	if f == Fast {
		return "fast"
	}
	return "high"
}

const (
	// DefaultBlockSize is the sampling block edge for Fast passes.
	DefaultBlockSize = 2

	// FastIterFloor keeps preview passes from degenerating at low base
	// caps.
	FastIterFloor = 80

	fastIterNum = 3
	fastIterDen = 4
)

// Request describes one frame: a view snapshot, target dimensions, and the
// fidelity tier chosen by the caller's interaction tracking.
type Request struct {
	Params   fractal.ViewParams
	Width    int
	Height   int
	Fidelity Fidelity
}

// Stats reports what a render call actually did.
type Stats struct {
	Elapsed       time.Duration
	EffectiveIter int
	Fidelity      Fidelity
	Workers       int
}

// Scheduler partitions the pixel grid into disjoint row bands and fans them
// out across a worker pool. Workers share nothing mutable except the
// destination buffer, and each owns a disjoint index range, so the parallel
// region needs no locks. A render always runs to completion; a newer request
// supersedes an older one by overwriting the whole buffer on its own pass.
type Scheduler struct {
	controller adaptive.Controller
	workers    int
	blockSize  int
}

func New(controller adaptive.Controller) *Scheduler {
	return &Scheduler{
		controller: controller,
		workers:    runtime.NumCPU(),
		blockSize:  DefaultBlockSize,
	}
}

func (s *Scheduler) SetWorkers(n int) {
	if n > 0 {
		s.workers = n
	}
}

func (s *Scheduler) SetBlockSize(n int) {
	if n > 0 {
		s.blockSize = n
	}
}

func (s *Scheduler) BlockSize() int { return s.blockSize }

// Render draws the requested frame into out and blocks until every work unit
// has completed. The buffer length must match the declared dimensions
// exactly; a mismatch is a contract violation, never a silent truncation.
func (s *Scheduler) Render(req Request, out Buffer) (Stats, error) {
	if req.Width <= 0 || req.Height <= 0 {
		return Stats{}, fmt.Errorf("invalid frame size %dx%d", req.Width, req.Height)
	}
	if len(out) != req.Width*req.Height {
		return Stats{}, fmt.Errorf("buffer length %d does not match %dx%d frame", len(out), req.Width, req.Height)
	}
	params := req.Params
	if err := params.Validate(); err != nil {
		return Stats{}, err
	}

	eval, err := fractal.NewEvaluator(params.EscapeRadius)
	if err != nil {
		return Stats{}, err
	}

	effective := s.controller.Effective(params.MaxIter, params.Zoom)

	block := 1
	iterCap := effective
	if req.Fidelity == Fast {
		block = s.blockSize
		iterCap = effective * fastIterNum / fastIterDen
		if iterCap < FastIterFloor {
			iterCap = FastIterFloor
		}
	}

	start := time.Now()

	blockRows := (req.Height + block - 1) / block
	workers := s.workers
	if workers > blockRows {
		workers = blockRows
	}

	if workers <= 1 {
		renderBands(eval, params, out, req.Width, req.Height, block, iterCap, 0, blockRows)
	} else {
		var wg sync.WaitGroup
		chunk := (blockRows + workers - 1) / workers
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func(worker int) {
				defer wg.Done()
				from := worker * chunk
				to := from + chunk
				if to > blockRows {
					to = blockRows
				}
				renderBands(eval, params, out, req.Width, req.Height, block, iterCap, from, to)
			}(w)
		}
		wg.Wait()
	}

	return Stats{
		Elapsed:       time.Since(start),
		EffectiveIter: iterCap,
		Fidelity:      req.Fidelity,
		Workers:       workers,
	}, nil
}

// renderBands evaluates block rows [from,to). Each block samples its
// top-left pixel once and replicates the color across the block; with
// block=1 that degenerates to one evaluation per pixel.
func renderBands(eval *fractal.Evaluator, params fractal.ViewParams, out Buffer, width, height, block, iterCap, from, to int) {
	for br := from; br < to; br++ {
		y0 := br * block
		yEnd := y0 + block
		if yEnd > height {
			yEnd = height
		}
		for x0 := 0; x0 < width; x0 += block {
			re, im := params.PointAt(x0, y0, width, height)

			var value float64
			if params.JuliaMode {
				value = eval.Julia(re, im, params.JuliaCReal, params.JuliaCImag, iterCap)
			} else {
				value = eval.Mandelbrot(re, im, iterCap)
			}
			pix := palette.Map(value, iterCap, params.ColorScale, params.ColorOffset)

			xEnd := x0 + block
			if xEnd > width {
				xEnd = width
			}
			for y := y0; y < yEnd; y++ {
				row := y * width
				for x := x0; x < xEnd; x++ {
					out[row+x] = pix
				}
			}
		}
	}
}
