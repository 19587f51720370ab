package render

import (
	"testing"

	"github.com/san-kum/fractalab/internal/adaptive"
	"github.com/san-kum/fractalab/internal/fractal"
	"github.com/san-kum/fractalab/internal/palette"
)

func testView() fractal.ViewParams {
	return fractal.ViewParams{
		CenterX:      -0.75,
		CenterY:      0,
		Zoom:         200,
		MaxIter:      50,
		EscapeRadius: 2.0,
		ColorScale:   1.0,
		JuliaCReal:   -0.7,
		JuliaCImag:   0.27015,
	}
}

func TestRenderBufferMismatch(t *testing.T) {
	s := New(adaptive.NewMultiplicative())
	buf := NewBuffer(4, 4)

	_, err := s.Render(Request{Params: testView(), Width: 8, Height: 8, Fidelity: HighQuality}, buf)
	if err == nil {
		t.Fatal("expected error for mismatched buffer, got nil")
	}
}

func TestRenderInvalidDimensions(t *testing.T) {
	s := New(adaptive.NewMultiplicative())

	_, err := s.Render(Request{Params: testView(), Width: 0, Height: 4, Fidelity: HighQuality}, Buffer{})
	if err == nil {
		t.Fatal("expected error for zero width, got nil")
	}
}

func TestRenderInvalidParams(t *testing.T) {
	s := New(adaptive.NewMultiplicative())
	buf := NewBuffer(4, 4)

	params := testView()
	params.Zoom = 0
	_, err := s.Render(Request{Params: params, Width: 4, Height: 4, Fidelity: HighQuality}, buf)
	if err == nil {
		t.Fatal("expected error for invalid params, got nil")
	}
}

func TestRenderInSetRegionIsBlack(t *testing.T) {
	s := New(adaptive.NewMultiplicative())
	buf := NewBuffer(4, 4)

	// The whole 4x4 frame sits inside the period-2 bulb.
	params := testView()
	params.CenterX = -1.0
	_, err := s.Render(Request{Params: params, Width: 4, Height: 4, Fidelity: HighQuality}, buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for i, pix := range buf {
		if pix != palette.Black {
			t.Errorf("pixel %d: expected black, got %#06x", i, pix)
		}
	}
}

func TestRenderEscapedRegionIsColored(t *testing.T) {
	s := New(adaptive.NewMultiplicative())
	buf := NewBuffer(4, 4)

	// Every point in this frame has |c| > 2 and escapes immediately.
	params := testView()
	params.CenterX = 3.0
	_, err := s.Render(Request{Params: params, Width: 4, Height: 4, Fidelity: HighQuality}, buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for i, pix := range buf {
		if pix == palette.Black {
			t.Errorf("pixel %d: expected non-black", i)
		}
	}
}

func TestRenderCenterInSetCornersEscaped(t *testing.T) {
	s := New(adaptive.NewMultiplicative())
	const size = 64
	buf := NewBuffer(size, size)

	// Wide view around (-0.75, 0): the real-axis pixels at the center
	// belong to the set, the corners are outside the escape radius or
	// escape within a couple of iterations.
	params := testView()
	params.Zoom = 20
	params.MaxIter = 100
	_, err := s.Render(Request{Params: params, Width: size, Height: size, Fidelity: HighQuality}, buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	mid := size / 2
	for _, x := range []int{mid - 1, mid} {
		if pix := buf[mid*size+x]; pix != palette.Black {
			t.Errorf("center pixel (%d,%d): expected black, got %#06x", x, mid, pix)
		}
	}
	corners := []int{0, size - 1, (size - 1) * size, size*size - 1}
	for _, idx := range corners {
		if buf[idx] == palette.Black {
			t.Errorf("corner index %d: expected non-black", idx)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	s := New(adaptive.NewMultiplicative())
	req := Request{Params: testView(), Width: 32, Height: 24, Fidelity: HighQuality}

	a := NewBuffer(32, 24)
	b := NewBuffer(32, 24)
	if _, err := s.Render(req, a); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := s.Render(req, b); err != nil {
		t.Fatalf("render: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("pixel %d differs: %#06x vs %#06x", i, a[i], b[i])
		}
	}
}

func TestRenderParallelMatchesSerial(t *testing.T) {
	serial := New(adaptive.NewMultiplicative())
	serial.SetWorkers(1)
	parallel := New(adaptive.NewMultiplicative())
	parallel.SetWorkers(8)

	req := Request{Params: testView(), Width: 31, Height: 17, Fidelity: HighQuality}
	a := NewBuffer(31, 17)
	b := NewBuffer(31, 17)
	if _, err := serial.Render(req, a); err != nil {
		t.Fatalf("serial render: %v", err)
	}
	if _, err := parallel.Render(req, b); err != nil {
		t.Fatalf("parallel render: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("pixel %d differs between serial and parallel", i)
		}
	}
}

func TestFastTierReplicatesBlocks(t *testing.T) {
	s := New(adaptive.NewMultiplicative())
	const w, h = 8, 8
	buf := NewBuffer(w, h)

	params := testView()
	params.Zoom = 20
	_, err := s.Render(Request{Params: params, Width: w, Height: h, Fidelity: Fast}, buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for y0 := 0; y0 < h; y0 += DefaultBlockSize {
		for x0 := 0; x0 < w; x0 += DefaultBlockSize {
			want := buf[y0*w+x0]
			for y := y0; y < y0+DefaultBlockSize; y++ {
				for x := x0; x < x0+DefaultBlockSize; x++ {
					if buf[y*w+x] != want {
						t.Fatalf("block (%d,%d): pixel (%d,%d) not replicated", x0, y0, x, y)
					}
				}
			}
		}
	}
}

func TestFastTierIterationCap(t *testing.T) {
	s := New(adaptive.NewMultiplicative())
	buf := NewBuffer(8, 8)

	// 75% of the effective cap, but never below the floor.
	params := testView()
	params.MaxIter = 400
	stats, err := s.Render(Request{Params: params, Width: 8, Height: 8, Fidelity: Fast}, buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if stats.EffectiveIter != 300 {
		t.Errorf("expected fast cap 300, got %d", stats.EffectiveIter)
	}

	params.MaxIter = 40
	stats, err = s.Render(Request{Params: params, Width: 8, Height: 8, Fidelity: Fast}, buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if stats.EffectiveIter != FastIterFloor {
		t.Errorf("expected fast floor %d, got %d", FastIterFloor, stats.EffectiveIter)
	}
}

func TestHighQualityUsesEffectiveCap(t *testing.T) {
	s := New(adaptive.NewMultiplicative())
	buf := NewBuffer(8, 8)

	stats, err := s.Render(Request{Params: testView(), Width: 8, Height: 8, Fidelity: HighQuality}, buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if stats.EffectiveIter != 50 {
		t.Errorf("expected cap 50 at reference zoom, got %d", stats.EffectiveIter)
	}
	if stats.Fidelity != HighQuality {
		t.Errorf("expected high fidelity in stats, got %s", stats.Fidelity)
	}
}

func TestRenderJuliaDeterministic(t *testing.T) {
	s := New(adaptive.NewMultiplicative())

	params := testView()
	params.JuliaMode = true
	params.CenterX = 0
	req := Request{Params: params, Width: 16, Height: 16, Fidelity: HighQuality}

	a := NewBuffer(16, 16)
	b := NewBuffer(16, 16)
	if _, err := s.Render(req, a); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := s.Render(req, b); err != nil {
		t.Fatalf("render: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("pixel %d differs", i)
		}
	}
}

func BenchmarkRenderHighQuality(b *testing.B) {
	s := New(adaptive.NewMultiplicative())
	buf := NewBuffer(320, 240)
	req := Request{Params: testView(), Width: 320, Height: 240, Fidelity: HighQuality}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Render(req, buf); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRenderFast(b *testing.B) {
	s := New(adaptive.NewMultiplicative())
	buf := NewBuffer(320, 240)
	req := Request{Params: testView(), Width: 320, Height: 240, Fidelity: Fast}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Render(req, buf); err != nil {
			b.Fatal(err)
		}
	}
}
