package fractal

import (
	"bytes"
	"math"
	"testing"

	"pixelkernels/internal/palette"
	"pixelkernels/internal/raster"
)

func TestPixelToComplex(t *testing.T) {
	cases := []struct {
		name       string
		view       View
		px, py     int
		w, h       int
		wantR, wantI float64
	}{
		{"center pixel", View{0, 0, 1}, 50, 50, 100, 100, 0, 0},
		{"top-left corner", View{0, 0, 1}, 0, 0, 100, 100, -2, -2},
		{"offset center", View{-0.5, 0.25, 1}, 20, 10, 40, 20, -0.5, 0.25},
		{"zoomed", View{0, 0, 4}, 0, 0, 8, 8, -0.5, -0.5},
		// each axis spans 4 units no matter the aspect ratio
		{"non-square", View{0, 0, 1}, 0, 0, 200, 50, -2, -2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			z := c.view.PixelToComplex(c.px, c.py, c.w, c.h)
			if math.Abs(real(z)-c.wantR) > 1e-12 || math.Abs(imag(z)-c.wantI) > 1e-12 {
				t.Errorf("PixelToComplex = %v, want (%v%+vi)", z, c.wantR, c.wantI)
			}
		})
	}
}

func TestEscape(t *testing.T) {
	iter, normSq := Escape(complex(1, 0), 100)
	if iter != 3 || normSq != 25 {
		t.Errorf("Escape(1) = (%d, %v), want (3, 25)", iter, normSq)
	}

	// -2 orbits at |z|^2 = 4 exactly, which is not an escape
	iter, _ = Escape(complex(-2, 0), 80)
	if iter != 80 {
		t.Errorf("Escape(-2) = %d, want 80 (bounded)", iter)
	}

	iter, normSq = Escape(0, 0)
	if iter != 0 || normSq != 0 {
		t.Errorf("Escape(0, maxIter=0) = (%d, %v), want (0, 0)", iter, normSq)
	}
}

func TestOriginIsBlack(t *testing.T) {
	for _, maxIter := range []int{1, 2, 10, 100, 1000} {
		iter, normSq := Escape(0, maxIter)
		if c := Colorize(iter, normSq, maxIter); c != palette.Black {
			t.Errorf("maxIter=%d: origin colored %v, want black", maxIter, c)
		}
	}
	// center pixel of a view centered on the origin
	if c := Pixel(32, 32, 64, 64, View{0, 0, 1}, 50); c != palette.Black {
		t.Errorf("center pixel = %v, want black", c)
	}
}

func TestEscapeMonotonicInBudget(t *testing.T) {
	points := []complex128{
		complex(1, 0), complex(0.3, 0.5), complex(-0.75, 0.1),
		complex(-1.8, 0.02), complex(0.26, 0), complex(-0.1, 1.0),
	}
	for _, c := range points {
		small, smallNorm := Escape(c, 50)
		if small == 50 {
			continue
		}
		for _, budget := range []int{51, 100, 500} {
			got, gotNorm := Escape(c, budget)
			if got != small || gotNorm != smallNorm {
				t.Errorf("c=%v: escape at %d with budget 50, %d with budget %d", c, small, got, budget)
			}
		}
	}
}

func TestSmooth(t *testing.T) {
	got := Smooth(3, 25)
	want := 4 - math.Log(math.Log(25))/math.Ln2
	if got != want {
		t.Errorf("Smooth(3, 25) = %v, want %v", got, want)
	}
}

func TestPixelReferenceValues(t *testing.T) {
	cases := []struct {
		px, py, w, h int
		view         View
		maxIter      int
		want         palette.Color
	}{
		{0, 0, 4, 4, View{0, 0, 1}, 50, palette.Color{150, 251, 202}},
		{3, 1, 4, 4, View{0, 0, 1}, 50, palette.Color{169, 254, 159}},
		{100, 20, 200, 100, View{-0.5, 0, 1}, 100, palette.Color{163, 254, 174}},
	}
	for _, c := range cases {
		if got := Pixel(c.px, c.py, c.w, c.h, c.view, c.maxIter); got != c.want {
			t.Errorf("Pixel(%d,%d in %dx%d) = %v, want %v", c.px, c.py, c.w, c.h, got, c.want)
		}
	}
}

func TestPixelDeterministic(t *testing.T) {
	view := View{-0.743, 0.131, 37}
	first := Pixel(17, 91, 160, 120, view, 300)
	for i := 0; i < 20; i++ {
		if got := Pixel(17, 91, 160, 120, view, 300); got != first {
			t.Fatalf("run %d: %v, want %v", i, got, first)
		}
	}
}

func TestRenderMatchesPixel(t *testing.T) {
	const w, h = 48, 32
	view := View{-0.5, 0, 1}
	fb := raster.NewFrameBuffer(w, h)
	Render(fb, view, 64, 4)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := Pixel(x, y, w, h, view, 64)
			i := (y*w + x) * 4
			got := fb.Color[i : i+4]
			if !bytes.Equal(got, []uint8{c.R, c.G, c.B, 255}) {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, c)
			}
		}
	}

	other := raster.NewFrameBuffer(w, h)
	Render(other, view, 64, 1)
	if !bytes.Equal(fb.Color, other.Color) {
		t.Error("render differs between 4 workers and 1 worker")
	}
}

func TestTexture(t *testing.T) {
	// u=v=0 is pixel (0,0) of the 256x256 texture
	if got, want := Texture(0, 0), Pixel(0, 0, 256, 256, TextureView, 100); got != want {
		t.Errorf("Texture(0,0) = %v, want %v", got, want)
	}
	if got := Texture(0, 0); got != (palette.Color{136, 244, 225}) {
		t.Errorf("Texture(0,0) = %v, want {136 244 225}", got)
	}
	// 0.999*256 truncates to 255
	if got, want := Texture(0.999, 0.5), Pixel(255, 128, 256, 256, TextureView, 100); got != want {
		t.Errorf("Texture(0.999,0.5) = %v, want %v", got, want)
	}
}
