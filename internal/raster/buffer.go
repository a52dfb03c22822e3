package raster

import (
	"fmt"
	"image"
	"math"

	"pixelkernels/internal/parallel"
)

// BytesPerPixel is the RGBA8 pixel stride.
const BytesPerPixel = 4

// FrameBuffer is a view over a flat, row-major RGBA8 pixel slice.
// The slice may be owned by the caller (Wrap) or allocated here (NewFrameBuffer).
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8 // RGBA interleaved, len >= W*H*4
}

// NewFrameBuffer allocates a zeroed color buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, w*h*BytesPerPixel),
	}
}

// Wrap builds a view over buf without copying. It fails when the extents are
// non-positive or buf is shorter than w*h*4 bytes.
func Wrap(buf []uint8, w, h int) (*FrameBuffer, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("raster: invalid extent %dx%d", w, h)
	}
	if w > math.MaxInt/BytesPerPixel/h {
		return nil, fmt.Errorf("raster: extent %dx%d overflows", w, h)
	}
	need := w * h * BytesPerPixel
	if len(buf) < need {
		return nil, fmt.Errorf("raster: buffer holds %d bytes, need %d for %dx%d", len(buf), need, w, h)
	}
	return &FrameBuffer{Width: w, Height: h, Color: buf[:need:need]}, nil
}

// Pixels returns W*H.
func (fb *FrameBuffer) Pixels() int {
	return fb.Width * fb.Height
}

// Coord converts a linear pixel index to (x, y).
func (fb *FrameBuffer) Coord(i int) (x, y int) {
	return i % fb.Width, i / fb.Width
}

// Span is an exclusive window onto pixels [Start, Start+len(Pix)/4).
// Pix is capacity-limited so appends or reslices cannot reach a neighbour's bytes.
type Span struct {
	Start int
	Pix   []uint8
}

// Span returns the window for pixels [lo, hi).
func (fb *FrameBuffer) Span(lo, hi int) Span {
	a, b := lo*BytesPerPixel, hi*BytesPerPixel
	return Span{Start: lo, Pix: fb.Color[a:b:b]}
}

// Set writes an opaque pixel at local offset k inside the span.
func (s Span) Set(k int, r, g, b uint8) {
	p := s.Pix[k*BytesPerPixel : k*BytesPerPixel+BytesPerPixel : k*BytesPerPixel+BytesPerPixel]
	p[0] = r
	p[1] = g
	p[2] = b
	p[3] = 255
}

// Len is the number of pixels in the span.
func (s Span) Len() int { return len(s.Pix) / BytesPerPixel }

// ShadeFunc computes the opaque RGB color of pixel (x, y).
type ShadeFunc func(x, y int) (r, g, b uint8)

// ForEachPixel partitions the framebuffer into disjoint spans, one per worker,
// and fills every pixel with shade. It returns when all spans are written.
func ForEachPixel(fb *FrameBuffer, workers int, shade ShadeFunc) {
	parallel.Range(fb.Pixels(), workers, func(lo, hi int) {
		s := fb.Span(lo, hi)
		for k := 0; k < s.Len(); k++ {
			x, y := fb.Coord(s.Start + k)
			r, g, b := shade(x, y)
			s.Set(k, r, g, b)
		}
	})
}

// Image copies the framebuffer into a new NRGBA image.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Color)
	return img
}
