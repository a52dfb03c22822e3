// Package fractal evaluates and colors the quadratic Mandelbrot set.
package fractal

import (
	"math"

	"pixelkernels/internal/palette"
	"pixelkernels/internal/raster"
)

// EscapeRadiusSq is |z|^2 past which a point has escaped.
const EscapeRadiusSq = 4.0

// Span is the width and height of the visible plane at zoom 1.
const Span = 4.0

// View selects the visible region of the complex plane.
type View struct {
	CenterX float64
	CenterY float64
	Zoom    float64
}

// PixelToComplex maps pixel (px, py) of a width×height image into the plane.
// Both axes span Span/Zoom units regardless of aspect ratio, so non-square
// images are stretched.
func (v View) PixelToComplex(px, py, width, height int) complex128 {
	scale := Span / v.Zoom
	w, h := float64(width), float64(height)
	// w/2 lowers to a multiply; convert it so the subtraction is not fused
	x := (float64(px)-float64(w/2.0))*scale/w + v.CenterX
	y := (float64(py)-float64(h/2.0))*scale/h + v.CenterY
	return complex(x, y)
}

// Escape iterates z = z^2 + c from z = 0 while |z|^2 <= 4 and iter < maxIter.
// It returns the iteration count and the final |z|^2.
func Escape(c complex128, maxIter int) (iter int, normSq float64) {
	cr, ci := real(c), imag(c)
	var zr, zi float64
	// float64() conversions keep the compiler from fusing multiply-adds
	for float64(zr*zr)+float64(zi*zi) <= EscapeRadiusSq && iter < maxIter {
		zr, zi = float64(zr*zr)-float64(zi*zi)+cr, float64(zr*zi)+float64(zi*zr)+ci
		iter++
	}
	return iter, float64(zr*zr) + float64(zi*zi)
}

// Smooth refines an escape count with the final magnitude to remove banding.
func Smooth(iter int, normSq float64) float64 {
	return float64(iter) + 1.0 - math.Log(math.Log(normSq))/math.Ln2
}

// Colorize turns an escape result into a color. Points that never escaped are black.
// The palette input smooth/maxIter is not clamped.
func Colorize(iter int, normSq float64, maxIter int) palette.Color {
	if iter == maxIter {
		return palette.Black
	}
	return palette.Psychedelic(Smooth(iter, normSq) / float64(maxIter))
}

// Pixel evaluates one pixel of a width×height Mandelbrot image.
func Pixel(px, py, width, height int, view View, maxIter int) palette.Color {
	iter, normSq := Escape(view.PixelToComplex(px, py, width, height), maxIter)
	return Colorize(iter, normSq, maxIter)
}

// Render fills fb with the Mandelbrot image for view, split across workers.
func Render(fb *raster.FrameBuffer, view View, maxIter, workers int) {
	w, h := fb.Width, fb.Height
	raster.ForEachPixel(fb, workers, func(x, y int) (uint8, uint8, uint8) {
		c := Pixel(x, y, w, h, view, maxIter)
		return c.R, c.G, c.B
	})
}
