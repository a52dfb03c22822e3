package water

import (
	"image"
	"image/color"
	"math"
)

// Drop adds a raised-cosine bump of the given radius (in cells) centered on
// (cx, cy). Cells outside the grid are skipped.
func Drop(f *Field, cx, cy, radius, amplitude float64) {
	if radius <= 0 {
		return
	}
	n := f.Size
	x0 := max(int(math.Floor(cx-radius)), 0)
	x1 := min(int(math.Ceil(cx+radius)), n-1)
	y0 := max(int(math.Floor(cy-radius)), 0)
	y1 := min(int(math.Ceil(cy+radius)), n-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy)
			if d >= radius {
				continue
			}
			f.Heights[f.Index(x, y)] += float32(amplitude * 0.5 * (1 + math.Cos(math.Pi*d/radius)))
		}
	}
}

// SeedFromImage sets heights from the luminance of img, resampled to the grid
// with nearest-pixel lookup. Black maps to -amplitude, white to +amplitude.
// Velocities are zeroed.
func SeedFromImage(f *Field, img image.Image, amplitude float32) {
	b := img.Bounds()
	w, h, n := b.Dx(), b.Dy(), f.Size
	if w == 0 || h == 0 {
		return
	}
	for y := 0; y < n; y++ {
		sy := b.Min.Y + y*h/n
		for x := 0; x < n; x++ {
			sx := b.Min.X + x*w/n
			g := color.GrayModel.Convert(img.At(sx, sy)).(color.Gray).Y
			i := f.Index(x, y)
			f.Heights[i] = (float32(float32(g)/255.0*2) - 1) * amplitude
			f.Velocities[i] = 0
		}
	}
}
