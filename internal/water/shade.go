package water

import (
	"pixelkernels/internal/mathutil"
	"pixelkernels/internal/raster"
)

// Gradient endpoints for Shade.
var (
	Trough = mathutil.Vec3{0.02, 0.10, 0.30}
	Crest  = mathutil.Vec3{0.70, 0.90, 1.00}
)

// Shade draws the height field into fb, stretching the grid to fb's extent
// with nearest-cell sampling. Heights of -scale and +scale map to Trough and
// Crest; anything beyond is clamped.
func Shade(fb *raster.FrameBuffer, f *Field, scale float32, workers int) {
	if scale <= 0 {
		scale = 1
	}
	w, h, n := fb.Width, fb.Height, f.Size
	raster.ForEachPixel(fb, workers, func(x, y int) (uint8, uint8, uint8) {
		cx := x * n / w
		cy := y * n / h
		t := 0.5 + float64(0.5*float64(f.Heights[cy*n+cx]/scale))
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
		c := mathutil.Lerp(Trough, Crest, t)
		return mathutil.UnitToByte(c[0]), mathutil.UnitToByte(c[1]), mathutil.UnitToByte(c[2])
	})
}
