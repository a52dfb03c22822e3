// Package raytrace renders a single fractal-textured sphere.
package raytrace

import (
	"math"

	"pixelkernels/internal/fractal"
	"pixelkernels/internal/mathutil"
	"pixelkernels/internal/raster"
)

// Hit classifies a ray/sphere test.
type Hit int

const (
	Miss   Hit = iota // discriminant < 0
	Front             // nearer root t > 0
	Behind            // nearer root t <= 0
)

func (h Hit) String() string {
	switch h {
	case Miss:
		return "miss"
	case Front:
		return "front"
	case Behind:
		return "behind"
	}
	return "unknown"
}

// Intersect solves a t^2 + b t + c = 0 for r against s and returns the nearer root.
// t is only meaningful when the result is not Miss.
func (s Sphere) Intersect(r Ray) (Hit, float64) {
	oc := r.Origin.Sub(s.Center)
	a := r.Dir.LenSq()
	b := 2.0 * oc.Dot(r.Dir)
	c := oc.LenSq() - float64(s.Radius*s.Radius)

	disc := float64(b*b) - float64(4.0*a*c)
	if disc < 0 {
		return Miss, 0
	}
	t := (-b - math.Sqrt(disc)) / (2.0 * a)
	if t > 0 {
		return Front, t
	}
	return Behind, t
}

// UV projects a surface point's x and y onto [0, 2r] and rescales to [0,1].
func (s Sphere) UV(p mathutil.Vec3) (u, v float64) {
	u = (p[0] - s.Center[0] + s.Radius) / (2.0 * s.Radius)
	v = (p[1] - s.Center[1] + s.Radius) / (2.0 * s.Radius)
	return u, v
}

// Trace returns the [0,1] color seen through NDC point (x, y).
func (s *Scene) Trace(cam Camera, x, y float64) mathutil.Vec3 {
	ray := cam.Ray(x, y)
	hit, t := s.Sphere.Intersect(ray)
	switch hit {
	case Miss:
		return s.Background(y)
	case Front:
		u, v := s.Sphere.UV(ray.At(t))
		return fractal.Texture(u, v).Unit()
	default:
		return s.Behind
	}
}

// TracePixel is Trace for pixel (px, py) of a width×height image, as bytes.
func (s *Scene) TracePixel(cam Camera, px, py, width, height int) (r, g, b uint8) {
	x, y := NDC(px, py, width, height)
	c := s.Trace(cam, x, y)
	return mathutil.UnitToByte(c[0]), mathutil.UnitToByte(c[1]), mathutil.UnitToByte(c[2])
}

// Render fills fb with the scene as seen from cam, split across workers.
func Render(fb *raster.FrameBuffer, scene Scene, cam Camera, workers int) {
	w, h := fb.Width, fb.Height
	raster.ForEachPixel(fb, workers, func(x, y int) (uint8, uint8, uint8) {
		return scene.TracePixel(cam, x, y, w, h)
	})
}
