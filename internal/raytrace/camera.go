package raytrace

import "pixelkernels/internal/mathutil"

// Ray is a half-line from Origin along unit direction Dir.
type Ray struct {
	Origin mathutil.Vec3
	Dir    mathutil.Vec3
}

// At returns Origin + Dir*t.
func (r Ray) At(t float64) mathutil.Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// Camera is a pinhole camera with a fixed basis: +x right, +y up, looking down -z.
//
// Look is carried for callers that pass a target, but rays are not rotated
// toward it. Existing renders depend on the fixed basis.
type Camera struct {
	Position mathutil.Vec3
	Look     mathutil.Vec3
}

// NDC maps pixel (px, py) of a width×height image to normalized device
// coordinates, x in [-1,1) left to right and y in (-1,1] top to bottom.
func NDC(px, py, width, height int) (x, y float64) {
	x = float64((float64(px)/float64(width))*2.0) - 1.0
	y = 1.0 - float64((float64(py)/float64(height))*2.0)
	return x, y
}

// Ray builds the camera ray through NDC point (x, y).
func (c Camera) Ray(x, y float64) Ray {
	return Ray{
		Origin: c.Position,
		Dir:    mathutil.Vec3{x, y, -1.0}.Normalize(),
	}
}
