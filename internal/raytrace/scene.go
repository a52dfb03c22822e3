package raytrace

import "pixelkernels/internal/mathutil"

// Sphere is the single implicit object in the scene.
type Sphere struct {
	Center mathutil.Vec3
	Radius float64
}

// DefaultSphere sits ten units down the -z axis.
var DefaultSphere = Sphere{
	Center: mathutil.Vec3{0, 0, -10},
	Radius: 3.0,
}

// Scene holds the sphere and the flat colors used when it is not textured.
type Scene struct {
	Sphere Sphere

	// Background gradient endpoints, blended by t = (ndc_y+1)/2:
	// SkyLow at the bottom row, SkyHigh at the top row.
	SkyLow  mathutil.Vec3
	SkyHigh mathutil.Vec3

	// Behind is used when both intersections lie at or behind the camera.
	Behind mathutil.Vec3
}

// DefaultScene returns the built-in scene.
func DefaultScene() Scene {
	return Scene{
		Sphere:  DefaultSphere,
		SkyLow:  mathutil.Vec3{0.5, 0.7, 1.0},
		SkyHigh: mathutil.Vec3{0.1, 0.3, 0.6},
		Behind:  mathutil.Vec3{0.2, 0.3, 0.8},
	}
}

// Background returns the gradient color for normalized device y.
func (s *Scene) Background(ndcY float64) mathutil.Vec3 {
	t := (ndcY + 1.0) * 0.5
	return mathutil.Lerp(s.SkyLow, s.SkyHigh, t)
}
