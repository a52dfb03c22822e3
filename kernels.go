// Package pixelkernels exposes three stateless per-pixel/per-cell kernels for a
// host that owns the buffers: a Mandelbrot colorizer, a single-sphere ray
// tracer textured with that fractal, and a damped wave-equation step for a
// height field.
//
// Every entry point runs synchronously, splits the work across a fixed set of
// goroutines writing disjoint parts of the output, and returns once the whole
// buffer is written. The host must not touch the buffers during a call.
//
// Preconditions (positive extents, buffers at least as large as declared)
// are checked up front; a violation panics before any byte is written.
package pixelkernels

import (
	"fmt"

	"pixelkernels/internal/fractal"
	"pixelkernels/internal/mathutil"
	"pixelkernels/internal/raster"
	"pixelkernels/internal/raytrace"
	"pixelkernels/internal/water"
)

type (
	// Vec3 is a 3-component vector.
	Vec3 = mathutil.Vec3
	// Sphere is the ray tracer's implicit object.
	Sphere = raytrace.Sphere
	// Scene holds the sphere and the untextured colors.
	Scene = raytrace.Scene
	// WaveParams are the wave solver's speed and damping.
	WaveParams = water.Params
)

// Kernels carries the substitutable constants and the worker count.
// The zero value is not useful; start from New.
type Kernels struct {
	Workers int // <= 0 means runtime.NumCPU()
	Scene   Scene
	Wave    WaveParams
}

// New returns kernels configured with the built-in constants.
func New() *Kernels {
	return &Kernels{
		Scene: raytrace.DefaultScene(),
		Wave:  water.DefaultParams,
	}
}

// Default backs the package-level entry points.
var Default = New()

// GenerateFractal fills buf (width*height RGBA8) with the Mandelbrot set
// around (centerX, centerY) at zoom, escaping after maxIterations.
func (k *Kernels) GenerateFractal(buf []byte, width, height int, centerX, centerY, zoom float64, maxIterations int) {
	fb := mustWrap(buf, width, height)
	fractal.Render(fb, fractal.View{CenterX: centerX, CenterY: centerY, Zoom: zoom}, maxIterations, k.Workers)
}

// RaytraceScene fills buf with the sphere seen from (camX, camY, camZ).
// The look direction is accepted but not applied: rays always use a fixed
// basis looking down -z.
func (k *Kernels) RaytraceScene(buf []byte, width, height int, camX, camY, camZ, lookX, lookY, lookZ float64) {
	fb := mustWrap(buf, width, height)
	cam := raytrace.Camera{
		Position: Vec3{camX, camY, camZ},
		Look:     Vec3{lookX, lookY, lookZ},
	}
	raytrace.Render(fb, k.Scene, cam, k.Workers)
}

// ApplyWaterForces advances heights and velocities (size*size each) by dt in place.
func (k *Kernels) ApplyWaterForces(heights, velocities []float32, size int, dt float32) {
	f, err := water.Wrap(heights, velocities, size)
	if err != nil {
		panic(fmt.Sprintf("pixelkernels: %v", err))
	}
	water.Step(f, k.Wave, dt, k.Workers)
}

// GenerateFractal calls Default.GenerateFractal.
func GenerateFractal(buf []byte, width, height int, centerX, centerY, zoom float64, maxIterations int) {
	Default.GenerateFractal(buf, width, height, centerX, centerY, zoom, maxIterations)
}

// RaytraceScene calls Default.RaytraceScene.
func RaytraceScene(buf []byte, width, height int, camX, camY, camZ, lookX, lookY, lookZ float64) {
	Default.RaytraceScene(buf, width, height, camX, camY, camZ, lookX, lookY, lookZ)
}

// ApplyWaterForces calls Default.ApplyWaterForces.
func ApplyWaterForces(heights, velocities []float32, size int, dt float32) {
	Default.ApplyWaterForces(heights, velocities, size, dt)
}

func mustWrap(buf []byte, width, height int) *raster.FrameBuffer {
	fb, err := raster.Wrap(buf, width, height)
	if err != nil {
		panic(fmt.Sprintf("pixelkernels: %v", err))
	}
	return fb
}
