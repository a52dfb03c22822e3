package batch

import (
	"math"

	"pixelkernels/internal/config"
	"pixelkernels/internal/mathutil"
)

// Kind selects the kernel a job runs.
type Kind string

const (
	KindFractal  Kind = "fractal"
	KindRaytrace Kind = "raytrace"
	KindWater    Kind = "water"
)

// Job is one unit of batch work. Fractal and raytrace jobs produce one frame;
// a water job produces Frames frames from one continuous simulation.
type Job struct {
	Kind    Kind
	Index   int
	Fractal config.Fractal
	Camera  config.Camera
	Water   config.Water
	Frames  int
}

// Name is the job's output stem, e.g. "fractal/0007".
func (j Job) Name() string {
	return frameName(j.Kind, j.Index)
}

// ZoomJobs builds a fractal zoom sequence: frame i magnifies the base view by factor^i.
func ZoomJobs(base config.Fractal, frames int, factor float64) []Job {
	jobs := make([]Job, frames)
	for i := range jobs {
		f := base
		f.Zoom = base.Zoom * math.Pow(factor, float64(i))
		jobs[i] = Job{Kind: KindFractal, Index: i, Fractal: f}
	}
	return jobs
}

// OrbitJobs moves the camera once around a circle of the given radius in the
// plane z = base.Z, centered on (base.X, base.Y).
func OrbitJobs(base config.Camera, frames int, radius float64) []Job {
	jobs := make([]Job, frames)
	for i := range jobs {
		a := 2 * math.Pi * float64(i) / float64(frames)
		off := mathutil.RotZ(a).MulVec3(mathutil.Vec3{radius, 0, 0})
		cam := base
		cam.X = base.X + off[0]
		cam.Y = base.Y + off[1]
		jobs[i] = Job{Kind: KindRaytrace, Index: i, Camera: cam}
	}
	return jobs
}

// WaterJob simulates w.Steps solver steps per frame for the given frame count.
func WaterJob(w config.Water, frames int) Job {
	return Job{Kind: KindWater, Water: w, Frames: frames}
}
