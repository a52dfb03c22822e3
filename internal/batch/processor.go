package batch

import (
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"pixelkernels"
	"pixelkernels/internal/imageio"
	"pixelkernels/internal/postprocess"
	"pixelkernels/internal/raster"
	"pixelkernels/internal/water"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir string
	Format    string
	ThumbSize int
	Width     int
	Height    int
	Workers   int
	Kernels   *pixelkernels.Kernels
}

// Result holds the outcome of processing one job.
type Result struct {
	Name    string
	Kind    Kind
	Index   int
	Files   []string // relative to OutputDir
	Thumbs  []string
	Success bool
	Error   string
	Elapsed time.Duration
}

// Run processes all jobs using a worker pool. Each job renders with a single
// kernel worker; parallelism comes from running jobs side by side.
func Run(cfg Config, jobs []Job) []Result {
	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f jobs/sec\n", p, total, rate)
				}
			}
		}
	}()

	// One kernel worker per job; the pool itself fans out.
	var k pixelkernels.Kernels
	if cfg.Kernels != nil {
		k = *cfg.Kernels
	} else {
		k = *pixelkernels.New()
	}
	k.Workers = 1

	workers := max(cfg.Workers, 1)
	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processJob(cfg, &k, jobs[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

func processJob(cfg Config, k *pixelkernels.Kernels, job Job) Result {
	res := Result{Name: job.Name(), Kind: job.Kind, Index: job.Index}
	start := time.Now()

	var err error
	switch job.Kind {
	case KindFractal:
		fb := raster.NewFrameBuffer(cfg.Width, cfg.Height)
		f := job.Fractal
		k.GenerateFractal(fb.Color, fb.Width, fb.Height, f.CenterX, f.CenterY, f.Zoom, f.MaxIterations)
		err = saveFrame(cfg, &res, job.Name(), fb)
	case KindRaytrace:
		fb := raster.NewFrameBuffer(cfg.Width, cfg.Height)
		c := job.Camera
		k.RaytraceScene(fb.Color, fb.Width, fb.Height, c.X, c.Y, c.Z, c.LookX, c.LookY, c.LookZ)
		err = saveFrame(cfg, &res, job.Name(), fb)
	case KindWater:
		err = runWater(cfg, k, job, &res)
	default:
		err = fmt.Errorf("unknown job kind %q", job.Kind)
	}

	res.Elapsed = time.Since(start)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Success = true
	return res
}

// runWater steps one field through every frame of the job. Frames depend on
// their predecessors, so a water job never splits across workers.
func runWater(cfg Config, k *pixelkernels.Kernels, job Job, res *Result) error {
	w := job.Water
	field := water.NewField(w.Size)
	if w.SeedImage != "" {
		img, err := imageio.Load(w.SeedImage)
		if err != nil {
			return err
		}
		water.SeedFromImage(field, img, 1)
	} else {
		c := float64(w.Size) / 2
		water.Drop(field, c, c, float64(w.Size)/8, 1)
	}

	fb := raster.NewFrameBuffer(cfg.Width, cfg.Height)
	for frame := 0; frame < job.Frames; frame++ {
		for s := 0; s < w.Steps; s++ {
			k.ApplyWaterForces(field.Heights, field.Velocities, field.Size, w.DT)
		}
		water.Shade(fb, field, 1, k.Workers)
		if err := saveFrame(cfg, res, frameName(KindWater, frame), fb); err != nil {
			return err
		}
	}
	return nil
}

func saveFrame(cfg Config, res *Result, name string, fb *raster.FrameBuffer) error {
	img := fb.Image()
	rel := name + imageio.Ext(cfg.Format)
	if err := imageio.Save(filepath.Join(cfg.OutputDir, rel), img); err != nil {
		return err
	}
	res.Files = append(res.Files, rel)

	if cfg.ThumbSize > 0 {
		thumbRel := filepath.Join("thumbs", rel)
		if err := imageio.Save(filepath.Join(cfg.OutputDir, thumbRel), postprocess.Thumbnail(img, cfg.ThumbSize)); err != nil {
			return err
		}
		res.Thumbs = append(res.Thumbs, thumbRel)
	}
	return nil
}

func frameName(kind Kind, index int) string {
	return fmt.Sprintf("%s/%04d", kind, index)
}
