package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pixelkernels"
	"pixelkernels/internal/config"
	"pixelkernels/internal/imageio"
	"pixelkernels/internal/postprocess"
	"pixelkernels/internal/raster"
	"pixelkernels/internal/water"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	kernel := flag.String("kernel", "fractal", "Kernel to run: fractal, raytrace or water")
	out := flag.String("out", "", "Output file (default: <output_dir>/<kernel>.<format>)")
	width := flag.Int("width", 0, "Image width (default: 640)")
	height := flag.Int("height", 0, "Image height (default: 480)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	format := flag.String("format", "", "Output format: webp, png, tga, bmp (default: webp)")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	scale := flag.Int("scale", 1, "Integer upscale factor for the written image")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		OutputDir: *outputDir,
		Format:    *format,
		Width:     *width,
		Height:    *height,
		Workers:   *workers,
	})

	k := pixelkernels.New()
	k.Workers = cfg.Workers
	k.Wave = pixelkernels.WaveParams{WaveSpeed: cfg.Water.WaveSpeed, Damping: cfg.Water.Damping}

	fb := raster.NewFrameBuffer(cfg.Width, cfg.Height)
	start := time.Now()

	switch *kernel {
	case "fractal":
		f := cfg.Fractal
		fmt.Printf("Fractal: center (%g, %g), zoom %g, %d iterations\n", f.CenterX, f.CenterY, f.Zoom, f.MaxIterations)
		k.GenerateFractal(fb.Color, fb.Width, fb.Height, f.CenterX, f.CenterY, f.Zoom, f.MaxIterations)
	case "raytrace":
		c := cfg.Camera
		fmt.Printf("Raytrace: camera (%g, %g, %g)\n", c.X, c.Y, c.Z)
		k.RaytraceScene(fb.Color, fb.Width, fb.Height, c.X, c.Y, c.Z, c.LookX, c.LookY, c.LookZ)
	case "water":
		if err := simulateWater(k, cfg, fb); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown kernel %q\n", *kernel)
		os.Exit(1)
	}

	elapsed := time.Since(start)
	fmt.Printf("Rendered %dx%d with %d workers in %.1fms\n", fb.Width, fb.Height, cfg.Workers, float64(elapsed.Microseconds())/1000)

	path := *out
	if path == "" {
		path = filepath.Join(cfg.OutputDir, *kernel+imageio.Ext(cfg.Format))
	}
	img := postprocess.Upscale(fb.Image(), *scale)
	if err := imageio.Save(path, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Output: %s\n", path)
}

func simulateWater(k *pixelkernels.Kernels, cfg config.Config, fb *raster.FrameBuffer) error {
	w := cfg.Water
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

	fmt.Printf("Water: %dx%d grid, %d steps of %g\n", w.Size, w.Size, w.Steps, w.DT)
	for s := 0; s < w.Steps; s++ {
		k.ApplyWaterForces(field.Heights, field.Velocities, field.Size, w.DT)
	}
	water.Shade(fb, field, 1, k.Workers)
	return nil
}
