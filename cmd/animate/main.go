package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/guptarohit/asciigraph"

	"pixelkernels"
	"pixelkernels/internal/batch"
	"pixelkernels/internal/config"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	kinds := flag.String("kinds", "fractal,raytrace,water", "Comma-separated sequences to render")
	frames := flag.Int("frames", 0, "Frames per sequence (default: 30)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	format := flag.String("format", "", "Output format: webp, png, tga, bmp (default: webp)")
	width := flag.Int("width", 0, "Frame width (default: 640)")
	height := flag.Int("height", 0, "Frame height (default: 480)")

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
		Frames:    *frames,
	})

	anim := cfg.Animation
	var jobs []batch.Job
	for _, kind := range splitList(*kinds) {
		switch batch.Kind(kind) {
		case batch.KindFractal:
			jobs = append(jobs, batch.ZoomJobs(cfg.Fractal, anim.Frames, anim.ZoomFactor)...)
		case batch.KindRaytrace:
			jobs = append(jobs, batch.OrbitJobs(cfg.Camera, anim.Frames, anim.OrbitRadius)...)
		case batch.KindWater:
			jobs = append(jobs, batch.WaterJob(cfg.Water, anim.Frames))
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown sequence %q\n", kind)
			os.Exit(1)
		}
	}

	if len(jobs) == 0 {
		fmt.Println("No sequences to render.")
		os.Exit(0)
	}

	k := pixelkernels.New()
	k.Wave = pixelkernels.WaveParams{WaveSpeed: cfg.Water.WaveSpeed, Damping: cfg.Water.Damping}

	fmt.Printf("Jobs: %d, Frames: %d, Workers: %d\n", len(jobs), anim.Frames, cfg.Workers)
	fmt.Printf("Output: %s (%s)\n", cfg.OutputDir, cfg.Format)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		OutputDir: cfg.OutputDir,
		Format:    cfg.Format,
		ThumbSize: cfg.ThumbSize,
		Width:     cfg.Width,
		Height:    cfg.Height,
		Workers:   cfg.Workers,
		Kernels:   k,
	}, jobs)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, written := 0, 0
	var failed []batch.Result
	for _, r := range results {
		if r.Success {
			success++
			written += len(r.Files)
		} else {
			failed = append(failed, r)
		}
	}

	fmt.Printf("Jobs: %d/%d, frames written: %d\n", success, len(jobs), written)

	if len(results) > 1 {
		ms := make([]float64, len(results))
		for i, r := range results {
			ms[i] = float64(r.Elapsed.Microseconds()) / 1000
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(ms, asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("ms per job")))
	}

	if len(failed) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(failed))
		limit := min(len(failed), 20)
		for _, e := range failed[:limit] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if len(failed) > 0 {
		os.Exit(1)
	}
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
