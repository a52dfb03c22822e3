package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"pixelkernels"
	"pixelkernels/internal/config"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	width := flag.Int("width", 0, "Framebuffer width (default: 640)")
	height := flag.Int("height", 0, "Framebuffer height (default: 480)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	zoom := flag.Int("window-scale", 1, "Window size multiplier")
	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{Width: *width, Height: *height, Workers: *workers})

	k := pixelkernels.New()
	k.Workers = cfg.Workers
	k.Wave = pixelkernels.WaveParams{WaveSpeed: cfg.Water.WaveSpeed, Damping: cfg.Water.Damping}

	v := newViewer(k, cfg)
	ebiten.SetWindowTitle("pixelkernels viewer")
	ebiten.SetWindowSize(cfg.Width*max(*zoom, 1), cfg.Height*max(*zoom, 1))
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(v); err != nil && err != ebiten.Termination {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
