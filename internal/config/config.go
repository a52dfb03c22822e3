package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Config holds render settings shared by the host commands.
type Config struct {
	// Output
	OutputDir string `json:"output_dir"`
	Format    string `json:"format"`     // webp, png, tga or bmp
	ThumbSize int    `json:"thumb_size"` // 0 disables thumbnails

	// Render settings
	Width   int `json:"width"`
	Height  int `json:"height"`
	Workers int `json:"workers"`

	Fractal   Fractal   `json:"fractal"`
	Camera    Camera    `json:"camera"`
	Water     Water     `json:"water"`
	Animation Animation `json:"animation"`
}

// Fractal is the Mandelbrot view.
type Fractal struct {
	CenterX       float64 `json:"center_x"`
	CenterY       float64 `json:"center_y"`
	Zoom          float64 `json:"zoom"`
	MaxIterations int     `json:"max_iterations"`
}

// Camera places the ray tracer's eye. Look is passed through but not applied.
type Camera struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	LookX float64 `json:"look_x"`
	LookY float64 `json:"look_y"`
	LookZ float64 `json:"look_z"`
}

// Water configures the height-field simulation.
//
// DT, WaveSpeed and Damping fall back to defaults when non-positive, unless
// the config file named them explicitly; a file may ask for 0.
type Water struct {
	Size      int     `json:"size"`
	DT        float32 `json:"dt"`
	Steps     int     `json:"steps"`
	SeedImage string  `json:"seed_image"`
	WaveSpeed float32 `json:"wave_speed"`
	Damping   float32 `json:"damping"`

	explicit waterKeys
}

// waterKeys records which solver constants Load found in the file.
type waterKeys struct {
	dt, waveSpeed, damping bool
}

// Animation configures frame sequences.
type Animation struct {
	Frames      int     `json:"frames"`
	ZoomFactor  float64 `json:"zoom_factor"`  // per-frame zoom multiplier
	OrbitRadius float64 `json:"orbit_radius"` // camera path radius around z
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	var present struct {
		Water struct {
			DT        *float32 `json:"dt"`
			WaveSpeed *float32 `json:"wave_speed"`
			Damping   *float32 `json:"damping"`
		} `json:"water"`
	}
	if err := json.Unmarshal(data, &present); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Water.explicit = waterKeys{
		dt:        present.Water.DT != nil,
		waveSpeed: present.Water.WaveSpeed != nil,
		damping:   present.Water.Damping != nil,
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Frames > 0 {
		c.Animation.Frames = flags.Frames
	}

	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	c.Format = strings.ToLower(strings.TrimPrefix(c.Format, "."))
	if c.Format == "" {
		c.Format = "webp"
	}

	// Defaults for render settings
	if c.Width <= 0 {
		c.Width = 640
	}
	if c.Height <= 0 {
		c.Height = 480
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}

	// A zero zoom would divide by zero; an unset view means the classic overview.
	if c.Fractal.Zoom <= 0 {
		c.Fractal.Zoom = 1
		if c.Fractal.CenterX == 0 && c.Fractal.CenterY == 0 {
			c.Fractal.CenterX = -0.5
		}
	}
	if c.Fractal.MaxIterations <= 0 {
		c.Fractal.MaxIterations = 256
	}

	if c.Camera.LookX == 0 && c.Camera.LookY == 0 && c.Camera.LookZ == 0 {
		c.Camera.LookZ = -1
	}

	if c.Water.Size <= 0 {
		c.Water.Size = 128
	}
	if c.Water.DT <= 0 && !c.Water.explicit.dt {
		c.Water.DT = 0.016
	}
	if c.Water.Steps <= 0 {
		c.Water.Steps = 60
	}
	if c.Water.WaveSpeed <= 0 && !c.Water.explicit.waveSpeed {
		c.Water.WaveSpeed = 1.5
	}
	if c.Water.Damping <= 0 && !c.Water.explicit.damping {
		c.Water.Damping = 0.98
	}

	if c.Animation.Frames <= 0 {
		c.Animation.Frames = 30
	}
	if c.Animation.ZoomFactor <= 0 {
		c.Animation.ZoomFactor = 1.1
	}
	if c.Animation.OrbitRadius <= 0 {
		c.Animation.OrbitRadius = 2
	}
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir string
	Format    string
	Width     int
	Height    int
	Workers   int
	Frames    int
}
