package batch

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"pixelkernels"
	"pixelkernels/internal/config"
	"pixelkernels/internal/imageio"
)

func testConfig(t *testing.T) Config {
	return Config{
		OutputDir: t.TempDir(),
		Format:    "png",
		ThumbSize: 8,
		Width:     24,
		Height:    16,
		Workers:   3,
		Kernels:   pixelkernels.New(),
	}
}

func TestZoomJobs(t *testing.T) {
	jobs := ZoomJobs(config.Fractal{CenterX: -0.5, Zoom: 2, MaxIterations: 50}, 4, 1.5)
	if len(jobs) != 4 {
		t.Fatalf("%d jobs, want 4", len(jobs))
	}
	for i, j := range jobs {
		want := 2 * math.Pow(1.5, float64(i))
		if j.Kind != KindFractal || j.Index != i || math.Abs(j.Fractal.Zoom-want) > 1e-12 {
			t.Errorf("job %d = %+v, want zoom %v", i, j, want)
		}
		if j.Fractal.CenterX != -0.5 || j.Fractal.MaxIterations != 50 {
			t.Errorf("job %d lost base view: %+v", i, j.Fractal)
		}
	}
}

func TestOrbitJobs(t *testing.T) {
	jobs := OrbitJobs(config.Camera{Z: 2, LookZ: -1}, 4, 3)
	want := [][2]float64{{3, 0}, {0, 3}, {-3, 0}, {0, -3}}
	for i, j := range jobs {
		if math.Abs(j.Camera.X-want[i][0]) > 1e-9 || math.Abs(j.Camera.Y-want[i][1]) > 1e-9 || j.Camera.Z != 2 {
			t.Errorf("frame %d camera = %+v, want (%v,%v,2)", i, j.Camera, want[i][0], want[i][1])
		}
	}
}

func TestRunWritesFramesAndManifest(t *testing.T) {
	cfg := testConfig(t)
	jobs := ZoomJobs(config.Fractal{CenterX: -0.5, Zoom: 1, MaxIterations: 30}, 3, 2)
	jobs = append(jobs, OrbitJobs(config.Camera{LookZ: -1}, 2, 1)...)
	jobs = append(jobs, WaterJob(config.Water{Size: 16, DT: 0.05, Steps: 3}, 2))

	results := Run(cfg, jobs)
	if len(results) != len(jobs) {
		t.Fatalf("%d results, want %d", len(results), len(jobs))
	}
	frames := 0
	for _, r := range results {
		if !r.Success {
			t.Fatalf("%s failed: %s", r.Name, r.Error)
		}
		for i, f := range r.Files {
			img, err := imageio.Load(filepath.Join(cfg.OutputDir, f))
			if err != nil {
				t.Fatalf("%s: %v", f, err)
			}
			if img.Bounds().Dx() != 24 || img.Bounds().Dy() != 16 {
				t.Errorf("%s: bounds %v", f, img.Bounds())
			}
			thumb, err := imageio.Load(filepath.Join(cfg.OutputDir, r.Thumbs[i]))
			if err != nil {
				t.Fatalf("thumb %s: %v", r.Thumbs[i], err)
			}
			if thumb.Bounds().Dx() != 8 {
				t.Errorf("thumb width %d, want 8", thumb.Bounds().Dx())
			}
			frames++
		}
	}
	if frames != 7 {
		t.Errorf("%d frames written, want 7", frames)
	}

	path := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := WriteManifest(path, results); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var entries []ManifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("manifest: %v", err)
	}
	if len(entries) != 7 {
		t.Errorf("manifest has %d entries, want 7", len(entries))
	}
	if entries[0].Image != "fractal/0000.png" || entries[0].Thumb != "thumbs/fractal/0000.png" {
		t.Errorf("first entry = %+v", entries[0])
	}
}

func TestWaterFramesEvolve(t *testing.T) {
	cfg := testConfig(t)
	cfg.ThumbSize = 0
	res := Run(cfg, []Job{WaterJob(config.Water{Size: 16, DT: 0.1, Steps: 5}, 2)})[0]
	if !res.Success || len(res.Files) != 2 {
		t.Fatalf("result = %+v", res)
	}
	a, _ := imageio.Load(filepath.Join(cfg.OutputDir, res.Files[0]))
	b, _ := imageio.Load(filepath.Join(cfg.OutputDir, res.Files[1]))
	same := true
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("consecutive water frames are identical")
	}
}

func TestRunReportsFailures(t *testing.T) {
	cfg := testConfig(t)
	cfg.Format = "gif"
	jobs := []Job{
		{Kind: KindFractal, Fractal: config.Fractal{Zoom: 1, MaxIterations: 10}},
		{Kind: "sierpinski"},
		WaterJob(config.Water{Size: 8, DT: 0.1, Steps: 1, SeedImage: filepath.Join(t.TempDir(), "none.png")}, 1),
	}
	for _, r := range Run(cfg, jobs) {
		if r.Success || r.Error == "" {
			t.Errorf("%s: expected failure, got %+v", r.Name, r)
		}
	}
}
