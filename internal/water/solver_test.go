package water

import (
	"image"
	"image/color"
	"math"
	"slices"
	"strconv"
	"testing"

	"pixelkernels/internal/raster"
)

func bumpField(size int) *Field {
	f := NewField(size)
	c := size / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x-c)*(x-c)+(y-c)*(y-c) <= 4 {
				f.Heights[f.Index(x, y)] = 1
			}
		}
	}
	return f
}

// stepSequential is a plain single-threaded rendition of one step.
func stepSequential(h, v []float32, n int, p Params, dt float32) {
	old := slices.Clone(h)
	c2 := p.WaveSpeed * p.WaveSpeed
	for y := 1; y < n-1; y++ {
		for x := 1; x < n-1; x++ {
			i := y*n + x
			lap := old[i-1] + old[i+1] + old[i-n] + old[i+n] - float32(4*old[i])
			v[i] = (v[i] + float32(c2*lap*dt)) * p.Damping
		}
	}
	for i := range h {
		h[i] += float32(v[i] * dt)
	}
}

func TestWrap(t *testing.T) {
	if _, err := Wrap(make([]float32, 9), make([]float32, 8), 3); err == nil {
		t.Error("Wrap with short velocity grid succeeded")
	}
	if _, err := Wrap(nil, nil, 0); err == nil {
		t.Error("Wrap with size 0 succeeded")
	}
	// size*size wraps to 0
	if _, err := Wrap(nil, nil, 1<<(strconv.IntSize/2)); err == nil {
		t.Error("Wrap with overflowing size succeeded")
	}
	h := make([]float32, 16)
	f, err := Wrap(h, make([]float32, 16), 4)
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	f.Heights[5] = 2
	if h[5] != 2 {
		t.Error("field does not alias caller heights")
	}
}

func TestStepSingleCell(t *testing.T) {
	f := NewField(3)
	f.Heights[4] = 1 // center, the only interior cell
	dt := float32(0.1)
	Step(f, DefaultParams, dt, 1)

	// lap = -4, accel = 2.25 * -4
	accel := float32(-9)
	wantV := (0 + accel*dt) * DefaultParams.Damping
	if f.Velocities[4] != wantV {
		t.Errorf("center velocity = %v, want %v", f.Velocities[4], wantV)
	}
	if want := 1 + float32(wantV*dt); f.Heights[4] != want {
		t.Errorf("center height = %v, want %v", f.Heights[4], want)
	}
	for i, v := range f.Velocities {
		if i != 4 && v != 0 {
			t.Errorf("border velocity[%d] = %v, want 0", i, v)
		}
	}
}

func TestStepReadsPreUpdateHeights(t *testing.T) {
	const n = 9
	f := bumpField(n)
	h := slices.Clone(f.Heights)
	v := slices.Clone(f.Velocities)

	for s := 0; s < 25; s++ {
		Step(f, DefaultParams, 0.05, 4)
		stepSequential(h, v, n, DefaultParams, 0.05)
	}
	if !slices.Equal(f.Heights, h) || !slices.Equal(f.Velocities, v) {
		t.Error("parallel step diverged from sequential snapshot solver")
	}
}

func TestStepWorkerCountIndependent(t *testing.T) {
	ref := bumpField(33)
	for s := 0; s < 40; s++ {
		Step(ref, DefaultParams, 0.1, 1)
	}
	for _, workers := range []int{0, 2, 3, 31, 100} {
		f := bumpField(33)
		for s := 0; s < 40; s++ {
			Step(f, DefaultParams, 0.1, workers)
		}
		if !slices.Equal(f.Heights, ref.Heights) || !slices.Equal(f.Velocities, ref.Velocities) {
			t.Errorf("workers=%d diverged from single worker", workers)
		}
	}
}

func TestVelocityStaysBounded(t *testing.T) {
	f := bumpField(16)
	peak := float32(0)
	for s := 0; s < 1000; s++ {
		Step(f, DefaultParams, 0.1, 0)
		for _, v := range f.Velocities {
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				t.Fatalf("step %d: non-finite velocity", s)
			}
			peak = max(peak, float32(math.Abs(float64(v))))
		}
	}
	if peak > 5 {
		t.Errorf("peak |v| = %v, expected damping to keep it small", peak)
	}
	final := float32(0)
	for _, v := range f.Velocities {
		final = max(final, float32(math.Abs(float64(v))))
	}
	if final > 0.01 {
		t.Errorf("|v| after 1000 steps = %v, want decayed below 0.01", final)
	}
}

func TestBorderVelocitiesUntouched(t *testing.T) {
	const n = 6
	const dt = float32(0.05)
	f := bumpField(n)

	border := []int{}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if x == 0 || y == 0 || x == n-1 || y == n-1 {
				border = append(border, f.Index(x, y))
			}
		}
	}
	for k, i := range border {
		f.Velocities[i] = float32(k%5) * 0.25
	}
	seededV := slices.Clone(f.Velocities)
	wantH := slices.Clone(f.Heights)

	for s := 0; s < 50; s++ {
		Step(f, DefaultParams, dt, 3)
		for _, i := range border {
			wantH[i] += float32(seededV[i] * dt)
		}
	}
	for _, i := range border {
		if f.Velocities[i] != seededV[i] {
			t.Errorf("border velocity[%d] = %v, want seeded %v", i, f.Velocities[i], seededV[i])
		}
		if f.Heights[i] != wantH[i] {
			t.Errorf("border height[%d] = %v, want %v", i, f.Heights[i], wantH[i])
		}
	}
}

func TestZeroTimeStepIsNoOp(t *testing.T) {
	f := bumpField(12)
	h := slices.Clone(f.Heights)
	v := slices.Clone(f.Velocities)
	Step(f, DefaultParams, 0, 2)
	Step(f, DefaultParams, 0, 2)
	if !slices.Equal(f.Heights, h) || !slices.Equal(f.Velocities, v) {
		t.Error("dt=0 changed a field at rest")
	}
}

func TestZeroTimeStepStillDamps(t *testing.T) {
	f := NewField(3)
	f.Velocities[4] = 1
	Step(f, DefaultParams, 0, 1)
	if f.Velocities[4] != DefaultParams.Damping {
		t.Errorf("velocity = %v, want damped to %v", f.Velocities[4], DefaultParams.Damping)
	}
	if f.Heights[4] != 0 {
		t.Errorf("height moved with dt=0: %v", f.Heights[4])
	}
}

func TestTinyGridsOnlyAdvect(t *testing.T) {
	for _, n := range []int{1, 2} {
		f := NewField(n)
		for i := range f.Velocities {
			f.Velocities[i] = 2
		}
		Step(f, DefaultParams, 0.5, 4)
		for i := range f.Heights {
			if f.Heights[i] != 1 || f.Velocities[i] != 2 {
				t.Errorf("size %d cell %d: h=%v v=%v, want h=1 v=2", n, i, f.Heights[i], f.Velocities[i])
			}
		}
	}
}

func TestCustomParams(t *testing.T) {
	f := NewField(3)
	f.Heights[4] = 1
	Step(f, Params{WaveSpeed: 0, Damping: 1}, 0.1, 1)
	if f.Velocities[4] != 0 || f.Heights[4] != 1 {
		t.Errorf("zero wave speed moved the field: v=%v h=%v", f.Velocities[4], f.Heights[4])
	}
}

func TestDrop(t *testing.T) {
	f := NewField(11)
	Drop(f, 5, 5, 3, 2)
	if f.Heights[f.Index(5, 5)] != 2 {
		t.Errorf("drop peak = %v, want 2", f.Heights[f.Index(5, 5)])
	}
	if f.Heights[f.Index(5, 8)] != 0 || f.Heights[f.Index(0, 0)] != 0 {
		t.Error("drop leaked past its radius")
	}
	// partially off-grid drops are clipped, not panics
	Drop(f, 0, 0, 4, 1)
	Drop(f, -20, 3, 2, 1)
}

func TestSeedFromImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 4; x < 8; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	f := NewField(4)
	f.Velocities[0] = 3
	SeedFromImage(f, img, 0.5)
	if f.Heights[f.Index(0, 0)] != -0.5 || f.Heights[f.Index(3, 3)] != 0.5 {
		t.Errorf("seeded heights = %v", f.Heights)
	}
	if f.Velocities[0] != 0 {
		t.Error("seeding kept old velocity")
	}
}

func TestShade(t *testing.T) {
	f := NewField(2)
	f.Heights = []float32{-1, 1, 0, 5}
	fb := raster.NewFrameBuffer(4, 4)
	Shade(fb, f, 1, 2)

	at := func(x, y int) []uint8 { i := (y*4 + x) * 4; return fb.Color[i : i+4] }
	if got := at(0, 0); got[0] != 5 || got[1] != 25 || got[2] != 76 {
		t.Errorf("trough pixel = %v, want [5 25 76]", got)
	}
	if got := at(3, 0); got[0] != 178 || got[1] != 229 || got[2] != 255 {
		t.Errorf("crest pixel = %v, want [178 229 255]", got)
	}
	if !slices.Equal(at(3, 3), at(3, 0)) {
		t.Error("heights past scale should clamp to the crest color")
	}
}
