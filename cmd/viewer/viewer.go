package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"pixelkernels"
	"pixelkernels/internal/config"
	"pixelkernels/internal/raster"
	"pixelkernels/internal/water"
)

type mode int

const (
	modeFractal mode = iota
	modeRaytrace
	modeWater
)

func (m mode) String() string {
	switch m {
	case modeFractal:
		return "fractal"
	case modeRaytrace:
		return "raytrace"
	case modeWater:
		return "water"
	}
	return "?"
}

// viewer owns the framebuffer and calls one kernel per frame, like any other host.
type viewer struct {
	k     *pixelkernels.Kernels
	cfg   config.Config
	mode  mode
	fb    *raster.FrameBuffer
	img   *ebiten.Image
	field *water.Field
	dirty bool
}

func newViewer(k *pixelkernels.Kernels, cfg config.Config) *viewer {
	v := &viewer{
		k:     k,
		cfg:   cfg,
		fb:    raster.NewFrameBuffer(cfg.Width, cfg.Height),
		field: water.NewField(cfg.Water.Size),
		dirty: true,
	}
	c := float64(cfg.Water.Size) / 2
	water.Drop(v.field, c, c, float64(cfg.Water.Size)/8, 1)
	return v
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for key, m := range map[ebiten.Key]mode{ebiten.Key1: modeFractal, ebiten.Key2: modeRaytrace, ebiten.Key3: modeWater} {
		if inpututil.IsKeyJustPressed(key) && v.mode != m {
			v.mode = m
			v.dirty = true
		}
	}

	switch v.mode {
	case modeFractal:
		v.updateFractal()
	case modeRaytrace:
		v.updateCamera()
	case modeWater:
		v.updateWater()
	}
	return nil
}

func (v *viewer) updateFractal() {
	f := &v.cfg.Fractal
	step := 0.05 * 4 / f.Zoom
	moves := []struct {
		key    ebiten.Key
		dx, dy float64
	}{
		{ebiten.KeyArrowLeft, -step, 0},
		{ebiten.KeyArrowRight, step, 0},
		{ebiten.KeyArrowUp, 0, -step},
		{ebiten.KeyArrowDown, 0, step},
	}
	for _, m := range moves {
		if ebiten.IsKeyPressed(m.key) {
			f.CenterX += m.dx
			f.CenterY += m.dy
			v.dirty = true
		}
	}
	if ebiten.IsKeyPressed(ebiten.KeyZ) {
		f.Zoom *= 1.05
		v.dirty = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyX) {
		f.Zoom /= 1.05
		v.dirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		f.MaxIterations *= 2
		v.dirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) && f.MaxIterations > 1 {
		f.MaxIterations /= 2
		v.dirty = true
	}
}

func (v *viewer) updateCamera() {
	c := &v.cfg.Camera
	const step = 0.1
	moves := []struct {
		key        ebiten.Key
		dx, dy, dz float64
	}{
		{ebiten.KeyA, -step, 0, 0},
		{ebiten.KeyD, step, 0, 0},
		{ebiten.KeyW, 0, 0, -step},
		{ebiten.KeyS, 0, 0, step},
		{ebiten.KeyQ, 0, step, 0},
		{ebiten.KeyE, 0, -step, 0},
	}
	for _, m := range moves {
		if ebiten.IsKeyPressed(m.key) {
			c.X += m.dx
			c.Y += m.dy
			c.Z += m.dz
			v.dirty = true
		}
	}
}

func (v *viewer) updateWater() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		n := float64(v.field.Size)
		fx := float64(mx) * n / float64(v.fb.Width)
		fy := float64(my) * n / float64(v.fb.Height)
		water.Drop(v.field, fx, fy, n/16, 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.field = water.NewField(v.cfg.Water.Size)
	}
	v.k.ApplyWaterForces(v.field.Heights, v.field.Velocities, v.field.Size, v.cfg.Water.DT)
	v.dirty = true
}

func (v *viewer) render() {
	switch v.mode {
	case modeFractal:
		f := v.cfg.Fractal
		v.k.GenerateFractal(v.fb.Color, v.fb.Width, v.fb.Height, f.CenterX, f.CenterY, f.Zoom, f.MaxIterations)
	case modeRaytrace:
		c := v.cfg.Camera
		v.k.RaytraceScene(v.fb.Color, v.fb.Width, v.fb.Height, c.X, c.Y, c.Z, c.LookX, c.LookY, c.LookZ)
	case modeWater:
		water.Shade(v.fb, v.field, 1, v.k.Workers)
	}
}

func (v *viewer) status() string {
	switch v.mode {
	case modeFractal:
		f := v.cfg.Fractal
		return fmt.Sprintf("fractal  center (%.6f, %.6f)  zoom %.3g  iter %d\narrows pan, z/x zoom, [ ] iterations", f.CenterX, f.CenterY, f.Zoom, f.MaxIterations)
	case modeRaytrace:
		c := v.cfg.Camera
		return fmt.Sprintf("raytrace  camera (%.2f, %.2f, %.2f)\nwasd/qe move", c.X, c.Y, c.Z)
	default:
		return fmt.Sprintf("water  %dx%d  dt %g\nclick to drop, r to reset", v.field.Size, v.field.Size, v.cfg.Water.DT)
	}
}

func (v *viewer) Draw(screen *ebiten.Image) {
	if v.img == nil {
		v.img = ebiten.NewImage(v.fb.Width, v.fb.Height)
	}
	if v.dirty {
		v.render()
		v.img.WritePixels(v.fb.Color)
		v.dirty = false
	}
	screen.DrawImage(v.img, nil)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("[1] fractal [2] raytrace [3] water  %.0f fps\n%s", ebiten.ActualFPS(), v.status()))
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.fb.Width, v.fb.Height
}
