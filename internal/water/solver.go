// Package water advances a damped 2D wave equation on a square height field.
package water

import (
	"fmt"
	"math"

	"pixelkernels/internal/parallel"
)

// Params are the physical constants of the solver.
type Params struct {
	WaveSpeed float32
	Damping   float32 // velocity multiplier per step
}

// DefaultParams are the built-in wave speed and damping.
var DefaultParams = Params{
	WaveSpeed: 1.5,
	Damping:   0.98,
}

// Field is a square grid of heights and their time derivatives, row-major.
type Field struct {
	Size       int
	Heights    []float32
	Velocities []float32
}

// NewField allocates a flat, still field.
func NewField(size int) *Field {
	return &Field{
		Size:       size,
		Heights:    make([]float32, size*size),
		Velocities: make([]float32, size*size),
	}
}

// Wrap builds a field over caller-owned slices without copying.
func Wrap(heights, velocities []float32, size int) (*Field, error) {
	if size <= 0 {
		return nil, fmt.Errorf("water: invalid size %d", size)
	}
	if size > math.MaxInt/size {
		return nil, fmt.Errorf("water: size %d overflows", size)
	}
	n := size * size
	if len(heights) < n || len(velocities) < n {
		return nil, fmt.Errorf("water: grids hold %d/%d cells, need %d", len(heights), len(velocities), n)
	}
	return &Field{
		Size:       size,
		Heights:    heights[:n:n],
		Velocities: velocities[:n:n],
	}, nil
}

// Index returns the flat index of cell (x, y).
func (f *Field) Index(x, y int) int {
	return y*f.Size + x
}

// Cells returns Size*Size.
func (f *Field) Cells() int {
	return f.Size * f.Size
}

// Step advances the field by dt in two passes separated by a join.
//
// Pass 1 updates velocities of interior cells from the discrete Laplacian of the
// heights, which are only read. Pass 2 advects every cell's height, border cells
// included, by its velocity. Border velocities are never written.
func Step(f *Field, p Params, dt float32, workers int) {
	n := f.Size
	if n >= 3 {
		c2 := p.WaveSpeed * p.WaveSpeed
		parallel.Range(n-2, workers, func(lo, hi int) {
			// rows [lo+1, hi+1) belong to this worker alone
			first, last := lo+1, hi+1
			vel := f.Velocities[first*n : last*n : last*n]
			for y := first; y < last; y++ {
				row := (y - first) * n
				accelerateRow(f.Heights, vel[row:row+n:row+n], y, n, c2, p.Damping, dt)
			}
		})
	}

	parallel.Range(n*n, workers, func(lo, hi int) {
		h := f.Heights[lo:hi:hi]
		v := f.Velocities[lo:hi:hi]
		for i := range h {
			h[i] += float32(v[i] * dt)
		}
	})
}

// accelerateRow updates interior velocities of row y. heights is the whole
// grid, vel is row y only.
func accelerateRow(heights, vel []float32, y, n int, c2, damping, dt float32) {
	base := y * n
	for x := 1; x < n-1; x++ {
		idx := base + x
		// float32() conversions keep multiply-adds unfused
		lap := heights[idx-1] + heights[idx+1] + heights[idx-n] + heights[idx+n] - float32(4.0*heights[idx])
		accel := c2 * lap
		vel[x] = (vel[x] + float32(accel*dt)) * damping
	}
}
