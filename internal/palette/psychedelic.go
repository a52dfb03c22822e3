package palette

import (
	"math"

	"pixelkernels/internal/mathutil"
)

// Color is an opaque 8-bit RGB triplet.
type Color struct {
	R, G, B uint8
}

// Black is the in-set color.
var Black = Color{}

// Per-channel frequencies, in half-cycles of pi over t ∈ [0,1].
const (
	RedFreq   = 3.0
	GreenFreq = 5.0
	BlueFreq  = 7.0
)

// Phase offsets are float64 arithmetic on a rounded pi, not exact constants,
// so the last bit matches reference images.
var (
	pi = math.Pi

	RedPhase   = 0.0
	GreenPhase = pi / 3.0
	BluePhase  = 2.0 * pi / 3.0
)

// Channel evaluates one sinusoid and truncates it to a byte.
func Channel(t, freq, phase float64) uint8 {
	s := math.Sin(float64(t*math.Pi*freq) + phase)
	return mathutil.TruncByte((float64(s*0.5) + 0.5) * 255.0)
}

// Psychedelic maps t (nominally [0,1], not clamped) to three decorrelated sinusoids.
func Psychedelic(t float64) Color {
	return Color{
		R: Channel(t, RedFreq, RedPhase),
		G: Channel(t, GreenFreq, GreenPhase),
		B: Channel(t, BlueFreq, BluePhase),
	}
}

// Unit returns the color as [0,1] floats.
func (c Color) Unit() mathutil.Vec3 {
	return mathutil.Vec3{float64(c.R) / 255.0, float64(c.G) / 255.0, float64(c.B) / 255.0}
}
