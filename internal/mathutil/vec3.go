package mathutil

import "math"

// Vec3 is a 3-component vector (value type, stack-allocated).
// Products are converted with float64() before they are summed so that no
// architecture fuses them into multiply-adds.
type Vec3 [3]float64

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{float64(v[0] * s), float64(v[1] * s), float64(v[2] * s)}
}

func (a Vec3) Dot(b Vec3) float64 {
	return float64(a[0]*b[0]) + float64(a[1]*b[1]) + float64(a[2]*b[2])
}

// LenSq is the squared length, v·v.
func (v Vec3) LenSq() float64 {
	return float64(v[0]*v[0]) + float64(v[1]*v[1]) + float64(v[2]*v[2])
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v.LenSq())
}

// Normalize divides each component by the length. Near-zero vectors map to zero.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return Vec3{}
	}
	return Vec3{v[0] / l, v[1] / l, v[2] / l}
}

// Lerp blends a toward b by t (t=0 → a, t=1 → b).
func Lerp(a, b Vec3, t float64) Vec3 {
	return Vec3{
		float64(a[0]*(1-t)) + float64(b[0]*t),
		float64(a[1]*(1-t)) + float64(b[1]*t),
		float64(a[2]*(1-t)) + float64(b[2]*t),
	}
}
