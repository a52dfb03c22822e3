package mathutil

import "math"

// TruncByte converts a float channel value to a byte by truncating toward zero.
// Values below 0 clamp to 0, values above 255 clamp to 255, NaN maps to 0.
// Rounding would shift channels by up to one unit against reference images.
func TruncByte(v float64) uint8 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// UnitToByte scales a [0,1] channel to [0,255] and truncates.
func UnitToByte(v float64) uint8 {
	return TruncByte(v * 255.0)
}
