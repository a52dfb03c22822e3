package fractal

import "pixelkernels/internal/palette"

// Fixed virtual image sampled when the fractal is used as a surface texture.
const (
	TextureSize       = 256
	TextureIterations = 100
)

// TextureView is the view used for surface texturing.
var TextureView = View{CenterX: -0.5, CenterY: 0, Zoom: 1}

// Texture samples the fractal at texture coordinates u, v ∈ [0,1].
// Coordinates are scaled to the TextureSize grid and truncated toward zero.
func Texture(u, v float64) palette.Color {
	px := int(u * TextureSize)
	py := int(v * TextureSize)
	return Pixel(px, py, TextureSize, TextureSize, TextureView, TextureIterations)
}
