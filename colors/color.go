package colors

import (
	"image/color"
	"math"

	"github.com/echoflaresat/raytrace/vectors"
)

// Color is a linear RGB color. Components may leave [0,1] until quantized.
type Color = vectors.Vec3

func New(r, g, b float64) Color {
	return Color{X: r, Y: g, Z: b}
}

func White() Color {
	return Color{X: 1, Y: 1, Z: 1}
}

func Black() Color {
	return Color{X: 0, Y: 0, Z: 0}
}

// Mix returns lerp(c, o, t) = c*(1-t) + o*t.
func Mix(c, o Color, t float64) Color {
	return Color{
		X: c.X*(1-t) + o.X*t,
		Y: c.Y*(1-t) + o.Y*t,
		Z: c.Z*(1-t) + o.Z*t,
	}
}

// LinearToGamma applies a gamma-2 transfer: sqrt for positive values, 0 otherwise.
func LinearToGamma(x float64) float64 {
	if x > 0 {
		return math.Sqrt(x)
	}
	return 0
}

// ToRGBA gamma-encodes c and quantizes each channel to 0..255.
func ToRGBA(c Color) color.RGBA {
	return color.RGBA{
		R: to8bit(LinearToGamma(c.X)),
		G: to8bit(LinearToGamma(c.Y)),
		B: to8bit(LinearToGamma(c.Z)),
		A: 255,
	}
}

// --- helpers ---

// to8bit clamps x into [0, 0.999] and scales by 256, truncating.
func to8bit(x float64) uint8 {
	return uint8(256 * clamp(x, 0, 0.999))
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
