package render

import (
	"math"

	"github.com/echoflaresat/raytrace/colors"
	"github.com/echoflaresat/raytrace/vectors"
)

// shadowAcneEpsilon is the minimum hit distance. It keeps freshly scattered
// rays from re-hitting the surface they start on due to rounding.
const shadowAcneEpsilon = 0.001

var (
	gradientStart = colors.New(1.0, 1.0, 1.0)
	gradientEnd   = colors.New(0.0, 0.5, 0.7)
)

// RayColor returns the radiance carried back along r, following at most
// depth scattering events.
func RayColor(r Ray, world Hittable, depth int, rng vectors.Rand) colors.Color {
	if depth <= 0 {
		return colors.Black()
	}

	rec, ok := world.Hit(r, shadowAcneEpsilon, math.Inf(1))
	if !ok {
		return Background(r)
	}

	scattered, attenuation, ok := rec.Material.Scatter(r, rec, rng)
	if !ok {
		return colors.Black()
	}
	return attenuation.Mul(RayColor(scattered, world, depth-1, rng))
}

// Background is the color seen by rays that leave the scene: a vertical
// gradient keyed on the ray's unit Y component.
func Background(r Ray) colors.Color {
	a := 0.5 * (r.Direction.Normalize().Y + 1.0)
	return colors.Mix(gradientStart, gradientEnd, a)
}
