// Package scenes holds the example worlds the CLI can render, each paired
// with the camera it is meant to be viewed through.
package scenes

import (
	"errors"
	"fmt"
	"sort"

	"github.com/echoflaresat/raytrace/colors"
	"github.com/echoflaresat/raytrace/render"
	"github.com/echoflaresat/raytrace/vectors"
)

var ErrUnknownScene = errors.New("scenes: unknown scene")

// Preset builds a world and its camera. rng drives any randomized layout so a
// fixed seed always yields the same scene.
type Preset struct {
	Name        string
	Description string
	Build       func(rng vectors.Rand) (*render.Scene, render.Camera)
}

var registry = map[string]Preset{}

func register(p Preset) {
	registry[p.Name] = p
}

func init() {
	register(Preset{Name: "empty", Description: "no objects, background gradient only", Build: Empty})
	register(Preset{Name: "single", Description: "one diffuse sphere resting on a large ground sphere", Build: Single})
	register(Preset{Name: "spheres", Description: "diffuse, hollow glass and metal spheres with shallow depth of field", Build: Spheres})
	register(Preset{Name: "final", Description: "three large spheres in a field of small random ones", Build: Final})
}

// Names lists registered presets in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Lookup(name string) (Preset, error) {
	p, ok := registry[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownScene, name, Names())
	}
	return p, nil
}

func Empty(_ vectors.Rand) (*render.Scene, render.Camera) {
	cam := render.NewCamera()
	cam.AspectRatio = 16.0 / 9.0
	cam.ImageWidth = 400
	return render.NewScene(), cam
}

func Single(_ vectors.Rand) (*render.Scene, render.Camera) {
	world := render.NewScene(
		render.NewSphere(vectors.New(0, 0, -1), 0.5, render.NewLambertian(colors.New(0.5, 0.5, 0.5))),
		render.NewSphere(vectors.New(0, -100.5, -1), 100, render.NewLambertian(colors.New(0.5, 0.5, 0.5))),
	)

	cam := render.NewCamera()
	cam.AspectRatio = 16.0 / 9.0
	cam.ImageWidth = 400
	cam.SamplesPerPixel = 100
	cam.MaxDepth = 50
	return world, cam
}

func Spheres(_ vectors.Rand) (*render.Scene, render.Camera) {
	ground := render.NewLambertian(colors.New(0.8, 0.8, 0.0))
	center := render.NewLambertian(colors.New(0.1, 0.2, 0.5))
	left := render.NewDielectric(1.50)
	bubble := render.NewDielectric(1.00 / 1.50)
	right := render.NewMetal(colors.New(0.8, 0.6, 0.2), 1.0)

	world := render.NewScene(
		render.NewSphere(vectors.New(0, -100.5, -1), 100, ground),
		render.NewSphere(vectors.New(0, 0, -1.2), 0.5, center),
		render.NewSphere(vectors.New(-1, 0, -1), 0.5, left),
		render.NewSphere(vectors.New(-1, 0, -1), 0.4, bubble),
		render.NewSphere(vectors.New(1, 0, -1), 0.5, right),
	)

	cam := render.NewCamera()
	cam.AspectRatio = 16.0 / 9.0
	cam.ImageWidth = 400
	cam.SamplesPerPixel = 100
	cam.MaxDepth = 50
	cam.VFov = 20
	cam.LookFrom = vectors.New(-2, 2, 1)
	cam.LookAt = vectors.New(0, 0, -1)
	cam.VUp = vectors.New(0, 1, 0)
	cam.DefocusAngle = 10
	cam.FocusDist = 3.4
	return world, cam
}

// Final scatters small spheres on a 22x22 grid around three large ones.
func Final(rng vectors.Rand) (*render.Scene, render.Camera) {
	world := render.NewScene()
	world.Add(render.NewSphere(vectors.New(0, -1000, 0), 1000, render.NewLambertian(colors.New(0.5, 0.5, 0.5))))

	clearing := vectors.New(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			choose := rng.Float64()
			center := vectors.New(float64(a)+0.9*rng.Float64(), 0.2, float64(b)+0.9*rng.Float64())
			if center.Sub(clearing).Norm() <= 0.9 {
				continue
			}

			var mat render.Material
			switch {
			case choose < 0.8:
				albedo := vectors.RandomVec(rng, 0, 1).Mul(vectors.RandomVec(rng, 0, 1))
				mat = render.NewLambertian(albedo)
			case choose < 0.95:
				albedo := vectors.RandomVec(rng, 0.5, 1)
				mat = render.NewMetal(albedo, vectors.RandomRange(rng, 0, 0.5))
			default:
				mat = render.NewDielectric(1.5)
			}
			world.Add(render.NewSphere(center, 0.2, mat))
		}
	}

	world.Add(render.NewSphere(vectors.New(0, 1, 0), 1.0, render.NewDielectric(1.5)))
	world.Add(render.NewSphere(vectors.New(-4, 1, 0), 1.0, render.NewLambertian(colors.New(0.4, 0.2, 0.1))))
	world.Add(render.NewSphere(vectors.New(4, 1, 0), 1.0, render.NewMetal(colors.New(0.7, 0.6, 0.5), 0.0)))

	cam := render.NewCamera()
	cam.AspectRatio = 16.0 / 9.0
	cam.ImageWidth = 1200
	cam.SamplesPerPixel = 500
	cam.MaxDepth = 50
	cam.VFov = 20
	cam.LookFrom = vectors.New(13, 2, 3)
	cam.LookAt = vectors.New(0, 0, 0)
	cam.VUp = vectors.New(0, 1, 0)
	cam.DefocusAngle = 0.6
	cam.FocusDist = 10.0
	return world, cam
}
