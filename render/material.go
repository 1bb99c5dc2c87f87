package render

import (
	"math"

	"github.com/echoflaresat/raytrace/colors"
	"github.com/echoflaresat/raytrace/vectors"
)

// Material decides what happens to a ray arriving at a surface: it either
// scatters a new ray with an attenuation color, or absorbs it (ok == false).
// Materials are immutable and may be shared by many surfaces.
type Material interface {
	Scatter(in Ray, rec HitRecord, rng vectors.Rand) (scattered Ray, attenuation colors.Color, ok bool)
}

// Lambertian is an ideal diffuse surface.
type Lambertian struct {
	Albedo colors.Color
}

func NewLambertian(albedo colors.Color) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

func (l *Lambertian) Scatter(_ Ray, rec HitRecord, rng vectors.Rand) (Ray, colors.Color, bool) {
	dir := rec.Normal.Add(vectors.RandomUnitVector(rng))
	if dir.NearZero() {
		dir = rec.Normal
	}
	return NewRay(rec.Point, dir), l.Albedo, true
}

// Metal reflects like a mirror, blurred by Fuzz in [0,1].
type Metal struct {
	Albedo colors.Color
	Fuzz   float64
}

func NewMetal(albedo colors.Color, fuzz float64) *Metal {
	return &Metal{Albedo: albedo, Fuzz: math.Min(math.Max(fuzz, 0), 1)}
}

// Scatter absorbs the ray when the fuzzed reflection points into the surface.
func (m *Metal) Scatter(in Ray, rec HitRecord, rng vectors.Rand) (Ray, colors.Color, bool) {
	reflected := vectors.Reflect(in.Direction, rec.Normal).Normalize()
	reflected = reflected.Add(vectors.RandomUnitVector(rng).Scale(m.Fuzz))

	scattered := NewRay(rec.Point, reflected)
	if scattered.Direction.Dot(rec.Normal) <= 0 {
		return Ray{}, colors.Black(), false
	}
	return scattered, m.Albedo, true
}

// Dielectric is a clear refractive material such as glass or water.
type Dielectric struct {
	// RefractionIndex relative to the enclosing medium.
	RefractionIndex float64
}

func NewDielectric(refractionIndex float64) *Dielectric {
	return &Dielectric{RefractionIndex: refractionIndex}
}

func (d *Dielectric) Scatter(in Ray, rec HitRecord, rng vectors.Rand) (Ray, colors.Color, bool) {
	ri := d.RefractionIndex
	if rec.FrontFace {
		ri = 1.0 / d.RefractionIndex
	}

	unitDir := in.Direction.Normalize()
	cosTheta := math.Min(unitDir.Neg().Dot(rec.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	var dir vectors.Vec3
	if ri*sinTheta > 1.0 || Reflectance(cosTheta, ri) > rng.Float64() {
		dir = vectors.Reflect(unitDir, rec.Normal)
	} else {
		dir = vectors.Refract(unitDir, rec.Normal, ri)
	}
	return NewRay(rec.Point, dir), colors.White(), true
}

// Reflectance is Schlick's approximation of the Fresnel reflectance.
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
