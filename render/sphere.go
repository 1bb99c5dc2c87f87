package render

import (
	"math"

	"github.com/echoflaresat/raytrace/vectors"
)

type Sphere struct {
	Center   vectors.Vec3
	Radius   float64
	Material Material
}

// NewSphere clamps negative radii to zero.
func NewSphere(center vectors.Vec3, radius float64, mat Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   math.Max(0, radius),
		Material: mat,
	}
}

// Hit solves |O + tD - C|² = r² using the half-b form of the quadratic and
// reports the smallest root inside (tMin, tMax).
func (s *Sphere) Hit(r Ray, tMin, tMax float64) (HitRecord, bool) {
	oc := s.Center.Sub(r.Origin)
	a := r.Direction.NormSquared()
	h := r.Direction.Dot(oc)
	c := oc.NormSquared() - s.Radius*s.Radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return HitRecord{}, false
	}
	sqrtd := math.Sqrt(discriminant)

	root := (h - sqrtd) / a
	if !inOpenRange(root, tMin, tMax) {
		root = (h + sqrtd) / a
		if !inOpenRange(root, tMin, tMax) {
			return HitRecord{}, false
		}
	}

	rec := HitRecord{
		T:        root,
		Point:    r.At(root),
		Material: s.Material,
	}
	outward := rec.Point.Sub(s.Center).Div(s.Radius)
	rec.SetFaceNormal(r, outward)
	return rec, true
}

func (s *Sphere) BoundingBox() AABB {
	rv := vectors.New(s.Radius, s.Radius, s.Radius)
	return NewAABB(s.Center.Sub(rv), s.Center.Add(rv))
}

func inOpenRange(t, lo, hi float64) bool {
	return lo < t && t < hi
}
