package render

import "github.com/echoflaresat/raytrace/vectors"

// HitRecord describes the nearest intersection of a ray with a surface.
// Normal always points against the incoming ray; FrontFace records whether
// that matches the geometric outward normal.
type HitRecord struct {
	Point     vectors.Vec3
	Normal    vectors.Vec3
	T         float64
	FrontFace bool
	Material  Material
}

// SetFaceNormal orients the record's normal against r.
// outward must be the unit-length geometric outward normal.
func (h *HitRecord) SetFaceNormal(r Ray, outward vectors.Vec3) {
	h.FrontFace = r.Direction.Dot(outward) < 0
	if h.FrontFace {
		h.Normal = outward
	} else {
		h.Normal = outward.Neg()
	}
}

// Hittable is anything a ray can intersect. Hit only reports intersections
// with t strictly inside (tMin, tMax).
type Hittable interface {
	Hit(r Ray, tMin, tMax float64) (HitRecord, bool)
	BoundingBox() AABB
}

// Scene is an ordered list of hittables, scanned linearly.
// It is built once and only read while rendering.
type Scene struct {
	objects []Hittable
	bbox    AABB
}

func NewScene(objects ...Hittable) *Scene {
	s := &Scene{}
	for _, o := range objects {
		s.Add(o)
	}
	return s
}

func (s *Scene) Add(o Hittable) {
	if len(s.objects) == 0 {
		s.bbox = o.BoundingBox()
	} else {
		s.bbox = s.bbox.Union(o.BoundingBox())
	}
	s.objects = append(s.objects, o)
}

func (s *Scene) Clear() {
	s.objects = nil
	s.bbox = AABB{}
}

func (s *Scene) Len() int {
	return len(s.objects)
}

// Objects returns the scene members in insertion order.
func (s *Scene) Objects() []Hittable {
	return s.objects
}

func (s *Scene) BoundingBox() AABB {
	return s.bbox
}

// Hit returns the closest intersection among all members. Each member is
// asked only for hits nearer than the best one found so far, so on an exact
// tie the earlier member wins.
func (s *Scene) Hit(r Ray, tMin, tMax float64) (HitRecord, bool) {
	var closest HitRecord
	hitAnything := false
	closestSoFar := tMax

	for _, o := range s.objects {
		if rec, ok := o.Hit(r, tMin, closestSoFar); ok {
			hitAnything = true
			closestSoFar = rec.T
			closest = rec
		}
	}
	return closest, hitAnything
}
