package render

import (
	"math"

	"github.com/echoflaresat/raytrace/vectors"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max vectors.Vec3
}

func NewAABB(a, b vectors.Vec3) AABB {
	return AABB{
		Min: vectors.New(math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)),
		Max: vectors.New(math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)),
	}
}

// Union returns the smallest box enclosing both boxes.
func (b AABB) Union(o AABB) AABB {
	return AABB{
		Min: vectors.New(math.Min(b.Min.X, o.Min.X), math.Min(b.Min.Y, o.Min.Y), math.Min(b.Min.Z, o.Min.Z)),
		Max: vectors.New(math.Max(b.Max.X, o.Max.X), math.Max(b.Max.Y, o.Max.Y), math.Max(b.Max.Z, o.Max.Z)),
	}
}

func (b AABB) Center() vectors.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// LongestAxis returns 0, 1 or 2 for X, Y or Z.
func (b AABB) LongestAxis() int {
	size := b.Max.Sub(b.Min)
	switch {
	case size.X >= size.Y && size.X >= size.Z:
		return 0
	case size.Y >= size.Z:
		return 1
	default:
		return 2
	}
}

// Hit runs the slab test. It may report false positives when the ray origin
// lies exactly on a slab it is parallel to, never false negatives.
func (b AABB) Hit(r Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		invD := 1.0 / r.Direction.Axis(axis)
		o := r.Origin.Axis(axis)
		t0 := (b.Min.Axis(axis) - o) * invD
		t1 := (b.Max.Axis(axis) - o) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMax < tMin {
			return false
		}
	}
	return true
}
