package render

import "sort"

// leafThreshold is the largest number of objects stored in a single leaf.
const leafThreshold = 4

// BVH is a bounding volume hierarchy over a fixed set of hittables. It reports
// the same closest hit as a Scene holding the same objects.
type BVH struct {
	root *bvhNode
}

type bvhNode struct {
	box         AABB
	left, right *bvhNode
	objects     []Hittable // non-nil only for leaves
}

// NewBVH builds a hierarchy by median split along the longest axis.
// The input slice is not modified.
func NewBVH(objects []Hittable) *BVH {
	if len(objects) == 0 {
		return &BVH{}
	}
	objs := make([]Hittable, len(objects))
	copy(objs, objects)
	return &BVH{root: buildBVH(objs)}
}

func buildBVH(objects []Hittable) *bvhNode {
	box := objects[0].BoundingBox()
	for _, o := range objects[1:] {
		box = box.Union(o.BoundingBox())
	}

	if len(objects) <= leafThreshold {
		return &bvhNode{box: box, objects: objects}
	}

	axis := box.LongestAxis()
	sort.Slice(objects, func(i, j int) bool {
		return objects[i].BoundingBox().Center().Axis(axis) < objects[j].BoundingBox().Center().Axis(axis)
	})

	mid := len(objects) / 2
	return &bvhNode{
		box:   box,
		left:  buildBVH(objects[:mid]),
		right: buildBVH(objects[mid:]),
	}
}

func (b *BVH) BoundingBox() AABB {
	if b.root == nil {
		return AABB{}
	}
	return b.root.box
}

func (b *BVH) Hit(r Ray, tMin, tMax float64) (HitRecord, bool) {
	if b.root == nil {
		return HitRecord{}, false
	}
	return b.root.hit(r, tMin, tMax)
}

func (n *bvhNode) hit(r Ray, tMin, tMax float64) (HitRecord, bool) {
	if !n.box.Hit(r, tMin, tMax) {
		return HitRecord{}, false
	}

	var closest HitRecord
	hitAnything := false
	closestSoFar := tMax

	if n.objects != nil {
		for _, o := range n.objects {
			if rec, ok := o.Hit(r, tMin, closestSoFar); ok {
				hitAnything = true
				closestSoFar = rec.T
				closest = rec
			}
		}
		return closest, hitAnything
	}

	if rec, ok := n.left.hit(r, tMin, closestSoFar); ok {
		hitAnything = true
		closestSoFar = rec.T
		closest = rec
	}
	if rec, ok := n.right.hit(r, tMin, closestSoFar); ok {
		hitAnything = true
		closest = rec
	}
	return closest, hitAnything
}
