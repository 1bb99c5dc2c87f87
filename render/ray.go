package render

import "github.com/echoflaresat/raytrace/vectors"

// Ray is the half-line Origin + t*Direction. Direction need not be unit length.
type Ray struct {
	Origin    vectors.Vec3
	Direction vectors.Vec3
}

func NewRay(origin, direction vectors.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) vectors.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}
