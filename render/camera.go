package render

import (
	"math"

	"github.com/echoflaresat/raytrace/vectors"
)

// Camera models a thin-lens camera. The exported fields configure it;
// Initialize derives the sampling geometry, which is read-only afterwards.
type Camera struct {
	AspectRatio     float64 // nominal width over height
	ImageWidth      int     // in pixels
	SamplesPerPixel int
	MaxDepth        int // maximum number of bounces per camera ray

	VFov     float64 // vertical field of view in degrees
	LookFrom vectors.Vec3
	LookAt   vectors.Vec3
	VUp      vectors.Vec3

	DefocusAngle float64 // cone angle through each pixel in degrees, 0 for a pinhole
	FocusDist    float64 // distance from LookFrom to the plane of perfect focus

	initialized       bool
	imageHeight       int
	pixelSamplesScale float64
	center            vectors.Vec3
	pixel00           vectors.Vec3
	pixelDeltaU       vectors.Vec3
	pixelDeltaV       vectors.Vec3
	u, v, w           vectors.Vec3
	defocusDiskU      vectors.Vec3
	defocusDiskV      vectors.Vec3
}

// NewCamera returns a camera at the origin looking down -Z.
func NewCamera() Camera {
	return Camera{
		AspectRatio:     1.0,
		ImageWidth:      100,
		SamplesPerPixel: 10,
		MaxDepth:        10,
		VFov:            90,
		LookFrom:        vectors.New(0, 0, 0),
		LookAt:          vectors.New(0, 0, -1),
		VUp:             vectors.New(0, 1, 0),
		DefocusAngle:    0,
		FocusDist:       10,
	}
}

// Initialize clamps out-of-range settings and derives the viewport geometry.
// Calling it again after the first time has no effect.
func (c *Camera) Initialize() {
	if c.initialized {
		return
	}
	c.initialized = true

	if c.ImageWidth < 1 {
		c.ImageWidth = 1
	}
	if c.AspectRatio <= 0 {
		c.AspectRatio = 1
	}
	if c.SamplesPerPixel < 1 {
		c.SamplesPerPixel = 1
	}
	if c.MaxDepth < 0 {
		c.MaxDepth = 0
	}
	if c.FocusDist <= 0 {
		c.FocusDist = 1
	}

	c.imageHeight = int(float64(c.ImageWidth) / c.AspectRatio)
	if c.imageHeight < 1 {
		c.imageHeight = 1
	}
	c.pixelSamplesScale = 1.0 / float64(c.SamplesPerPixel)
	c.center = c.LookFrom

	h := math.Tan(degreesToRadians(c.VFov) / 2)
	viewportHeight := 2 * h * c.FocusDist
	// Use the real pixel ratio; the nominal aspect ratio was rounded away.
	viewportWidth := viewportHeight * float64(c.ImageWidth) / float64(c.imageHeight)

	c.w = c.LookFrom.Sub(c.LookAt).Normalize()
	c.u = c.VUp.Cross(c.w).Normalize()
	c.v = c.w.Cross(c.u)

	viewportU := c.u.Scale(viewportWidth)
	viewportV := c.v.Neg().Scale(viewportHeight) // image rows grow downward

	c.pixelDeltaU = viewportU.Div(float64(c.ImageWidth))
	c.pixelDeltaV = viewportV.Div(float64(c.imageHeight))

	upperLeft := c.center.
		Sub(c.w.Scale(c.FocusDist)).
		Sub(viewportU.Scale(0.5)).
		Sub(viewportV.Scale(0.5))
	c.pixel00 = upperLeft.Add(c.pixelDeltaU.Add(c.pixelDeltaV).Scale(0.5))

	defocusRadius := c.FocusDist * math.Tan(degreesToRadians(c.DefocusAngle/2))
	c.defocusDiskU = c.u.Scale(defocusRadius)
	c.defocusDiskV = c.v.Scale(defocusRadius)
}

// ImageHeight is valid after Initialize.
func (c *Camera) ImageHeight() int {
	return c.imageHeight
}

// GetRay returns a camera ray through a random point of pixel (i, j),
// starting on the defocus disk when depth of field is enabled.
func (c *Camera) GetRay(i, j int, rng vectors.Rand) Ray {
	offset := vectors.SampleSquare(rng)
	pixelSample := c.pixel00.
		Add(c.pixelDeltaU.Scale(float64(i) + offset.X)).
		Add(c.pixelDeltaV.Scale(float64(j) + offset.Y))

	origin := c.center
	if c.DefocusAngle > 0 {
		origin = c.defocusDiskSample(rng)
	}
	return NewRay(origin, pixelSample.Sub(origin))
}

func (c *Camera) defocusDiskSample(rng vectors.Rand) vectors.Vec3 {
	p := vectors.RandomInUnitDisk(rng)
	return c.center.Add(c.defocusDiskU.Scale(p.X)).Add(c.defocusDiskV.Scale(p.Y))
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
