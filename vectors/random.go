package vectors

import (
	"math"
	"math/rand/v2"
)

// Rand is the source of uniform draws in [0, 1) used by every sampler.
// *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// NewRand returns a PCG generator. Distinct streams with the same seed are
// independent, which lets each pixel own a reproducible generator.
func NewRand(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}

// Fixed is a Rand that returns the same value for every draw.
// Rejection samplers fall back to a deterministic point under it.
type Fixed float64

func (f Fixed) Float64() float64 {
	return float64(f)
}

// RandomRange returns a uniform value in [lo, hi).
func RandomRange(rng Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

// RandomVec returns a vector with each component uniform in [lo, hi).
func RandomVec(rng Rand, lo, hi float64) Vec3 {
	return Vec3{
		X: RandomRange(rng, lo, hi),
		Y: RandomRange(rng, lo, hi),
		Z: RandomRange(rng, lo, hi),
	}
}

// RandomUnitVector returns a direction uniformly distributed on the unit sphere.
// It is drawn analytically, so any Rand terminates.
func RandomUnitVector(rng Rand) Vec3 {
	z := 1 - 2*rng.Float64()
	phi := 2 * math.Pi * rng.Float64()
	r := math.Sqrt(math.Max(0, 1-z*z))
	return Vec3{X: r * math.Cos(phi), Y: r * math.Sin(phi), Z: z}
}

// diskRejectLimit caps rejection sampling; a real generator almost never
// gets near it.
const diskRejectLimit = 64

// RandomInUnitDisk returns a point inside the unit disk on the XY plane by
// rejection sampling the [-1,1]² square. A source that keeps landing outside
// the disk (such as Fixed(0)) gets the disk center.
func RandomInUnitDisk(rng Rand) Vec3 {
	for i := 0; i < diskRejectLimit; i++ {
		p := Vec3{X: RandomRange(rng, -1, 1), Y: RandomRange(rng, -1, 1)}
		if p.NormSquared() < 1 {
			return p
		}
	}
	return Vec3{}
}

// SampleSquare returns an offset in the [-0.5,0.5]² square, used to jitter
// samples inside a pixel.
func SampleSquare(rng Rand) Vec3 {
	return Vec3{X: rng.Float64() - 0.5, Y: rng.Float64() - 0.5}
}
