package render

import (
	"math"
	"testing"

	"github.com/echoflaresat/raytrace/colors"
	"github.com/echoflaresat/raytrace/vectors"
)

func hitAt(normal vectors.Vec3, frontFace bool) HitRecord {
	return HitRecord{Point: vectors.Zero(), Normal: normal, T: 1, FrontFace: frontFace}
}

func TestLambertianNeverAbsorbs(t *testing.T) {
	albedo := colors.New(0.8, 0.3, 0.3)
	mat := NewLambertian(albedo)
	rng := vectors.NewRand(42, 0)
	rec := hitAt(vectors.New(0, 1, 0), true)
	in := NewRay(vectors.New(0, 1, 0), vectors.New(0, -1, 0))

	for i := 0; i < 1000; i++ {
		scattered, attenuation, ok := mat.Scatter(in, rec, rng)
		if !ok {
			t.Fatalf("scatter %d absorbed", i)
		}
		if attenuation != albedo {
			t.Fatalf("attenuation = %v, want %v", attenuation, albedo)
		}
		if scattered.Origin != rec.Point {
			t.Fatalf("scattered ray should start at the hit point")
		}
		if scattered.Direction.Dot(rec.Normal) < 0 {
			t.Fatalf("diffuse direction %v points into the surface", scattered.Direction)
		}
	}
}

func TestLambertianDegenerateDirectionFallsBackToNormal(t *testing.T) {
	mat := NewLambertian(colors.White())
	// A zero source draws the unit vector (0,0,1), cancelling this normal.
	rec := hitAt(vectors.New(0, 0, -1), true)
	scattered, _, ok := mat.Scatter(Ray{}, rec, vectors.Fixed(0))
	if !ok {
		t.Fatal("lambertian absorbed")
	}
	if scattered.Direction != rec.Normal {
		t.Errorf("direction = %v, want the normal %v", scattered.Direction, rec.Normal)
	}
}

func TestNewMetalClampsFuzz(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.3, 0.3},
		{1, 1},
		{1.5, 1},
		{-0.5, 0},
	}
	for _, tt := range tests {
		if got := NewMetal(colors.White(), tt.in).Fuzz; got != tt.want {
			t.Errorf("NewMetal(fuzz=%v).Fuzz = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMetalPerfectMirror(t *testing.T) {
	albedo := colors.New(0.8, 0.6, 0.2)
	mat := NewMetal(albedo, 0)
	rec := hitAt(vectors.New(0, 0, 1), true)
	in := NewRay(vectors.New(-1, 0, 1), vectors.New(1, 0, -1))

	scattered, attenuation, ok := mat.Scatter(in, rec, vectors.NewRand(1, 0))
	if !ok {
		t.Fatal("mirror reflection absorbed")
	}
	if attenuation != albedo {
		t.Errorf("attenuation = %v, want %v", attenuation, albedo)
	}
	want := vectors.New(1, 0, 1).Normalize()
	if scattered.Direction.Sub(want).Norm() > 1e-12 {
		t.Errorf("direction = %v, want %v", scattered.Direction, want)
	}
}

func TestMetalAbsorbsIffBelowSurface(t *testing.T) {
	mat := NewMetal(colors.White(), 1)
	rec := hitAt(vectors.New(0, 0, 1), true)
	in := NewRay(vectors.New(-1, 0, 1), vectors.New(1, 0, -1))

	// Fixed(1) draws the unit vector (0,0,-1), pushing the reflection below the surface.
	if _, _, ok := mat.Scatter(in, rec, vectors.Fixed(1)); ok {
		t.Error("expected absorption when fuzz points the ray into the surface")
	}
	// Fixed(0) draws (0,0,1), lifting it further away.
	if _, _, ok := mat.Scatter(in, rec, vectors.Fixed(0)); !ok {
		t.Error("expected a scattered ray above the surface")
	}

	rng := vectors.NewRand(9, 0)
	for i := 0; i < 1000; i++ {
		scattered, _, ok := mat.Scatter(in, rec, rng)
		if ok != (scattered.Direction.Dot(rec.Normal) > 0) {
			t.Fatalf("scatter %d: ok=%v with direction %v", i, ok, scattered.Direction)
		}
	}
}

func TestDielectricAttenuationIsWhite(t *testing.T) {
	mat := NewDielectric(1.5)
	rng := vectors.NewRand(2, 0)
	for i := 0; i < 500; i++ {
		front := i%2 == 0
		rec := hitAt(vectors.New(0, 1, 0), front)
		in := NewRay(vectors.Zero(), vectors.RandomVec(rng, -1, 1).Add(vectors.New(0, -2, 0)))
		_, attenuation, ok := mat.Scatter(in, rec, rng)
		if !ok {
			t.Fatalf("dielectric absorbed on scatter %d", i)
		}
		if attenuation != colors.White() {
			t.Fatalf("attenuation = %v, want white", attenuation)
		}
	}
}

func TestDielectricTotalInternalReflection(t *testing.T) {
	mat := NewDielectric(1.5)
	// Leaving the glass at 60° exceeds the critical angle (about 41.8°).
	rec := hitAt(vectors.New(0, 1, 0), false)
	in := NewRay(vectors.Zero(), vectors.New(math.Sin(math.Pi/3), -math.Cos(math.Pi/3), 0))

	// A source of 0.999 would refract whenever refraction is possible.
	scattered, _, _ := mat.Scatter(in, rec, vectors.Fixed(0.999))
	want := vectors.Reflect(in.Direction.Normalize(), rec.Normal)
	if scattered.Direction.Sub(want).Norm() > 1e-12 {
		t.Errorf("direction = %v, want reflection %v", scattered.Direction, want)
	}
}

func TestDielectricRefractsHeadOn(t *testing.T) {
	mat := NewDielectric(1.5)
	rec := hitAt(vectors.New(0, 1, 0), true)
	in := NewRay(vectors.New(0, 1, 0), vectors.New(0, -1, 0))

	scattered, _, _ := mat.Scatter(in, rec, vectors.Fixed(0.999))
	if scattered.Direction.Sub(vectors.New(0, -1, 0)).Norm() > 1e-12 {
		t.Errorf("head-on ray should pass straight through, got %v", scattered.Direction)
	}
}

func TestReflectance(t *testing.T) {
	// Normal incidence air/glass: ((1-1.5)/(1+1.5))² = 0.04.
	if got := Reflectance(1, 1.5); math.Abs(got-0.04) > 1e-12 {
		t.Errorf("Reflectance(1, 1.5) = %v, want 0.04", got)
	}
	// Grazing incidence reflects everything.
	if got := Reflectance(0, 1.5); math.Abs(got-1) > 1e-12 {
		t.Errorf("Reflectance(0, 1.5) = %v, want 1", got)
	}
}
