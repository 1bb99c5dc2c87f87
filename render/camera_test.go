package render

import (
	"math"
	"testing"

	"github.com/echoflaresat/raytrace/vectors"
)

func approxVec(a, b vectors.Vec3, tol float64) bool {
	return a.Sub(b).Norm() <= tol
}

func TestCameraImageHeight(t *testing.T) {
	tests := []struct {
		name        string
		width       int
		aspect      float64
		wantWidth   int
		wantHeight  int
	}{
		{"16:9", 400, 16.0 / 9.0, 400, 225},
		{"square", 100, 1, 100, 100},
		{"very wide", 10, 100, 10, 1},
		{"zero width", 0, 1, 1, 1},
		{"negative width", -5, 1, 1, 1},
		{"non-positive aspect", 50, 0, 50, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewCamera()
			cam.ImageWidth = tt.width
			cam.AspectRatio = tt.aspect
			cam.Initialize()
			if cam.ImageWidth != tt.wantWidth || cam.ImageHeight() != tt.wantHeight {
				t.Errorf("image = %dx%d, want %dx%d", cam.ImageWidth, cam.ImageHeight(), tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestCameraClampsSampling(t *testing.T) {
	cam := NewCamera()
	cam.SamplesPerPixel = 0
	cam.MaxDepth = -3
	cam.Initialize()
	if cam.SamplesPerPixel != 1 || cam.MaxDepth != 0 {
		t.Errorf("samples=%d depth=%d, want 1 and 0", cam.SamplesPerPixel, cam.MaxDepth)
	}
}

func TestCameraPixelCenters(t *testing.T) {
	cam := NewCamera()
	cam.ImageWidth = 2
	cam.AspectRatio = 1
	cam.VFov = 90
	cam.FocusDist = 1
	cam.Initialize()

	// A centered source removes the jitter, so rays pass through pixel centers
	// of a 2x2 viewport spanning [-1,1]² at z = -1.
	center := vectors.Fixed(0.5)
	tests := []struct {
		i, j int
		want vectors.Vec3
	}{
		{0, 0, vectors.New(-0.5, 0.5, -1)},
		{1, 0, vectors.New(0.5, 0.5, -1)},
		{0, 1, vectors.New(-0.5, -0.5, -1)},
		{1, 1, vectors.New(0.5, -0.5, -1)},
	}
	for _, tt := range tests {
		r := cam.GetRay(tt.i, tt.j, center)
		if r.Origin != vectors.Zero() {
			t.Errorf("pinhole ray origin = %v, want origin", r.Origin)
		}
		if !approxVec(r.Direction, tt.want, 1e-12) {
			t.Errorf("pixel (%d,%d) direction = %v, want %v", tt.i, tt.j, r.Direction, tt.want)
		}
	}

	// A zero source shifts every sample to the pixel's upper-left corner.
	if r := cam.GetRay(0, 0, vectors.Fixed(0)); !approxVec(r.Direction, vectors.New(-1, 1, -1), 1e-12) {
		t.Errorf("corner sample direction = %v, want (-1,1,-1)", r.Direction)
	}
}

func TestCameraBasisFollowsLookAt(t *testing.T) {
	cam := NewCamera()
	cam.LookFrom = vectors.New(3, 0, 0)
	cam.LookAt = vectors.Zero()
	cam.FocusDist = 3
	cam.ImageWidth = 101
	cam.Initialize()

	// The central pixel looks straight at the target.
	r := cam.GetRay(50, 50, vectors.Fixed(0.5))
	if got := r.Direction.Normalize(); !approxVec(got, vectors.New(-1, 0, 0), 1e-9) {
		t.Errorf("central ray direction = %v, want (-1,0,0)", got)
	}
	if !approxVec(r.At(1), vectors.Zero(), 1e-9) {
		t.Errorf("central ray should reach the focus plane at t=1, got %v", r.At(1))
	}
}

func TestCameraDefocusDisk(t *testing.T) {
	cam := NewCamera()
	cam.DefocusAngle = 10
	cam.FocusDist = 4
	cam.ImageWidth = 3
	cam.Initialize()

	radius := cam.FocusDist * math.Tan(10*math.Pi/180/2)
	rng := vectors.NewRand(8, 0)
	moved := false
	for k := 0; k < 500; k++ {
		r := cam.GetRay(1, 1, rng)
		off := r.Origin.Sub(cam.LookFrom)
		if off.Norm() > radius+1e-12 {
			t.Fatalf("ray origin %v outside defocus disk of radius %v", r.Origin, radius)
		}
		if math.Abs(off.Z) > 1e-12 {
			t.Fatalf("defocus offset %v leaves the lens plane", off)
		}
		if off.Norm() > 0 {
			moved = true
		}
		// Every ray still passes through its pixel on the focus plane.
		p := r.At(1)
		if math.Abs(p.Z+cam.FocusDist) > 1e-9 {
			t.Fatalf("ray reaches z=%v at t=1, want %v", p.Z, -cam.FocusDist)
		}
	}
	if !moved {
		t.Error("defocus should move ray origins off the camera center")
	}
}

func TestInitializeIsIdempotent(t *testing.T) {
	cam := NewCamera()
	cam.ImageWidth = 40
	cam.Initialize()
	cam.ImageWidth = 80
	cam.Initialize()
	if cam.ImageHeight() != 40 {
		t.Errorf("derived geometry changed after first Initialize: height %d", cam.ImageHeight())
	}
}
