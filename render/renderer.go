package render

import (
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/echoflaresat/raytrace/colors"
	"github.com/echoflaresat/raytrace/vectors"
)

// Options controls how a frame is scheduled. The zero value renders on
// GOMAXPROCS workers with seed 0.
type Options struct {
	// Workers is the number of pixels traced concurrently; <= 0 means GOMAXPROCS.
	Workers int

	// Seed selects the random sequence. Pixel (i, j) draws from its own
	// stream, so the output does not depend on Workers.
	Seed uint64

	// NewRand builds the random source for one pixel. Defaults to vectors.NewRand.
	NewRand func(seed, stream uint64) vectors.Rand

	// Progress, if set, is called after each finished pixel with the number
	// of completed pixels. It may be called from several goroutines at once.
	Progress func(done, total int)
}

// Stats summarizes a finished render.
type Stats struct {
	Width, Height int
	Samples       int // camera rays traced
	Workers       int
	Duration      time.Duration
}

// Render traces every pixel of cam's image against world on a bounded pool of
// goroutines, one task per pixel, and returns the completed framebuffer.
// cam is initialized if it has not been already.
func Render(world Hittable, cam *Camera, opts Options) (*Framebuffer, Stats) {
	cam.Initialize()
	start := time.Now()

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	newRand := opts.newRandFunc()

	w, h := cam.ImageWidth, cam.ImageHeight()
	fb := NewFramebuffer(w, h)
	total := w * h

	var done atomic.Int64
	var g errgroup.Group
	g.SetLimit(workers)

	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			g.Go(func() error {
				rng := newRand(opts.Seed, pixelStream(i, j, w))
				fb.Set(i, j, samplePixel(world, cam, i, j, rng))

				n := done.Add(1)
				if opts.Progress != nil {
					opts.Progress(int(n), total)
				}
				return nil
			})
		}
	}
	_ = g.Wait() // tasks never fail

	return fb, Stats{
		Width:    w,
		Height:   h,
		Samples:  total * cam.SamplesPerPixel,
		Workers:  workers,
		Duration: time.Since(start),
	}
}

// RenderSequential produces the same frame as Render on the calling goroutine.
func RenderSequential(world Hittable, cam *Camera, opts Options) (*Framebuffer, Stats) {
	cam.Initialize()
	start := time.Now()
	newRand := opts.newRandFunc()

	w, h := cam.ImageWidth, cam.ImageHeight()
	fb := NewFramebuffer(w, h)
	total := w * h

	done := 0
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			rng := newRand(opts.Seed, pixelStream(i, j, w))
			fb.Set(i, j, samplePixel(world, cam, i, j, rng))

			done++
			if opts.Progress != nil {
				opts.Progress(done, total)
			}
		}
	}

	return fb, Stats{
		Width:    w,
		Height:   h,
		Samples:  total * cam.SamplesPerPixel,
		Workers:  1,
		Duration: time.Since(start),
	}
}

// samplePixel averages SamplesPerPixel jittered camera rays through pixel (i, j).
func samplePixel(world Hittable, cam *Camera, i, j int, rng vectors.Rand) colors.Color {
	sum := colors.Black()
	for s := 0; s < cam.SamplesPerPixel; s++ {
		r := cam.GetRay(i, j, rng)
		sum.Accumulate(RayColor(r, world, cam.MaxDepth, rng))
	}
	sum.ScaleBy(cam.pixelSamplesScale)
	return sum
}

func pixelStream(i, j, width int) uint64 {
	return uint64(j*width + i)
}

func (o Options) newRandFunc() func(seed, stream uint64) vectors.Rand {
	if o.NewRand != nil {
		return o.NewRand
	}
	return func(seed, stream uint64) vectors.Rand {
		return vectors.NewRand(seed, stream)
	}
}
