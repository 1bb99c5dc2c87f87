package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"log/slog"
	"math"
	"os"
	"path"
	"sync"

	"github.com/echoflaresat/raytrace/config"
	"github.com/echoflaresat/raytrace/output"
	"github.com/echoflaresat/raytrace/render"
	"github.com/echoflaresat/raytrace/scenes"
	"github.com/echoflaresat/raytrace/vectors"
)

// Randomized scene layouts draw from a stream no pixel uses.
const sceneStream = math.MaxUint64

func main() {
	cfg, err := config.Load(os.Args[1:], ".env")
	if errors.Is(err, flag.ErrHelp) {
		cfg, err = config.Load([]string{"-h"}, "")
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\nRun %s -h for usage.\n", err, os.Args[0])
		os.Exit(2)
	}

	if cfg.ShowHelp {
		cfg.PrintHelp(os.Stderr, os.Args[0], scenes.Names())
		return
	}

	setupLogging(cfg.Verbose)

	if err := run(context.Background(), cfg, os.Stdout); err != nil {
		log.Fatalf("Render failed: %v", err)
	}
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// run renders the configured scene and delivers it to every requested sink.
// stdout receives the PPM stream when the output path is "-".
func run(ctx context.Context, cfg *config.Config, stdout io.Writer) error {
	preset, err := scenes.Lookup(cfg.Scene)
	if err != nil {
		return err
	}

	world, cam := preset.Build(vectors.NewRand(cfg.Seed, sceneStream))
	cfg.ApplyCamera(&cam)

	var target render.Hittable = world
	if cfg.BVH && world.Len() > 0 {
		target = render.NewBVH(world.Objects())
	}
	slog.Debug("scene ready", "scene", preset.Name, "objects", world.Len(), "bvh", cfg.BVH)

	fb, stats := render.Render(target, &cam, render.Options{
		Workers:  cfg.Workers,
		Seed:     cfg.Seed,
		Progress: progressLogger(10),
	})
	slog.Info("render finished",
		"scene", preset.Name,
		"width", stats.Width,
		"height", stats.Height,
		"samples", stats.Samples,
		"workers", stats.Workers,
		"duration", stats.Duration,
	)

	return deliver(ctx, cfg, fb, stdout)
}

func deliver(ctx context.Context, cfg *config.Config, img image.Image, stdout io.Writer) error {
	format := output.PPM
	if cfg.Out == "-" {
		if err := output.Encode(stdout, img, output.PPM); err != nil {
			return fmt.Errorf("failed to write PPM to stdout: %w", err)
		}
	} else {
		f, err := output.FormatFromFilename(cfg.Out)
		if err != nil {
			return err
		}
		format = f
		if err := output.WriteFile(cfg.Out, img); err != nil {
			return err
		}
		slog.Info("wrote image", "path", cfg.Out, "format", format)
	}

	if cfg.Preview != "" {
		if err := output.WriteFile(cfg.Preview, output.Thumbnail(img, cfg.PreviewWidth)); err != nil {
			return fmt.Errorf("preview: %w", err)
		}
		slog.Info("wrote preview", "path", cfg.Preview, "width", cfg.PreviewWidth)
	}

	if cfg.S3Key != "" {
		return upload(ctx, cfg, img, format)
	}
	return nil
}

func upload(ctx context.Context, cfg *config.Config, img image.Image, format output.Format) error {
	// An explicit extension on the key wins over the local output format.
	if path.Ext(cfg.S3Key) != "" {
		f, err := output.FormatFromFilename(cfg.S3Key)
		if err != nil {
			return err
		}
		format = f
	}

	var buf bytes.Buffer
	if err := output.Encode(&buf, img, format); err != nil {
		return fmt.Errorf("failed to encode upload: %w", err)
	}

	uploader, err := output.NewS3Uploader(cfg.S3)
	if err != nil {
		return err
	}
	return uploader.Upload(ctx, cfg.S3Key, buf.Bytes(), format.ContentType())
}

// progressLogger logs completion every step percent. The renderer's counter
// only grows, so each milestone is logged once.
func progressLogger(step int) func(done, total int) {
	var mu sync.Mutex
	next := step
	return func(done, total int) {
		pct := done * 100 / total
		mu.Lock()
		defer mu.Unlock()
		for pct >= next && next <= 100 {
			slog.Info("progress", "percent", next, "pixels", done, "total", total)
			next += step
		}
	}
}
