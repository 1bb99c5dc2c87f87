// Package config assembles the renderer settings from command-line flags,
// RAYTRACE_* environment variables and an optional .env file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/echoflaresat/raytrace/output"
	"github.com/echoflaresat/raytrace/render"
	"github.com/echoflaresat/raytrace/vectors"
)

// EnvPrefix namespaces environment overrides: -samples reads RAYTRACE_SAMPLES.
const EnvPrefix = "RAYTRACE_"

type Config struct {
	Scene string

	Width   int
	Aspect  float64
	Samples int
	Depth   int
	VFov    float64
	From    vectors.Vec3
	At      vectors.Vec3
	Up      vectors.Vec3
	Defocus float64
	Focus   float64

	Workers int
	Seed    uint64
	BVH     bool

	Out          string
	Preview      string
	PreviewWidth int
	S3Key        string
	S3           output.S3Config

	Verbose  bool
	ShowHelp bool

	flags *flag.FlagSet
	set   map[string]bool
}

func (c *Config) defineFlags(name string) *flag.FlagSet {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	flags.StringVar(&c.Scene, "scene", "final", "Scene to render")

	flags.IntVar(&c.Width, "width", 400, "Image width in pixels")
	flags.Float64Var(&c.Aspect, "aspect", 16.0/9.0, "Aspect ratio (width / height)")
	flags.IntVar(&c.Samples, "samples", 100, "Samples per pixel")
	flags.IntVar(&c.Depth, "depth", 50, "Maximum ray bounces")

	flags.Float64Var(&c.VFov, "vfov", 90, "Vertical field of view in degrees")
	flags.Var(&vecValue{&c.From}, "from", "Camera position as x,y,z")
	flags.Var(&vecValue{&c.At}, "at", "Point the camera looks at as x,y,z")
	flags.Var(&vecValue{&c.Up}, "up", "Camera up direction as x,y,z")
	flags.Float64Var(&c.Defocus, "defocus", 0, "Defocus cone angle in degrees (0 disables depth of field)")
	flags.Float64Var(&c.Focus, "focus", 10, "Distance to the plane of perfect focus")

	flags.IntVar(&c.Workers, "workers", 0, "Concurrent pixel workers (0 uses all CPUs)")
	flags.Uint64Var(&c.Seed, "seed", 0, "Random seed")
	flags.BoolVar(&c.BVH, "bvh", true, "Accelerate intersection with a bounding volume hierarchy")

	flags.StringVar(&c.Out, "out", "-", "Output file; extension picks the format, - writes PPM to stdout")
	flags.StringVar(&c.Preview, "preview", "", "Optional downscaled preview file")
	flags.IntVar(&c.PreviewWidth, "preview-width", 200, "Preview width in pixels")
	flags.StringVar(&c.S3Key, "s3-key", "", "Upload the encoded output under this S3 object key")

	flags.BoolVar(&c.Verbose, "v", false, "Verbose (debug) logging")
	flags.BoolVar(&c.ShowHelp, "h", false, "Show this help message")
	return flags
}

// Load parses args (without the program name). Defaults come from the
// environment, which is seeded from envFile when that file exists; variables
// already present in the process environment take precedence over the file.
func Load(args []string, envFile string) (*Config, error) {
	c := &Config{
		From: vectors.New(0, 0, 0),
		At:   vectors.New(0, 0, -1),
		Up:   vectors.New(0, 1, 0),
		set:  map[string]bool{},
	}
	c.flags = c.defineFlags("raytrace")

	fileEnv, err := readEnvFile(envFile)
	if err != nil {
		return nil, err
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok
	}

	var envErr error
	c.flags.VisitAll(func(f *flag.Flag) {
		if envErr != nil {
			return
		}
		key := EnvKey(f.Name)
		if v, ok := lookup(key); ok {
			if err := c.flags.Set(f.Name, v); err != nil {
				envErr = fmt.Errorf("invalid %s=%q: %w", key, v, err)
			}
		}
	})
	if envErr != nil {
		return nil, envErr
	}

	if err := c.flags.Parse(args); err != nil {
		return nil, err
	}
	if c.flags.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", c.flags.Args())
	}
	c.flags.Visit(func(f *flag.Flag) { c.set[f.Name] = true })

	c.S3 = output.S3Config{
		Bucket:    envOr(lookup, "S3_BUCKET"),
		Region:    envOr(lookup, "S3_REGION"),
		Endpoint:  envOr(lookup, "S3_ENDPOINT"),
		AccessKey: envOr(lookup, "S3_ACCESS_KEY"),
		SecretKey: envOr(lookup, "S3_SECRET_KEY"),
		ACL:       envOr(lookup, "S3_ACL"),
	}

	if c.Out == "" {
		return nil, errors.New("output path must not be empty")
	}
	return c, nil
}

// EnvKey maps a flag name to its environment variable.
func EnvKey(flagName string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

// IsSet reports whether the flag was given on the command line or through
// the environment.
func (c *Config) IsSet(name string) bool {
	return c.set[name]
}

// ApplyCamera overrides the preset camera with every camera setting the user
// gave explicitly. Unset settings keep the scene's values.
func (c *Config) ApplyCamera(cam *render.Camera) {
	overrides := []struct {
		flag  string
		apply func()
	}{
		{"width", func() { cam.ImageWidth = c.Width }},
		{"aspect", func() { cam.AspectRatio = c.Aspect }},
		{"samples", func() { cam.SamplesPerPixel = c.Samples }},
		{"depth", func() { cam.MaxDepth = c.Depth }},
		{"vfov", func() { cam.VFov = c.VFov }},
		{"from", func() { cam.LookFrom = c.From }},
		{"at", func() { cam.LookAt = c.At }},
		{"up", func() { cam.VUp = c.Up }},
		{"defocus", func() { cam.DefocusAngle = c.Defocus }},
		{"focus", func() { cam.FocusDist = c.Focus }},
	}
	for _, o := range overrides {
		if c.IsSet(o.flag) {
			o.apply()
		}
	}
}

// PrintHelp writes grouped flag documentation to w.
func (c *Config) PrintHelp(w io.Writer, program string, sceneNames []string) {
	fmt.Fprintf(w, `Ray Tracer - Monte-Carlo path tracing of sphere scenes

Usage:
  %[1]s [options]

`, program)

	c.printGroup(w, "Scene", []string{"scene"})
	c.printGroup(w, "Camera Options", []string{"width", "aspect", "vfov", "from", "at", "up", "defocus", "focus"})
	c.printGroup(w, "Rendering Options", []string{"samples", "depth", "workers", "seed", "bvh"})
	c.printGroup(w, "Output", []string{"out", "preview", "preview-width", "s3-key"})
	c.printGroup(w, "Misc", []string{"v", "h"})

	fmt.Fprintf(w, "Scenes: %s\n", strings.Join(sceneNames, ", "))
	fmt.Fprintln(w, "Camera options, -samples and -depth override the scene only when given; unset, the scene preset's values are used instead of the defaults above.")
	fmt.Fprintf(w, "Every option can also be set as %s<NAME> in the environment or a .env file.\n", EnvPrefix)
	fmt.Fprintln(w, "S3 uploads read S3_BUCKET, S3_REGION, S3_ENDPOINT, S3_ACCESS_KEY, S3_SECRET_KEY and S3_ACL.")
}

func (c *Config) printGroup(w io.Writer, title string, keys []string) {
	fmt.Fprintf(w, "%s:\n", title)
	for _, name := range keys {
		if f := c.flags.Lookup(name); f != nil {
			fmt.Fprintf(w, "  -%-14s %s (default %q)\n", f.Name, f.Usage, f.DefValue)
		}
	}
	fmt.Fprintln(w)
}

func readEnvFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	env, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}
	return env, nil
}

func envOr(lookup func(string) (string, bool), key string) string {
	v, _ := lookup(key)
	return v
}
