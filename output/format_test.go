package output

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/echoflaresat/raytrace/ppm"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 255 / w), uint8(y * 255 / h), 128, 255})
		}
	}
	return img
}

func TestFormatFromFilename(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"out.ppm", PPM},
		{"OUT.PPM", PPM},
		{"frame.png", PNG},
		{"frame.jpg", JPEG},
		{"frame.jpeg", JPEG},
		{"dir/frame.gif", GIF},
		{"frame.tif", TIFF},
		{"frame.bmp", BMP},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatFromFilename(tt.name)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	for _, bad := range []string{"frame", "frame.exr", "frame.ppm.txt"} {
		if _, err := FormatFromFilename(bad); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("%q: error = %v, want ErrUnsupportedFormat", bad, err)
		}
	}
}

func TestContentType(t *testing.T) {
	if got := PNG.ContentType(); got != "image/png" {
		t.Errorf("PNG content type = %q", got)
	}
	if got := PPM.ContentType(); got != "image/x-portable-pixmap" {
		t.Errorf("PPM content type = %q", got)
	}
	if got := Format(99).ContentType(); got != "application/octet-stream" {
		t.Errorf("unknown content type = %q", got)
	}
}

func TestEncodePPMMatchesCodec(t *testing.T) {
	img := testImage(3, 2)
	var a, b bytes.Buffer
	if err := Encode(&a, img, PPM); err != nil {
		t.Fatal(err)
	}
	if err := ppm.Encode(&b, img); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Error("PPM output differs from the ppm codec")
	}
	if !strings.HasPrefix(a.String(), "P3\n3 2\n255\n") {
		t.Errorf("unexpected header: %q", a.String()[:12])
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	err := Encode(&bytes.Buffer{}, testImage(1, 1), Format(42))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestWriteFilePNGRoundTrip(t *testing.T) {
	img := testImage(8, 4)
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := WriteFile(path, img); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if got.Bounds() != img.Bounds() {
		t.Fatalf("bounds = %v, want %v", got.Bounds(), img.Bounds())
	}
	if !bytes.Equal(imaging.Clone(got).Pix, img.Pix) {
		t.Error("PNG pixels differ after round trip")
	}
}

func TestWriteFilePPM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.ppm")
	if err := WriteFile(path, testImage(2, 2)); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := ppm.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Errorf("bounds = %v", img.Bounds())
	}
}

func TestWriteFileRejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.exr")
	if err := WriteFile(path, testImage(1, 1)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be created for an unsupported format")
	}
}

func TestThumbnail(t *testing.T) {
	img := testImage(40, 20)

	th := Thumbnail(img, 10)
	if got := th.Bounds(); got.Dx() != 10 || got.Dy() != 5 {
		t.Errorf("thumbnail bounds = %v, want 10x5", got)
	}

	if got := Thumbnail(img, 0); got != image.Image(img) {
		t.Error("width 0 should return the input")
	}
	if got := Thumbnail(img, 80); got != image.Image(img) {
		t.Error("upscaling should return the input")
	}
}
