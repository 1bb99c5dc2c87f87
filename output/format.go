// Package output encodes rendered frames and ships them to files, thumbnails
// and S3-compatible object storage.
package output

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"

	"github.com/echoflaresat/raytrace/ppm"
)

var ErrUnsupportedFormat = errors.New("output: unsupported format")

// Format is an image container the renderer can write.
type Format int

const (
	PPM Format = iota
	PNG
	JPEG
	GIF
	TIFF
	BMP
)

// JPEG quality used for lossy output.
const jpegQuality = 95

var formatNames = map[Format]string{
	PPM:  "PPM",
	PNG:  "PNG",
	JPEG: "JPEG",
	GIF:  "GIF",
	TIFF: "TIFF",
	BMP:  "BMP",
}

var imagingFormats = map[imaging.Format]Format{
	imaging.PNG:  PNG,
	imaging.JPEG: JPEG,
	imaging.GIF:  GIF,
	imaging.TIFF: TIFF,
	imaging.BMP:  BMP,
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ContentType returns the MIME type used when uploading f.
func (f Format) ContentType() string {
	switch f {
	case PPM:
		return "image/x-portable-pixmap"
	case PNG:
		return "image/png"
	case JPEG:
		return "image/jpeg"
	case GIF:
		return "image/gif"
	case TIFF:
		return "image/tiff"
	case BMP:
		return "image/bmp"
	}
	return "application/octet-stream"
}

// FormatFromFilename picks a format from the file extension.
func FormatFromFilename(name string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".ppm" {
		return PPM, nil
	}
	f, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	ours, ok := imagingFormats[f]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return ours, nil
}

func (f Format) imagingFormat() (imaging.Format, bool) {
	for k, v := range imagingFormats {
		if v == f {
			return k, true
		}
	}
	return 0, false
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	if f == PPM {
		return ppm.Encode(w, img)
	}
	imf, ok := f.imagingFormat()
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
	return imaging.Encode(w, img, imf, imaging.JPEGQuality(jpegQuality))
}

// WriteFile encodes img into path, choosing the format from its extension.
func WriteFile(path string, img image.Image) (err error) {
	f, err := FormatFromFilename(path)
	if err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("could not close %s: %w", path, cerr)
		}
	}()

	if err := Encode(out, img, f); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

// Thumbnail scales img down to width pixels, keeping its aspect ratio.
// Images already that narrow are returned unchanged.
func Thumbnail(img image.Image, width int) image.Image {
	if width <= 0 || width >= img.Bounds().Dx() {
		return img
	}
	return resize.Resize(uint(width), 0, img, resize.Lanczos3)
}
