// Package ppm reads and writes the plain-text "P3" portable pixmap format.
package ppm

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
)

// MaxPixels bounds width*height so a hostile header cannot force a huge
// allocation before any sample is read.
const MaxPixels = 1 << 26

var (
	ErrInvalidHeader = errors.New("ppm: invalid header")
	ErrInvalidData   = errors.New("ppm: invalid pixel data")
)

// Encode writes img as "P3\n<w> <h>\n255\n" followed by one "r g b" line per
// pixel, top to bottom and left to right.
func Encode(w io.Writer, img image.Image) error {
	b := img.Bounds()
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", b.Dx(), b.Dy()); err != nil {
		return err
	}

	line := make([]byte, 0, 12)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			line = strconv.AppendUint(line[:0], uint64(c.R), 10)
			line = append(line, ' ')
			line = strconv.AppendUint(line, uint64(c.G), 10)
			line = append(line, ' ')
			line = strconv.AppendUint(line, uint64(c.B), 10)
			line = append(line, '\n')
			if _, err := bw.Write(line); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// Decode parses a P3 stream. Samples are rescaled to 8 bits when the
// maximum value is not 255. Comments start with '#' and run to end of line.
func Decode(r io.Reader) (*image.NRGBA, error) {
	s := &scanner{r: bufio.NewReader(r)}

	magic, err := s.token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}
	if magic != "P3" {
		return nil, fmt.Errorf("%w: magic %q", ErrInvalidHeader, magic)
	}

	var dims [3]int
	for i, name := range []string{"width", "height", "max value"} {
		v, err := s.int()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidHeader, name, err)
		}
		dims[i] = v
	}
	width, height, maxVal := dims[0], dims[1], dims[2]
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidHeader, width, height)
	}
	if width > MaxPixels/height {
		return nil, fmt.Errorf("%w: dimensions %dx%d too large", ErrInvalidHeader, width, height)
	}
	if maxVal <= 0 || maxVal > 65535 {
		return nil, fmt.Errorf("%w: max value %d", ErrInvalidHeader, maxVal)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var rgb [3]uint8
			for k := range rgb {
				v, err := s.int()
				if err != nil {
					return nil, fmt.Errorf("%w: pixel (%d,%d): %v", ErrInvalidData, x, y, err)
				}
				if v < 0 || v > maxVal {
					return nil, fmt.Errorf("%w: pixel (%d,%d): sample %d out of range", ErrInvalidData, x, y, v)
				}
				rgb[k] = uint8(v * 255 / maxVal)
			}
			img.SetNRGBA(x, y, color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255})
		}
	}
	return img, nil
}

type scanner struct {
	r *bufio.Reader
}

// token returns the next whitespace-delimited word, skipping comments.
func (s *scanner) token() (string, error) {
	var buf []byte
	for {
		c, err := s.r.ReadByte()
		if err == io.EOF {
			if len(buf) > 0 {
				return string(buf), nil
			}
			return "", io.ErrUnexpectedEOF
		}
		if err != nil {
			return "", err
		}
		switch {
		case c == '#' && len(buf) == 0:
			if _, err := s.r.ReadString('\n'); err != nil && err != io.EOF {
				return "", err
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f':
			if len(buf) > 0 {
				return string(buf), nil
			}
		default:
			buf = append(buf, c)
		}
	}
}

func (s *scanner) int() (int, error) {
	tok, err := s.token()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(tok)
}
