// Command ppmconvert turns the renderer's P3 output into PNG, JPEG, GIF,
// TIFF or BMP. Several frames rendered as tiles can be merged into one image.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"image"
	"image/draw"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"golang.org/x/exp/mmap"

	"github.com/echoflaresat/raytrace/output"
	"github.com/echoflaresat/raytrace/ppm"
)

func main() {
	grid := flag.String("grid", "1x1", "Tile layout as <cols>x<rows>, tiles given row by row")
	thumb := flag.Int("thumb", 0, "Downscale the result to this width (0 keeps full size)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-grid CxR] [-thumb W] <output> <input.ppm|-> ...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 2 {
		flag.Usage()
		os.Exit(1)
	}

	cols, rows, err := parseGrid(*grid)
	if err != nil {
		log.Fatalf("Invalid grid: %v", err)
	}

	out := flag.Arg(0)
	inputs := flag.Args()[1:]
	if err := checkInputs(inputs, cols, rows); err != nil {
		log.Fatal(err)
	}

	tiles := make([]image.Image, len(inputs))
	for i, path := range inputs {
		fmt.Fprintf(os.Stderr, "Processing %s\n", path)
		tile, err := loadPPM(path)
		if err != nil {
			log.Fatalf("Could not load %q: %v", path, err)
		}
		tiles[i] = tile
	}

	canvas, err := mergeTiles(tiles, cols, rows)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Fprintf(os.Stderr, "-> creating %s\n", out)
	if err := output.WriteFile(out, output.Thumbnail(canvas, *thumb)); err != nil {
		log.Fatalf("Could not write %s: %v", out, err)
	}
}

func parseGrid(s string) (cols, rows int, err error) {
	parts := strings.Split(s, "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%q: expected <cols>x<rows>", s)
	}
	if cols, err = strconv.Atoi(parts[0]); err != nil || cols < 1 {
		return 0, 0, fmt.Errorf("invalid cols %q", parts[0])
	}
	if rows, err = strconv.Atoi(parts[1]); err != nil || rows < 1 {
		return 0, 0, fmt.Errorf("invalid rows %q", parts[1])
	}
	return cols, rows, nil
}

// checkInputs verifies there is one input per tile and that stdin is read
// at most once.
func checkInputs(inputs []string, cols, rows int) error {
	if len(inputs) != cols*rows {
		return fmt.Errorf("expected %d input files, got %d", cols*rows, len(inputs))
	}
	stdin := 0
	for _, path := range inputs {
		if path == "-" {
			stdin++
		}
	}
	if stdin > 1 {
		return fmt.Errorf("stdin (-) given %d times, it can supply only one tile", stdin)
	}
	return nil
}

// loadPPM decodes a P3 file through a read-only memory map; "-" reads stdin.
func loadPPM(path string) (*image.NRGBA, error) {
	if path == "-" {
		return ppm.Decode(bufio.NewReader(os.Stdin))
	}

	reader, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return ppm.Decode(io.NewSectionReader(reader, 0, int64(reader.Len())))
}

// mergeTiles lays equally sized tiles out left to right, top to bottom.
func mergeTiles(tiles []image.Image, cols, rows int) (*image.NRGBA, error) {
	if len(tiles) != cols*rows || len(tiles) == 0 {
		return nil, fmt.Errorf("expected %d tiles, got %d", cols*rows, len(tiles))
	}

	tileW, tileH := tiles[0].Bounds().Dx(), tiles[0].Bounds().Dy()
	canvas := image.NewNRGBA(image.Rect(0, 0, cols*tileW, rows*tileH))

	for idx, tile := range tiles {
		b := tile.Bounds()
		if b.Dx() != tileW || b.Dy() != tileH {
			return nil, fmt.Errorf("tile %d size mismatch: expected %dx%d, got %dx%d",
				idx, tileW, tileH, b.Dx(), b.Dy())
		}
		x := (idx % cols) * tileW
		y := (idx / cols) * tileH
		draw.Draw(canvas, image.Rect(x, y, x+tileW, y+tileH), tile, b.Min, draw.Src)
	}
	return canvas, nil
}
