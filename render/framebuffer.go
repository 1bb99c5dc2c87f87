package render

import (
	"image"
	"image/color"
	"sync"

	"github.com/echoflaresat/raytrace/colors"
)

// Framebuffer holds the quantized output pixels. Workers write single slots
// through Set; it implements image.Image for encoders once rendering is done.
type Framebuffer struct {
	width, height int

	mu  sync.Mutex
	pix []color.RGBA
}

func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		width:  width,
		height: height,
		pix:    make([]color.RGBA, width*height),
	}
}

func (f *Framebuffer) Width() int  { return f.width }
func (f *Framebuffer) Height() int { return f.height }

// Set stores the display encoding of the linear color c at column i, row j.
func (f *Framebuffer) Set(i, j int, c colors.Color) {
	px := colors.ToRGBA(c)
	f.mu.Lock()
	f.pix[j*f.width+i] = px
	f.mu.Unlock()
}

func (f *Framebuffer) ColorModel() color.Model {
	return color.RGBAModel
}

func (f *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.width, f.height)
}

func (f *Framebuffer) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return color.RGBA{}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pix[y*f.width+x]
}
