package renderer

import (
	"image"

	"github.com/df07/go-rain-city-raytracer/pkg/core"
)

// Framebuffer is a row-major grid of packed 0xRRGGBB pixels
type Framebuffer struct {
	Width        int
	Height       int
	Buffer       []uint32
	currentColor uint32
}

// NewFramebuffer creates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Buffer: make([]uint32, width*height),
	}
}

// Clear fills every pixel with hex
func (fb *Framebuffer) Clear(hex uint32) {
	for i := range fb.Buffer {
		fb.Buffer[i] = hex
	}
}

// SetCurrentColor selects the color used by Point
func (fb *Framebuffer) SetCurrentColor(hex uint32) {
	fb.currentColor = hex
}

// Point writes the current color at (x, y); out-of-range points are ignored
func (fb *Framebuffer) Point(x, y int) {
	fb.SetPixel(x, y, fb.currentColor)
}

// SetPixel writes hex at (x, y); out-of-range points are ignored.
// Concurrent writers are safe as long as they touch distinct pixels.
func (fb *Framebuffer) SetPixel(x, y int, hex uint32) {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return
	}
	fb.Buffer[y*fb.Width+x] = hex
}

// Pixel returns the packed color at (x, y)
func (fb *Framebuffer) Pixel(x, y int) uint32 {
	return fb.Buffer[y*fb.Width+x]
}

// Image converts the buffer to an opaque RGBA image
func (fb *Framebuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, core.HexToRGBA(fb.Buffer[y*fb.Width+x]))
		}
	}
	return img
}
