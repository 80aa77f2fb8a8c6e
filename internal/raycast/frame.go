package raycast

import (
	"image"
	"image/color"
)

// Frame is the pixel buffer a frame is cast into: packed RGBA, four bytes per
// pixel, row-major with a stride of Width*4. It is laid out the way
// ebiten's WritePixels and image.RGBA expect.
type Frame struct {
	Width, Height int
	Pix           []byte
}

// NewFrame allocates a black, fully opaque frame.
func NewFrame(width, height int) *Frame {
	f := &Frame{Width: width, Height: height, Pix: make([]byte, width*height*4)}
	f.Clear()
	return f
}

// Clear paints every pixel opaque black.
func (f *Frame) Clear() {
	for i := 0; i < len(f.Pix); i += 4 {
		f.Pix[i] = 0
		f.Pix[i+1] = 0
		f.Pix[i+2] = 0
		f.Pix[i+3] = 255
	}
}

// At returns the pixel at (x, y).
func (f *Frame) At(x, y int) color.RGBA {
	i := (y*f.Width + x) * 4
	return color.RGBA{R: f.Pix[i], G: f.Pix[i+1], B: f.Pix[i+2], A: f.Pix[i+3]}
}

// Image wraps the frame without copying; writes through either view are
// visible in the other.
func (f *Frame) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    f.Pix,
		Stride: f.Width * 4,
		Rect:   image.Rect(0, 0, f.Width, f.Height),
	}
}

// fillColumn writes c into rows [y0, y1) of column x.
func (f *Frame) fillColumn(x, y0, y1 int, c color.RGBA) {
	stride := f.Width * 4
	for i := y0*stride + x*4; y0 < y1; y0++ {
		f.Pix[i] = c.R
		f.Pix[i+1] = c.G
		f.Pix[i+2] = c.B
		f.Pix[i+3] = c.A
		i += stride
	}
}
