package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-tile-raytracer/pkg/core"
)

// Framebuffer holds gamma-encoded pixel colors, row 0 at the top.
// Values are not clamped until they are converted for output.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFramebuffer allocates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// Set stores the color of pixel (x, y)
func (f *Framebuffer) Set(x, y int, c core.Vec3) {
	f.Pixels[y*f.Width+x] = c
}

// At returns the color of pixel (x, y)
func (f *Framebuffer) At(x, y int) core.Vec3 {
	return f.Pixels[y*f.Width+x]
}

// ToNRGBA converts the framebuffer to an 8-bit image, clamping each channel to [0,1]
func (f *Framebuffer) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := f.At(x, y).Clamp(0, 1)
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(c.X*255 + 0.5),
				G: uint8(c.Y*255 + 0.5),
				B: uint8(c.Z*255 + 0.5),
				A: 255,
			})
		}
	}
	return img
}

// Float32Pixels returns interleaved RGB values in the layout StoreImage expects
func (f *Framebuffer) Float32Pixels() []float32 {
	out := make([]float32, 0, len(f.Pixels)*3)
	for _, c := range f.Pixels {
		out = append(out, float32(c.X), float32(c.Y), float32(c.Z))
	}
	return out
}
