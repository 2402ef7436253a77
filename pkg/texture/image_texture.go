package texture

import (
	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/df07/go-tile-raytracer/pkg/loaders"
	"github.com/df07/go-tile-raytracer/pkg/log"
)

// MissingImageColor is returned by image textures without pixel data
var MissingImageColor = core.NewVec3(0, 1, 1)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major linear colors: Pixels[y*Width + x], y=0 is the top row
}

// NewImageTexture creates a new image texture from linear pixel colors
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// NewImageTextureFromData converts decoded 8-bit sRGB data to a linear image texture.
// Single-channel data is treated as gray, a fourth channel is ignored.
func NewImageTextureFromData(data *loaders.ImageData) *ImageTexture {
	if data == nil || data.Width <= 0 || data.Height <= 0 || data.Channels <= 0 {
		return &ImageTexture{}
	}
	if len(data.Pixels) < data.Width*data.Height*data.Channels {
		return &ImageTexture{}
	}

	pixels := make([]core.Vec3, data.Width*data.Height)
	for i := range pixels {
		px := data.Pixels[i*data.Channels : (i+1)*data.Channels]
		var c core.Vec3
		if data.Channels < 3 {
			g := float64(px[0]) / 255.0
			c = core.NewVec3(g, g, g)
		} else {
			c = core.NewVec3(float64(px[0])/255.0, float64(px[1])/255.0, float64(px[2])/255.0)
		}
		pixels[i] = c.GammaDecode()
	}

	return NewImageTexture(data.Width, data.Height, pixels)
}

// LoadImageTexture reads an image from path. A file that cannot be loaded yields a
// texture that samples as MissingImageColor, so a bad asset never aborts a render.
func LoadImageTexture(path string, logger log.Logger) *ImageTexture {
	if logger == nil {
		logger = log.New("texture")
	}

	data, err := loaders.LoadImage(path, false, 3)
	if err != nil {
		logger.Warningf("image texture %q unavailable, using fallback color: %v", path, err)
		return &ImageTexture{}
	}
	return NewImageTextureFromData(data)
}

// Sample looks up the nearest texel. UVs are clamped to [0,1]; v=0 is the bottom of the image.
func (t *ImageTexture) Sample(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Width <= 0 || t.Height <= 0 || len(t.Pixels) < t.Width*t.Height {
		return MissingImageColor
	}

	u := max(0.0, min(1.0, uv.X))
	v := 1.0 - max(0.0, min(1.0, uv.Y))

	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int(v*float64(t.Height)), t.Height-1)

	return t.Pixels[y*t.Width+x]
}
