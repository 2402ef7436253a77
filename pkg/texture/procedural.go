package texture

import (
	"github.com/df07/go-tile-raytracer/pkg/core"
)

// NewGridImageTexture bakes a texel checker pattern into an image texture.
// Unlike Checkerboard it follows the surface UVs, so it wraps around spheres.
func NewGridImageTexture(width, height, cellSize int, even, odd core.Vec3) *ImageTexture {
	if width <= 0 || height <= 0 {
		return &ImageTexture{}
	}
	cellSize = max(1, cellSize)

	pixels := make([]core.Vec3, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/cellSize+y/cellSize)%2 == 0 {
				pixels[y*width+x] = even
			} else {
				pixels[y*width+x] = odd
			}
		}
	}

	return NewImageTexture(width, height, pixels)
}

// NewGradientImageTexture creates a vertical gradient from top (row 0) to bottom
func NewGradientImageTexture(width, height int, top, bottom core.Vec3) *ImageTexture {
	if width <= 0 || height <= 0 {
		return &ImageTexture{}
	}

	pixels := make([]core.Vec3, width*height)
	for y := 0; y < height; y++ {
		t := 0.0
		if height > 1 {
			t = float64(y) / float64(height-1)
		}
		color := top.Lerp(bottom, t)
		for x := 0; x < width; x++ {
			pixels[y*width+x] = color
		}
	}

	return NewImageTexture(width, height, pixels)
}
