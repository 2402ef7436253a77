package texture

import (
	"math"

	"github.com/df07/go-tile-raytracer/pkg/core"
)

// Texture provides spatially-varying colors for materials.
// Implementations are immutable after construction and safe for concurrent sampling.
type Texture interface {
	// Sample returns the linear color at the given UV coordinates and 3D point.
	// UV drives image textures, point drives procedural ones.
	Sample(uv core.Vec2, point core.Vec3) core.Vec3
}

// SolidColor provides a uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color texture
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Sample returns the solid color regardless of UV or position
func (s *SolidColor) Sample(uv core.Vec2, point core.Vec3) core.Vec3 {
	return s.Color
}

// Checkerboard alternates two textures on a 3D lattice of cubes
type Checkerboard struct {
	ScaleReciprocal float64
	Even            Texture
	Odd             Texture
}

// NewCheckerboard creates a checker with cubes of edge length scale
func NewCheckerboard(scale float64, even, odd Texture) *Checkerboard {
	inv := 1.0
	if scale > 0 {
		inv = 1.0 / scale
	}
	return &Checkerboard{ScaleReciprocal: inv, Even: even, Odd: odd}
}

// NewCheckerboardColors creates a checker from two solid colors
func NewCheckerboardColors(scale float64, even, odd core.Vec3) *Checkerboard {
	return NewCheckerboard(scale, NewSolidColor(even), NewSolidColor(odd))
}

// Sample picks the even or odd texture by the parity of the lattice cell containing point
func (c *Checkerboard) Sample(uv core.Vec2, point core.Vec3) core.Vec3 {
	x := int(math.Floor(c.ScaleReciprocal * point.X))
	y := int(math.Floor(c.ScaleReciprocal * point.Y))
	z := int(math.Floor(c.ScaleReciprocal * point.Z))

	if (x+y+z)%2 == 0 {
		return c.Even.Sample(uv, point)
	}
	return c.Odd.Sample(uv, point)
}

// NoiseTexture is a marble-like pattern driven by Perlin turbulence
type NoiseTexture struct {
	Noise   *Perlin
	Scale   float64
	Octaves int
}

// NewNoiseTexture creates a noise texture sampling the given Perlin instance
func NewNoiseTexture(noise *Perlin, scale float64, octaves int) *NoiseTexture {
	return &NoiseTexture{Noise: noise, Scale: scale, Octaves: max(1, octaves)}
}

// Sample returns a gray level in [0, 1]
func (n *NoiseTexture) Sample(uv core.Vec2, point core.Vec3) core.Vec3 {
	phase := n.Scale*point.Z + 10*n.Noise.Turbulence(point, n.Octaves)
	return core.White.Multiply(0.5 * (1 + math.Sin(phase)))
}
