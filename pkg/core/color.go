package core

import "math"

// DisplayGamma is the transfer exponent between linear radiance and display values
const DisplayGamma = 2.2

var (
	Black = NewVec3(0, 0, 0)
	White = NewVec3(1, 1, 1)
)

// LinearToSrgb gamma-encodes one linear channel value. Negative input maps to 0.
func LinearToSrgb(c float64) float64 {
	if c <= 0 {
		return 0
	}
	return math.Pow(c, 1.0/DisplayGamma)
}

// SrgbToLinear decodes one gamma-encoded channel value back to linear
func SrgbToLinear(c float64) float64 {
	if c <= 0 {
		return 0
	}
	return math.Pow(c, DisplayGamma)
}

// GammaEncode applies LinearToSrgb per channel without clamping, so HDR values survive
func (v Vec3) GammaEncode() Vec3 {
	return Vec3{X: LinearToSrgb(v.X), Y: LinearToSrgb(v.Y), Z: LinearToSrgb(v.Z)}
}

// GammaDecode applies SrgbToLinear per channel
func (v Vec3) GammaDecode() Vec3 {
	return Vec3{X: SrgbToLinear(v.X), Y: SrgbToLinear(v.Y), Z: SrgbToLinear(v.Z)}
}
