package material

import (
	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/df07/go-tile-raytracer/pkg/texture"
)

// DiffuseLight is an emissive material. It absorbs everything that hits it.
type DiffuseLight struct {
	Emit      texture.Texture
	Intensity float64
}

// NewDiffuseLight creates a light emitting a solid color scaled by intensity
func NewDiffuseLight(color core.Vec3, intensity float64) *DiffuseLight {
	return &DiffuseLight{Emit: texture.NewSolidColor(color), Intensity: intensity}
}

// NewTexturedDiffuseLight creates a light whose emission varies with a texture
func NewTexturedDiffuseLight(emit texture.Texture, intensity float64) *DiffuseLight {
	return &DiffuseLight{Emit: emit, Intensity: intensity}
}

// Scatter never scatters
func (e *DiffuseLight) Scatter(rayIn core.Ray, hit IntersectionInfo, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// Emitted returns the emitted radiance at the hit
func (e *DiffuseLight) Emitted(uv core.Vec2, point core.Vec3) core.Vec3 {
	return e.Emit.Sample(uv, point).Multiply(e.Intensity)
}
