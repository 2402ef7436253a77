package material

import (
	"github.com/df07/go-tile-raytracer/pkg/core"
)

// Metallic represents a specular reflector with optional glossy blur
type Metallic struct {
	Albedo     core.Vec3 // Metal color
	Glossiness float64   // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetallic creates a new metal material; glossiness is clamped to [0, 1]
func NewMetallic(albedo core.Vec3, glossiness float64) *Metallic {
	return &Metallic{Albedo: albedo, Glossiness: max(0.0, min(1.0, glossiness))}
}

// Scatter reflects the ray about the normal and perturbs it by the glossiness.
// Rays pushed below the surface are absorbed.
func (m *Metallic) Scatter(rayIn core.Ray, hit IntersectionInfo, sampler core.Sampler) (ScatterResult, bool) {
	reflected := Reflect(rayIn.Direction, hit.Normal).Normalize()
	if m.Glossiness > 0 {
		reflected = reflected.Add(core.RandomUnitVector(sampler).Multiply(m.Glossiness))
	}

	if reflected.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, reflected, rayIn.Time),
		Attenuation: m.Albedo,
	}, true
}
