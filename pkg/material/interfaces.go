package material

import (
	"github.com/df07/go-tile-raytracer/pkg/core"
)

// Material decides whether and how a ray continues after hitting a surface.
// Materials are immutable after construction and may be shared by many primitives
// and goroutines; all randomness comes from the caller's sampler.
type Material interface {
	// Scatter returns the continuation ray and its attenuation, or false if the ray is absorbed
	Scatter(rayIn core.Ray, hit IntersectionInfo, sampler core.Sampler) (ScatterResult, bool)
}

// Emitter is implemented by materials that emit light
type Emitter interface {
	Emitted(uv core.Vec2, point core.Vec3) core.Vec3
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation applied to light arriving along Scattered
}

// IntersectionInfo describes a ray-surface intersection
type IntersectionInfo struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Unit normal, always facing against the incoming ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether the ray hit the outward-facing side
	UV        core.Vec2 // Surface texture coordinates
	Material  Material  // Material of the hit object
}

// SetFaceNormal orients Normal against the ray and records which side was hit.
// outwardNormal must be unit length.
func (h *IntersectionInfo) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
