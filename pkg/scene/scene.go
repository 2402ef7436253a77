package scene

import (
	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/df07/go-tile-raytracer/pkg/geometry"
	"github.com/df07/go-tile-raytracer/pkg/material"
)

// Scene contains the objects a ray can hit and the sky behind them.
// The scene is read-only during a render pass.
type Scene struct {
	traceables  []geometry.Traceable
	TopColor    core.Vec3 // Sky color straight up
	BottomColor core.Vec3 // Sky color straight down
}

// NewScene creates an empty scene with the classic white to light blue sky
func NewScene() *Scene {
	return &Scene{
		TopColor:    core.NewVec3(0.5, 0.7, 1.0),
		BottomColor: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// AddTraceable appends an object. Insertion order does not affect which hit is reported.
func (s *Scene) AddTraceable(traceable geometry.Traceable) {
	s.traceables = append(s.traceables, traceable)
}

// Traceables returns the scene objects in insertion order
func (s *Scene) Traceables() []geometry.Traceable {
	return s.traceables
}

// SetBackgroundColors sets the sky gradient. Equal colors give a solid background.
func (s *Scene) SetBackgroundColors(top, bottom core.Vec3) {
	s.TopColor, s.BottomColor = top, bottom
}

// GetBackgroundColors returns the sky gradient colors
func (s *Scene) GetBackgroundColors() (topColor, bottomColor core.Vec3) {
	return s.TopColor, s.BottomColor
}

// DoesIntersect returns the nearest hit in (tMin, tMax] over every object
func (s *Scene) DoesIntersect(ray core.Ray, tMin, tMax float64) (material.IntersectionInfo, bool) {
	var closestHit material.IntersectionInfo
	closestSoFar := tMax
	hitAnything := false

	for _, traceable := range s.traceables {
		if hit, isHit := traceable.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}

// Background returns the sky color seen along the ray
func (s *Scene) Background(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)
	return s.BottomColor.Lerp(s.TopColor, t)
}
