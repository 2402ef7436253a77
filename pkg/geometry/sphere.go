package geometry

import (
	"math"

	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/df07/go-tile-raytracer/pkg/material"
)

// Sphere is a sphere whose center moves linearly over the shutter interval
type Sphere struct {
	CenterAtTime0  core.Vec3
	CenterVelocity core.Vec3 // Displacement per unit of ray time; zero for a stationary sphere
	Radius         float64
	Material       material.Material
}

// NewSphere creates a stationary sphere. Negative radii are clamped to zero.
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		CenterAtTime0: center,
		Radius:        max(0, radius),
		Material:      mat,
	}
}

// NewMovingSphere creates a sphere at center0 for time 0 and center1 for time 1
func NewMovingSphere(center0, center1 core.Vec3, radius float64, mat material.Material) *Sphere {
	s := NewSphere(center0, radius, mat)
	s.CenterVelocity = center1.Subtract(center0)
	return s
}

// CenterAt returns the sphere center at the given ray time
func (s *Sphere) CenterAt(time float64) core.Vec3 {
	return s.CenterAtTime0.Add(s.CenterVelocity.Multiply(time))
}

// QuadraticRoots solves |O + tD - C|^2 = r^2 for t. ok is false when the ray misses.
// near <= far; a tangent ray gives near == far.
func QuadraticRoots(origin, direction, center core.Vec3, radius float64) (near, far float64, ok bool) {
	oc := center.Subtract(origin)
	a := direction.Dot(direction)
	h := direction.Dot(oc)
	c := oc.Dot(oc) - radius*radius

	discriminant := h*h - a*c
	if discriminant < 0 || a == 0 {
		return 0, 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	return (h - sqrtD) / a, (h + sqrtD) / a, true
}

// Hit tests the ray against the sphere at the ray's time. Valid roots lie in (tMin, tMax].
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (material.IntersectionInfo, bool) {
	center := s.CenterAt(ray.Time)

	near, far, ok := QuadraticRoots(ray.Origin, ray.Direction, center, s.Radius)
	if !ok {
		return material.IntersectionInfo{}, false
	}

	root := near
	if root <= tMin || root > tMax {
		root = far
		if root <= tMin || root > tMax {
			return material.IntersectionInfo{}, false
		}
	}

	hit := material.IntersectionInfo{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	var outwardNormal core.Vec3
	if s.Radius > 0 {
		outwardNormal = hit.Point.Subtract(center).Multiply(1.0 / s.Radius)
	} else {
		outwardNormal = ray.Direction.Normalize().Negate()
	}
	hit.SetFaceNormal(ray, outwardNormal)
	hit.UV = SphereUV(outwardNormal)

	return hit, true
}

// SphereUV maps a point on the unit sphere to texture coordinates.
// u wraps around the Y axis starting at -X, v runs from the south pole (0) to the north (1).
func SphereUV(p core.Vec3) core.Vec2 {
	theta := math.Acos(max(-1, min(1, -p.Y)))
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}
