package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/df07/go-tile-raytracer/pkg/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	mat := material.NewLambertian(core.NewVec3(1, 1, 1))
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, mat)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 5),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      4.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, 0.001, 1000.0)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected FrontFace=%t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if hit.Normal.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
			if hit.Material != mat {
				t.Error("Expected hit to carry the sphere material")
			}
		})
	}
}

func TestQuadraticRootsSymmetricThroughCenter(t *testing.T) {
	origin := core.NewVec3(0.3, -0.2, 7)
	center := core.NewVec3(0.3, -0.2, 0)
	direction := core.NewVec3(0, 0, -2) // deliberately not unit length

	near, far, ok := QuadraticRoots(origin, direction, center, 1.5)
	require.True(t, ok)

	a := direction.Dot(direction)
	h := direction.Dot(center.Subtract(origin))
	mid := h / a
	assert.InDelta(t, mid-near, far-mid, 1e-12, "roots must be symmetric about h/a")
	assert.InDelta(t, 2.75, near, 1e-12)
	assert.InDelta(t, 4.25, far, 1e-12)
}

func TestQuadraticRootsTangent(t *testing.T) {
	near, far, ok := QuadraticRoots(core.NewVec3(1, 0, 5), core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 0), 1)
	require.True(t, ok)
	assert.Equal(t, near, far)
	assert.Equal(t, 5.0, near)
}

func TestSphere_IntervalBounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	_, ok := sphere.Hit(ray, 0.001, 4.0)
	assert.True(t, ok, "a root equal to tMax is inside (tMin, tMax]")

	hit, ok := sphere.Hit(ray, 4.0, 100)
	require.True(t, ok, "a root equal to tMin is rejected, the far root is used")
	assert.InDelta(t, 6.0, hit.T, 1e-12)

	_, ok = sphere.Hit(ray, 0.001, 3.9)
	assert.False(t, ok)
}

func TestSphere_NegativeRadiusClamped(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), -2, nil)
	assert.Equal(t, 0.0, sphere.Radius)

	_, ok := sphere.Hit(core.NewRay(core.NewVec3(0, 0.5, 5), core.NewVec3(0, 0, -1)), 0.001, 100)
	assert.False(t, ok)
}

func TestMovingSphere(t *testing.T) {
	sphere := NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0), 0.5, nil)

	assert.Equal(t, core.NewVec3(0, 1, 0), sphere.CenterAt(0.5))

	ray0 := core.NewRayAtTime(core.NewVec3(0, 2, 5), core.NewVec3(0, 0, -1), 0)
	ray1 := core.NewRayAtTime(core.NewVec3(0, 2, 5), core.NewVec3(0, 0, -1), 1)

	_, hitAtStart := sphere.Hit(ray0, 0.001, 100)
	assert.False(t, hitAtStart, "sphere has not arrived at time 0")

	hit, hitAtEnd := sphere.Hit(ray1, 0.001, 100)
	require.True(t, hitAtEnd, "sphere is centered on the ray at time 1")
	assert.InDelta(t, 4.5, hit.T, 1e-12)
	assert.InDelta(t, 1.0, hit.Normal.Z, 1e-12)
}

func TestSphereUV(t *testing.T) {
	tests := []struct {
		name  string
		point core.Vec3
		u, v  float64
	}{
		{"+X", core.NewVec3(1, 0, 0), 0.5, 0.5},
		{"+Y north pole", core.NewVec3(0, 1, 0), 0.5, 1.0},
		{"-Y south pole", core.NewVec3(0, -1, 0), 0.5, 0.0},
		{"+Z", core.NewVec3(0, 0, 1), 0.25, 0.5},
		{"-Z", core.NewVec3(0, 0, -1), 0.75, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uv := SphereUV(tt.point)
			assert.InDelta(t, tt.u, uv.X, 1e-12)
			assert.InDelta(t, tt.v, uv.Y, 1e-12)
		})
	}
}

func TestSphere_HitSetsUV(t *testing.T) {
	sphere := NewSphere(core.NewVec3(10, 0, 0), 2, nil)
	hit, ok := sphere.Hit(core.NewRay(core.NewVec3(20, 0, 0), core.NewVec3(-1, 0, 0)), 0.001, 100)
	require.True(t, ok)
	assert.InDelta(t, 0.5, hit.UV.X, 1e-12)
	assert.InDelta(t, 0.5, hit.UV.Y, 1e-12)
}
