package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3_Basics(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	assert.Equal(t, NewVec3(5, -3, 9), a.Add(b))
	assert.Equal(t, NewVec3(-3, 7, -3), a.Subtract(b))
	assert.Equal(t, NewVec3(2, 4, 6), a.Multiply(2))
	assert.Equal(t, NewVec3(4, -10, 18), a.MultiplyVec(b))
	assert.Equal(t, 12.0, a.Dot(b))
	assert.Equal(t, NewVec3(27, 6, -13), a.Cross(b))
	assert.Equal(t, NewVec3(-1, -2, -3), a.Negate())
}

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		expected Vec3
	}{
		{"axis", NewVec3(0, 0, 5), NewVec3(0, 0, 1)},
		{"diagonal", NewVec3(3, 4, 0), NewVec3(0.6, 0.8, 0)},
		{"zero stays zero", NewVec3(0, 0, 0), NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Normalize()
			if result.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_DivideByZero(t *testing.T) {
	assert.Equal(t, Vec3{}, NewVec3(1, 2, 3).Divide(0))
	assert.InDelta(t, 0.5, NewVec3(1, 2, 3).Divide(2).X, 1e-12)
}

func TestVec3_ClampAndLerp(t *testing.T) {
	v := NewVec3(-0.5, 0.5, 1.5).Clamp(0, 1)
	assert.Equal(t, NewVec3(0, 0.5, 1), v)

	mid := NewVec3(0, 0, 0).Lerp(NewVec3(2, 4, 6), 0.5)
	assert.Equal(t, NewVec3(1, 2, 3), mid)
}

func TestVec3_NearZero(t *testing.T) {
	assert.True(t, NewVec3(1e-9, -1e-9, 0).NearZero())
	assert.False(t, NewVec3(1e-3, 0, 0).NearZero())
}

func TestRayAt(t *testing.T) {
	ray := NewRayAtTime(NewVec3(1, 0, 0), NewVec3(0, 2, 0), 0.25)
	assert.Equal(t, NewVec3(1, 3, 0), ray.At(1.5))
	assert.Equal(t, 0.25, ray.Time)
}

func TestSrgbRoundTrip(t *testing.T) {
	for i := 0; i <= 100; i++ {
		c := float64(i) / 100.0
		roundTrip := LinearToSrgb(SrgbToLinear(c))
		if math.Abs(roundTrip-c) > 1e-9 {
			t.Errorf("round trip of %f produced %f", c, roundTrip)
		}
	}
}

func TestGammaEncodeKeepsHDR(t *testing.T) {
	encoded := NewVec3(4, 1, 0.25).GammaEncode()
	assert.Greater(t, encoded.X, 1.0, "gamma encoding must not clamp")
	assert.InDelta(t, 1.0, encoded.Y, 1e-12)
	assert.InDelta(t, math.Pow(0.25, 1/DisplayGamma), encoded.Z, 1e-12)
	assert.Equal(t, 0.0, NewVec3(-1, 0, 0).GammaEncode().X)
}
