package geometry

import (
	"errors"
	"math"

	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrInvalidViewport = errors.New("viewport dimensions must be positive")
	ErrViewportNotSet  = errors.New("viewport dimensions must be set before LookAt")
	ErrDegenerateView  = errors.New("camera position and focus point coincide")
)

// CameraConfig holds the lens and shutter parameters of a camera
type CameraConfig struct {
	VFov         float64 // Vertical field of view in degrees
	Aperture     float64 // Lens radius; 0 is a pinhole
	FocalLength  float64 // Distance from the lens to the plane in perfect focus
	ShutterSpeed float64 // Ray times are drawn from [0, ShutterSpeed]
	ZNear        float64 // Minimum hit distance (ray tMin)
	ZFar         float64 // Maximum hit distance (ray tMax)
}

// DefaultCameraConfig returns a pinhole camera with a 40 degree field of view
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		VFov:         40,
		Aperture:     0,
		FocalLength:  1,
		ShutterSpeed: 0,
		ZNear:        0.001,
		ZFar:         10000,
	}
}

// Camera converts pixel coordinates plus lens and shutter jitter into world-space rays
type Camera struct {
	config CameraConfig

	width, height  int
	aspectRatio    float64
	viewportWidth  float64 // Image plane extent at unit distance
	viewportHeight float64 // Negative: pixel row 0 is the top of the image

	position  core.Vec3
	world     mgl64.Mat4 // Camera space to world space
	oriented  bool
	hasScreen bool
}

// NewCamera creates a camera. Non-positive focal length and field of view fall back to defaults.
func NewCamera(config CameraConfig) *Camera {
	defaults := DefaultCameraConfig()
	if config.FocalLength <= 0 {
		config.FocalLength = defaults.FocalLength
	}
	if config.VFov <= 0 || config.VFov >= 180 {
		config.VFov = defaults.VFov
	}
	if config.ZFar <= config.ZNear {
		config.ZNear, config.ZFar = defaults.ZNear, defaults.ZFar
	}
	config.Aperture = max(0, config.Aperture)
	config.ShutterSpeed = max(0, config.ShutterSpeed)

	return &Camera{config: config}
}

// SetViewportDimensionInPx sets the output resolution and aspect ratio
func (c *Camera) SetViewportDimensionInPx(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidViewport
	}
	c.width, c.height = width, height
	c.aspectRatio = float64(width) / float64(height)
	c.hasScreen = true
	if c.oriented {
		c.updateViewport()
	}
	return nil
}

// LookAt places the camera at position facing focusPoint. A zero worldUp means +Y.
// The viewport must already be set because its aspect ratio sizes the image plane.
func (c *Camera) LookAt(position, focusPoint, worldUp core.Vec3) error {
	if !c.hasScreen {
		return ErrViewportNotSet
	}
	if worldUp.NearZero() {
		worldUp = core.NewVec3(0, 1, 0)
	}

	forward := position.Subtract(focusPoint).Normalize()
	if forward.NearZero() {
		return ErrDegenerateView
	}

	right := worldUp.Cross(forward)
	if right.Length() < 1e-9 {
		// Looking straight along worldUp; any perpendicular axis will do
		alternate := core.NewVec3(0, 0, 1)
		if math.Abs(forward.Z) > 0.9 {
			alternate = core.NewVec3(1, 0, 0)
		}
		right = alternate.Cross(forward)
	}
	right = right.Normalize()
	up := forward.Cross(right)

	c.position = position
	c.world = mgl64.Mat4FromCols(
		toMGL(right).Vec4(0),
		toMGL(up).Vec4(0),
		toMGL(forward).Vec4(0),
		toMGL(position).Vec4(1),
	)
	c.oriented = true
	c.updateViewport()
	return nil
}

func (c *Camera) updateViewport() {
	h := math.Tan(mgl64.DegToRad(c.config.VFov) / 2)
	c.viewportHeight = -2 * h
	c.viewportWidth = 2 * h * c.aspectRatio
}

// GenerateRay builds the ray through pixel (px, py). sampleOffset is the sub-pixel position
// in [0,1)^2, lensJitter a [0,1)^2 sample mapped onto the aperture disk, timeJitter a [0,1)
// fraction of the shutter interval.
func (c *Camera) GenerateRay(px, py int, sampleOffset, lensJitter core.Vec2, timeJitter float64) core.Ray {
	s := (float64(px) + sampleOffset.X) / float64(c.width)
	t := (float64(py) + sampleOffset.Y) / float64(c.height)
	f := c.config.FocalLength

	target := mgl64.Vec3{
		(s - 0.5) * c.viewportWidth * f,
		(t - 0.5) * c.viewportHeight * f,
		-f,
	}

	var origin mgl64.Vec3
	if c.config.Aperture > 0 {
		lens := core.SamplePointInUnitDisk(lensJitter).Multiply(c.config.Aperture)
		origin = mgl64.Vec3{lens.X, lens.Y, 0}
	}

	worldOrigin := c.world.Mul4x1(origin.Vec4(1)).Vec3()
	worldTarget := c.world.Mul4x1(target.Vec4(1)).Vec3()

	time := mgl64.Clamp(timeJitter, 0, 1) * c.config.ShutterSpeed
	return core.NewRayAtTime(fromMGL(worldOrigin), fromMGL(worldTarget.Sub(worldOrigin)), time)
}

// IsReady reports whether both the viewport and the orientation are set
func (c *Camera) IsReady() bool {
	return c.hasScreen && c.oriented
}

// Viewport returns the output resolution in pixels
func (c *Camera) Viewport() (width, height int) {
	return c.width, c.height
}

// ImagePlane returns the camera-space image plane size at unit distance
func (c *Camera) ImagePlane() (width, height float64) {
	return c.viewportWidth, c.viewportHeight
}

// Position returns the lens center in world space
func (c *Camera) Position() core.Vec3 {
	return c.position
}

// WorldTransform returns the camera-to-world matrix (columns: right, up, backward, position)
func (c *Camera) WorldTransform() mgl64.Mat4 {
	return c.world
}

// ZNear returns the minimum accepted hit distance
func (c *Camera) ZNear() float64 { return c.config.ZNear }

// ZFar returns the maximum accepted hit distance
func (c *Camera) ZFar() float64 { return c.config.ZFar }

// Config returns the lens configuration after defaults were applied
func (c *Camera) Config() CameraConfig { return c.config }

func toMGL(v core.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMGL(v mgl64.Vec3) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
