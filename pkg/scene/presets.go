package scene

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/df07/go-tile-raytracer/pkg/geometry"
	"github.com/df07/go-tile-raytracer/pkg/log"
	"github.com/df07/go-tile-raytracer/pkg/material"
	"github.com/df07/go-tile-raytracer/pkg/texture"
)

var ErrUnknownPreset = errors.New("unknown scene preset")

// Options controls how a preset scene is built
type Options struct {
	Width       int    // Output width in pixels
	Height      int    // Output height in pixels
	Seed        int64  // Seed for random scene layout and noise textures
	TexturePath string // Image for the textured globe; empty uses a generated grid
	Logger      log.Logger
}

// Preset is a built-in scene together with the camera that frames it
type Preset struct {
	Name        string
	Description string
	build       func(opts Options) (*Scene, *geometry.Camera, error)
}

// Build constructs the scene and a camera ready to render at the requested size
func (p Preset) Build(opts Options) (*Scene, *geometry.Camera, error) {
	world, camera, err := p.build(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("building scene %q: %w", p.Name, err)
	}
	return world, camera, nil
}

var presets = []Preset{
	{
		Name:        "default",
		Description: "Lambertian, metal and glass spheres on a diffuse ground",
		build:       newDefaultScene,
	},
	{
		Name:        "bouncing",
		Description: "Field of random spheres, the diffuse ones bouncing during the shutter interval",
		build:       newBouncingScene,
	},
	{
		Name:        "textures",
		Description: "Checkerboard ground, image-textured globe and marble noise sphere",
		build:       newTexturesScene,
	},
	{
		Name:        "light",
		Description: "Marble spheres lit only by an emissive sphere under a black sky",
		build:       newLightScene,
	},
}

// Presets returns every built-in scene
func Presets() []Preset {
	return append([]Preset(nil), presets...)
}

// Names returns the names of the built-in scenes
func Names() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names
}

// Lookup finds a built-in scene by name
func Lookup(name string) (Preset, error) {
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

func newCamera(opts Options, config geometry.CameraConfig, position, focus core.Vec3) (*geometry.Camera, error) {
	camera := geometry.NewCamera(config)
	if err := camera.SetViewportDimensionInPx(opts.Width, opts.Height); err != nil {
		return nil, err
	}
	if err := camera.LookAt(position, focus, core.NewVec3(0, 1, 0)); err != nil {
		return nil, err
	}
	return camera, nil
}

func newDefaultScene(opts Options) (*Scene, *geometry.Camera, error) {
	world := NewScene()

	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6))
	center := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	silver := material.NewMetallic(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	gold := material.NewMetallic(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	glass := material.NewDielectric(1.5)
	bubble := material.NewDielectric(1.0 / 1.5)

	world.AddTraceable(geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, ground))
	world.AddTraceable(geometry.NewSphere(core.NewVec3(0, 0, -1.2), 0.5, center))
	world.AddTraceable(geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, gold))
	world.AddTraceable(geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, silver))

	// Hollow glass: an air bubble inside a solid glass sphere
	world.AddTraceable(geometry.NewSphere(core.NewVec3(-0.4, -0.25, -0.4), 0.25, glass))
	world.AddTraceable(geometry.NewSphere(core.NewVec3(-0.4, -0.25, -0.4), 0.2, bubble))
	world.AddTraceable(geometry.NewSphere(core.NewVec3(0.45, -0.3, -0.35), 0.2, glass))

	position := core.NewVec3(0, 0.5, 2)
	focus := core.NewVec3(0, 0, -1)

	config := geometry.DefaultCameraConfig()
	config.Aperture = 0.02
	config.FocalLength = position.Subtract(focus).Length()

	camera, err := newCamera(opts, config, position, focus)
	return world, camera, err
}

func newBouncingScene(opts Options) (*Scene, *geometry.Camera, error) {
	world := NewScene()
	random := rand.New(rand.NewSource(opts.Seed))

	checker := texture.NewCheckerboardColors(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	world.AddTraceable(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(checker)))

	for a := -5; a < 5; a++ {
		for b := -5; b < 5; b++ {
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())
			if center.Subtract(core.NewVec3(4, 0.2, 0)).Length() <= 0.9 {
				continue
			}

			choice := random.Float64()
			switch {
			case choice < 0.8:
				albedo := core.NewVec3(random.Float64(), random.Float64(), random.Float64()).
					MultiplyVec(core.NewVec3(random.Float64(), random.Float64(), random.Float64()))
				bounce := center.Add(core.NewVec3(0, 0.5*random.Float64(), 0))
				world.AddTraceable(geometry.NewMovingSphere(center, bounce, 0.2, material.NewLambertian(albedo)))
			case choice < 0.95:
				albedo := core.NewVec3(0.5+0.5*random.Float64(), 0.5+0.5*random.Float64(), 0.5+0.5*random.Float64())
				world.AddTraceable(geometry.NewSphere(center, 0.2, material.NewMetallic(albedo, 0.5*random.Float64())))
			default:
				world.AddTraceable(geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	world.AddTraceable(geometry.NewSphere(core.NewVec3(0, 1, 0), 1, material.NewDielectric(1.5)))
	world.AddTraceable(geometry.NewSphere(core.NewVec3(-4, 1, 0), 1, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))))
	world.AddTraceable(geometry.NewSphere(core.NewVec3(4, 1, 0), 1, material.NewMetallic(core.NewVec3(0.7, 0.6, 0.5), 0)))

	config := geometry.DefaultCameraConfig()
	config.VFov = 20
	config.Aperture = 0.05
	config.FocalLength = 10
	config.ShutterSpeed = 1

	camera, err := newCamera(opts, config, core.NewVec3(13, 2, 3), core.NewVec3(0, 0, 0))
	return world, camera, err
}

func newTexturesScene(opts Options) (*Scene, *geometry.Camera, error) {
	world := NewScene()

	checker := texture.NewCheckerboardColors(0.5, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	world.AddTraceable(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(checker)))

	var globe texture.Texture
	if opts.TexturePath != "" {
		globe = texture.LoadImageTexture(opts.TexturePath, opts.Logger)
	} else {
		globe = texture.NewGridImageTexture(256, 128, 16, core.NewVec3(0.1, 0.3, 0.8), core.NewVec3(0.9, 0.9, 0.9))
	}
	world.AddTraceable(geometry.NewSphere(core.NewVec3(-1.1, 1, 0), 1, material.NewTexturedLambertian(globe)))

	marble := texture.NewNoiseTexture(texture.NewPerlin(opts.Seed), 4, 7)
	world.AddTraceable(geometry.NewSphere(core.NewVec3(1.1, 1, 0), 1, material.NewTexturedLambertian(marble)))

	config := geometry.DefaultCameraConfig()
	config.VFov = 30

	camera, err := newCamera(opts, config, core.NewVec3(0, 2, 8), core.NewVec3(0, 1, 0))
	return world, camera, err
}

func newLightScene(opts Options) (*Scene, *geometry.Camera, error) {
	world := NewScene()
	world.SetBackgroundColors(core.Black, core.Black)

	marble := texture.NewNoiseTexture(texture.NewPerlin(opts.Seed), 4, 7)
	world.AddTraceable(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(marble)))
	world.AddTraceable(geometry.NewSphere(core.NewVec3(0, 2, 0), 2, material.NewTexturedLambertian(marble)))
	world.AddTraceable(geometry.NewSphere(core.NewVec3(0, 7, 0), 2, material.NewDiffuseLight(core.White, 4)))
	world.AddTraceable(geometry.NewSphere(core.NewVec3(4, 1, 3), 0.5, material.NewDiffuseLight(core.NewVec3(1, 0.6, 0.3), 6)))

	config := geometry.DefaultCameraConfig()
	config.VFov = 20

	camera, err := newCamera(opts, config, core.NewVec3(26, 3, 6), core.NewVec3(0, 2, 0))
	return world, camera, err
}
