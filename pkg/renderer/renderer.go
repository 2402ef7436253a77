package renderer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/df07/go-tile-raytracer/pkg/geometry"
	"github.com/df07/go-tile-raytracer/pkg/log"
	"github.com/df07/go-tile-raytracer/pkg/material"
)

var ErrCameraNotReady = errors.New("camera viewport and orientation must be set before rendering")

// World is the read-only view of a scene the tracer needs
type World interface {
	DoesIntersect(ray core.Ray, tMin, tMax float64) (material.IntersectionInfo, bool)
	Background(ray core.Ray) core.Vec3
}

// Options carries the renderer settings that are not part of the pipeline
type Options struct {
	Seed          int64      // Base seed for the per-cluster random generators
	ReservedCores int        // CPUs left free for the rest of the system
	Logger        log.Logger // Defaults to the "renderer" module logger
}

// Renderer turns a scene seen through a camera into a framebuffer
type Renderer struct {
	world     World
	camera    *geometry.Camera
	config    PipelineConfig
	seed      int64
	scheduler *TaskScheduler
	logger    log.Logger
}

// NewRenderer validates the pipeline and starts the worker pool. Call Close when done.
func NewRenderer(world World, camera *geometry.Camera, config PipelineConfig, opts Options) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if world == nil {
		return nil, errors.New("renderer needs a scene")
	}
	if camera == nil {
		return nil, fmt.Errorf("renderer: %w", ErrCameraNotReady)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New("renderer")
	}

	scheduler := NewTaskScheduler(opts.ReservedCores, 0)
	return &Renderer{
		world:     world,
		camera:    camera,
		config:    config,
		seed:      opts.Seed,
		scheduler: scheduler,
		logger:    logger,
	}, nil
}

// Close shuts down the worker pool
func (r *Renderer) Close() {
	r.scheduler.Shutdown()
}

// Config returns the pipeline configuration
func (r *Renderer) Config() PipelineConfig {
	return r.config
}

// Render runs one full pass over the image. The context is checked before dispatch only;
// once clusters are queued the pass runs to completion.
func (r *Renderer) Render(ctx context.Context) (*Framebuffer, RenderStats, error) {
	if !r.camera.IsReady() {
		return nil, RenderStats{}, fmt.Errorf("render: %w", ErrCameraNotReady)
	}
	if err := ctx.Err(); err != nil {
		return nil, RenderStats{}, err
	}

	width, height := r.camera.Viewport()
	clusters := NewClusterGrid(width, height, int(r.config.ClusterSize), r.seed)
	framebuffer := NewFramebuffer(width, height)

	stats := RenderStats{
		PassID:          uuid.New(),
		Width:           width,
		Height:          height,
		Clusters:        len(clusters),
		Workers:         r.scheduler.NumWorkers(),
		SamplesPerPixel: r.config.SamplesPerPixel(),
	}

	r.logger.Infof("pass %s: %dx%d, %d clusters, %d workers, %d spp",
		stats.PassID, width, height, stats.Clusters, stats.Workers, stats.SamplesPerPixel)

	var raysTraced atomic.Int64
	start := time.Now()

	for _, cluster := range clusters {
		cluster := cluster
		err := r.scheduler.Execute(func() {
			raysTraced.Add(r.renderCluster(cluster, framebuffer))
		})
		if err != nil {
			return nil, RenderStats{}, fmt.Errorf("dispatching cluster %d: %w", cluster.ID, err)
		}
	}
	r.scheduler.Wait()

	stats.Duration = time.Since(start)
	stats.RaysTraced = raysTraced.Load()

	r.logger.Infof("pass %s: finished in %v, %d rays", stats.PassID, stats.Duration, stats.RaysTraced)
	return framebuffer, stats, nil
}

// renderCluster fills the cluster's pixels and returns the number of rays traced.
// Clusters never overlap, so writes to the shared framebuffer need no locking.
func (r *Renderer) renderCluster(cluster *Cluster, framebuffer *Framebuffer) int64 {
	sampler := core.NewRandomSampler(cluster.Random)
	var rays int64

	for y := cluster.Bounds.Min.Y; y < cluster.Bounds.Max.Y; y++ {
		for x := cluster.Bounds.Min.X; x < cluster.Bounds.Max.X; x++ {
			framebuffer.Set(x, y, r.samplePixel(x, y, sampler, &rays))
		}
	}

	r.logger.Debugf("cluster %d done (%v, %d rays)", cluster.ID, cluster.Bounds, rays)
	return rays
}

// samplePixel averages a stratified grid of sub-pixel samples, each averaged over the lens,
// and gamma encodes the result
func (r *Renderer) samplePixel(x, y int, sampler core.Sampler, rays *int64) core.Vec3 {
	ss := int(r.config.SuperSampleFactor)
	lensSamples := int(r.config.DepthOfFieldSampleCount)
	depth := int(r.config.MaxTraceDepth)

	var sum core.Vec3
	for sy := 0; sy < ss; sy++ {
		for sx := 0; sx < ss; sx++ {
			jitter := sampler.Get2D()
			offset := core.NewVec2(
				(float64(sx)+jitter.X)/float64(ss),
				(float64(sy)+jitter.Y)/float64(ss),
			)

			var lensSum core.Vec3
			for d := 0; d < lensSamples; d++ {
				ray := r.camera.GenerateRay(x, y, offset, sampler.Get2D(), sampler.Get1D())
				lensSum = lensSum.Add(r.traceRay(ray, r.world, depth, sampler, rays))
			}
			sum = sum.Add(lensSum.Multiply(1.0 / float64(lensSamples)))
		}
	}

	return sum.Multiply(1.0 / float64(ss*ss)).GammaEncode()
}

// TraceRayColor returns the linear radiance arriving along ray. depth is the number
// of bounces left; at zero the path contributes nothing.
func (r *Renderer) TraceRayColor(ray core.Ray, world World, depth int, sampler core.Sampler) core.Vec3 {
	var rays int64
	return r.traceRay(ray, world, depth, sampler, &rays)
}

func (r *Renderer) traceRay(ray core.Ray, world World, depth int, sampler core.Sampler, rays *int64) core.Vec3 {
	if depth <= 0 {
		return core.Black
	}
	*rays++

	hit, isHit := world.DoesIntersect(ray, r.camera.ZNear(), r.camera.ZFar())
	if !isHit {
		return world.Background(ray)
	}
	if hit.Material == nil {
		return core.Black
	}

	var emitted core.Vec3
	if emitter, ok := hit.Material.(material.Emitter); ok {
		emitted = emitter.Emitted(hit.UV, hit.Point)
	}

	scatter, scattered := hit.Material.Scatter(ray, hit, sampler)
	if !scattered {
		return emitted
	}

	return emitted.Add(scatter.Attenuation.MultiplyVec(
		r.traceRay(scatter.Scattered, world, depth-1, sampler, rays)))
}
