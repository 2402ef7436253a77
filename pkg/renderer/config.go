package renderer

import (
	"errors"
	"fmt"
)

var ErrInvalidPipeline = errors.New("invalid pipeline configuration")

// PipelineConfig controls how many rays are traced per pixel and how the image is split
// into work units. It is fixed for the duration of a render pass.
type PipelineConfig struct {
	MaxTraceDepth           uint8 `yaml:"max_trace_depth"`             // Maximum ray bounces
	SuperSampleFactor       uint8 `yaml:"super_sample_factor"`         // Stratified sub-pixel grid is factor x factor
	DepthOfFieldSampleCount uint8 `yaml:"depth_of_field_sample_count"` // Lens samples per sub-pixel sample
	ClusterSize             uint8 `yaml:"cluster_size"`                // Side of a square cluster in pixels
}

// DefaultPipelineConfig returns the settings used when nothing is configured
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		MaxTraceDepth:           50,
		SuperSampleFactor:       4,
		DepthOfFieldSampleCount: 1,
		ClusterSize:             16,
	}
}

// Validate rejects zero factors, which would divide by zero or trace nothing
func (c PipelineConfig) Validate() error {
	switch {
	case c.MaxTraceDepth == 0:
		return fmt.Errorf("%w: max trace depth must be at least 1", ErrInvalidPipeline)
	case c.SuperSampleFactor == 0:
		return fmt.Errorf("%w: super sample factor must be at least 1", ErrInvalidPipeline)
	case c.DepthOfFieldSampleCount == 0:
		return fmt.Errorf("%w: depth of field sample count must be at least 1", ErrInvalidPipeline)
	case c.ClusterSize == 0:
		return fmt.Errorf("%w: cluster size must be at least 1", ErrInvalidPipeline)
	}
	return nil
}

// SamplesPerPixel is the number of camera rays traced for every pixel
func (c PipelineConfig) SamplesPerPixel() int {
	ss := int(c.SuperSampleFactor)
	return ss * ss * int(c.DepthOfFieldSampleCount)
}
