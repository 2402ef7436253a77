package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPipelineConfig(t *testing.T) {
	config := DefaultPipelineConfig()

	assert.Equal(t, uint8(50), config.MaxTraceDepth)
	assert.Equal(t, uint8(4), config.SuperSampleFactor)
	assert.Equal(t, uint8(1), config.DepthOfFieldSampleCount)
	assert.Equal(t, uint8(16), config.ClusterSize)
	assert.NoError(t, config.Validate())
	assert.Equal(t, 16, config.SamplesPerPixel())
}

func TestPipelineConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*PipelineConfig)
	}{
		{"zero depth", func(c *PipelineConfig) { c.MaxTraceDepth = 0 }},
		{"zero super sampling", func(c *PipelineConfig) { c.SuperSampleFactor = 0 }},
		{"zero lens samples", func(c *PipelineConfig) { c.DepthOfFieldSampleCount = 0 }},
		{"zero cluster size", func(c *PipelineConfig) { c.ClusterSize = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultPipelineConfig()
			tt.modify(&config)
			assert.ErrorIs(t, config.Validate(), ErrInvalidPipeline)
		})
	}
}

func TestSamplesPerPixel(t *testing.T) {
	config := PipelineConfig{MaxTraceDepth: 1, SuperSampleFactor: 3, DepthOfFieldSampleCount: 5, ClusterSize: 8}
	assert.Equal(t, 45, config.SamplesPerPixel())
}
