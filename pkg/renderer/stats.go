package renderer

import (
	"time"

	"github.com/google/uuid"
)

// RenderStats describes one completed render pass
type RenderStats struct {
	PassID          uuid.UUID     // Unique per Render call
	Width           int           // Image width in pixels
	Height          int           // Image height in pixels
	Clusters        int           // Number of tasks the image was split into
	Workers         int           // Worker goroutines available to the pass
	SamplesPerPixel int           // Camera rays per pixel
	RaysTraced      int64         // Camera and scattered rays tested against the scene
	Duration        time.Duration // Wall time from dispatch to the last finished cluster
}

// TotalPixels returns the pixel count of the image
func (s RenderStats) TotalPixels() int {
	return s.Width * s.Height
}

// RaysPerSecond returns the tracing throughput of the pass
func (s RenderStats) RaysPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.RaysTraced) / s.Duration.Seconds()
}
