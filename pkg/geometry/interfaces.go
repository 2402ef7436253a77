package geometry

import (
	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/df07/go-tile-raytracer/pkg/material"
)

// Traceable is implemented by anything a ray can hit.
// Hit must be free of side effects so it can be called from many goroutines.
type Traceable interface {
	Hit(ray core.Ray, tMin, tMax float64) (material.IntersectionInfo, bool)
}
