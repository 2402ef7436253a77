package renderer

import (
	"image"
	"math/rand"
)

// Cluster is a rectangular block of pixels rendered by a single task
type Cluster struct {
	ID     int             // Row-major index in the grid
	Bounds image.Rectangle // Pixel bounds, Max exclusive
	Random *rand.Rand      // Owned by the cluster; never shared between goroutines
}

// NewCluster creates a cluster whose random generator is derived from (seed, id)
func NewCluster(id int, bounds image.Rectangle, seed int64) *Cluster {
	return &Cluster{
		ID:     id,
		Bounds: bounds,
		Random: rand.New(rand.NewSource(clusterSeed(seed, id))),
	}
}

// NewClusterGrid splits a width x height image into clusterSize squares.
// Edge clusters are clipped to the image, so together they cover every pixel once.
func NewClusterGrid(width, height, clusterSize int, seed int64) []*Cluster {
	if width <= 0 || height <= 0 {
		return nil
	}
	clusterSize = max(1, clusterSize)

	clustersX := (width + clusterSize - 1) / clusterSize
	clustersY := (height + clusterSize - 1) / clusterSize

	clusters := make([]*Cluster, 0, clustersX*clustersY)
	for cy := 0; cy < clustersY; cy++ {
		for cx := 0; cx < clustersX; cx++ {
			x0 := cx * clusterSize
			y0 := cy * clusterSize
			x1 := min(x0+clusterSize, width)
			y1 := min(y0+clusterSize, height)

			clusters = append(clusters, NewCluster(len(clusters), image.Rect(x0, y0, x1, y1), seed))
		}
	}

	return clusters
}

// clusterSeed mixes the pass seed and cluster id (splitmix64 finalizer)
func clusterSeed(seed int64, id int) int64 {
	z := uint64(seed) + uint64(id+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return int64(z ^ (z >> 31))
}
