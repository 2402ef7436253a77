package texture

import (
	"math"
	"math/rand"

	"github.com/df07/go-tile-raytracer/pkg/core"
)

const perlinPointCount = 256

// Perlin is a gradient noise generator. Its lattice is built once from its own seeded
// generator and only read afterwards, so one instance may be sampled from many goroutines.
type Perlin struct {
	gradients [perlinPointCount]core.Vec3
	permX     [perlinPointCount]int
	permY     [perlinPointCount]int
	permZ     [perlinPointCount]int
}

// NewPerlin builds a noise lattice from seed. Equal seeds give identical noise.
func NewPerlin(seed int64) *Perlin {
	random := rand.New(rand.NewSource(seed))
	sampler := core.NewRandomSampler(random)

	p := &Perlin{}
	for i := range p.gradients {
		p.gradients[i] = core.RandomUnitVector(sampler)
	}
	p.permX = perlinPermutation(random)
	p.permY = perlinPermutation(random)
	p.permZ = perlinPermutation(random)
	return p
}

func perlinPermutation(random *rand.Rand) [perlinPointCount]int {
	var perm [perlinPointCount]int
	for i := range perm {
		perm[i] = i
	}
	random.Shuffle(len(perm), func(i, j int) {
		perm[i], perm[j] = perm[j], perm[i]
	})
	return perm
}

// Noise returns smooth noise in roughly [-1, 1] at point
func (p *Perlin) Noise(point core.Vec3) float64 {
	fx, fy, fz := math.Floor(point.X), math.Floor(point.Y), math.Floor(point.Z)
	u, v, w := point.X-fx, point.Y-fy, point.Z-fz
	i, j, k := int(fx), int(fy), int(fz)

	var c [2][2][2]core.Vec3
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				idx := p.permX[(i+di)&255] ^ p.permY[(j+dj)&255] ^ p.permZ[(k+dk)&255]
				c[di][dj][dk] = p.gradients[idx]
			}
		}
	}

	return perlinInterpolate(&c, u, v, w)
}

// Turbulence sums |noise| over octaves, halving the weight and doubling the frequency each time
func (p *Perlin) Turbulence(point core.Vec3, octaves int) float64 {
	accum := 0.0
	weight := 1.0
	temp := point
	for i := 0; i < octaves; i++ {
		accum += weight * p.Noise(temp)
		weight *= 0.5
		temp = temp.Multiply(2)
	}
	return math.Abs(accum)
}

func perlinInterpolate(c *[2][2][2]core.Vec3, u, v, w float64) float64 {
	// Hermite smoothing removes grid artifacts at lattice boundaries
	uu := u * u * (3 - 2*u)
	vv := v * v * (3 - 2*v)
	ww := w * w * (3 - 2*w)

	accum := 0.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				fi, fj, fk := float64(i), float64(j), float64(k)
				weight := core.NewVec3(u-fi, v-fj, w-fk)
				accum += (fi*uu + (1-fi)*(1-uu)) *
					(fj*vv + (1-fj)*(1-vv)) *
					(fk*ww + (1-fk)*(1-ww)) *
					c[i][j][k].Dot(weight)
			}
		}
	}
	return accum
}
