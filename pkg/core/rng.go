package core

import "math/rand/v2"

// seedGamma is the splitmix64 increment used to spread layer indices apart.
const seedGamma = 0x9e3779b97f4a7c15

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(seed, 0))}
}

// DeriveSeed returns the seed for stream index i of a run seeded with seed:
// splitmix64(seed + (i+1)*0x9e3779b97f4a7c15). The mapping is fixed so the
// same top-level seed always reproduces the same per-layer streams.
func DeriveSeed(seed uint64, i int) uint64 {
	return splitmix64(seed + uint64(i+1)*seedGamma)
}

func splitmix64(x uint64) uint64 {
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// FillDensity sets each buffer entry to 1 with probability density, 0 otherwise.
func FillDensity(r *rand.Rand, buf []uint8, density float64) {
	for i := range buf {
		if r.Float64() < density {
			buf[i] = 1
			continue
		}
		buf[i] = 0
	}
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
