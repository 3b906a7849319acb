package noise

import "math/rand/v2"

// Source supplies the random draws consumed during generation.
//
// *rand.Rand from math/rand/v2 satisfies Source.
type Source interface {
	// IntN returns a uniform integer in [0, n).
	IntN(n int) int
	// Float64 returns a uniform float in [0.0, 1.0).
	Float64() float64
}

// NewSource returns an unseeded source. Each call yields an independent stream.
func NewSource() Source {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSeededSource returns a deterministic source for the given seed.
func NewSeededSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
