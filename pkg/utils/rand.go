package utils

import (
	"math/rand"
	"time"
)

// RandSource is a seeded random number generator. It is not safe for
// concurrent use; a run owns its own source.
type RandSource struct {
	seed int64
	rng  *rand.Rand
}

// NewRandSource creates a new random source with the given seed.
// A zero seed draws one from the clock; Seed reports the value used.
func NewRandSource(seed int64) *RandSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandSource{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed the source was built from
func (r *RandSource) Seed() int64 {
	return r.seed
}

// Float64 returns a random float64 in [0.0, 1.0)
func (r *RandSource) Float64() float64 {
	return r.rng.Float64()
}

// Intn returns a random int in [0, n)
func (r *RandSource) Intn(n int) int {
	return r.rng.Intn(n)
}

// Derive returns an independent source seeded from this one. Callers use it
// to give the perturbation operator and the acceptance draw separate streams.
func (r *RandSource) Derive() *RandSource {
	seed := r.rng.Int63()
	if seed == 0 {
		seed = 1
	}
	return &RandSource{seed: seed, rng: rand.New(rand.NewSource(seed))}
}
