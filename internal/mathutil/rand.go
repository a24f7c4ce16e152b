package mathutil

import "math/rand"

// Rand is the slice of *rand.Rand the simulation draws from. Tests swap in
// scripted sources.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a seeded source.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// RandRange returns a float in [lo, hi).
func RandRange(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
