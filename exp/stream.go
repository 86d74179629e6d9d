// Package exp provides the shared experiment plumbing: deterministic random
// streams with independently derivable sub-streams, and a parallel trial
// runner whose aggregate result is identical regardless of worker count.
package exp

import "math/rand"

// NewRand returns an explicitly seeded random stream. Engines thread these
// through every call that needs randomness; there is no package-global
// generator anywhere in the core.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// ChildSeed derives the seed of sub-stream i from a parent seed. The
// derivation is a fixed-point splitmix64 mix, so workers can seed their own
// streams without coordinating and two distinct trials never share a stream.
func ChildSeed(seed int64, i int) int64 {
	z := uint64(seed) + uint64(i+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	return int64(z)
}

// ChildRand is shorthand for NewRand(ChildSeed(seed, i)).
func ChildRand(seed int64, i int) *rand.Rand {
	return NewRand(ChildSeed(seed, i))
}

// BoundedNormal draws a Gaussian sample with the given standard deviation,
// clamped to three standard deviations. Calibration sweeps use it as the
// per-point noise term.
func BoundedNormal(rng *rand.Rand, std float64) float64 {
	if std <= 0 {
		return 0
	}
	v := rng.NormFloat64() * std
	bound := 3 * std
	if v > bound {
		return bound
	}
	if v < -bound {
		return -bound
	}
	return v
}
