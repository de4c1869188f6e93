// Package rng provides the seeded random stream every generator in terragen
// draws from. Two sources built from the same seed return identical values
// for identical call sequences.
package rng

import "math/rand/v2"

// Source is a deterministic pseudo-random stream. It is not safe for
// concurrent use; each simulation run owns its own Source.
type Source struct {
	r *rand.Rand
}

// New creates a Source seeded from seed.
func New(seed int64) *Source {
	lo := mix(uint64(seed))
	hi := mix(lo ^ 0x9e3779b97f4a7c15)
	return &Source{r: rand.New(rand.NewPCG(lo, hi))}
}

// Float64 returns a uniform value in [0, 1).
func (s *Source) Float64() float64 {
	return s.r.Float64()
}

// IntIn returns a uniform integer in [low, high). It panics if high <= low.
func (s *Source) IntIn(low, high int) int {
	return low + s.r.IntN(high-low)
}

// Shuffle pseudo-randomizes the order of n elements using Fisher-Yates.
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	s.r.Shuffle(n, swap)
}

// Perm returns the identity sequence 0..n-1 shuffled by the stream.
func (s *Source) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	s.Shuffle(n, func(i, j int) { p[i], p[j] = p[j], p[i] })
	return p
}

// mix is the SplitMix64 finalizer. It spreads nearby seeds (0, 1, 2...) across
// the PCG state space.
func mix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
