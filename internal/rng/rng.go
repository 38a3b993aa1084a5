// Package rng provides the single seeded random source threaded through one
// ensemble driver invocation.
//
// The source material reseeds a fresh std::mt19937 from a non-deterministic
// entropy source on every shuffle and draw, which makes runs irreproducible.
// This package instead accepts an explicit seed and threads one *rand.Rand
// through the whole call: every Shuffle and Intn a driver performs comes
// from the same Source.
package rng

import (
	"math/rand"
	"time"
)

// Source wraps a *rand.Rand so callers don't reach into math/rand directly.
type Source struct {
	r *rand.Rand
}

// New returns a Source seeded with seed. A seed of 0 is valid and
// deterministic, same as any other value — callers wanting non-deterministic
// behavior should pass time.Now().UnixNano() (see NewEntropy).
func New(seed int64) *Source {
	return &Source{r: rand.New(rand.NewSource(seed))}
}

// NewEntropy returns a Source seeded from the current time, for callers that
// don't need reproducibility (matches the source material's default, but
// centralizes the non-determinism instead of reseeding per draw).
func NewEntropy() *Source {
	return New(time.Now().UnixNano())
}

// Intn returns a pseudo-random int in [0, n). Panics if n <= 0.
func (s *Source) Intn(n int) int {
	return s.r.Intn(n)
}

// Shuffle randomizes the order of the n elements addressed by swap, in
// place, following the Fisher-Yates algorithm used by math/rand.Shuffle.
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	s.r.Shuffle(n, swap)
}

// ShuffleInts returns a shuffled copy of xs.
func ShuffleInts(s *Source, xs []int) []int {
	out := make([]int, len(xs))
	copy(out, xs)
	s.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
