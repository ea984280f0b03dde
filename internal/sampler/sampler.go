// Package sampler draws randomized, size-bounded subsets from a catalog.
package sampler

import (
	"math/rand/v2"

	"cobible/internal/catalog"
	"cobible/internal/domain"
)

// ShuffleFunc permutes n elements by calling swap, like rand.Shuffle.
type ShuffleFunc func(n int, swap func(i, j int))

// Sampler draws uniform random subsets.
type Sampler struct {
	shuffle ShuffleFunc
}

// New creates a sampler using the global random source.
func New() *Sampler {
	return &Sampler{shuffle: rand.Shuffle}
}

// NewWithShuffle creates a sampler with a caller supplied permutation, for
// deterministic tests.
func NewWithShuffle(shuffle ShuffleFunc) *Sampler {
	return &Sampler{shuffle: shuffle}
}

// Shuffle permutes records in place.
func (s *Sampler) Shuffle(n int, swap func(i, j int)) {
	s.shuffle(n, swap)
}

// Sample filters c to language and categories, shuffles the pool and returns
// the first min(count, pool size) records. An empty category set or a
// non-positive count yields an empty slice.
func Sample[T domain.Record](s *Sampler, c *catalog.Catalog[T], language string, categories []string, count int) []T {
	if count <= 0 || len(categories) == 0 {
		return []T{}
	}

	pool := c.Filter(language, categories)
	s.shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	if count < len(pool) {
		pool = pool[:count]
	}
	return pool
}
