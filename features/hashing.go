package features

import (
	"github.com/hscells/reviewrate/failure"
	"github.com/twmb/murmur3"
)

// HashSeed is the murmur3 seed used to hash terms.
const HashSeed = 42

// Hasher maps terms into a fixed number of buckets and counts them. Two terms that hash into the
// same bucket are summed together; this is accepted rather than reported.
type Hasher struct {
	numFeatures int
	binary      bool
}

// HashBinary records the presence of a term (1) instead of its count.
func HashBinary(binary bool) func(*Hasher) {
	return func(h *Hasher) {
		h.binary = binary
	}
}

// NewHasher creates a hasher with numFeatures buckets. numFeatures must be positive.
func NewHasher(numFeatures int, options ...func(*Hasher)) (Hasher, error) {
	if numFeatures <= 0 {
		return Hasher{}, failure.Configuration("numFeatures must be positive, got %d", numFeatures)
	}
	h := Hasher{numFeatures: numFeatures}
	for _, option := range options {
		option(&h)
	}
	return h, nil
}

// NumFeatures is the number of buckets.
func (h Hasher) NumFeatures() int {
	return h.numFeatures
}

// Binary reports whether the hasher records presence rather than counts.
func (h Hasher) Binary() bool {
	return h.binary
}

// Index returns the bucket a term is hashed into.
func (h Hasher) Index(term string) int {
	x := int32(murmur3.SeedStringSum32(HashSeed, term))
	return nonNegativeMod(int(x), h.numFeatures)
}

// Transform produces the term counts of a single document.
func (h Hasher) Transform(tokens []string) SparseVector {
	counts := make(map[int]float64, len(tokens))
	for _, token := range tokens {
		i := h.Index(token)
		if h.binary {
			counts[i] = 1
		} else {
			counts[i]++
		}
	}
	return NewSparseVector(h.numFeatures, counts)
}

// CollisionRate estimates the probability that a term shares its bucket with another term, for a
// vocabulary of the given size.
func (h Hasher) CollisionRate(vocabularySize int) float64 {
	if vocabularySize <= 1 {
		return 0
	}
	r := float64(vocabularySize) / float64(h.numFeatures)
	if r > 1 {
		return 1
	}
	return r
}

func nonNegativeMod(x, mod int) int {
	r := x % mod
	if r < 0 {
		r += mod
	}
	return r
}
