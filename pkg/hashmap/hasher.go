package hashmap

import (
	"hash/maphash"

	"github.com/spaolacci/murmur3"
)

// Hasher computes the hash of a key.
//
// Equal keys must produce equal hashes. Only the low bits of the result
// select a bucket, so the low bits should be well mixed.
type Hasher[K any] interface {
	Hash(key K) uint64
}

// HasherFunc adapts an ordinary function to the Hasher interface.
type HasherFunc[K any] func(key K) uint64

// Hash calls f(key).
func (f HasherFunc[K]) Hash(key K) uint64 {
	return f(key)
}

// seededHasher hashes comparable keys with maphash under a fixed seed.
type seededHasher[K comparable] struct {
	seed maphash.Seed
}

func (h seededHasher[K]) Hash(key K) uint64 {
	return maphash.Comparable(h.seed, key)
}

// MapHasher returns a Hasher backed by hash/maphash with a fresh random seed.
//
// Bucket placement, and therefore traversal order, differs between two
// hashers returned by separate calls.
func MapHasher[K comparable]() Hasher[K] {
	return seededHasher[K]{seed: maphash.MakeSeed()}
}

// murmurHasher hashes string-like keys with 64-bit MurmurHash3.
type murmurHasher[K ~string] struct{}

func (murmurHasher[K]) Hash(key K) uint64 {
	return murmur3.Sum64([]byte(key))
}

// Murmur3 returns a deterministic Hasher for string-like keys using
// MurmurHash3 (x64, 128-bit variant truncated to 64 bits).
//
// The same key always lands in the same bucket for a given capacity, which
// makes bucket reports reproducible across processes.
func Murmur3[K ~string]() Hasher[K] {
	return murmurHasher[K]{}
}

// seededMurmurHasher is murmurHasher with a caller-chosen seed.
type seededMurmurHasher[K ~string] struct {
	seed uint32
}

func (h seededMurmurHasher[K]) Hash(key K) uint64 {
	return murmur3.Sum64WithSeed([]byte(key), h.seed)
}

// Murmur3WithSeed is like Murmur3 but mixes seed into every hash.
// A zero seed yields the same placement as Murmur3.
func Murmur3WithSeed[K ~string](seed uint32) Hasher[K] {
	if seed == 0 {
		return murmurHasher[K]{}
	}
	return seededMurmurHasher[K]{seed: seed}
}
