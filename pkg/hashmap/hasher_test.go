package hashmap

import (
	"testing"

	"github.com/spaolacci/murmur3"
	"github.com/stretchr/testify/assert"
)

func TestMurmur3(t *testing.T) {
	h := Murmur3[string]()
	for _, k := range []string{"", "a", "session", "The days of the digital watch are numbered."} {
		assert.Equal(t, murmur3.Sum64([]byte(k)), h.Hash(k), k)
		assert.Equal(t, h.Hash(k), Murmur3WithSeed[string](0).Hash(k), k)
	}
}

func TestMurmur3WithSeed(t *testing.T) {
	a := Murmur3WithSeed[string](1)
	b := Murmur3WithSeed[string](2)
	assert.Equal(t, murmur3.Sum64WithSeed([]byte("key"), 1), a.Hash("key"))
	assert.NotEqual(t, a.Hash("key"), b.Hash("key"))
}

type label string

func TestMurmur3NamedString(t *testing.T) {
	assert.Equal(t, Murmur3[string]().Hash("x"), Murmur3[label]().Hash(label("x")))
}

func TestMapHasher(t *testing.T) {
	h := MapHasher[int]()
	assert.Equal(t, h.Hash(42), h.Hash(42))

	type point struct{ X, Y int }
	ph := MapHasher[point]()
	assert.Equal(t, ph.Hash(point{1, 2}), ph.Hash(point{1, 2}))
}

func TestDeterministicPlacement(t *testing.T) {
	a := New[string, int](WithHasher(Murmur3[string]()))
	b := New[string, int](WithHasher(Murmur3[string]()))
	for _, k := range []string{"alpha", "beta", "gamma", "delta"} {
		a.Insert(k, 1)
		b.Insert(k, 1)
	}
	for _, k := range []string{"alpha", "beta", "gamma", "delta"} {
		ia, _ := a.BucketIndex(k)
		ib, _ := b.BucketIndex(k)
		assert.Equal(t, ia, ib, k)
	}
}
