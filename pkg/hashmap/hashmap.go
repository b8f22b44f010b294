// Package hashmap provides a separately chained hash table.
//
// Each bucket is an ordered slice of pairs. Capacity is a power of two so
// that the bucket index is the hash masked by capacity-1, the same trick
// sharded maps use to pick a shard.
package hashmap

import (
	"time"
)

const (
	// DefaultCapacity is the number of buckets of a new Map.
	DefaultCapacity = 16

	// MaxLoad is the load factor at which an insert doubles the capacity.
	MaxLoad = 0.75

	// MinLoad is the load factor below which an erase halves the capacity.
	MinLoad = 0.25
)

// Pair is a stored key-value association.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

type bucket[K comparable, V any] []Pair[K, V]

// Map is a hash table with separate chaining.
//
// The zero value is not usable; create maps with New or FromSlices.
type Map[K comparable, V any] struct {
	buckets []bucket[K, V]
	size    int
	mask    uint64

	hasher   Hasher[K]
	observer Observer
	absent   AbsentPolicy[K]

	// gen changes on every structural mutation; cursors compare against it.
	gen      uint64
	rehashes uint64
}

// New creates an empty map with DefaultCapacity buckets unless overridden
// by WithCapacity.
func New[K comparable, V any](opts ...Option[K]) *Map[K, V] {
	o := buildOptions(opts)
	return &Map[K, V]{
		buckets:  make([]bucket[K, V], o.capacity),
		mask:     uint64(o.capacity - 1),
		hasher:   o.hasher,
		observer: o.observer,
		absent:   o.absent,
	}
}

// FromSlices creates a map by inserting keys[i], values[i] in order.
//
// A later duplicate of a key is ignored, as Insert ignores it. If the
// slices differ in length ErrLengthMismatch is returned and no map is built.
func FromSlices[K comparable, V any](keys []K, values []V, opts ...Option[K]) (*Map[K, V], error) {
	if len(keys) != len(values) {
		return nil, ErrLengthMismatch.WithDetails(
			lengthDetails(len(keys), len(values)))
	}
	m := New[K, V](opts...)
	for i := range keys {
		m.Insert(keys[i], values[i])
	}
	return m, nil
}

// Size returns the number of stored pairs.
func (m *Map[K, V]) Size() int {
	return m.size
}

// Capacity returns the number of buckets.
func (m *Map[K, V]) Capacity() int {
	return len(m.buckets)
}

// Empty reports whether the map holds no pairs.
func (m *Map[K, V]) Empty() bool {
	return m.size == 0
}

// LoadFactor returns Size()/Capacity().
func (m *Map[K, V]) LoadFactor() float64 {
	return float64(m.size) / float64(len(m.buckets))
}

func (m *Map[K, V]) index(key K) int {
	return int(m.hasher.Hash(key) & m.mask)
}

// find returns the bucket index and slot of key, or slot -1.
func (m *Map[K, V]) find(key K) (int, int) {
	b := m.index(key)
	for i := range m.buckets[b] {
		if m.buckets[b][i].Key == key {
			return b, i
		}
	}
	return b, -1
}

// Contains reports whether key is stored. Only the key's bucket is scanned.
func (m *Map[K, V]) Contains(key K) bool {
	_, slot := m.find(key)
	return slot >= 0
}

// Get retrieves the value stored for key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	b, slot := m.find(key)
	if slot < 0 {
		var zero V
		return zero, false
	}
	return m.buckets[b][slot].Value, true
}

// At returns the value stored for key, or ErrKeyNotFound.
func (m *Map[K, V]) At(key K) (V, error) {
	b, slot := m.find(key)
	if slot < 0 {
		var zero V
		return zero, ErrKeyNotFound.WithDetails(keyDetails(key))
	}
	return m.buckets[b][slot].Value, nil
}

// AtPtr returns a pointer to the value stored for key, or ErrKeyNotFound.
//
// The pointer refers into the bucket and is only valid until the next
// Insert, Erase, Clear or Assign.
func (m *Map[K, V]) AtPtr(key K) (*V, error) {
	b, slot := m.find(key)
	if slot < 0 {
		return nil, ErrKeyNotFound.WithDetails(keyDetails(key))
	}
	return &m.buckets[b][slot].Value, nil
}

// Index returns a pointer to the value for key, first inserting the zero
// value if key is absent. Probing with Index therefore materializes an
// entry; use Peek for a read-only probe.
//
// The pointer has the same lifetime as one returned by AtPtr.
func (m *Map[K, V]) Index(key K) *V {
	if !m.Contains(key) {
		var zero V
		m.Insert(key, zero)
	}
	// Insert may have rehashed; look the slot up again.
	b, slot := m.find(key)
	return &m.buckets[b][slot].Value
}

// Peek returns the value for key, or the zero value when key is absent.
// It never modifies the map.
func (m *Map[K, V]) Peek(key K) V {
	v, _ := m.Get(key)
	return v
}

// Insert stores key with value if key is absent and reports whether it did.
// An existing value is left untouched.
func (m *Map[K, V]) Insert(key K, value V) bool {
	b, slot := m.find(key)
	if slot >= 0 {
		return false
	}
	m.buckets[b] = append(m.buckets[b], Pair[K, V]{Key: key, Value: value})
	m.size++
	m.gen++

	if m.LoadFactor() >= MaxLoad {
		m.rehash(len(m.buckets)*2, ReasonGrow)
	}
	return true
}

// Erase removes key and reports whether it was present.
//
// After removal the capacity is halved while the load factor is below
// MinLoad, never going under one bucket.
func (m *Map[K, V]) Erase(key K) bool {
	b, slot := m.find(key)
	if slot < 0 {
		return false
	}
	m.removeAt(b, slot)
	return true
}

// Remove is Erase with the map's AbsentPolicy applied to a missing key.
// With the default policy it never returns an error.
func (m *Map[K, V]) Remove(key K) (bool, error) {
	b, slot := m.find(key)
	if slot < 0 {
		return false, m.absent(key)
	}
	m.removeAt(b, slot)
	return true, nil
}

func (m *Map[K, V]) removeAt(b, slot int) {
	chain := m.buckets[b]
	copy(chain[slot:], chain[slot+1:])
	var zero Pair[K, V]
	chain[len(chain)-1] = zero
	m.buckets[b] = chain[:len(chain)-1]
	m.size--
	m.gen++

	capacity := len(m.buckets)
	for capacity > 1 && float64(m.size)/float64(capacity) < MinLoad {
		capacity /= 2
	}
	m.rehash(capacity, ReasonShrink)
}

// rehash moves every pair into a fresh bucket slice of newCapacity buckets,
// visiting pairs in traversal order. It is a no-op when the capacity does
// not change.
func (m *Map[K, V]) rehash(newCapacity int, reason RehashReason) {
	oldCapacity := len(m.buckets)
	if newCapacity == oldCapacity {
		return
	}

	var start time.Time
	if m.observer != nil {
		start = time.Now()
	}

	mask := uint64(newCapacity - 1)
	buckets := make([]bucket[K, V], newCapacity)
	for _, chain := range m.buckets {
		for _, p := range chain {
			i := m.hasher.Hash(p.Key) & mask
			buckets[i] = append(buckets[i], p)
		}
	}

	m.buckets = buckets
	m.mask = mask
	m.gen++
	m.rehashes++

	if m.observer != nil {
		m.observer.OnRehash(RehashEvent{
			From:     oldCapacity,
			To:       newCapacity,
			Size:     m.size,
			Reason:   reason,
			Duration: time.Since(start),
		})
	}
}

// BucketSize returns the length of the bucket holding key,
// or ErrKeyNotFound if key is absent.
func (m *Map[K, V]) BucketSize(key K) (int, error) {
	b, slot := m.find(key)
	if slot < 0 {
		return 0, ErrKeyNotFound.WithDetails(keyDetails(key))
	}
	return len(m.buckets[b]), nil
}

// BucketIndex returns the index of the bucket holding key,
// or ErrKeyNotFound if key is absent.
func (m *Map[K, V]) BucketIndex(key K) (int, error) {
	b, slot := m.find(key)
	if slot < 0 {
		return 0, ErrKeyNotFound.WithDetails(keyDetails(key))
	}
	return b, nil
}

// Clear removes all pairs. The capacity is kept.
func (m *Map[K, V]) Clear() {
	m.buckets = make([]bucket[K, V], len(m.buckets))
	m.size = 0
	m.gen++
}

// Clone returns an independent deep copy of the map. The copy shares the
// hasher, observer and absent policy of m.
func (m *Map[K, V]) Clone() *Map[K, V] {
	c := &Map[K, V]{}
	c.copyFrom(m)
	return c
}

// Assign replaces the contents of m with a deep copy of other.
// Assigning a map to itself does nothing.
func (m *Map[K, V]) Assign(other *Map[K, V]) {
	if m == other {
		return
	}
	gen := m.gen
	m.copyFrom(other)
	m.gen = gen + 1
}

func (m *Map[K, V]) copyFrom(other *Map[K, V]) {
	buckets := make([]bucket[K, V], len(other.buckets))
	for i, chain := range other.buckets {
		if len(chain) > 0 {
			buckets[i] = append(bucket[K, V](nil), chain...)
		}
	}
	m.buckets = buckets
	m.size = other.size
	m.mask = other.mask
	m.hasher = other.hasher
	m.observer = other.observer
	m.absent = other.absent
	m.rehashes = other.rehashes
}

// EqualFunc reports whether m and other hold the same keys with values
// that eq considers equal. Capacity and layout are ignored. A nil map is
// equal only to nil.
func (m *Map[K, V]) EqualFunc(other *Map[K, V], eq func(a, b V) bool) bool {
	if m == other {
		return true
	}
	if m == nil || other == nil {
		return false
	}
	if m.size != other.size {
		return false
	}
	for _, chain := range m.buckets {
		for _, p := range chain {
			v, ok := other.Get(p.Key)
			if !ok || !eq(p.Value, v) {
				return false
			}
		}
	}
	return true
}

// Equal reports whether a and b hold the same key-value pairs.
func Equal[K, V comparable](a, b *Map[K, V]) bool {
	return a.EqualFunc(b, func(x, y V) bool { return x == y })
}
