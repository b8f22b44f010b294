package hashmap

import "iter"

// Cursor is a read-only position in a Map.
//
// It walks non-empty buckets in ascending index order and, inside a bucket,
// pairs in insertion order. The terminal position (Done) carries no pair.
// A Cursor is a value; copying it yields an independent position.
type Cursor[K comparable, V any] struct {
	m      *Map[K, V]
	bucket int
	slot   int
	gen    uint64
}

// Begin returns a cursor on the first pair, or End() if the map is empty.
func (m *Map[K, V]) Begin() Cursor[K, V] {
	c := Cursor[K, V]{m: m, gen: m.gen}
	c.seek(0)
	return c
}

// End returns the terminal cursor.
func (m *Map[K, V]) End() Cursor[K, V] {
	return Cursor[K, V]{m: m, bucket: len(m.buckets), gen: m.gen}
}

// seek positions c on slot 0 of the first non-empty bucket at or after b.
func (c *Cursor[K, V]) seek(b int) {
	for b < len(c.m.buckets) && len(c.m.buckets[b]) == 0 {
		b++
	}
	c.bucket = b
	c.slot = 0
}

func (c *Cursor[K, V]) check() {
	if c.m == nil {
		panic("hashmap: use of zero Cursor")
	}
	if c.gen != c.m.gen {
		panic("hashmap: cursor used after the map was modified")
	}
}

// Done reports whether c is at the terminal position.
func (c Cursor[K, V]) Done() bool {
	return c.m == nil || c.bucket >= len(c.m.buckets)
}

// Next advances c to the following pair. Advancing a terminal cursor
// leaves it terminal.
func (c *Cursor[K, V]) Next() {
	c.check()
	if c.Done() {
		return
	}
	c.slot++
	if c.slot >= len(c.m.buckets[c.bucket]) {
		c.seek(c.bucket + 1)
	}
}

// Pair returns the key and value under c. It panics on a terminal cursor.
func (c Cursor[K, V]) Pair() (K, V) {
	p := c.at()
	return p.Key, p.Value
}

// Key returns the key under c.
func (c Cursor[K, V]) Key() K {
	return c.at().Key
}

// Value returns the value under c.
func (c Cursor[K, V]) Value() V {
	return c.at().Value
}

func (c Cursor[K, V]) at() *Pair[K, V] {
	c.check()
	if c.Done() {
		panic("hashmap: dereference of end cursor")
	}
	return &c.m.buckets[c.bucket][c.slot]
}

// Equal reports whether c and o refer to the same map and position.
// All terminal cursors of one map are equal. Like Next, it panics if
// either cursor was invalidated.
func (c Cursor[K, V]) Equal(o Cursor[K, V]) bool {
	c.check()
	o.check()
	if c.m != o.m {
		return false
	}
	if c.Done() || o.Done() {
		return c.Done() && o.Done()
	}
	return c.bucket == o.bucket && c.slot == o.slot
}

// All returns an iterator over key-value pairs in traversal order.
// The map must not be modified during iteration.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for c := m.Begin(); !c.Done(); c.Next() {
			if !yield(c.Pair()) {
				return
			}
		}
	}
}

// Keys returns an iterator over keys in traversal order.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range m.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values returns an iterator over values in traversal order.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Range calls fn for each pair in traversal order.
//
// The callback returns false to stop iteration.
func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	for k, v := range m.All() {
		if !fn(k, v) {
			return
		}
	}
}

// Items returns all pairs as a slice, in traversal order.
func (m *Map[K, V]) Items() []Pair[K, V] {
	items := make([]Pair[K, V], 0, m.size)
	for k, v := range m.All() {
		items = append(items, Pair[K, V]{Key: k, Value: v})
	}
	return items
}
