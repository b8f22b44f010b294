// Package hashmap provides a separately chained hash table for chainmap.
//
// The table keeps its buckets in a slice whose length (the capacity) is
// always a power of two, so a key's bucket is found by masking its hash:
//
//   - Placement: index = hash(key) & (capacity - 1)
//   - Growth: capacity doubles once the load factor reaches MaxLoad
//   - Shrink: capacity halves while the load factor is below MinLoad (floor 1)
//   - Traversal: bucket index ascending, then insertion order within a bucket
//
// Usage:
//
//	m := hashmap.New[string, int]()
//	m.Insert("a", 1)
//	v, err := m.At("a")
//	for it := m.Begin(); !it.Done(); it.Next() {
//	    k, v := it.Pair()
//	}
//
// Thread Safety:
//
// A Map is not safe for concurrent use. Callers that share a Map between
// goroutines must provide their own locking.
//
// Cursors:
//
// Any Insert, Erase, Clear or Assign invalidates every cursor obtained
// earlier from the same Map. Using an invalidated cursor panics.
package hashmap
