// Package dictionary provides a string-to-string Dictionary on top of
// hashmap.Map.
//
// A Dictionary behaves like hashmap.Map[string, string] except that
// erasing a key that is not stored is a caller error (ErrInvalidKey)
// instead of a plain false, and it adds Update for bulk upserts.
package dictionary

import (
	"iter"

	"github.com/yndnr/chainmap-go/pkg/hashmap"
)

// ErrInvalidKey is returned by Erase for a key that is not stored.
var ErrInvalidKey = hashmap.ErrInvalidKey

// Dictionary maps strings to strings.
//
// Keys are placed with MurmurHash3, so bucket layout is the same in every
// process for the same sequence of operations.
type Dictionary struct {
	*hashmap.Map[string, string]
}

func options(extra []hashmap.Option[string]) []hashmap.Option[string] {
	opts := []hashmap.Option[string]{
		hashmap.WithHasher(hashmap.Murmur3[string]()),
		hashmap.WithAbsentPolicy(hashmap.RejectAbsent[string]),
	}
	return append(opts, extra...)
}

// New creates an empty Dictionary. Options may override the capacity,
// hasher or observer; the absent-key policy can be overridden too, which
// changes what Erase reports.
func New(opts ...hashmap.Option[string]) *Dictionary {
	return &Dictionary{Map: hashmap.New[string, string](options(opts)...)}
}

// FromSlices creates a Dictionary from paired keys and values.
// See hashmap.FromSlices.
func FromSlices(keys, values []string, opts ...hashmap.Option[string]) (*Dictionary, error) {
	m, err := hashmap.FromSlices(keys, values, options(opts)...)
	if err != nil {
		return nil, err
	}
	return &Dictionary{Map: m}, nil
}

// Erase removes key. It returns ErrInvalidKey and leaves the Dictionary
// unchanged if key is not stored.
func (d *Dictionary) Erase(key string) error {
	_, err := d.Remove(key)
	return err
}

// Update upserts every pair produced by seq, overwriting existing values.
func (d *Dictionary) Update(seq iter.Seq2[string, string]) {
	for k, v := range seq {
		*d.Index(k) = v
	}
}

// UpdateRange upserts the pairs in [begin, end) of another map's cursor
// range. begin and end must come from the same map, which must not be d.
func (d *Dictionary) UpdateRange(begin, end hashmap.Cursor[string, string]) {
	for c := begin; !c.Equal(end); c.Next() {
		k, v := c.Pair()
		*d.Index(k) = v
	}
}

// UpdatePairs upserts the given pairs in order.
func (d *Dictionary) UpdatePairs(pairs ...hashmap.Pair[string, string]) {
	for _, p := range pairs {
		*d.Index(p.Key) = p.Value
	}
}

// Clone returns an independent copy of d.
func (d *Dictionary) Clone() *Dictionary {
	return &Dictionary{Map: d.Map.Clone()}
}

// Assign replaces the contents of d with a copy of other.
func (d *Dictionary) Assign(other *Dictionary) {
	d.Map.Assign(other.Map)
}

// Equal reports whether d and other hold the same pairs.
func (d *Dictionary) Equal(other *Dictionary) bool {
	return hashmap.Equal(d.Map, other.Map)
}
