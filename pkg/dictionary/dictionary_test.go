package dictionary

import (
	"fmt"
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yndnr/chainmap-go/pkg/hashmap"
)

func TestNew(t *testing.T) {
	d := New()
	assert.True(t, d.Empty())
	assert.Equal(t, hashmap.DefaultCapacity, d.Capacity())
}

func TestEraseAbsent(t *testing.T) {
	d := New()
	err := d.Erase("x")
	assert.ErrorIs(t, err, ErrInvalidKey)
	assert.ErrorIs(t, err, hashmap.ErrInvalidKey)
	assert.Equal(t, 0, d.Size())
	assert.Equal(t, hashmap.DefaultCapacity, d.Capacity())
}

func TestErasePresent(t *testing.T) {
	d, err := FromSlices([]string{"a", "b", "c"}, []string{"1", "2", "3"})
	require.NoError(t, err)

	require.NoError(t, d.Erase("b"))
	assert.Equal(t, 2, d.Size())
	assert.False(t, d.Contains("b"))

	_, err = d.At("b")
	assert.ErrorIs(t, err, hashmap.ErrKeyNotFound)

	err = d.Erase("b")
	assert.ErrorIs(t, err, ErrInvalidKey)
	assert.Equal(t, 2, d.Size())
}

func TestUpdate(t *testing.T) {
	d := New()
	assert.True(t, d.Insert("x", "old"))

	d.Update(maps.All(map[string]string{"x": "1", "y": "2"}))
	assert.Equal(t, 2, d.Size())
	assert.Equal(t, "1", d.Peek("x"))
	assert.Equal(t, "2", d.Peek("y"))

	// Insert alone would have kept the old value.
	assert.False(t, d.Insert("x", "other"))
	assert.Equal(t, "1", d.Peek("x"))
}

func TestUpdatePairs(t *testing.T) {
	d := New()
	d.UpdatePairs(
		hashmap.Pair[string, string]{Key: "x", Value: "1"},
		hashmap.Pair[string, string]{Key: "y", Value: "2"},
		hashmap.Pair[string, string]{Key: "x", Value: "3"},
	)
	assert.Equal(t, 2, d.Size())
	assert.Equal(t, "3", d.Peek("x"))
	assert.Equal(t, "2", d.Peek("y"))
}

func TestUpdateRange(t *testing.T) {
	src := hashmap.New[string, string]()
	for i := 0; i < 40; i++ {
		src.Insert(fmt.Sprintf("k%d", i), fmt.Sprint(i))
	}

	d := New()
	d.Insert("k0", "stale")
	d.UpdateRange(src.Begin(), src.End())

	assert.Equal(t, 40, d.Size())
	for k, v := range src.All() {
		assert.Equal(t, v, d.Peek(k), k)
	}
}

func TestUpdateRangePartial(t *testing.T) {
	src := hashmap.New[string, string]()
	src.Insert("a", "1")
	src.Insert("b", "2")
	src.Insert("c", "3")

	begin := src.Begin()
	end := begin
	end.Next()

	d := New()
	d.UpdateRange(begin, end)
	require.Equal(t, 1, d.Size())
	assert.Equal(t, begin.Value(), d.Peek(begin.Key()))

	d.UpdateRange(src.End(), src.End())
	assert.Equal(t, 1, d.Size())
}

func TestFromSlicesLengthMismatch(t *testing.T) {
	d, err := FromSlices([]string{"a"}, nil)
	assert.Nil(t, d)
	assert.ErrorIs(t, err, hashmap.ErrLengthMismatch)
}

func TestInheritedOperations(t *testing.T) {
	d := New()
	for i := 0; i < 13; i++ {
		d.Insert(fmt.Sprintf("key%02d", i), fmt.Sprint(i))
	}
	assert.Equal(t, 32, d.Capacity())

	idx, err := d.BucketIndex("key03")
	require.NoError(t, err)
	want := int(hashmap.Murmur3[string]().Hash("key03") & uint64(d.Capacity()-1))
	assert.Equal(t, want, idx)

	*d.Index("new") = "v"
	assert.Equal(t, "v", d.Peek("new"))
	assert.Equal(t, "", d.Peek("absent"))
	assert.False(t, d.Contains("absent"))

	d.Clear()
	assert.True(t, d.Empty())
	assert.Equal(t, 32, d.Capacity())
}

func TestCloneAndEqual(t *testing.T) {
	a, err := FromSlices([]string{"a", "b"}, []string{"1", "2"})
	require.NoError(t, err)
	b, err := FromSlices([]string{"b", "a"}, []string{"2", "1"})
	require.NoError(t, err)
	assert.True(t, a.Equal(b))

	c := a.Clone()
	require.NoError(t, c.Erase("a"))
	assert.True(t, a.Contains("a"))
	assert.False(t, a.Equal(c))

	// The clone keeps the strict erase policy.
	assert.ErrorIs(t, c.Erase("a"), ErrInvalidKey)

	a.Assign(c)
	assert.True(t, a.Equal(c))
}

func TestPolicyOverride(t *testing.T) {
	d := New(hashmap.WithAbsentPolicy(hashmap.IgnoreAbsent[string]))
	assert.NoError(t, d.Erase("missing"))
}
