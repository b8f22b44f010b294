package hashmap

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorEmpty(t *testing.T) {
	m := New[string, int]()
	begin := m.Begin()
	assert.True(t, begin.Done())
	assert.True(t, begin.Equal(m.End()))
}

func TestCursorOrder(t *testing.T) {
	m := New[int, string](WithHasher(identity()))
	m.Insert(3, "c")
	m.Insert(1, "a")
	m.Insert(17, "q")
	m.Insert(2, "b")

	var keys []int
	for c := m.Begin(); !c.Done(); c.Next() {
		keys = append(keys, c.Key())
	}
	assert.Equal(t, []int{1, 17, 2, 3}, keys)
}

func TestCursorCompleteness(t *testing.T) {
	m := New[string, int]()
	want := make(map[string]int)
	for i := 0; i < 500; i++ {
		k := fmt.Sprintf("key-%d", i)
		m.Insert(k, i)
		want[k] = i
	}

	got := make(map[string]int)
	steps := 0
	for c := m.Begin(); !c.Equal(m.End()); c.Next() {
		k, v := c.Pair()
		_, dup := got[k]
		require.False(t, dup, "key %q visited twice", k)
		got[k] = v
		steps++
	}
	assert.Equal(t, 500, steps)
	assert.Equal(t, want, got)
}

func TestCursorTerminalEquality(t *testing.T) {
	m := New[int, int]()
	m.Insert(1, 1)

	c := m.Begin()
	require.False(t, c.Done())
	assert.False(t, c.Equal(m.End()))

	c.Next()
	assert.True(t, c.Done())
	assert.True(t, c.Equal(m.End()))
	assert.True(t, m.End().Equal(c))

	// Advancing a terminal cursor keeps it terminal.
	c.Next()
	assert.True(t, c.Equal(m.End()))
}

func TestCursorEqualityAcrossMaps(t *testing.T) {
	a := New[int, int]()
	b := New[int, int]()
	assert.False(t, a.End().Equal(b.End()))

	a.Insert(1, 1)
	assert.True(t, a.Begin().Equal(a.Begin()))

	c := a.Begin()
	d := c
	d.Next()
	assert.False(t, c.Equal(d))
}

func TestCursorDereferenceEnd(t *testing.T) {
	m := New[int, int]()
	end := m.End()
	assert.Panics(t, func() { end.Pair() })
	assert.Panics(t, func() { end.Key() })
	assert.Panics(t, func() { end.Value() })

	var zero Cursor[int, int]
	assert.True(t, zero.Done())
	assert.Panics(t, func() { zero.Next() })
}

func TestCursorInvalidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *Map[int, int])
	}{
		{"insert", func(m *Map[int, int]) { m.Insert(100, 100) }},
		{"erase", func(m *Map[int, int]) { m.Erase(1) }},
		{"clear", func(m *Map[int, int]) { m.Clear() }},
		{"index new key", func(m *Map[int, int]) { m.Index(200) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New[int, int]()
			m.Insert(1, 1)
			m.Insert(2, 2)
			c := m.Begin()

			tt.mutate(m)
			assert.Panics(t, func() { c.Pair() })
			assert.Panics(t, func() { c.Next() })
			assert.Panics(t, func() { c.Equal(m.End()) })
			assert.Panics(t, func() { m.End().Equal(c) })
		})
	}
}

func TestCursorSurvivesReads(t *testing.T) {
	m := New[int, int]()
	m.Insert(1, 1)
	c := m.Begin()

	m.Contains(1)
	m.Peek(5)
	m.Erase(42)
	m.Insert(1, 9)
	*m.Index(1) = 3

	assert.NotPanics(t, func() {
		_, v := c.Pair()
		assert.Equal(t, 3, v)
	})
}

func TestRangeEarlyStop(t *testing.T) {
	m := New[int, int]()
	for i := 0; i < 100; i++ {
		m.Insert(i, i)
	}

	count := 0
	m.Range(func(key, value int) bool {
		count++
		return count < 10
	})
	assert.Equal(t, 10, count)
}

func TestKeysValuesItems(t *testing.T) {
	m := New[string, int]()
	m.Insert("x", 10)
	m.Insert("y", 20)
	m.Insert("z", 30)

	var keys []string
	for k := range m.Keys() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	assert.Equal(t, []string{"x", "y", "z"}, keys)

	var values []int
	for v := range m.Values() {
		values = append(values, v)
	}
	sort.Ints(values)
	assert.Equal(t, []int{10, 20, 30}, values)

	items := m.Items()
	require.Len(t, items, 3)
	got := make(map[string]int)
	for _, p := range items {
		got[p.Key] = p.Value
	}
	assert.Equal(t, map[string]int{"x": 10, "y": 20, "z": 30}, got)
}

func TestAllMatchesCursor(t *testing.T) {
	m := New[int, int]()
	for i := 0; i < 40; i++ {
		m.Insert(i*7, i)
	}

	var fromCursor, fromAll []int
	for c := m.Begin(); !c.Done(); c.Next() {
		fromCursor = append(fromCursor, c.Key())
	}
	for k := range m.All() {
		fromAll = append(fromAll, k)
	}
	assert.Equal(t, fromCursor, fromAll)
}
