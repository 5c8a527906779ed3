package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedMapPreservesInsertionOrder(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("c", 1)
	m.Set("a", 2)
	m.Set("b", 3)

	assert.Equal(t, []string{"c", "a", "b"}, m.Keys())
	assert.Equal(t, 3, m.Len())
}

func TestOrderedMapSetExistingKeepsPosition(t *testing.T) {
	m := NewOrderedMap[string]()
	m.Set("a", "1")
	m.Set("b", "2")
	m.Set("a", "updated")

	assert.Equal(t, []string{"a", "b"}, m.Keys())
	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "updated", v)
}

func TestOrderedMapDeleteThenSetMovesToEnd(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)

	assert.True(t, m.Delete("a"))
	m.Set("a", 4)

	assert.Equal(t, []string{"b", "c", "a"}, m.Keys())
}

func TestOrderedMapDeleteMissing(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("a", 1)

	assert.False(t, m.Delete("missing"))
	assert.Equal(t, []string{"a"}, m.Keys())
}

func TestOrderedMapForEachStopsEarly(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)

	var visited []string
	m.ForEach(func(key string, _ int) bool {
		visited = append(visited, key)
		return key != "b"
	})
	assert.Equal(t, []string{"a", "b"}, visited)
}

func TestOrderedMapRetain(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)

	m.retain(func(_ string, value int) bool { return value != 2 })

	assert.Equal(t, []string{"a", "c"}, m.Keys())
	assert.False(t, m.Has("b"))
}

func TestOrderedMapNilSafety(t *testing.T) {
	var m *OrderedMap[int]
	assert.Equal(t, 0, m.Len())
	assert.False(t, m.Has("a"))
	assert.Nil(t, m.Keys())
	_, ok := m.Get("a")
	assert.False(t, ok)
}
