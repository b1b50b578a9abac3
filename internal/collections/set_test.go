package collections_test

import (
	"testing"

	"bennypowers.dev/cssom/internal/collections"
	"github.com/stretchr/testify/assert"
)

func TestNewSet(t *testing.T) {
	empty := collections.NewSet[string]()
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	s := collections.NewSet("--a", "--b", "--a")
	assert.Len(t, s, 2, "duplicates collapse")
	assert.True(t, s.Has("--a"))
	assert.True(t, s.Has("--b"))
	assert.False(t, s.Has("--c"))
}

func TestSetAdd(t *testing.T) {
	s := collections.NewSet[int]()
	s.Add(1)
	s.Add(2, 3, 1)
	assert.ElementsMatch(t, []int{1, 2, 3}, s.Members())

	s.Add()
	assert.Len(t, s, 3)
}

func TestSetUnion(t *testing.T) {
	a := collections.NewSet(1, 2)
	b := collections.NewSet(2, 3)

	u := a.Union(b, collections.NewSet(4))
	assert.ElementsMatch(t, []int{1, 2, 3, 4}, u.Members())
	assert.Len(t, a, 2, "the receiver is not modified")

	alone := a.Union()
	alone.Add(9)
	assert.False(t, a.Has(9), "union returns a copy")
}

func TestSetString(t *testing.T) {
	assert.Equal(t, "[]", collections.NewSet[string]().String())
	assert.Equal(t, "[x]", collections.NewSet("x").String())
}

func TestSorted(t *testing.T) {
	s := collections.NewSet("--c", "--a", "--b")
	assert.Equal(t, []string{"--a", "--b", "--c"}, collections.Sorted(s))
	assert.Empty(t, collections.Sorted(collections.NewSet[string]()))
}
