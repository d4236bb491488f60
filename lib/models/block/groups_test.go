package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupsAndRegions(t *testing.T) {
	blocks := []ListBlock{
		item("a00", 0, Bulleted, "foo"),
		item("a00", 0, Bulleted, "foo 2"),
		item("a01", 1, Todo, "bar"),
		{Content: para("plain")},
		item("a02", 0, Numbered, "baz"),
	}

	assert.Equal(t, []Span{{0, 2}, {2, 3}, {4, 5}}, Groups(blocks))
	assert.Equal(t, []Region{
		{Span: Span{0, 3}, List: true},
		{Span: Span{3, 4}},
		{Span: Span{4, 5}, List: true},
	}, Regions(blocks))

	g, ok := GroupOf(blocks, 1)
	assert.True(t, ok)
	assert.Equal(t, Span{0, 2}, g)

	_, ok = GroupOf(blocks, 3)
	assert.False(t, ok)

	g, ok = FindGroup(blocks, "a01")
	assert.True(t, ok)
	assert.Equal(t, 1, g.Len())
	assert.True(t, g.Contains(2))

	_, ok = FindGroup(blocks, "missing")
	assert.False(t, ok)
}
