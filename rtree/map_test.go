package rtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spindex/spindex"
)

func TestPointMapReplace(t *testing.T) {
	m := NewPointMap[string](2)

	old, had, err := m.Insert(spindex.Point{1, 2}, "first")
	require.NoError(t, err)
	assert.False(t, had)
	assert.Empty(t, old)

	old, had, err = m.Insert(spindex.Point{1, 2}, "second")
	require.NoError(t, err)
	assert.True(t, had)
	assert.Equal(t, "first", old)
	assert.Equal(t, 1, m.Len())

	ok, err := m.Update(spindex.Point{1, 2}, spindex.Point{5, 5})
	require.NoError(t, err)
	require.True(t, ok)
	v, found := m.Get(spindex.Point{5, 5})
	require.True(t, found)
	assert.Equal(t, "second", v)

	ok, err = m.Update(spindex.Point{0, 0}, spindex.Point{1, 1})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBoxMapReplace(t *testing.T) {
	m := NewBoxMap[int](2)

	_, had, err := m.Insert(spindex.Point{0, 0}, spindex.Point{2, 2}, 1)
	require.NoError(t, err)
	assert.False(t, had)

	old, had, err := m.Insert(spindex.Point{0, 0}, spindex.Point{2, 2}, 2)
	require.NoError(t, err)
	assert.True(t, had)
	assert.Equal(t, 1, old)
	assert.Equal(t, 1, m.Len())

	v, ok := m.Remove(spindex.Point{0, 0}, spindex.Point{2, 2})
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 0, m.Len())
}

func TestPointTreeFacade(t *testing.T) {
	p := NewPointTree[int](2)
	require.NoError(t, p.Insert(spindex.Point{3, 3}, 7))
	require.NoError(t, p.Insert(spindex.Point{3, 3}, 8))
	assert.Equal(t, 2, p.Len())

	assert.True(t, p.Contains(spindex.Point{3, 3}, func(v int) bool { return v == 8 }))

	caps := p.Capabilities()
	assert.True(t, caps.WindowQuery && caps.PointQuery && caps.Update && caps.KNN)

	// ranged-NN is reachable through the underlying box tree
	it, err := p.Tree().RangedNearestFunc(spindex.Point{0, 0},
		spindex.EdgeDistance{}, spindex.EdgeDistance{}, nil)
	require.NoError(t, err)
	assert.True(t, it.Next())
}
