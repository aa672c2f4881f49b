package spindex_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spindex/spindex"
	"github.com/spindex/spindex/quadtree"
	"github.com/spindex/spindex/rtree"
)

// Both index families plug into the same façade contracts; a caller
// can swap one for the other without touching query code.
func TestPointMultimapContract(t *testing.T) {
	impls := map[string]spindex.PointMultimap[int]{
		"quadtree": quadtree.New[int](2, 0),
		"rtree":    rtree.NewPointTree[int](2),
	}

	for name, m := range impls {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, 2, m.Dims())

			require.NoError(t, m.Insert(spindex.Point{1, 1}, 1))
			require.NoError(t, m.Insert(spindex.Point{2, 2}, 2))
			require.NoError(t, m.Insert(spindex.Point{8, 8}, 3))
			assert.Equal(t, 3, m.Len())

			v, ok := m.Get(spindex.Point{2, 2})
			require.True(t, ok)
			assert.Equal(t, 2, v)

			it, err := m.Query(spindex.Point{0, 0}, spindex.Point{5, 5})
			require.NoError(t, err)
			var got []int
			for it.Next() {
				got = append(got, it.Entry().Value)
			}
			sort.Ints(got)
			assert.Equal(t, []int{1, 2}, got)

			nn, err := m.KNearest(spindex.Point{7, 7}, 1, nil)
			require.NoError(t, err)
			require.True(t, nn.Next())
			assert.Equal(t, 3, nn.Entry().Value)

			ok, err = m.Update(spindex.Point{1, 1}, spindex.Point{9, 9}, nil)
			require.NoError(t, err)
			require.True(t, ok)
			assert.True(t, m.Contains(spindex.Point{9, 9}, nil))

			caps := m.Capabilities()
			assert.True(t, caps.WindowQuery)
			assert.True(t, caps.PointQuery)
			assert.True(t, caps.Update)
			assert.True(t, caps.KNN)

			m.Clear()
			assert.Equal(t, 0, m.Len())
		})
	}
}

func TestBoxMultimapContract(t *testing.T) {
	impls := map[string]spindex.BoxMultimap[string]{
		"quadtree": quadtree.NewBox[string](2, 0),
		"rtree":    rtree.New[string](2),
	}

	for name, m := range impls {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, m.Insert(spindex.Point{0, 0}, spindex.Point{10, 10}, "a"))
			require.NoError(t, m.Insert(spindex.Point{20, 20}, spindex.Point{30, 30}, "b"))

			it, err := m.Query(spindex.Point{5, 5}, spindex.Point{25, 25})
			require.NoError(t, err)
			var got []string
			for it.Next() {
				got = append(got, it.Entry().Value)
			}
			sort.Strings(got)
			assert.Equal(t, []string{"a", "b"}, got)

			_, err = m.Query(spindex.Point{5, 5}, spindex.Point{0, 0})
			assert.ErrorIs(t, err, spindex.ErrInvalidBox)

			v, ok := m.Remove(spindex.Point{0, 0}, spindex.Point{10, 10}, nil)
			require.True(t, ok)
			assert.Equal(t, "a", v)
			assert.Equal(t, 1, m.Len())
		})
	}
}

func TestUniqueMapContract(t *testing.T) {
	impls := map[string]spindex.PointMap[int]{
		"quadtree": quadtree.NewPointMap[int](2, 0),
		"rtree":    rtree.NewPointMap[int](2),
	}

	for name, m := range impls {
		t.Run(name, func(t *testing.T) {
			_, had, err := m.Insert(spindex.Point{4, 4}, 1)
			require.NoError(t, err)
			assert.False(t, had)

			old, had, err := m.Insert(spindex.Point{4, 4}, 2)
			require.NoError(t, err)
			assert.True(t, had)
			assert.Equal(t, 1, old)
			assert.Equal(t, 1, m.Len())
		})
	}
}
