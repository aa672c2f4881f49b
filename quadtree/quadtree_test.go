package quadtree

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spindex/spindex"
)

// validate walks the tree and checks the structural invariants: leaves
// hold no children, an inner node holds only entries that fit none of
// its quadrants, every entry fits its node's (epsilon-relaxed) region
// and every child has the derived quadrant geometry.
func validate[V any](t *testing.T, tr *tree[V]) {
	t.Helper()
	if tr.root == nil {
		require.Zero(t, tr.size)
		return
	}
	count := validateNode(t, tr.root)
	require.Equal(t, tr.size, count, "entry count mismatch")
}

func validateNode[V any](t *testing.T, n *node[V]) int {
	t.Helper()
	for _, e := range n.entries {
		require.True(t, fits(e.Box, n.center, n.radius),
			"entry %v outside node region center=%v r=%v", e.Box, n.center, n.radius)
	}
	if n.isLeaf() {
		return len(n.entries)
	}

	// a directory node holds only entries that fit no single quadrant
	for _, e := range n.entries {
		_, ok := n.fitsChild(e.Box)
		require.False(t, ok, "entry %v should have descended", e.Box)
	}
	require.NotEmpty(t, n.children, "directory node without children")
	count := len(n.entries)
	for idx, c := range n.children {
		require.Equal(t, n.radius/2, c.radius)
		require.Equal(t, n.childCenter(idx), c.center)
		count += validateNode(t, c)
	}
	return count
}

// validatePoints additionally checks the point-flavour invariant that
// directory nodes hold no entries at all.
func validatePoints[V any](t *testing.T, tr *tree[V]) {
	t.Helper()
	validate(t, tr)
	if tr.root == nil {
		return
	}
	var walk func(n *node[V])
	walk = func(n *node[V]) {
		if !n.isLeaf() {
			require.Empty(t, n.entries, "directory node with point entries")
			for _, c := range n.children {
				walk(c)
			}
		}
	}
	walk(tr.root)
}

func collect[V any](t *testing.T, it spindex.Iterator[V]) []spindex.Entry[V] {
	t.Helper()
	var out []spindex.Entry[V]
	for it.Next() {
		out = append(out, it.Entry())
	}
	return out
}

func TestInsertGetRemove(t *testing.T) {
	q := New[string](2, 0)
	require.Equal(t, 2, q.Dims())

	require.NoError(t, q.Insert(spindex.Point{2, 3}, "a"))
	require.NoError(t, q.Insert(spindex.Point{5, 4}, "b"))
	require.NoError(t, q.Insert(spindex.Point{-9, 6}, "c"))
	assert.Equal(t, 3, q.Len())
	validatePoints(t, &q.tree)

	v, ok := q.Get(spindex.Point{5, 4})
	require.True(t, ok)
	assert.Equal(t, "b", v)

	_, ok = q.Get(spindex.Point{5, 5})
	assert.False(t, ok)
	assert.True(t, q.Contains(spindex.Point{2, 3}, nil))

	v, ok = q.Remove(spindex.Point{2, 3}, nil)
	require.True(t, ok)
	assert.Equal(t, "a", v)
	assert.Equal(t, 2, q.Len())
	assert.False(t, q.Contains(spindex.Point{2, 3}, nil))
	validatePoints(t, &q.tree)

	_, ok = q.Remove(spindex.Point{2, 3}, nil)
	assert.False(t, ok)

	q.Clear()
	assert.Equal(t, 0, q.Len())
	assert.False(t, q.Contains(spindex.Point{5, 4}, nil))
}

func TestInsertErrors(t *testing.T) {
	q := New[int](2, 0)

	assert.ErrorIs(t, q.Insert(spindex.Point{1}, 0), spindex.ErrDimension)
	nan := 0.0
	nan /= nan
	assert.ErrorIs(t, q.Insert(spindex.Point{1, nan}, 0), spindex.ErrNaN)
	assert.Equal(t, 0, q.Len())
}

// Duplicate points are legal in the multimap flavour: each remove peels
// off one of them.
func TestDuplicatePoints(t *testing.T) {
	q := New[string](2, 0)
	for i := 0; i < 4; i++ {
		require.NoError(t, q.Insert(spindex.Point{2, 3}, "x"))
	}
	assert.Equal(t, 4, q.Len())
	validatePoints(t, &q.tree)

	it, err := q.Query(spindex.Point{2, 3}, spindex.Point{2, 3})
	require.NoError(t, err)
	assert.Len(t, collect(t, it), 4)

	for i := 3; i >= 0; i-- {
		_, ok := q.Remove(spindex.Point{2, 3}, nil)
		require.True(t, ok)
		assert.Equal(t, i, q.Len())
	}
}

// More duplicates than the leaf capacity: the leaf must overfill
// instead of splitting forever.
func TestDuplicatesBeyondLeafCapacity(t *testing.T) {
	q := New[int](2, 4)
	for i := 0; i < 40; i++ {
		require.NoError(t, q.Insert(spindex.Point{1, 1}, i))
	}
	assert.Equal(t, 40, q.Len())
	validatePoints(t, &q.tree)

	removed := map[int]bool{}
	for i := 0; i < 40; i++ {
		v, ok := q.Remove(spindex.Point{1, 1}, nil)
		require.True(t, ok)
		require.False(t, removed[v])
		removed[v] = true
	}
	assert.Equal(t, 0, q.Len())
}

func TestRemoveMatching(t *testing.T) {
	q := New[int](2, 0)
	for i := 0; i < 3; i++ {
		require.NoError(t, q.Insert(spindex.Point{7, 7}, i))
	}

	v, ok := q.Remove(spindex.Point{7, 7}, func(v int) bool { return v == 1 })
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = q.Remove(spindex.Point{7, 7}, func(v int) bool { return v == 1 })
	assert.False(t, ok)
	assert.Equal(t, 2, q.Len())
}

func TestRootGrowth(t *testing.T) {
	q := New[int](2, 0)
	require.NoError(t, q.Insert(spindex.Point{1, 1}, 1))
	// far outside the initial region in both directions
	require.NoError(t, q.Insert(spindex.Point{1000, -1000}, 2))
	require.NoError(t, q.Insert(spindex.Point{-40000, 7}, 3))
	validatePoints(t, &q.tree)

	for _, p := range []spindex.Point{{1, 1}, {1000, -1000}, {-40000, 7}} {
		assert.True(t, q.Contains(p, nil), "lost %v while growing", p)
	}
}

func TestWindowQueryBruteForce(t *testing.T) {
	rnd := rand.New(rand.NewSource(99))
	q := New[int](3, 0)

	points := make(spindex.Points, 2000)
	for i := range points {
		points[i] = spindex.Point{
			rnd.Float64()*200 - 100,
			rnd.Float64()*200 - 100,
			rnd.Float64()*200 - 100,
		}
		require.NoError(t, q.Insert(points[i], i))
	}
	validatePoints(t, &q.tree)

	for trial := 0; trial < 50; trial++ {
		min := spindex.Point{rnd.Float64()*200 - 100, rnd.Float64()*200 - 100, rnd.Float64()*200 - 100}
		max := min.Clone()
		for k := range max {
			max[k] += rnd.Float64() * 80
		}
		window := spindex.Box{Min: min, Max: max}

		var want []int
		for i, p := range points {
			if window.ContainsPoint(p) {
				want = append(want, i)
			}
		}

		it, err := q.Query(min, max)
		require.NoError(t, err)
		var got []int
		for it.Next() {
			got = append(got, it.Entry().Value)
		}

		sort.Ints(want)
		sort.Ints(got)
		require.Equal(t, want, got, "window %v", window)
	}
}

func TestWindowIteratorReset(t *testing.T) {
	q := New[int](2, 0)
	require.NoError(t, q.Insert(spindex.Point{0, 0}, 1))
	require.NoError(t, q.Insert(spindex.Point{50, 50}, 2))

	raw, err := q.Query(spindex.Point{-1, -1}, spindex.Point{1, 1})
	require.NoError(t, err)
	it := raw.(*WindowIterator[int])

	got := collect[int](t, it)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Value)

	require.NoError(t, it.Reset(spindex.Point{40, 40}, spindex.Point{60, 60}))
	got = collect[int](t, it)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Value)
}

// update(a, b) must be observably the same as remove(a) followed by
// insert(b), including when the move crosses node regions.
func TestUpdateEquivalence(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))

	q := New[int](2, 4)
	ref := New[int](2, 4)
	live := map[int]spindex.Point{}

	for i := 0; i < 500; i++ {
		p := spindex.Point{rnd.Float64() * 100, rnd.Float64() * 100}
		require.NoError(t, q.Insert(p, i))
		require.NoError(t, ref.Insert(p, i))
		live[i] = p
	}

	for i := 0; i < 250; i++ {
		old := live[i]
		new := spindex.Point{rnd.Float64() * 100, rnd.Float64() * 100}
		if rnd.Intn(4) == 0 {
			// small nudge, likely staying within the same leaf region
			new = spindex.Point{old[0] + 1e-9, old[1] + 1e-9}
		}

		match := func(id int) func(int) bool { return func(v int) bool { return v == id } }
		ok, err := q.Update(old, new, match(i))
		require.NoError(t, err)
		require.True(t, ok)

		_, ok2 := ref.Remove(old, match(i))
		require.True(t, ok2)
		require.NoError(t, ref.Insert(new, i))
		live[i] = new
	}
	validatePoints(t, &q.tree)
	require.Equal(t, ref.Len(), q.Len())

	for id, p := range live {
		require.True(t, q.Contains(p, func(v int) bool { return v == id }),
			"entry %d not at %v after update", id, p)
	}

	ok, err := q.Update(spindex.Point{-1, -1}, spindex.Point{1, 1}, nil)
	require.NoError(t, err)
	assert.False(t, ok, "update of a missing key must report false")
}

// Removing entries until a directory's children fit one leaf again must
// merge them back.
func TestMergeAfterRemove(t *testing.T) {
	q := New[int](2, 4)
	points := make(spindex.Points, 30)
	rnd := rand.New(rand.NewSource(11))
	for i := range points {
		points[i] = spindex.Point{rnd.Float64() * 64, rnd.Float64() * 64}
		require.NoError(t, q.Insert(points[i], i))
	}
	require.False(t, q.root.isLeaf(), "expected a split root for this many points")

	for i := range points {
		_, ok := q.Remove(points[i], nil)
		require.True(t, ok)
		validatePoints(t, &q.tree)
	}
	assert.Equal(t, 0, q.Len())
}

func TestTreeIterator(t *testing.T) {
	q := New[int](2, 3)
	seen := map[int]bool{}
	for i := 0; i < 25; i++ {
		require.NoError(t, q.Insert(spindex.Point{float64(i % 5), float64(i / 5)}, i))
	}

	it := q.Iterator()
	for it.Next() {
		v := it.Entry().Value
		require.False(t, seen[v], "value %d seen twice", v)
		seen[v] = true
	}
	assert.Len(t, seen, 25)
}

func TestCapabilities(t *testing.T) {
	q := New[int](2, 0)
	caps := q.Capabilities()
	assert.True(t, caps.WindowQuery)
	assert.True(t, caps.PointQuery)
	assert.True(t, caps.Update)
	assert.True(t, caps.KNN)
}

func BenchmarkInsert(b *testing.B) {
	rnd := rand.New(rand.NewSource(1))
	points := make(spindex.Points, b.N)
	for i := range points {
		points[i] = spindex.Point{rnd.Float64() * 1000, rnd.Float64() * 1000}
	}
	q := New[int](2, 0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q.Insert(points[i], i)
	}
}

func BenchmarkWindowQuery(b *testing.B) {
	rnd := rand.New(rand.NewSource(1))
	q := New[int](2, 0)
	for i := 0; i < 25000; i++ {
		q.Insert(spindex.Point{rnd.Float64() * 1000, rnd.Float64() * 1000}, i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x := rnd.Float64() * 900
		y := rnd.Float64() * 900
		it, _ := q.Query(spindex.Point{x, y}, spindex.Point{x + 100, y + 100})
		for it.Next() {
		}
	}
}
