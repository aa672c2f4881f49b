package quadtree

import (
	"github.com/spindex/spindex"
	"github.com/spindex/spindex/minmaxheap"
)

// overlaps reports whether the window touches the region
// (center, radius), inflated by the same margin the fits checks use, so
// that entries resting on a rounding-blurred quadrant boundary are
// never pruned away.
func overlaps(window spindex.Box, center spindex.Point, radius float64) bool {
	r := radius * epsMul
	for k, c := range center {
		if window.Min[k] > c+r || window.Max[k] < c-r {
			return false
		}
	}
	return true
}

// A WindowIterator lazily produces the entries whose key intersects an
// axis-aligned window. For point entries intersecting the window is the
// same as being enclosed by it.
type WindowIterator[V any] struct {
	t       *tree[V]
	window  spindex.Box
	stack   []*node[V]
	leaf    *node[V]
	pos     int
	current spindex.Entry[V]
}

func newWindowIterator[V any](t *tree[V], window spindex.Box) *WindowIterator[V] {
	it := &WindowIterator[V]{t: t}
	it.reset(window)
	return it
}

func (it *WindowIterator[V]) reset(window spindex.Box) {
	it.window = window
	it.stack = it.stack[:0]
	it.leaf = nil
	it.pos = 0
	if it.t.root != nil {
		it.stack = append(it.stack, it.t.root)
	}
}

// Reset re-runs the query with a new window, reusing the iterator.
func (it *WindowIterator[V]) Reset(min, max spindex.Point) error {
	window, err := spindex.NewBox(min, max, it.t.dims)
	if err != nil {
		return err
	}
	it.reset(window)
	return nil
}

// Next advances to the next matching entry.
func (it *WindowIterator[V]) Next() bool {
	for {
		if it.leaf != nil {
			for it.pos < len(it.leaf.entries) {
				e := it.leaf.entries[it.pos]
				it.pos++
				if e.Box.Intersects(it.window) {
					it.current = e
					return true
				}
			}
			it.leaf = nil
		}

		if len(it.stack) == 0 {
			return false
		}
		n := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]

		if !overlaps(it.window, n.center, n.radius) {
			continue
		}
		for _, child := range n.children {
			it.stack = append(it.stack, child)
		}
		// leaf entries and directory-resident straddlers alike
		it.leaf = n
		it.pos = 0
	}
}

// Entry returns the current entry.
func (it *WindowIterator[V]) Entry() spindex.Entry[V] {
	return it.current
}

// A TreeIterator walks all entries of the tree in no particular order.
type TreeIterator[V any] struct {
	t       *tree[V]
	stack   []*node[V]
	leaf    *node[V]
	pos     int
	current spindex.Entry[V]
}

func newTreeIterator[V any](t *tree[V]) *TreeIterator[V] {
	it := &TreeIterator[V]{t: t}
	it.Reset()
	return it
}

// Reset rewinds the iterator to the full tree.
func (it *TreeIterator[V]) Reset() {
	it.stack = it.stack[:0]
	it.leaf = nil
	it.pos = 0
	if it.t.root != nil {
		it.stack = append(it.stack, it.t.root)
	}
}

// Next advances to the next entry.
func (it *TreeIterator[V]) Next() bool {
	for {
		if it.leaf != nil && it.pos < len(it.leaf.entries) {
			it.current = it.leaf.entries[it.pos]
			it.pos++
			return true
		}
		it.leaf = nil

		if len(it.stack) == 0 {
			return false
		}
		n := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]

		for _, child := range n.children {
			it.stack = append(it.stack, child)
		}
		it.leaf = n
		it.pos = 0
	}
}

// Entry returns the current entry.
func (it *TreeIterator[V]) Entry() spindex.Entry[V] {
	return it.current
}

// navItem ranks a node by the distance from the query point to its box.
type navItem[V any] struct {
	n    *node[V]
	dist float64
}

// A NearestIterator produces the k entries closest to a query point in
// non-decreasing distance order. The search keeps a bounded min-max
// heap of the best candidates found so far, visits nodes best-first by
// distance to their box, and prunes any subtree farther away than the
// current k-th candidate.
type NearestIterator[V any] struct {
	t       *tree[V]
	metric  spindex.Distance
	results []spindex.DistEntry[V]
	pos     int
	current spindex.DistEntry[V]
}

func newNearestIterator[V any](t *tree[V], center spindex.Point, k int, metric spindex.Distance) *NearestIterator[V] {
	if metric == nil {
		metric = spindex.EdgeDistance{}
	}
	it := &NearestIterator[V]{t: t, metric: metric}
	it.search(center, k)
	return it
}

// Reset re-runs the search for a new center and k.
func (it *NearestIterator[V]) Reset(center spindex.Point, k int) error {
	if err := center.Validate(it.t.dims); err != nil {
		return err
	}
	it.search(center, k)
	return nil
}

func (it *NearestIterator[V]) search(center spindex.Point, k int) {
	it.results = it.results[:0]
	it.pos = 0
	it.current = spindex.DistEntry[V]{}
	if it.t.root == nil || k <= 0 {
		return
	}

	nav := minmaxheap.New(func(a, b navItem[V]) bool { return a.dist < b.dist })
	cand := minmaxheap.NewWithCapacity(func(a, b spindex.DistEntry[V]) bool { return a.Dist < b.Dist }, k+1)

	nav.Push(navItem[V]{n: it.t.root, dist: it.metric.PointToBox(center, it.t.root.box())})

	for {
		item, ok := nav.PopMin()
		if !ok {
			break
		}
		if cand.Len() == k {
			if worst, _ := cand.PeekMax(); item.dist > worst.Dist {
				break // every remaining node is farther out
			}
		}

		for _, e := range item.n.entries {
			d := it.metric.PointToBox(center, e.Box)
			if cand.Len() == k {
				worst, _ := cand.PeekMax()
				if d >= worst.Dist {
					continue
				}
				cand.PopMax()
			}
			cand.Push(spindex.DistEntry[V]{Entry: e, Dist: d})
		}

		for _, child := range item.n.children {
			d := it.metric.PointToBox(center, child.box())
			if cand.Len() == k {
				if worst, _ := cand.PeekMax(); d > worst.Dist {
					continue
				}
			}
			nav.Push(navItem[V]{n: child, dist: d})
		}
	}

	for {
		best, ok := cand.PopMin()
		if !ok {
			break
		}
		it.results = append(it.results, best)
	}
}

// Next advances to the next result.
func (it *NearestIterator[V]) Next() bool {
	if it.pos >= len(it.results) {
		return false
	}
	it.current = it.results[it.pos]
	it.pos++
	return true
}

// Entry returns the current entry.
func (it *NearestIterator[V]) Entry() spindex.Entry[V] {
	return it.current.Entry
}

// Dist returns the distance of the current entry from the query point.
func (it *NearestIterator[V]) Dist() float64 {
	return it.current.Dist
}
