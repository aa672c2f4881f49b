package rtree

import (
	"github.com/spindex/spindex"
	"github.com/spindex/spindex/minmaxheap"
)

// queueItem is one element of the best-first queue: an inner node
// ranked by the node distance function, or a leaf entry ranked by the
// entry distance function.
type queueItem[V any] struct {
	dist  float64
	node  *node[V]
	entry spindex.Entry[V]
}

// A RangedIterator is the generalised best-first nearest-neighbour
// iterator. It pops the closest element off a priority queue seeded
// with the root; nodes push their children, entries are emitted.
// Emitted distances are non-decreasing provided the node distance never
// overestimates the distance of any entry beneath the node; that
// monotonicity is the caller's contract, not checked here.
//
// The only mutation an iterator survives is its own Remove.
type RangedIterator[V any] struct {
	t         *Tree[V]
	center    spindex.Point
	nodeDist  spindex.Distance
	entryDist spindex.Distance
	window    *spindex.Box
	filter    func(spindex.Entry[V]) bool
	limit     int // 0 means unlimited, negative means no results
	emitted   int
	queue     *minmaxheap.Heap[queueItem[V]]
	current   spindex.DistEntry[V]
	live      bool
}

// KNearest returns an iterator over the k entries closest to center in
// non-decreasing distance order. A nil metric means euclidean distance
// to box edges.
func (t *Tree[V]) KNearest(center spindex.Point, k int, metric spindex.Distance) (spindex.DistIterator[V], error) {
	if err := center.Validate(t.dims); err != nil {
		return nil, err
	}
	if metric == nil {
		metric = spindex.EdgeDistance{}
	}
	if k <= 0 {
		k = -1 // no neighbours asked for: the iterator yields nothing
	}
	it := t.newRangedIterator(center, metric, metric, nil, nil, k)
	return it, nil
}

// RangedNearest returns a best-first iterator over the entries
// intersecting the window [min, max], ranked by entryDist; subtrees are
// ranked (and pruned against the window) by nodeDist over their MBRs.
func (t *Tree[V]) RangedNearest(center spindex.Point, nodeDist, entryDist spindex.Distance, min, max spindex.Point) (*RangedIterator[V], error) {
	if err := center.Validate(t.dims); err != nil {
		return nil, err
	}
	window, err := spindex.NewBox(min, max, t.dims)
	if err != nil {
		return nil, err
	}
	return t.newRangedIterator(center, nodeDist, entryDist, &window, nil, 0), nil
}

// RangedNearestFunc is RangedNearest with a caller predicate instead of
// a window; a nil filter admits every entry.
func (t *Tree[V]) RangedNearestFunc(center spindex.Point, nodeDist, entryDist spindex.Distance, filter func(spindex.Entry[V]) bool) (*RangedIterator[V], error) {
	if err := center.Validate(t.dims); err != nil {
		return nil, err
	}
	return t.newRangedIterator(center, nodeDist, entryDist, nil, filter, 0), nil
}

func (t *Tree[V]) newRangedIterator(center spindex.Point, nodeDist, entryDist spindex.Distance, window *spindex.Box, filter func(spindex.Entry[V]) bool, limit int) *RangedIterator[V] {
	if nodeDist == nil {
		nodeDist = spindex.EdgeDistance{}
	}
	if entryDist == nil {
		entryDist = spindex.EdgeDistance{}
	}
	it := &RangedIterator[V]{
		t:         t,
		nodeDist:  nodeDist,
		entryDist: entryDist,
		window:    window,
		filter:    filter,
		limit:     limit,
		queue:     minmaxheap.New(func(a, b queueItem[V]) bool { return a.dist < b.dist }),
	}
	it.start(center)
	return it
}

func (it *RangedIterator[V]) start(center spindex.Point) {
	it.center = center
	it.emitted = 0
	it.live = false
	it.queue.Clear()
	if it.t.size > 0 {
		root := it.t.root
		it.queue.Push(queueItem[V]{
			dist: it.nodeDist.PointToBox(center, root.mbr()),
			node: root,
		})
	}
}

// Reset re-runs the query from a new center with the same distance
// functions, filter and result limit.
func (it *RangedIterator[V]) Reset(center spindex.Point) error {
	if err := center.Validate(it.t.dims); err != nil {
		return err
	}
	it.start(center)
	return nil
}

// Next advances to the next entry in ascending distance order.
func (it *RangedIterator[V]) Next() bool {
	it.live = false
	if it.limit != 0 && it.emitted >= it.limit {
		return false
	}

	for {
		item, ok := it.queue.PopMin()
		if !ok {
			return false
		}

		if item.node == nil {
			it.current = spindex.DistEntry[V]{Entry: item.entry, Dist: item.dist}
			it.emitted++
			it.live = true
			return true
		}

		n := item.node
		if n.isLeaf() {
			for i := range n.entries {
				e := spindex.Entry[V]{Box: n.entries[i].box, Value: n.entries[i].value}
				if it.window != nil && !e.Box.Intersects(*it.window) {
					continue
				}
				if it.filter != nil && !it.filter(e) {
					continue
				}
				it.queue.Push(queueItem[V]{
					dist:  it.entryDist.PointToBox(it.center, e.Box),
					entry: e,
				})
			}
			continue
		}
		for i := range n.entries {
			if it.window != nil && !n.entries[i].box.Intersects(*it.window) {
				continue
			}
			it.queue.Push(queueItem[V]{
				dist: it.nodeDist.PointToBox(it.center, n.entries[i].box),
				node: n.entries[i].child,
			})
		}
	}
}

// Entry returns the current entry.
func (it *RangedIterator[V]) Entry() spindex.Entry[V] {
	return it.current.Entry
}

// Dist returns the distance of the current entry under the entry
// distance function.
func (it *RangedIterator[V]) Dist() float64 {
	return it.current.Dist
}

// Remove deletes the last-emitted entry from the tree. Rebalancing is
// deferred: ancestors tighten their MBRs and emptied nodes are
// detached, but no other entry moves, so the iterator's queue keeps
// referencing exactly the live tree and iteration carries on without
// skips or repeats. A node left under the minimum fill stays so until a
// regular Remove deletes an entry beneath it. With several entries under
// an equal key an
// arbitrary one of them is removed. Returns false if Next has not
// emitted an entry since the last Remove.
func (it *RangedIterator[V]) Remove() bool {
	if !it.live {
		return false
	}
	it.live = false
	key := it.current.Box
	_, ok := it.t.removeStable(key, func(e *entry[V]) bool {
		return e.box.Equal(key)
	})
	return ok
}
