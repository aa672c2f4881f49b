package rtree

import (
	"github.com/spindex/spindex"
)

// A WindowIterator lazily produces the entries whose box intersects an
// axis-aligned window.
type WindowIterator[V any] struct {
	t       *Tree[V]
	window  spindex.Box
	stack   []*node[V]
	leaf    *node[V]
	pos     int
	current spindex.Entry[V]
}

// Query returns an iterator over all entries whose box intersects the
// window [min, max]. Point entries intersect iff they are enclosed.
func (t *Tree[V]) Query(min, max spindex.Point) (spindex.Iterator[V], error) {
	window, err := spindex.NewBox(min, max, t.dims)
	if err != nil {
		return nil, err
	}
	it := &WindowIterator[V]{t: t}
	it.reset(window)
	return it, nil
}

func (it *WindowIterator[V]) reset(window spindex.Box) {
	it.window = window
	it.stack = it.stack[:0]
	it.leaf = nil
	it.pos = 0
	it.stack = append(it.stack, it.t.root)
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
				e := &it.leaf.entries[it.pos]
				it.pos++
				if e.box.Intersects(it.window) {
					it.current = spindex.Entry[V]{Box: e.box, Value: e.value}
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

		if n.isLeaf() {
			it.leaf = n
			it.pos = 0
			continue
		}
		for i := range n.entries {
			if n.entries[i].box.Intersects(it.window) {
				it.stack = append(it.stack, n.entries[i].child)
			}
		}
	}
}

// Entry returns the current entry.
func (it *WindowIterator[V]) Entry() spindex.Entry[V] {
	return it.current
}

// A TreeIterator walks all entries of the tree in no particular order.
type TreeIterator[V any] struct {
	t       *Tree[V]
	stack   []*node[V]
	leaf    *node[V]
	pos     int
	current spindex.Entry[V]
}

// Iterator returns an iterator over all entries, in no particular order.
func (t *Tree[V]) Iterator() spindex.Iterator[V] {
	it := &TreeIterator[V]{t: t}
	it.Reset()
	return it
}

// Reset rewinds the iterator to the full tree.
func (it *TreeIterator[V]) Reset() {
	it.stack = it.stack[:0]
	it.leaf = nil
	it.pos = 0
	it.stack = append(it.stack, it.t.root)
}

// Next advances to the next entry.
func (it *TreeIterator[V]) Next() bool {
	for {
		if it.leaf != nil && it.pos < len(it.leaf.entries) {
			e := &it.leaf.entries[it.pos]
			it.pos++
			it.current = spindex.Entry[V]{Box: e.box, Value: e.value}
			return true
		}
		it.leaf = nil

		if len(it.stack) == 0 {
			return false
		}
		n := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]

		if n.isLeaf() {
			it.leaf = n
			it.pos = 0
			continue
		}
		for i := range n.entries {
			it.stack = append(it.stack, n.entries[i].child)
		}
	}
}

// Entry returns the current entry.
func (it *TreeIterator[V]) Entry() spindex.Entry[V] {
	return it.current
}
