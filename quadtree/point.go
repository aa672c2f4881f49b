package quadtree

import (
	"github.com/spindex/spindex"
)

// A Tree is a point multimap: any number of entries may share a key.
// It is not thread-safe; concurrent readers are fine only while no
// writer is active.
type Tree[V any] struct {
	tree[V]
}

// New creates an empty point quadtree for keys of the given
// dimensionality. maxLeaf is the leaf capacity; 0 or a negative value
// selects the default of 10, and 1 is raised to 2.
func New[V any](dims, maxLeaf int) *Tree[V] {
	return &Tree[V]{tree: newTree[V](dims, maxLeaf)}
}

// Insert adds an entry. Duplicate keys are allowed.
func (q *Tree[V]) Insert(p spindex.Point, value V) error {
	if err := p.Validate(q.dims); err != nil {
		return err
	}
	key := p.Clone()
	q.insert(spindex.Entry[V]{Box: spindex.Box{Min: key, Max: key}, Value: value})
	return nil
}

// Remove deletes one entry with the given key for which match returns
// true (nil matches any one) and returns its value.
func (q *Tree[V]) Remove(p spindex.Point, match func(V) bool) (V, bool) {
	var zero V
	if p.Validate(q.dims) != nil {
		return zero, false
	}
	return q.remove(p.Bound(), match)
}

// Update moves one matching entry from old to new. If new still routes
// to the leaf holding the entry it is rewritten in place; otherwise the
// entry is removed and re-inserted.
func (q *Tree[V]) Update(old, new spindex.Point, match func(V) bool) (bool, error) {
	if err := new.Validate(q.dims); err != nil {
		return false, err
	}
	if old.Validate(q.dims) != nil {
		return false, nil
	}
	key := new.Clone()
	return q.update(old.Bound(), spindex.Box{Min: key, Max: key}, match), nil
}

// Get returns the value of one entry stored under the key.
func (q *Tree[V]) Get(p spindex.Point) (V, bool) {
	var zero V
	if p.Validate(q.dims) != nil {
		return zero, false
	}
	return q.get(p.Bound(), nil)
}

// Contains reports whether an entry with the key exists for which match
// returns true (nil matches any).
func (q *Tree[V]) Contains(p spindex.Point, match func(V) bool) bool {
	if p.Validate(q.dims) != nil {
		return false
	}
	_, ok := q.get(p.Bound(), match)
	return ok
}

// Query returns an iterator over all entries enclosed by the window
// [min, max].
func (q *Tree[V]) Query(min, max spindex.Point) (spindex.Iterator[V], error) {
	window, err := spindex.NewBox(min, max, q.dims)
	if err != nil {
		return nil, err
	}
	return newWindowIterator(&q.tree, window), nil
}

// KNearest returns an iterator over the k entries closest to center in
// non-decreasing distance order. A nil metric means euclidean distance.
func (q *Tree[V]) KNearest(center spindex.Point, k int, metric spindex.Distance) (spindex.DistIterator[V], error) {
	if err := center.Validate(q.dims); err != nil {
		return nil, err
	}
	return newNearestIterator(&q.tree, center, k, metric), nil
}

// Iterator returns an iterator over all entries, in no particular order.
func (q *Tree[V]) Iterator() spindex.Iterator[V] {
	return newTreeIterator(&q.tree)
}

// Len returns the number of entries.
func (q *Tree[V]) Len() int {
	return q.size
}

// Dims returns the dimensionality of the tree.
func (q *Tree[V]) Dims() int {
	return q.dims
}

// Clear removes all entries.
func (q *Tree[V]) Clear() {
	q.clear()
}

// Capabilities reports the supported query surface.
func (q *Tree[V]) Capabilities() spindex.Capabilities {
	return spindex.Capabilities{WindowQuery: true, PointQuery: true, Update: true, KNN: true}
}
