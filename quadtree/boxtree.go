package quadtree

import (
	"github.com/spindex/spindex"
)

// A BoxTree is a box multimap over the same hypercube node structure as
// Tree. A box is routed to the quadrant of its center; a leaf whose
// boxes straddle quadrant boundaries stays over capacity rather than
// split, see the package notes on splittable.
type BoxTree[V any] struct {
	tree[V]
}

// NewBox creates an empty box quadtree for keys of the given
// dimensionality. maxLeaf is the leaf capacity; 0 or a negative value
// selects the default of 10, and 1 is raised to 2.
func NewBox[V any](dims, maxLeaf int) *BoxTree[V] {
	return &BoxTree[V]{tree: newTree[V](dims, maxLeaf)}
}

// Insert adds an entry with the box key [min, max]. Duplicate keys are
// allowed.
func (q *BoxTree[V]) Insert(min, max spindex.Point, value V) error {
	key, err := spindex.NewBox(min, max, q.dims)
	if err != nil {
		return err
	}
	q.insert(spindex.Entry[V]{Box: key.Clone(), Value: value})
	return nil
}

// Remove deletes one entry with the given key for which match returns
// true (nil matches any one) and returns its value.
func (q *BoxTree[V]) Remove(min, max spindex.Point, match func(V) bool) (V, bool) {
	var zero V
	key, err := spindex.NewBox(min, max, q.dims)
	if err != nil {
		return zero, false
	}
	return q.remove(key, match)
}

// Update moves one matching entry from the old key to the new one.
func (q *BoxTree[V]) Update(oldMin, oldMax, newMin, newMax spindex.Point, match func(V) bool) (bool, error) {
	newKey, err := spindex.NewBox(newMin, newMax, q.dims)
	if err != nil {
		return false, err
	}
	oldKey, err := spindex.NewBox(oldMin, oldMax, q.dims)
	if err != nil {
		return false, nil
	}
	return q.update(oldKey, newKey.Clone(), match), nil
}

// Get returns the value of one entry stored under the key.
func (q *BoxTree[V]) Get(min, max spindex.Point) (V, bool) {
	var zero V
	key, err := spindex.NewBox(min, max, q.dims)
	if err != nil {
		return zero, false
	}
	return q.get(key, nil)
}

// Contains reports whether an entry with the key exists for which match
// returns true (nil matches any).
func (q *BoxTree[V]) Contains(min, max spindex.Point, match func(V) bool) bool {
	key, err := spindex.NewBox(min, max, q.dims)
	if err != nil {
		return false
	}
	_, ok := q.get(key, match)
	return ok
}

// Query returns an iterator over all entries whose box intersects the
// window [min, max].
func (q *BoxTree[V]) Query(min, max spindex.Point) (spindex.Iterator[V], error) {
	window, err := spindex.NewBox(min, max, q.dims)
	if err != nil {
		return nil, err
	}
	return newWindowIterator(&q.tree, window), nil
}

// KNearest returns an iterator over the k entries closest to center in
// non-decreasing distance order, measuring to box edges by default.
func (q *BoxTree[V]) KNearest(center spindex.Point, k int, metric spindex.Distance) (spindex.DistIterator[V], error) {
	if err := center.Validate(q.dims); err != nil {
		return nil, err
	}
	return newNearestIterator(&q.tree, center, k, metric), nil
}

// Iterator returns an iterator over all entries, in no particular order.
func (q *BoxTree[V]) Iterator() spindex.Iterator[V] {
	return newTreeIterator(&q.tree)
}

// Len returns the number of entries.
func (q *BoxTree[V]) Len() int {
	return q.size
}

// Dims returns the dimensionality of the tree.
func (q *BoxTree[V]) Dims() int {
	return q.dims
}

// Clear removes all entries.
func (q *BoxTree[V]) Clear() {
	q.clear()
}

// Capabilities reports the supported query surface.
func (q *BoxTree[V]) Capabilities() spindex.Capabilities {
	return spindex.Capabilities{WindowQuery: true, PointQuery: true, Update: true, KNN: true}
}
