package rtree

import (
	"github.com/spindex/spindex"
)

// A PointTree is the point-keyed face of an R*-tree: the same structure
// with every key a zero-extent box.
type PointTree[V any] struct {
	t *Tree[V]
}

// NewPointTree creates an empty point multimap backed by an R*-tree
// with default options.
func NewPointTree[V any](dims int) *PointTree[V] {
	return &PointTree[V]{t: New[V](dims)}
}

// NewPointTreeWithOptions creates an empty point multimap backed by an
// R*-tree with the given options.
func NewPointTreeWithOptions[V any](dims int, opts Options) *PointTree[V] {
	return &PointTree[V]{t: NewWithOptions[V](dims, opts)}
}

// Tree returns the underlying box tree, for ranged-NN queries.
func (p *PointTree[V]) Tree() *Tree[V] { return p.t }

// Insert adds an entry. Duplicate keys are allowed.
func (p *PointTree[V]) Insert(pt spindex.Point, value V) error {
	return p.t.InsertPoint(pt, value)
}

// Remove deletes one entry with the given key for which match returns
// true (nil matches any one) and returns its value.
func (p *PointTree[V]) Remove(pt spindex.Point, match func(V) bool) (V, bool) {
	return p.t.RemovePoint(pt, match)
}

// Update moves one matching entry from old to new.
func (p *PointTree[V]) Update(old, new spindex.Point, match func(V) bool) (bool, error) {
	return p.t.Update(old, old, new, new, match)
}

// Get returns the value of one entry stored under the key.
func (p *PointTree[V]) Get(pt spindex.Point) (V, bool) {
	return p.t.Get(pt, pt)
}

// Contains reports whether an entry with the key exists for which match
// returns true (nil matches any).
func (p *PointTree[V]) Contains(pt spindex.Point, match func(V) bool) bool {
	return p.t.Contains(pt, pt, match)
}

// Query returns an iterator over all entries enclosed by the window.
func (p *PointTree[V]) Query(min, max spindex.Point) (spindex.Iterator[V], error) {
	return p.t.Query(min, max)
}

// KNearest returns an iterator over the k entries closest to center.
func (p *PointTree[V]) KNearest(center spindex.Point, k int, metric spindex.Distance) (spindex.DistIterator[V], error) {
	return p.t.KNearest(center, k, metric)
}

// Iterator returns an iterator over all entries.
func (p *PointTree[V]) Iterator() spindex.Iterator[V] {
	return p.t.Iterator()
}

// Len returns the number of entries.
func (p *PointTree[V]) Len() int { return p.t.Len() }

// Dims returns the dimensionality of the tree.
func (p *PointTree[V]) Dims() int { return p.t.Dims() }

// Clear removes all entries.
func (p *PointTree[V]) Clear() { p.t.Clear() }

// Capabilities reports the supported query surface.
func (p *PointTree[V]) Capabilities() spindex.Capabilities {
	return p.t.Capabilities()
}

// A PointMap is the unique-key façade over a point R*-tree: inserting
// an existing key replaces its value.
type PointMap[V any] struct {
	t *PointTree[V]
}

// NewPointMap creates an empty unique point map with default options.
func NewPointMap[V any](dims int) *PointMap[V] {
	return &PointMap[V]{t: NewPointTree[V](dims)}
}

// Insert associates the value with the point, replacing and returning
// any previous value stored under an equal point.
func (m *PointMap[V]) Insert(p spindex.Point, value V) (V, bool, error) {
	var zero V
	if err := p.Validate(m.t.Dims()); err != nil {
		return zero, false, err
	}
	old, had := m.t.Remove(p, nil)
	m.t.Insert(p, value)
	if !had {
		return zero, false, nil
	}
	return old, true, nil
}

// Remove deletes the entry with the given key and returns its value.
func (m *PointMap[V]) Remove(p spindex.Point) (V, bool) {
	return m.t.Remove(p, nil)
}

// Update moves the entry at old to the new key, keeping its value. It
// reports false if no entry exists at old; a previous entry at new is
// replaced.
func (m *PointMap[V]) Update(old, new spindex.Point) (bool, error) {
	if err := new.Validate(m.t.Dims()); err != nil {
		return false, err
	}
	if old.Validate(m.t.Dims()) != nil {
		return false, nil
	}
	if old.Equal(new) {
		return m.t.Contains(old, nil), nil
	}
	value, ok := m.t.Remove(old, nil)
	if !ok {
		return false, nil
	}
	m.t.Remove(new, nil) // replace whatever sat at the new key
	return true, m.t.Insert(new, value)
}

// Get returns the value stored under the point.
func (m *PointMap[V]) Get(p spindex.Point) (V, bool) {
	return m.t.Get(p)
}

// Contains reports whether an entry with the given key exists.
func (m *PointMap[V]) Contains(p spindex.Point) bool {
	return m.t.Contains(p, nil)
}

// Query returns an iterator over all entries enclosed by the window.
func (m *PointMap[V]) Query(min, max spindex.Point) (spindex.Iterator[V], error) {
	return m.t.Query(min, max)
}

// KNearest returns an iterator over the k entries closest to center.
func (m *PointMap[V]) KNearest(center spindex.Point, k int, metric spindex.Distance) (spindex.DistIterator[V], error) {
	return m.t.KNearest(center, k, metric)
}

// Iterator returns an iterator over all entries.
func (m *PointMap[V]) Iterator() spindex.Iterator[V] {
	return m.t.Iterator()
}

// Len returns the number of entries.
func (m *PointMap[V]) Len() int { return m.t.Len() }

// Dims returns the dimensionality of the map.
func (m *PointMap[V]) Dims() int { return m.t.Dims() }

// Clear removes all entries.
func (m *PointMap[V]) Clear() { m.t.Clear() }

// Capabilities reports the supported query surface.
func (m *PointMap[V]) Capabilities() spindex.Capabilities {
	return m.t.Capabilities()
}

// A BoxMap is the unique-key façade over a box R*-tree.
type BoxMap[V any] struct {
	t *Tree[V]
}

// NewBoxMap creates an empty unique box map with default options.
func NewBoxMap[V any](dims int) *BoxMap[V] {
	return &BoxMap[V]{t: New[V](dims)}
}

// Insert associates the value with the box, replacing and returning any
// previous value stored under an equal box.
func (m *BoxMap[V]) Insert(min, max spindex.Point, value V) (V, bool, error) {
	var zero V
	if _, err := spindex.NewBox(min, max, m.t.Dims()); err != nil {
		return zero, false, err
	}
	old, had := m.t.Remove(min, max, nil)
	m.t.Insert(min, max, value)
	if !had {
		return zero, false, nil
	}
	return old, true, nil
}

// Remove deletes the entry with the given key and returns its value.
func (m *BoxMap[V]) Remove(min, max spindex.Point) (V, bool) {
	return m.t.Remove(min, max, nil)
}

// Update moves the entry at the old key to the new one, keeping its
// value. It reports false if no entry exists at the old key; a previous
// entry at the new key is replaced.
func (m *BoxMap[V]) Update(oldMin, oldMax, newMin, newMax spindex.Point) (bool, error) {
	newKey, err := spindex.NewBox(newMin, newMax, m.t.Dims())
	if err != nil {
		return false, err
	}
	oldKey, err := spindex.NewBox(oldMin, oldMax, m.t.Dims())
	if err != nil {
		return false, nil
	}
	if oldKey.Equal(newKey) {
		return m.t.Contains(oldMin, oldMax, nil), nil
	}
	value, ok := m.t.Remove(oldMin, oldMax, nil)
	if !ok {
		return false, nil
	}
	m.t.Remove(newMin, newMax, nil) // replace whatever sat at the new key
	return true, m.t.Insert(newMin, newMax, value)
}

// Get returns the value stored under the key.
func (m *BoxMap[V]) Get(min, max spindex.Point) (V, bool) {
	return m.t.Get(min, max)
}

// Contains reports whether an entry with the given key exists.
func (m *BoxMap[V]) Contains(min, max spindex.Point) bool {
	return m.t.Contains(min, max, nil)
}

// Query returns an iterator over all entries intersecting the window.
func (m *BoxMap[V]) Query(min, max spindex.Point) (spindex.Iterator[V], error) {
	return m.t.Query(min, max)
}

// KNearest returns an iterator over the k entries closest to center.
func (m *BoxMap[V]) KNearest(center spindex.Point, k int, metric spindex.Distance) (spindex.DistIterator[V], error) {
	return m.t.KNearest(center, k, metric)
}

// Iterator returns an iterator over all entries.
func (m *BoxMap[V]) Iterator() spindex.Iterator[V] {
	return m.t.Iterator()
}

// Len returns the number of entries.
func (m *BoxMap[V]) Len() int { return m.t.Len() }

// Dims returns the dimensionality of the map.
func (m *BoxMap[V]) Dims() int { return m.t.Dims() }

// Clear removes all entries.
func (m *BoxMap[V]) Clear() { m.t.Clear() }

// Capabilities reports the supported query surface.
func (m *BoxMap[V]) Capabilities() spindex.Capabilities {
	return m.t.Capabilities()
}

var (
	_ spindex.BoxMultimap[int]   = (*Tree[int])(nil)
	_ spindex.PointMultimap[int] = (*PointTree[int])(nil)
	_ spindex.PointMap[int]      = (*PointMap[int])(nil)
	_ spindex.BoxMap[int]        = (*BoxMap[int])(nil)
)
