package spindex

// Capabilities describes which parts of the query surface an index
// implements. Operations outside an index's capabilities return
// ErrUnsupported.
type Capabilities struct {
	WindowQuery bool
	PointQuery  bool
	Update      bool
	KNN         bool
}

// index is the part of the contract shared by every flavour.
type index interface {
	// Dims returns the dimensionality the index was created with.
	Dims() int

	// Len returns the number of live entries.
	Len() int

	// Clear removes all entries.
	Clear()

	// Capabilities reports which optional operations the index supports.
	Capabilities() Capabilities
}

// A PointMap associates unique points with values. Inserting an
// existing key replaces its value.
type PointMap[V any] interface {
	index

	// Insert associates the value with the point, replacing and
	// returning any previous value stored under an equal point.
	Insert(p Point, value V) (V, bool, error)

	// Remove deletes the entry with the given key and returns its value.
	Remove(p Point) (V, bool)

	// Update moves the entry at old to the new key, keeping its value.
	// It reports false if no entry exists at old; a previous entry at
	// new is replaced.
	Update(old, new Point) (bool, error)

	// Get returns the value stored under the point.
	Get(p Point) (V, bool)

	// Contains reports whether an entry with the given key exists.
	Contains(p Point) bool

	// Query returns an iterator over all entries enclosed by the
	// axis-aligned window [min, max].
	Query(min, max Point) (Iterator[V], error)

	// KNearest returns an iterator over the k entries closest to
	// center, in non-decreasing distance order. A nil metric means
	// euclidean distance.
	KNearest(center Point, k int, metric Distance) (DistIterator[V], error)

	// Iterator returns an iterator over all entries, in no particular
	// order.
	Iterator() Iterator[V]
}

// A PointMultimap associates points with values and allows any number
// of entries per point. Operations that address one entry among equals
// take a match predicate on the value; a nil predicate matches any.
type PointMultimap[V any] interface {
	index

	Insert(p Point, value V) error
	Remove(p Point, match func(V) bool) (V, bool)
	Update(old, new Point, match func(V) bool) (bool, error)
	Get(p Point) (V, bool)
	Contains(p Point, match func(V) bool) bool
	Query(min, max Point) (Iterator[V], error)
	KNearest(center Point, k int, metric Distance) (DistIterator[V], error)
	Iterator() Iterator[V]
}

// A BoxMap associates unique boxes with values. Inserting an existing
// key replaces its value.
type BoxMap[V any] interface {
	index

	Insert(min, max Point, value V) (V, bool, error)
	Remove(min, max Point) (V, bool)
	Update(oldMin, oldMax, newMin, newMax Point) (bool, error)
	Get(min, max Point) (V, bool)
	Contains(min, max Point) bool

	// Query returns an iterator over all entries whose box intersects
	// the window [min, max].
	Query(min, max Point) (Iterator[V], error)

	KNearest(center Point, k int, metric Distance) (DistIterator[V], error)
	Iterator() Iterator[V]
}

// A BoxMultimap associates boxes with values and allows any number of
// entries per box key.
type BoxMultimap[V any] interface {
	index

	Insert(min, max Point, value V) error
	Remove(min, max Point, match func(V) bool) (V, bool)
	Update(oldMin, oldMax, newMin, newMax Point, match func(V) bool) (bool, error)
	Get(min, max Point) (V, bool)
	Contains(min, max Point, match func(V) bool) bool
	Query(min, max Point) (Iterator[V], error)
	KNearest(center Point, k int, metric Distance) (DistIterator[V], error)
	Iterator() Iterator[V]
}
