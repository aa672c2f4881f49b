// Package rtree implements an R*-tree over axis-aligned boxes in d
// dimensions. Points are stored as zero-extent boxes, which works out
// better for this structure. Insertion follows the R* heuristics:
// least-overlap subtree choice above the leaves, forced reinsertion of
// the outermost entries on the first overflow per level, and a
// topological split that picks the axis by margin sums and the
// distribution by overlap. Nearest-neighbour queries run best-first on
// a priority queue of nodes and entries.
package rtree

import (
	"sort"

	"github.com/spindex/spindex"
)

// Options configure the shape of the tree. They trade time for space
// but never affect the results of queries.
type Options struct {
	// MaxEntries is the node capacity M. Minimum 4, default 16.
	MaxEntries int

	// MinEntries is the minimum fill m of every node but the root.
	// Default 0.4*M, the sweet spot reported for R*-trees.
	MinEntries int

	// ReinsertCount is the number of entries p evicted on a forced
	// reinsert. Default 0.3*M.
	ReinsertCount int
}

func (o Options) withDefaults() Options {
	if o.MaxEntries < 4 {
		if o.MaxEntries != 0 {
			o.MaxEntries = 4
		} else {
			o.MaxEntries = 16
		}
	}
	if o.MinEntries <= 0 {
		o.MinEntries = (o.MaxEntries*2 + 4) / 5 // ceil(0.4*M)
	}
	// a split needs two groups of at least m out of M+1 entries
	if o.MinEntries > (o.MaxEntries+1)/2 {
		o.MinEntries = (o.MaxEntries + 1) / 2
	}
	if o.ReinsertCount <= 0 {
		o.ReinsertCount = (o.MaxEntries*3 + 9) / 10 // ceil(0.3*M)
	}
	if max := o.MaxEntries - o.MinEntries; o.ReinsertCount > max {
		o.ReinsertCount = max
	}
	return o
}

// entry is a slot in a node: an inner entry references a child node
// under its MBR, a leaf entry carries a key box and the user value.
type entry[V any] struct {
	box   spindex.Box
	child *node[V]
	value V
	dist  float64 // scratch for the reinsert ordering
}

// node is a leaf (level 0) holding box entries or an inner node holding
// child references. Parent links are kept on descent stacks only, never
// stored, so the graph stays a strict tree.
type node[V any] struct {
	level   int
	entries []entry[V]
}

func (n *node[V]) isLeaf() bool { return n.level == 0 }

// mbr returns the tight union of the node's entry boxes.
func (n *node[V]) mbr() spindex.Box {
	b := n.entries[0].box
	for i := 1; i < len(n.entries); i++ {
		b = b.Union(n.entries[i].box)
	}
	return b
}

// A Tree is an R*-tree box multimap: any number of entries may share a
// key. It is not thread-safe; concurrent readers are fine only while no
// writer is active.
type Tree[V any] struct {
	dims int
	opts Options
	root *node[V]
	size int
}

// New creates an empty tree with default options for keys of the given
// dimensionality.
func New[V any](dims int) *Tree[V] {
	return NewWithOptions[V](dims, Options{})
}

// NewWithOptions creates an empty tree with the given options.
func NewWithOptions[V any](dims int, opts Options) *Tree[V] {
	if dims < 1 {
		panic("rtree: dimensionality must be at least 1")
	}
	o := opts.withDefaults()
	return &Tree[V]{
		dims: dims,
		opts: o,
		root: &node[V]{entries: make([]entry[V], 0, o.MaxEntries+1)},
	}
}

// Len returns the number of entries.
func (t *Tree[V]) Len() int { return t.size }

// Dims returns the dimensionality of the tree.
func (t *Tree[V]) Dims() int { return t.dims }

// Clear removes all entries.
func (t *Tree[V]) Clear() {
	t.root = &node[V]{entries: make([]entry[V], 0, t.opts.MaxEntries+1)}
	t.size = 0
}

// Capabilities reports the supported query surface.
func (t *Tree[V]) Capabilities() spindex.Capabilities {
	return spindex.Capabilities{WindowQuery: true, PointQuery: true, Update: true, KNN: true}
}

// Insert adds an entry with the box key [min, max]. Duplicate keys are
// allowed.
func (t *Tree[V]) Insert(min, max spindex.Point, value V) error {
	key, err := spindex.NewBox(min, max, t.dims)
	if err != nil {
		return err
	}
	t.insert(entry[V]{box: key.Clone(), value: value})
	return nil
}

// InsertPoint adds an entry with a point key.
func (t *Tree[V]) InsertPoint(p spindex.Point, value V) error {
	if err := p.Validate(t.dims); err != nil {
		return err
	}
	key := p.Clone()
	t.insert(entry[V]{box: spindex.Box{Min: key, Max: key}, value: value})
	return nil
}

// reinsertState remembers which levels already had a forced reinsert
// during one top-level insertion, so each level reinserts at most once,
// and queues the evicted entries until the descent has returned.
type reinsertState struct {
	seen    map[int]bool
	pending []func()
}

func (st *reinsertState) done(level int) bool { return st.seen[level] }
func (st *reinsertState) mark(level int) {
	if st.seen == nil {
		st.seen = make(map[int]bool)
	}
	st.seen[level] = true
}

func (t *Tree[V]) insert(e entry[V]) {
	t.insertAtLevel(e, 0, &reinsertState{})
	t.size++
}

// insertAtLevel places e into a node at the target level, splitting the
// root as often as needed, then reinserts the entries queued by forced
// reinsertion on the way.
func (t *Tree[V]) insertAtLevel(e entry[V], level int, st *reinsertState) {
	defer func() {
		for len(st.pending) > 0 {
			next := st.pending[0]
			st.pending = st.pending[1:]
			next()
		}
	}()
	for {
		root := t.root
		if level > root.level {
			panic("rtree: insertion level above the root")
		}
		split := t.insertAt(root, e, level, st)
		if split == nil {
			return
		}
		if t.root == root {
			// split reached the root: grow the tree by one level
			newRoot := &node[V]{
				level:   root.level + 1,
				entries: make([]entry[V], 0, t.opts.MaxEntries+1),
			}
			newRoot.entries = append(newRoot.entries,
				entry[V]{box: root.mbr(), child: root}, *split)
			t.root = newRoot
			return
		}
		// a forced reinsert replaced the root underneath this call;
		// the pending sibling goes back in at its own level
		e = *split
		level = root.level + 1
	}
}

// insertAt descends from n to the target level, appends the entry and
// resolves overflow. It returns the split sibling entry to be placed in
// n's parent, if a split happened.
func (t *Tree[V]) insertAt(n *node[V], e entry[V], level int, st *reinsertState) *entry[V] {
	if n.level > level {
		i := t.chooseSubtree(n, e.box)
		child := n.entries[i].child
		split := t.insertAt(child, e, level, st)
		n.entries[i].box = child.mbr()
		if split == nil {
			return nil
		}
		n.entries = append(n.entries, *split)
	} else {
		n.entries = append(n.entries, e)
	}

	if len(n.entries) > t.opts.MaxEntries {
		return t.overflow(n, st)
	}
	return nil
}

// chooseSubtree picks the child of n that should receive a box. At the
// level just above the leaves the winner needs the least enlargement of
// overlap with its siblings, ties broken by least area enlargement and
// then smallest area; higher up, least area enlargement with the same
// tie-breaks.
func (t *Tree[V]) chooseSubtree(n *node[V], b spindex.Box) int {
	best := 0
	if n.level == 1 {
		bestOverlap := t.overlapEnlargement(n, 0, b)
		bestArea, bestEnlargement := areaAndEnlargement(n.entries[0].box, b)
		for i := 1; i < len(n.entries); i++ {
			overlap := t.overlapEnlargement(n, i, b)
			if overlap > bestOverlap {
				continue
			}
			area, enlargement := areaAndEnlargement(n.entries[i].box, b)
			if overlap == bestOverlap {
				if enlargement > bestEnlargement ||
					(enlargement == bestEnlargement && area >= bestArea) {
					continue
				}
			}
			best, bestOverlap, bestArea, bestEnlargement = i, overlap, area, enlargement
		}
		return best
	}

	bestArea, bestEnlargement := areaAndEnlargement(n.entries[0].box, b)
	for i := 1; i < len(n.entries); i++ {
		area, enlargement := areaAndEnlargement(n.entries[i].box, b)
		if enlargement < bestEnlargement ||
			(enlargement == bestEnlargement && area < bestArea) {
			best, bestArea, bestEnlargement = i, area, enlargement
		}
	}
	return best
}

// areaAndEnlargement returns the area of box and how much it grows when
// extended to cover b.
func areaAndEnlargement(box, b spindex.Box) (area, enlargement float64) {
	area = box.Area()
	return area, box.Union(b).Area() - area
}

// overlapEnlargement returns how much the overlap of child i with its
// siblings grows when its MBR is extended to cover b.
func (t *Tree[V]) overlapEnlargement(n *node[V], i int, b spindex.Box) float64 {
	old := n.entries[i].box
	grown := old.Union(b)

	var delta float64
	for j := range n.entries {
		if j == i {
			continue
		}
		delta += grown.OverlapArea(n.entries[j].box) - old.OverlapArea(n.entries[j].box)
	}
	return delta
}

// overflow resolves a node with M+1 entries: a forced reinsert on the
// first overflow per level of the current top-level insert, a split
// otherwise. The returned sibling entry, if any, belongs in n's parent.
func (t *Tree[V]) overflow(n *node[V], st *reinsertState) *entry[V] {
	if n.level < t.root.level && !st.done(n.level) {
		st.mark(n.level)
		t.reinsert(n, st)
		return nil
	}
	nn := t.split(n)
	return &entry[V]{box: nn.mbr(), child: nn}
}

// reinsert evicts the p entries whose centers sit farthest from the
// node's MBR center and queues them to go back in from the root at the
// same level once the current descent is over, so that no node on the
// descent path changes underneath it. The far entries go back in
// closest-first.
func (t *Tree[V]) reinsert(n *node[V], st *reinsertState) {
	center := n.mbr().Center()
	for i := range n.entries {
		n.entries[i].dist = n.entries[i].box.DistanceToCenterSquared(center)
	}
	sort.SliceStable(n.entries, func(i, j int) bool {
		return n.entries[i].dist > n.entries[j].dist
	})

	p := t.opts.ReinsertCount
	evicted := make([]entry[V], p)
	copy(evicted, n.entries[:p])

	rest := make([]entry[V], len(n.entries)-p, t.opts.MaxEntries+1)
	copy(rest, n.entries[p:])
	n.entries = rest

	level := n.level
	for i := len(evicted) - 1; i >= 0; i-- {
		e := evicted[i]
		st.pending = append(st.pending, func() { t.insertAtLevel(e, level, st) })
	}
}
