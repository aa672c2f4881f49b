package rtree

import (
	stdmath "math"
	"sort"

	"github.com/spindex/spindex"
)

// Load bulk-loads a tree from the given entries by sort-tile-recursive
// packing: entries are sorted by box center and tiled into slabs axis
// by axis, then packed into nodes of balanced size level by level. The result obeys
// the same structural invariants as an incrementally built tree and is
// considerably faster to construct for large inputs.
func Load[V any](dims int, entries []spindex.Entry[V], opts Options) (*Tree[V], error) {
	t := NewWithOptions[V](dims, opts)

	items := make([]entry[V], len(entries))
	for i, e := range entries {
		key, err := spindex.NewBox(e.Box.Min, e.Box.Max, dims)
		if err != nil {
			return nil, err
		}
		items[i] = entry[V]{box: key.Clone(), value: e.Value}
	}
	if len(items) == 0 {
		return t, nil
	}

	level := 0
	for len(items) > t.opts.MaxEntries {
		groups := tile(items, 0, dims, t.opts.MaxEntries)
		next := make([]entry[V], 0, len(groups))
		for _, g := range groups {
			n := &node[V]{level: level, entries: g}
			next = append(next, entry[V]{box: n.mbr(), child: n})
		}
		items = next
		level++
	}

	t.root = &node[V]{level: level, entries: items}
	t.size = len(entries)
	return t, nil
}

// LoadPoints bulk-loads a tree from point keys; values[i] belongs to
// points[i].
func LoadPoints[V any](dims int, points spindex.Points, values []V, opts Options) (*Tree[V], error) {
	if len(points) != len(values) {
		panic("rtree: points and values length mismatch")
	}
	entries := make([]spindex.Entry[V], len(points))
	for i, p := range points {
		key := p.Clone()
		entries[i] = spindex.Entry[V]{
			Box:   spindex.Box{Min: key, Max: key},
			Value: values[i],
		}
	}
	return Load(dims, entries, opts)
}

// tile recursively slices the entries, sorted by box center on one axis
// after the other, into groups of at most capacity entries. Group sizes
// are balanced so that no group falls under half the capacity, which
// keeps packed nodes above the minimum fill.
func tile[V any](items []entry[V], axis, dims, capacity int) [][]entry[V] {
	if len(items) <= capacity {
		return [][]entry[V]{items}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].box, items[j].box
		return a.Min[axis]+a.Max[axis] < b.Min[axis]+b.Max[axis]
	})

	if axis == dims-1 {
		return chunks(items, capacity)
	}

	// ceil(groupCount^(1/remaining axes)) slabs along this axis
	groupCount := (len(items) + capacity - 1) / capacity
	slabCount := int(stdmath.Ceil(stdmath.Pow(float64(groupCount), 1/float64(dims-axis))))
	if slabCount < 1 {
		slabCount = 1
	}

	var out [][]entry[V]
	for _, slab := range chunks(items, (len(items)+slabCount-1)/slabCount) {
		out = append(out, tile(slab, axis+1, dims, capacity)...)
	}
	return out
}

// chunks splits items into ceil(n/capacity) runs of nearly equal size.
func chunks[V any](items []entry[V], capacity int) [][]entry[V] {
	n := len(items)
	count := (n + capacity - 1) / capacity
	base := n / count
	rem := n % count

	out := make([][]entry[V], 0, count)
	pos := 0
	for i := 0; i < count; i++ {
		size := base
		if i < rem {
			size++
		}
		out = append(out, items[pos:pos+size:pos+size])
		pos += size
	}
	return out
}
