package rtree

import (
	"sort"

	"github.com/spindex/spindex"
)

// split partitions the M+1 entries of an overflowing node into two
// groups: the axis is the one with the smallest sum of group margins
// over all legal distributions, the distribution the one with the least
// overlap between the group MBRs, ties broken by least combined area.
// n keeps the first group; the returned sibling holds the second.
func (t *Tree[V]) split(n *node[V]) *node[V] {
	axis, byUpper := t.chooseSplitAxis(n.entries)
	sortByAxis(n.entries, axis, byUpper)
	k := t.chooseSplitIndex(n.entries)

	nn := &node[V]{
		level:   n.level,
		entries: make([]entry[V], 0, t.opts.MaxEntries+1),
	}
	nn.entries = append(nn.entries, n.entries[k:]...)

	first := make([]entry[V], k, t.opts.MaxEntries+1)
	copy(first, n.entries[:k])
	n.entries = first

	return nn
}

// sortByAxis orders entries along one axis by lower or upper box bound,
// with the opposite bound as tie-break.
func sortByAxis[V any](entries []entry[V], axis int, byUpper bool) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].box, entries[j].box
		if byUpper {
			if a.Max[axis] != b.Max[axis] {
				return a.Max[axis] < b.Max[axis]
			}
			return a.Min[axis] < b.Min[axis]
		}
		if a.Min[axis] != b.Min[axis] {
			return a.Min[axis] < b.Min[axis]
		}
		return a.Max[axis] < b.Max[axis]
	})
}

// chooseSplitAxis returns the axis, and which of its two boundary sorts,
// with the minimum margin sum over the M-2m+2 legal distributions.
func (t *Tree[V]) chooseSplitAxis(entries []entry[V]) (axis int, byUpper bool) {
	scratch := make([]entry[V], len(entries))

	bestS := -1.0
	for a := 0; a < t.dims; a++ {
		for _, upper := range []bool{false, true} {
			copy(scratch, entries)
			sortByAxis(scratch, a, upper)
			s := t.marginSum(scratch)
			if bestS < 0 || s < bestS {
				bestS = s
				axis, byUpper = a, upper
			}
		}
	}
	return axis, byUpper
}

// marginSum adds up perimeter(MBR1) + perimeter(MBR2) over every legal
// distribution of the sorted entries.
func (t *Tree[V]) marginSum(entries []entry[V]) float64 {
	m := t.opts.MinEntries
	var s float64
	for k := m; k <= len(entries)-m; k++ {
		s += mbrOf(entries[:k]).Margin() + mbrOf(entries[k:]).Margin()
	}
	return s
}

// chooseSplitIndex returns the size of the first group for the
// distribution of the sorted entries with minimal overlap area between
// the group MBRs, ties broken by minimal total area.
func (t *Tree[V]) chooseSplitIndex(entries []entry[V]) int {
	m := t.opts.MinEntries

	best := m
	bestOverlap := -1.0
	bestArea := -1.0
	for k := m; k <= len(entries)-m; k++ {
		mbr1 := mbrOf(entries[:k])
		mbr2 := mbrOf(entries[k:])
		overlap := mbr1.OverlapArea(mbr2)
		area := mbr1.Area() + mbr2.Area()
		if bestOverlap < 0 || overlap < bestOverlap ||
			(overlap == bestOverlap && area < bestArea) {
			best, bestOverlap, bestArea = k, overlap, area
		}
	}
	return best
}

// mbrOf returns the MBR of a run of entries.
func mbrOf[V any](entries []entry[V]) spindex.Box {
	b := entries[0].box
	for i := 1; i < len(entries); i++ {
		b = b.Union(entries[i].box)
	}
	return b
}
