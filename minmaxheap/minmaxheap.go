// Package minmaxheap provides a double-ended priority queue: an
// array-backed binary heap with alternating min and max levels that pops
// either extreme in O(log n) and peeks both in O(1). Best-first searches
// use it both as a traversal queue (PopMin) and as a bounded candidate
// list (PopMax once over capacity).
package minmaxheap

import "math/bits"

// A Heap is a min-max heap over elements of type T. The zero value is
// not usable; create one with New.
type Heap[T any] struct {
	items []T
	less  func(a, b T) bool
}

// New creates an empty min-max heap ordered by the given less function.
func New[T any](less func(a, b T) bool) *Heap[T] {
	return &Heap[T]{less: less}
}

// NewWithCapacity creates an empty heap with preallocated space for n
// elements.
func NewWithCapacity[T any](less func(a, b T) bool, n int) *Heap[T] {
	return &Heap[T]{items: make([]T, 0, n), less: less}
}

// Len returns the number of elements in the heap.
func (h *Heap[T]) Len() int {
	return len(h.items)
}

// IsEmpty reports whether the heap holds no elements.
func (h *Heap[T]) IsEmpty() bool {
	return len(h.items) == 0
}

// Clear removes all elements, keeping the backing array.
func (h *Heap[T]) Clear() {
	h.items = h.items[:0]
}

// isMinLevel reports whether index i sits on a min level. The root is
// on a min level, its children on a max level, and so on alternating.
func isMinLevel(i int) bool {
	return bits.Len(uint(i)+1)&1 == 1
}

func parent(i int) int      { return (i - 1) / 2 }
func grandparent(i int) int { return (i - 3) / 4 }
func hasGrandparent(i int) bool {
	return i >= 3
}

// Push adds an element to the heap.
func (h *Heap[T]) Push(item T) {
	h.items = append(h.items, item)
	h.bubbleUp(len(h.items) - 1)
}

func (h *Heap[T]) bubbleUp(i int) {
	if i == 0 {
		return
	}

	p := parent(i)
	if isMinLevel(i) {
		if h.less(h.items[p], h.items[i]) {
			// larger than its max-level parent: belongs on a max level
			h.items[i], h.items[p] = h.items[p], h.items[i]
			h.bubbleUpMax(p)
		} else {
			h.bubbleUpMin(i)
		}
	} else {
		if h.less(h.items[i], h.items[p]) {
			h.items[i], h.items[p] = h.items[p], h.items[i]
			h.bubbleUpMin(p)
		} else {
			h.bubbleUpMax(i)
		}
	}
}

func (h *Heap[T]) bubbleUpMin(i int) {
	for hasGrandparent(i) {
		g := grandparent(i)
		if !h.less(h.items[i], h.items[g]) {
			return
		}
		h.items[i], h.items[g] = h.items[g], h.items[i]
		i = g
	}
}

func (h *Heap[T]) bubbleUpMax(i int) {
	for hasGrandparent(i) {
		g := grandparent(i)
		if !h.less(h.items[g], h.items[i]) {
			return
		}
		h.items[i], h.items[g] = h.items[g], h.items[i]
		i = g
	}
}

// PeekMin returns the smallest element without removing it.
func (h *Heap[T]) PeekMin() (T, bool) {
	if len(h.items) == 0 {
		var zero T
		return zero, false
	}
	return h.items[0], true
}

// PeekMax returns the largest element without removing it.
func (h *Heap[T]) PeekMax() (T, bool) {
	if len(h.items) == 0 {
		var zero T
		return zero, false
	}
	return h.items[h.maxIndex()], true
}

// maxIndex returns the index of the largest element: the root for a
// one-element heap, otherwise the larger of the root's children.
func (h *Heap[T]) maxIndex() int {
	switch len(h.items) {
	case 1:
		return 0
	case 2:
		return 1
	}
	if h.less(h.items[1], h.items[2]) {
		return 2
	}
	return 1
}

// PopMin removes and returns the smallest element.
func (h *Heap[T]) PopMin() (T, bool) {
	if len(h.items) == 0 {
		var zero T
		return zero, false
	}
	return h.removeAt(0), true
}

// PopMax removes and returns the largest element.
func (h *Heap[T]) PopMax() (T, bool) {
	if len(h.items) == 0 {
		var zero T
		return zero, false
	}
	return h.removeAt(h.maxIndex()), true
}

// removeAt removes the element at i by moving the tail element into its
// slot and sifting it down.
func (h *Heap[T]) removeAt(i int) T {
	item := h.items[i]
	last := len(h.items) - 1
	h.items[i] = h.items[last]
	var zero T
	h.items[last] = zero // release the reference
	h.items = h.items[:last]

	if i < len(h.items) {
		h.siftDown(i)
	}
	return item
}

func (h *Heap[T]) siftDown(i int) {
	if isMinLevel(i) {
		h.siftDownMin(i)
	} else {
		h.siftDownMax(i)
	}
}

// siftDownMin restores the min-level invariant at i by repeatedly
// swapping with the smallest of its children and grandchildren.
func (h *Heap[T]) siftDownMin(i int) {
	for {
		m, isGrandchild := h.smallestDescendant(i)
		if m < 0 {
			return
		}
		if !h.less(h.items[m], h.items[i]) {
			return
		}
		h.items[i], h.items[m] = h.items[m], h.items[i]
		if !isGrandchild {
			return
		}
		// the moved element may violate the max level between i and m
		p := parent(m)
		if h.less(h.items[p], h.items[m]) {
			h.items[m], h.items[p] = h.items[p], h.items[m]
		}
		i = m
	}
}

// siftDownMax is the mirror image of siftDownMin for max levels.
func (h *Heap[T]) siftDownMax(i int) {
	for {
		m, isGrandchild := h.largestDescendant(i)
		if m < 0 {
			return
		}
		if !h.less(h.items[i], h.items[m]) {
			return
		}
		h.items[i], h.items[m] = h.items[m], h.items[i]
		if !isGrandchild {
			return
		}
		p := parent(m)
		if h.less(h.items[m], h.items[p]) {
			h.items[m], h.items[p] = h.items[p], h.items[m]
		}
		i = m
	}
}

// smallestDescendant returns the index of the smallest among the
// children and grandchildren of i, and whether it is a grandchild.
// Returns -1 if i has no descendants.
func (h *Heap[T]) smallestDescendant(i int) (int, bool) {
	n := len(h.items)
	first := 2*i + 1
	if first >= n {
		return -1, false
	}

	best := first
	isGrandchild := false
	// the other child, then up to four grandchildren
	if c := first + 1; c < n && h.less(h.items[c], h.items[best]) {
		best = c
	}
	for g := 4*i + 3; g < n && g <= 4*i+6; g++ {
		if h.less(h.items[g], h.items[best]) {
			best = g
			isGrandchild = true
		}
	}
	return best, isGrandchild
}

// largestDescendant is the mirror image of smallestDescendant.
func (h *Heap[T]) largestDescendant(i int) (int, bool) {
	n := len(h.items)
	first := 2*i + 1
	if first >= n {
		return -1, false
	}

	best := first
	isGrandchild := false
	if c := first + 1; c < n && h.less(h.items[best], h.items[c]) {
		best = c
	}
	for g := 4*i + 3; g < n && g <= 4*i+6; g++ {
		if h.less(h.items[best], h.items[g]) {
			best = g
			isGrandchild = true
		}
	}
	return best, isGrandchild
}

// checkInvariants verifies the min-max level ordering over the whole
// array. Test helper.
func (h *Heap[T]) checkInvariants() bool {
	for i := range h.items {
		if !h.checkBelow(i, i) {
			return false
		}
	}
	return true
}

// checkBelow verifies that every descendant of the subtree rooted at
// sub honours the level invariant of top.
func (h *Heap[T]) checkBelow(top, sub int) bool {
	for c := 2*sub + 1; c <= 2*sub+2 && c < len(h.items); c++ {
		if isMinLevel(top) {
			if h.less(h.items[c], h.items[top]) {
				return false
			}
		} else {
			if h.less(h.items[top], h.items[c]) {
				return false
			}
		}
		if !h.checkBelow(top, c) {
			return false
		}
	}
	return true
}
