package rtree

import (
	"github.com/spindex/spindex"
)

// orphan is a subtree entry detached while condensing the tree after a
// deletion, remembered together with the level it must go back to.
type orphan[V any] struct {
	e     entry[V]
	level int
}

// Remove deletes one entry with the given key for which match returns
// true (nil matches any one) and returns its value. Underfull nodes on
// the deletion path are dissolved and their entries reinserted at their
// original levels; a root left with a single child is collapsed.
func (t *Tree[V]) Remove(min, max spindex.Point, match func(V) bool) (V, bool) {
	var zero V
	key, err := spindex.NewBox(min, max, t.dims)
	if err != nil {
		return zero, false
	}
	return t.remove(key, func(e *entry[V]) bool {
		return e.box.Equal(key) && (match == nil || match(e.value))
	})
}

// RemovePoint deletes one entry with a point key.
func (t *Tree[V]) RemovePoint(p spindex.Point, match func(V) bool) (V, bool) {
	return t.Remove(p, p, match)
}

// remove finds one leaf entry accepted by take, deletes it, condenses
// the tree and reinserts the detached orphans.
func (t *Tree[V]) remove(key spindex.Box, take func(*entry[V]) bool) (V, bool) {
	var zero V
	var orphans []orphan[V]

	value, ok := t.removeIn(t.root, key, take, &orphans)
	if !ok {
		return zero, false
	}
	t.size--

	for _, o := range orphans {
		t.insertAtLevel(o.e, o.level, &reinsertState{})
	}

	// a root with a single child is replaced by that child
	for t.root.level > 0 && len(t.root.entries) == 1 {
		t.root = t.root.entries[0].child
	}
	return value, true
}

// removeIn searches every subtree whose MBR contains the key. On the
// way back up it tightens MBRs and detaches nodes that fell below the
// minimum fill, saving their entries for reinsertion.
func (t *Tree[V]) removeIn(n *node[V], key spindex.Box, take func(*entry[V]) bool, orphans *[]orphan[V]) (V, bool) {
	var zero V
	if n.isLeaf() {
		for i := range n.entries {
			if take(&n.entries[i]) {
				value := n.entries[i].value
				n.entries = append(n.entries[:i], n.entries[i+1:]...)
				return value, true
			}
		}
		return zero, false
	}

	for i := range n.entries {
		if !n.entries[i].box.ContainsBox(key) {
			continue
		}
		child := n.entries[i].child
		value, ok := t.removeIn(child, key, take, orphans)
		if !ok {
			continue
		}

		if len(child.entries) < t.opts.MinEntries {
			for _, e := range child.entries {
				*orphans = append(*orphans, orphan[V]{e: e, level: child.level})
			}
			n.entries = append(n.entries[:i], n.entries[i+1:]...)
		} else {
			n.entries[i].box = child.mbr()
		}
		return value, true
	}
	return zero, false
}

// removeStable deletes like remove but defers rebalancing: MBRs are
// tightened and empty nodes detached, while underfull nodes stay in
// place. No live entry is relocated, which keeps the queues of running
// best-first iterators exact. Used by RangedIterator.Remove.
func (t *Tree[V]) removeStable(key spindex.Box, take func(*entry[V]) bool) (V, bool) {
	var zero V
	value, ok := t.removeStableIn(t.root, key, take)
	if !ok {
		return zero, false
	}
	t.size--

	for t.root.level > 0 && len(t.root.entries) == 1 {
		t.root = t.root.entries[0].child
	}
	return value, true
}

func (t *Tree[V]) removeStableIn(n *node[V], key spindex.Box, take func(*entry[V]) bool) (V, bool) {
	var zero V
	if n.isLeaf() {
		for i := range n.entries {
			if take(&n.entries[i]) {
				value := n.entries[i].value
				n.entries = append(n.entries[:i], n.entries[i+1:]...)
				return value, true
			}
		}
		return zero, false
	}

	for i := range n.entries {
		if !n.entries[i].box.ContainsBox(key) {
			continue
		}
		child := n.entries[i].child
		value, ok := t.removeStableIn(child, key, take)
		if !ok {
			continue
		}
		if len(child.entries) == 0 {
			n.entries = append(n.entries[:i], n.entries[i+1:]...)
		} else {
			n.entries[i].box = child.mbr()
		}
		return value, true
	}
	return zero, false
}

// Update moves one matching entry from the old key to the new one by
// removing and re-inserting it.
func (t *Tree[V]) Update(oldMin, oldMax, newMin, newMax spindex.Point, match func(V) bool) (bool, error) {
	newKey, err := spindex.NewBox(newMin, newMax, t.dims)
	if err != nil {
		return false, err
	}
	value, ok := t.Remove(oldMin, oldMax, match)
	if !ok {
		return false, nil
	}
	t.insert(entry[V]{box: newKey.Clone(), value: value})
	return true, nil
}

// Get returns the value of one entry stored under the key.
func (t *Tree[V]) Get(min, max spindex.Point) (V, bool) {
	var zero V
	key, err := spindex.NewBox(min, max, t.dims)
	if err != nil {
		return zero, false
	}
	return t.find(t.root, key, nil)
}

// Contains reports whether an entry with the key exists for which match
// returns true (nil matches any).
func (t *Tree[V]) Contains(min, max spindex.Point, match func(V) bool) bool {
	key, err := spindex.NewBox(min, max, t.dims)
	if err != nil {
		return false
	}
	_, ok := t.find(t.root, key, match)
	return ok
}

func (t *Tree[V]) find(n *node[V], key spindex.Box, match func(V) bool) (V, bool) {
	var zero V
	if n.isLeaf() {
		for i := range n.entries {
			if n.entries[i].box.Equal(key) && (match == nil || match(n.entries[i].value)) {
				return n.entries[i].value, true
			}
		}
		return zero, false
	}

	for i := range n.entries {
		if n.entries[i].box.ContainsBox(key) {
			if v, ok := t.find(n.entries[i].child, key, match); ok {
				return v, true
			}
		}
	}
	return zero, false
}
