package btree

import "github.com/cockroachdb/errors"

type node[K any] struct {
	// fixed-size arrays plus explicit counters; slots at or beyond the counters are always nil.
	items       [maxItems]*entry[K]
	children    [maxChildren]*node[K]
	numItems    int
	numChildren int
}

func (n *node[K]) isLeaf() bool {
	return n.numChildren == 0
}

func (n *node[K]) isOverflowing() bool {
	return n.numItems == maxItems
}

/*
insertPositionFor returns the first index whose key is strictly greater than key,
or numItems if there is none. This is both where a new entry goes and which child
subtree must hold key during descent. Equal keys therefore sort to the right.
A linear scan is enough for a fan-out this small.
*/
func (n *node[K]) insertPositionFor(c Compare[K], key K) int {
	for i := 0; i < n.numItems; i++ {
		if c(n.items[i].key, key) > 0 {
			return i
		}
	}
	return n.numItems
}

// helper method to insert an entry at an arbitrary position, shifting the tail right by one slot
func (n *node[K]) insertItemAt(pos int, e *entry[K]) {
	if n.numItems >= maxItems || pos < 0 || pos > n.numItems {
		panic(errors.AssertionFailedf("btree: item insert at %d with %d of %d slots used", pos, n.numItems, maxItems))
	}
	if pos < n.numItems {
		copy(n.items[pos+1:n.numItems+1], n.items[pos:n.numItems])
	}
	n.items[pos] = e
	n.numItems++
}

/*
installSplit replaces the child at pos with the two halves of its split.
left is the old child mutated in place, so only right needs a fresh slot.
*/
func (n *node[K]) installSplit(pos int, left, right *node[K]) {
	if n.numChildren >= maxChildren || pos < 0 || pos >= n.numChildren {
		panic(errors.AssertionFailedf("btree: child split at %d with %d of %d slots used", pos, n.numChildren, maxChildren))
	}
	copy(n.children[pos+2:n.numChildren+1], n.children[pos+1:n.numChildren])
	n.children[pos] = left
	n.children[pos+1] = right
	n.numChildren++
}

// truncate drops the references held beyond the occupancy counters.
func (n *node[K]) truncate() {
	clear(n.items[n.numItems:])
	clear(n.children[n.numChildren:])
}

// splitResult is the result of an overflowing node being divided.
// center holds the promoted median as its only entry, with left and right as its two children.
type splitResult[K any] struct {
	left, center, right *node[K]
}

/*
split divides an overflowing node. With mid = numItems/2, entry mid moves up,
entries after it (and the trailing children) move to a new right node, and n keeps
the first mid entries and mid+1 children.
*/
func (n *node[K]) split() splitResult[K] {
	mid := n.numItems / 2
	median := n.items[mid]

	right := &node[K]{}
	right.numItems = copy(right.items[:], n.items[mid+1:n.numItems])
	if !n.isLeaf() {
		right.numChildren = copy(right.children[:], n.children[mid+1:n.numChildren])
	}

	n.numItems = mid
	if !n.isLeaf() {
		n.numChildren = mid + 1
	}
	n.truncate()

	if !n.isLeaf() && (n.numChildren != n.numItems+1 || right.numChildren != right.numItems+1) {
		panic(errors.AssertionFailedf("btree: split produced %d/%d and %d/%d items/children",
			n.numItems, n.numChildren, right.numItems, right.numChildren))
	}

	center := &node[K]{}
	center.items[0] = median
	center.children[0] = n
	center.children[1] = right
	center.numItems = 1
	center.numChildren = 2

	return splitResult[K]{left: n, center: center, right: right}
}

/*
insert places e in the subtree rooted at n. levels is the number of edges left to the leaf level.
The returned split is valid only when ok is true: n overflowed and the caller must absorb
the median and the new right sibling (or make center the new root).
*/
func (n *node[K]) insert(c Compare[K], e *entry[K], levels int) (s splitResult[K], ok bool) {
	pos := n.insertPositionFor(c, e.key)

	if levels > 0 {
		if n.isLeaf() || n.numChildren != n.numItems+1 {
			panic(errors.AssertionFailedf("btree: internal node with %d items and %d children", n.numItems, n.numChildren))
		}
		emitted, didSplit := n.children[pos].insert(c, e, levels-1)
		if !didSplit {
			return s, false
		}
		// The median, not the original entry, is what this level absorbs. It came out of
		// children[pos], so items[pos-1] <= median <= items[pos]: pos is its slot even among equal keys.
		e = emitted.center.items[0]
		n.installSplit(pos, emitted.left, emitted.right)
	}

	n.insertItemAt(pos, e)

	if n.isOverflowing() {
		return n.split(), true
	}
	return s, false
}

// find reports whether key is stored in the subtree rooted at n.
func (n *node[K]) find(c Compare[K], key K) bool {
	if n == nil || n.numItems == 0 {
		return false
	}
	for i := 0; i < n.numItems; i++ {
		switch cmp := c(key, n.items[i].key); {
		case cmp == 0:
			return true
		case cmp < 0:
			if n.isLeaf() {
				return false
			}
			// Keys under children after i are >= items[i] > key, so this is the only candidate.
			return n.children[i].find(c, key)
		}
	}
	if n.isLeaf() {
		return false
	}
	return n.children[n.numItems].find(c, key)
}

// collect appends the node's own entries, then those of each child subtree in order.
func (n *node[K]) collect(dst []*entry[K]) []*entry[K] {
	dst = append(dst, n.items[:n.numItems]...)
	for _, child := range n.children[:n.numChildren] {
		dst = child.collect(dst)
	}
	return dst
}
