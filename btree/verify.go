package btree

import "github.com/cockroachdb/errors"

/*
Verify walks the whole tree and returns the first broken invariant:
  - occupancy: no node is left overflowing, only the root may be empty, and no slot past a counter holds a reference
  - shape: an internal node has exactly one more child than entries, and every leaf sits at depth Height()
  - ordering: entries ascend within a node and every key under children[i] lies between items[i-1] and items[i]
  - Len() matches the number of stored entries

Equal keys are tolerated because Insert does not reject duplicates.
*/
func (t *Btree[K]) Verify() error {
	count, err := t.verifyNode(t.root, 0, nil, nil)
	if err != nil {
		return err
	}
	if count != t.length {
		return errors.AssertionFailedf("btree: %d entries stored, length says %d", count, t.length)
	}
	return nil
}

func (t *Btree[K]) verifyNode(n *node[K], depth int, lo, hi *entry[K]) (int, error) {
	if n == nil {
		return 0, errors.AssertionFailedf("btree: nil node at depth %d", depth)
	}
	if n.numItems < 0 || n.numItems >= maxItems {
		return 0, errors.AssertionFailedf("btree: node at depth %d holds %d entries", depth, n.numItems)
	}
	if n.numItems == 0 && depth > 0 {
		return 0, errors.AssertionFailedf("btree: empty non-root node at depth %d", depth)
	}
	for i := n.numItems; i < maxItems; i++ {
		if n.items[i] != nil {
			return 0, errors.AssertionFailedf("btree: stale entry in slot %d at depth %d", i, depth)
		}
	}
	for i := n.numChildren; i < maxChildren; i++ {
		if n.children[i] != nil {
			return 0, errors.AssertionFailedf("btree: stale child in slot %d at depth %d", i, depth)
		}
	}

	for i := 0; i < n.numItems; i++ {
		e := n.items[i]
		if e == nil {
			return 0, errors.AssertionFailedf("btree: missing entry in slot %d at depth %d", i, depth)
		}
		if i > 0 && t.cmp(n.items[i-1].key, e.key) > 0 {
			return 0, errors.AssertionFailedf("btree: entries out of order at depth %d, slot %d", depth, i)
		}
		if lo != nil && t.cmp(e.key, lo.key) < 0 {
			return 0, errors.AssertionFailedf("btree: entry in slot %d at depth %d is below its separator", i, depth)
		}
		if hi != nil && t.cmp(e.key, hi.key) > 0 {
			return 0, errors.AssertionFailedf("btree: entry in slot %d at depth %d is above its separator", i, depth)
		}
	}

	if n.isLeaf() {
		if depth != t.height {
			return 0, errors.AssertionFailedf("btree: leaf at depth %d, height is %d", depth, t.height)
		}
		return n.numItems, nil
	}
	if n.numChildren != n.numItems+1 {
		return 0, errors.AssertionFailedf("btree: node at depth %d has %d entries and %d children",
			depth, n.numItems, n.numChildren)
	}

	count := n.numItems
	for i := 0; i < n.numChildren; i++ {
		childLo, childHi := lo, hi
		if i > 0 {
			childLo = n.items[i-1]
		}
		if i < n.numItems {
			childHi = n.items[i]
		}
		c, err := t.verifyNode(n.children[i], depth+1, childLo, childHi)
		if err != nil {
			return 0, err
		}
		count += c
	}
	return count, nil
}
