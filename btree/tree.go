package btree

import "github.com/cockroachdb/errors"

// Insert adds key to the tree. Duplicate keys are stored as distinct entries.
func (t *Btree[K]) Insert(key K) error {
	if isNull(key) {
		return errors.Wrap(ErrInvalidArgument, "insert: null key")
	}
	t.insertEntry(newEntry(key))
	return nil
}

// InsertAll inserts keys in order, stopping at the first one rejected.
func (t *Btree[K]) InsertAll(keys ...K) error {
	for i, key := range keys {
		if err := t.Insert(key); err != nil {
			return errors.Wrapf(err, "key #%d", i)
		}
	}
	return nil
}

/*
The recursive insert reports a split only when the root itself overflowed.
The root is then replaced by the center node, which is the only way the tree grows taller.
*/
func (t *Btree[K]) insertEntry(e *entry[K]) {
	emitted, split := t.root.insert(t.cmp, e, t.height)
	if split {
		t.root = emitted.center
		t.height++
		t.log.Debug("root split", "height", t.height)
	}
	t.length++
}

// Find reports whether key is stored in the tree.
func (t *Btree[K]) Find(key K) (bool, error) {
	if isNull(key) {
		return false, errors.Wrap(ErrInvalidArgument, "find: null key")
	}
	return t.root.find(t.cmp, key), nil
}

/*
Delete removes one entry equal to key. There is no in-place rebalancing:
every remaining entry is gathered, the old nodes are dropped and a fresh tree
is built by ordinary inserts. Deleting an absent key succeeds and changes nothing.
*/
func (t *Btree[K]) Delete(key K) error {
	if isNull(key) {
		return errors.Wrap(ErrInvalidArgument, "delete: null key")
	}

	entries := t.root.collect(make([]*entry[K], 0, t.length))
	idx := -1
	for i, e := range entries {
		if t.cmp(e.key, key) == 0 {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	entries = append(entries[:idx], entries[idx+1:]...)

	t.root = &node[K]{}
	t.height = 0
	t.length = 0
	for _, e := range entries {
		t.insertEntry(e)
	}
	t.log.Debug("rebuilt after delete", "entries", len(entries), "height", t.height)
	return nil
}

// Height returns the number of edges from the root to a leaf.
func (t *Btree[K]) Height() int {
	return t.height
}

// Len returns the number of stored entries, duplicates included.
func (t *Btree[K]) Len() int {
	return t.length
}

// Keys returns every stored key in node order: a node's own keys, then each child subtree.
// The result is not sorted.
func (t *Btree[K]) Keys() []K {
	entries := t.root.collect(make([]*entry[K], 0, t.length))
	keys := make([]K, len(entries))
	for i, e := range entries {
		keys[i] = e.key
	}
	return keys
}

func (t *Btree[K]) String() string {
	v := &Visualizer[K]{Tree: t}
	return v.Dot()
}
