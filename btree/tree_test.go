package btree

import (
	"bytes"
	"cmp"
	"log/slog"
	"math/rand"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scenarioKeys = []int{1, 2, 3, 4, 17, 31, 7, 9, 13, 16, 11, 19, 26, 27, 96, 97, 99, 0, 15, 28, 70, 71, 72, 73, 100, 101, -3, -6, -5}

func mustFind[K any](t *testing.T, tree *Btree[K], key K) bool {
	t.Helper()
	found, err := tree.Find(key)
	require.NoError(t, err)
	return found
}

func TestEmptyTree(t *testing.T) {
	tree := NewBTree[int]()
	assert.False(t, mustFind(t, tree, 0))
	assert.Equal(t, 0, tree.Height())
	assert.Equal(t, 0, tree.Len())
	assert.Empty(t, tree.Keys())
	assert.NoError(t, tree.Verify())
	assert.NoError(t, tree.Delete(42))
}

func TestScenario(t *testing.T) {
	tree := NewBTree[int]()
	require.NoError(t, tree.InsertAll(scenarioKeys...))
	require.NoError(t, tree.Verify())
	assert.Equal(t, len(scenarioKeys), tree.Len())

	for _, k := range []int{4, 11, -6} {
		assert.True(t, mustFind(t, tree, k), "key %d", k)
	}
	for _, k := range []int{89, 1000, -666, 5} {
		assert.False(t, mustFind(t, tree, k), "key %d", k)
	}

	require.NoError(t, tree.Delete(4))
	require.NoError(t, tree.Delete(11))
	require.NoError(t, tree.Verify())

	assert.False(t, mustFind(t, tree, 4))
	assert.False(t, mustFind(t, tree, 11))
	assert.True(t, mustFind(t, tree, 1))
	assert.True(t, mustFind(t, tree, -6))
	assert.Equal(t, len(scenarioKeys)-2, tree.Len())
}

func TestSplitGrowsHeight(t *testing.T) {
	tree := NewBTree[int]()
	for k := 1; k < maxItems; k++ {
		require.NoError(t, tree.Insert(k))
		assert.Equal(t, 0, tree.Height())
	}

	// the 2t-th key fills the root, which splits before Insert returns
	require.NoError(t, tree.Insert(maxItems))
	assert.Equal(t, 1, tree.Height())

	require.NoError(t, tree.Insert(maxItems+1))
	require.NoError(t, tree.Verify())

	root := tree.root
	assert.Equal(t, 1, tree.Height())
	require.Equal(t, 1, root.numItems)
	assert.Equal(t, 4, root.items[0].key)
	require.Equal(t, 2, root.numChildren)
	assert.Equal(t, maxItems, root.children[0].numItems+root.children[1].numItems)
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	keys := rng.Perm(1000)

	tree := NewBTree[int]()
	for _, k := range keys {
		require.NoError(t, tree.Insert(2*k))
	}
	require.NoError(t, tree.Verify())
	assert.Equal(t, len(keys), tree.Len())
	assert.Greater(t, tree.Height(), 2)

	for _, k := range keys {
		assert.True(t, mustFind(t, tree, 2*k), "inserted key %d", 2*k)
		assert.False(t, mustFind(t, tree, 2*k+1), "absent key %d", 2*k+1)
	}
	assert.False(t, mustFind(t, tree, -1))
	assert.ElementsMatch(t, func() []int {
		out := make([]int, len(keys))
		for i, k := range keys {
			out[i] = 2 * k
		}
		return out
	}(), tree.Keys())
}

func TestOrderingAfterEveryInsert(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	tree := NewBTree[int]()
	for i := 0; i < 300; i++ {
		require.NoError(t, tree.Insert(rng.Intn(10000)))
		require.NoError(t, tree.Verify(), "after insert #%d", i)
	}
}

func TestOrderingWithManyDuplicates(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	tree := NewBTree[int]()
	counts := map[int]int{}
	for i := 0; i < 400; i++ {
		k := rng.Intn(6)
		counts[k]++
		require.NoError(t, tree.Insert(k))
		require.NoError(t, tree.Verify(), "after insert #%d", i)
	}
	for k := 0; k < 6; k++ {
		assert.True(t, mustFind(t, tree, k))
	}

	for i := 0; i < 100; i++ {
		k := rng.Intn(6)
		require.NoError(t, tree.Delete(k))
		if counts[k] > 0 {
			counts[k]--
		}
		require.NoError(t, tree.Verify())
		assert.Equal(t, counts[k] > 0, mustFind(t, tree, k), "key %d", k)
	}
}

func TestDelete(t *testing.T) {
	keys := rand.New(rand.NewSource(3)).Perm(60)
	tree := NewBTree[int]()
	require.NoError(t, tree.InsertAll(keys...))

	for i, k := range keys {
		require.NoError(t, tree.Delete(k))
		require.NoError(t, tree.Verify())
		assert.False(t, mustFind(t, tree, k), "deleted key %d", k)
		for _, j := range keys[i+1:] {
			assert.True(t, mustFind(t, tree, j), "key %d lost after deleting %d", j, k)
		}
		assert.Equal(t, len(keys)-i-1, tree.Len())
	}
	assert.Equal(t, 0, tree.Height())
}

func TestDeleteAbsentKey(t *testing.T) {
	tree := NewBTree[int]()
	require.NoError(t, tree.InsertAll(scenarioKeys...))
	before := tree.Keys()
	height := tree.Height()

	require.NoError(t, tree.Delete(5))
	require.NoError(t, tree.Delete(-1000))

	assert.Equal(t, before, tree.Keys())
	assert.Equal(t, height, tree.Height())
	assert.Equal(t, len(scenarioKeys), tree.Len())
}

func TestNullKeys(t *testing.T) {
	byValue := func(a, b *int) int { return cmp.Compare(*a, *b) }
	tree := NewBTreeFunc[*int](byValue)
	one, two := 1, 2
	require.NoError(t, tree.InsertAll(&one, &two))
	keys := tree.Keys()

	err := tree.Insert(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = tree.Find(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	err = tree.Delete(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	assert.Equal(t, keys, tree.Keys())
	assert.Equal(t, 2, tree.Len())
	assert.True(t, mustFind(t, tree, &two))

	err = tree.InsertAll(&one, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, 3, tree.Len(), "keys before the rejected one are kept")
}

func TestNilByteSliceIsNull(t *testing.T) {
	tree := NewBTreeFunc[[]byte](bytes.Compare)
	assert.ErrorIs(t, tree.Insert(nil), ErrInvalidArgument)
	assert.NoError(t, tree.Insert([]byte{}))
	assert.NoError(t, tree.Insert([]byte("k")))
	assert.True(t, mustFind(t, tree, []byte{}))
	assert.True(t, mustFind(t, tree, []byte("k")))
}

func TestDuplicateKeys(t *testing.T) {
	tree := NewBTree[int]()
	for i := 0; i < 8; i++ {
		require.NoError(t, tree.Insert(5))
	}
	require.NoError(t, tree.Insert(3))
	require.NoError(t, tree.Verify())
	assert.Equal(t, 9, tree.Len())
	assert.True(t, mustFind(t, tree, 5))

	// each delete removes a single occurrence
	for i := 7; i >= 0; i-- {
		require.NoError(t, tree.Delete(5))
		assert.Equal(t, i > 0, mustFind(t, tree, 5))
		require.NoError(t, tree.Verify())
	}
	assert.True(t, mustFind(t, tree, 3))
	assert.Equal(t, 1, tree.Len())
}

func TestSymbolicKeys(t *testing.T) {
	tree := NewBTree[string]()
	require.NoError(t, tree.InsertAll(strings.Split("T X A B J K L N R V Z", " ")...))
	require.NoError(t, tree.Verify())

	for _, k := range []string{"X", "A", "Z"} {
		assert.True(t, mustFind(t, tree, k), k)
	}
	for _, k := range []string{"q", "Q", "P"} {
		assert.False(t, mustFind(t, tree, k), k)
	}
	for _, k := range []string{"A", "R"} {
		require.NoError(t, tree.Delete(k))
		assert.False(t, mustFind(t, tree, k), k)
	}
	assert.True(t, mustFind(t, tree, "T"))
}

func TestCustomOrder(t *testing.T) {
	desc := func(a, b int) int { return cmp.Compare(b, a) }
	tree := NewBTreeFunc[int](desc)
	for k := 0; k < 50; k++ {
		require.NoError(t, tree.Insert(k))
	}
	require.NoError(t, tree.Verify())
	for k := 0; k < 50; k++ {
		assert.True(t, mustFind(t, tree, k))
	}
	assert.False(t, mustFind(t, tree, 50))

	// the first key of the leftmost leaf is the largest under a descending order
	n := tree.root
	for !n.isLeaf() {
		n = n.children[0]
	}
	assert.Equal(t, 49, n.items[0].key)
}

func TestVerifyDetectsCorruption(t *testing.T) {
	tree := NewBTree[int]()
	require.NoError(t, tree.InsertAll(scenarioKeys...))
	require.NoError(t, tree.Verify())

	leaf := tree.root
	for !leaf.isLeaf() {
		leaf = leaf.children[0]
	}
	leaf.items[0], leaf.items[1] = leaf.items[1], leaf.items[0]

	err := tree.Verify()
	require.Error(t, err)
	assert.True(t, errors.IsAssertionFailure(err))
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	tree := NewBTree[int](WithLogger(logger))

	require.NoError(t, tree.InsertAll(1, 2, 3, 4, 5, 6))
	assert.Contains(t, buf.String(), "root split")
	assert.Contains(t, buf.String(), "height=1")

	require.NoError(t, tree.Delete(6))
	assert.Contains(t, buf.String(), "rebuilt after delete")
	assert.Contains(t, buf.String(), "entries=5")
}

func TestTreeInterface(t *testing.T) {
	var tr Tree[string] = NewBTree[string]()
	require.NoError(t, tr.Insert("a"))
	found, err := tr.Find("a")
	require.NoError(t, err)
	assert.True(t, found)
	require.NoError(t, tr.Delete("a"))
	found, err = tr.Find("a")
	require.NoError(t, err)
	assert.False(t, found)
}
