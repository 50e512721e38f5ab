package btree

import (
	"cmp"
	"log/slog"

	"github.com/cockroachdb/errors"
)

const (
	degree      = 3            // branching factor t
	maxItems    = 2 * degree   // 6, a node holding this many entries overflows and must split
	maxChildren = maxItems + 1 // 7
)

// ErrInvalidArgument is returned for null keys. The tree is never mutated when it is returned.
var ErrInvalidArgument = errors.New("invalid argument")

// Compare defines a total order over keys: negative when a < b, zero when equal, positive when a > b.
type Compare[K any] func(a, b K) int

// Tree is what drivers need from an ordered container.
type Tree[K any] interface {
	Insert(key K) error
	Find(key K) (bool, error)
	Delete(key K) error
}

/*
Btree keeps a pointer to the root node and the current height (0 = root is a leaf).
The root is replaced, and height grows by one, only when the root itself splits.
Not safe for concurrent use.
*/
type Btree[K any] struct {
	root   *node[K]
	height int
	length int
	cmp    Compare[K]
	log    *slog.Logger
}

type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for debug events (root splits, delete rebuilds).
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// NewBTree returns an empty tree over naturally ordered keys.
func NewBTree[K cmp.Ordered](opts ...Option) *Btree[K] {
	return NewBTreeFunc[K](cmp.Compare[K], opts...)
}

// NewBTreeFunc returns an empty tree ordered by c.
func NewBTreeFunc[K any](c Compare[K], opts ...Option) *Btree[K] {
	if c == nil {
		panic("btree: nil Compare")
	}
	o := options{logger: slog.Default().With("system", "btree")}
	for _, opt := range opts {
		opt(&o)
	}
	return &Btree[K]{
		root: &node[K]{},
		cmp:  c,
		log:  o.logger,
	}
}

var _ Tree[int] = (*Btree[int])(nil)
