package cli

import (
	"fmt"
	"log/slog"

	"github.com/akrasenkov/ascbtree/btree"
)

// Seed inserts n random keys into tree.
func Seed[K any](tree *btree.Btree[K], keys Keys[K], n int) error {
	for i := 0; i < n; i++ {
		k, err := keys.Random()
		if err != nil {
			return fmt.Errorf("generating key #%d: %w", i, err)
		}
		if err := tree.Insert(k); err != nil {
			return err
		}
	}
	slog.Default().With("system", "seed").Info("seeded tree", "records", n, "height", tree.Height(), "len", tree.Len())
	return nil
}

// Render prints tree as "text" (indented) or "dot" (Graphviz).
func Render[K any](tree *btree.Btree[K], format string) (string, error) {
	v := &btree.Visualizer[K]{Tree: tree}
	switch format {
	case "text":
		return v.Text(), nil
	case "dot":
		return v.Dot(), nil
	default:
		return "", fmt.Errorf("unknown render format %q (want text or dot)", format)
	}
}
