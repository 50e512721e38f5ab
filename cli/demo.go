package cli

import (
	"fmt"
	"io"

	"github.com/akrasenkov/ascbtree/btree"
)

// scenario is a scripted run: insert keys, check membership, delete, check again.
type scenario[K any] struct {
	name    string
	insert  []K
	present []K
	absent  []K
	remove  []K
}

var numericScenario = scenario[int]{
	name:    "numeric",
	insert:  []int{1, 2, 3, 4, 17, 31, 7, 9, 13, 16, 11, 19, 26, 27, 96, 97, 99, 0, 15, 28, 70, 71, 72, 73, 100, 101, -3, -6, -5},
	present: []int{4, 11, -6},
	absent:  []int{89, 1000, -666, 5},
	remove:  []int{4, 11},
}

var symbolicScenario = scenario[string]{
	name:    "symbolic",
	insert:  []string{"T", "X", "A", "B", "J", "K", "L", "N", "R", "V", "Z"},
	present: []string{"X", "A", "Z"},
	absent:  []string{"q", "Q", "P"},
	remove:  []string{"A", "R"},
}

// RunDemo runs the numeric and symbolic scenarios, printing each final tree as a digraph.
// It stops at the first failed expectation.
func RunDemo(out io.Writer) error {
	if err := runScenario(out, btree.NewBTree[int](), numericScenario); err != nil {
		return err
	}
	fmt.Fprintln(out)
	return runScenario(out, btree.NewBTree[string](), symbolicScenario)
}

func check(ok bool, format string, args ...any) error {
	if !ok {
		return fmt.Errorf(format, args...)
	}
	return nil
}

func runScenario[K any](out io.Writer, tree *btree.Btree[K], s scenario[K]) error {
	if err := tree.InsertAll(s.insert...); err != nil {
		return fmt.Errorf("%s: %w", s.name, err)
	}
	for _, k := range s.present {
		found, err := tree.Find(k)
		if err != nil {
			return err
		}
		if err := check(found, "%s: key exists, but not found: %v", s.name, k); err != nil {
			return err
		}
	}
	for _, k := range s.absent {
		found, err := tree.Find(k)
		if err != nil {
			return err
		}
		if err := check(!found, "%s: key does not exist, but found: %v", s.name, k); err != nil {
			return err
		}
	}
	for _, k := range s.remove {
		if err := tree.Delete(k); err != nil {
			return err
		}
		found, err := tree.Find(k)
		if err != nil {
			return err
		}
		if err := check(!found, "%s: failed key deletion: %v", s.name, k); err != nil {
			return err
		}
	}
	if err := tree.Verify(); err != nil {
		return fmt.Errorf("%s: %w", s.name, err)
	}
	okColor.Fprintf(out, "%s scenario passed (height=%d len=%d)\n", s.name, tree.Height(), tree.Len())
	fmt.Fprint(out, tree.String())
	return nil
}
