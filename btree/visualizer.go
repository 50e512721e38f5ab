package btree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/xlab/treeprint"
)

// Visualizer renders a tree for debugging. None of its output formats are stable.
type Visualizer[K any] struct {
	Tree *Btree[K]
}

var (
	internalColor = color.New(color.FgCyan, color.Bold)
	leafColor     = color.New(color.FgGreen)
	statsColor    = color.New(color.Faint)
)

// Dot returns a Graphviz digraph with one record-shaped node per tree node.
func (v *Visualizer[K]) Dot() string {
	var sb strings.Builder
	sb.WriteString("digraph g {\n")
	sb.WriteString("node [shape = record, height= .1];\n")
	writeDotNode(&sb, v.Tree.root, "node")
	sb.WriteString("}\n")
	return sb.String()
}

var dotEscaper = strings.NewReplacer(
	`\`, `\\`, `"`, `\"`, `|`, `\|`, `{`, `\{`, `}`, `\}`, `<`, `\<`, `>`, `\>`,
)

/*
each node is a record "<f0> |k0|<f1> |k1|<f2>" so that field fI is the
slot of child I, and edges leave from those fields.
*/
func writeDotNode[K any](sb *strings.Builder, n *node[K], name string) {
	sb.WriteString(name)
	sb.WriteString(`[label = "<f0>`)
	for i := 0; i < n.numItems; i++ {
		fmt.Fprintf(sb, " |%s|<f%d>", dotEscaper.Replace(fmt.Sprint(n.items[i].key)), i+1)
	}
	sb.WriteString("\"];\n")
	for i := 0; i < n.numChildren; i++ {
		writeDotNode(sb, n.children[i], name+"_"+strconv.Itoa(i))
	}
	for i := 0; i < n.numChildren; i++ {
		fmt.Fprintf(sb, "\"%s\":f%d -> \"%s_%d\";\n", name, i, name, i)
	}
}

func nodeLabel[K any](n *node[K]) string {
	keys := make([]string, n.numItems)
	for i := 0; i < n.numItems; i++ {
		keys[i] = fmt.Sprint(n.items[i].key)
	}
	return "[" + strings.Join(keys, " ") + "]"
}

// Text returns an indented dump of the node hierarchy.
func (v *Visualizer[K]) Text() string {
	return v.print(false)
}

// Visualize is Text with internal nodes and leaves coloured differently, followed by height and length.
func (v *Visualizer[K]) Visualize() string {
	out := v.print(true)
	stats := statsColor.Sprintf("height=%d len=%d", v.Tree.height, v.Tree.length)
	return out + stats
}

// print builds the treeprint dump, colouring internal nodes and leaves when colored is set.
func (v *Visualizer[K]) print(colored bool) string {
	label := func(n *node[K]) string {
		switch {
		case !colored:
			return nodeLabel(n)
		case n.isLeaf():
			return leafColor.Sprint(nodeLabel(n))
		default:
			return internalColor.Sprint(nodeLabel(n))
		}
	}
	root := v.Tree.root
	tree := treeprint.NewWithRoot(label(root))
	var walk func(parent treeprint.Tree, n *node[K])
	walk = func(parent treeprint.Tree, n *node[K]) {
		for _, child := range n.children[:n.numChildren] {
			if child.isLeaf() {
				parent.AddNode(label(child))
				continue
			}
			walk(parent.AddBranch(label(child)), child)
		}
	}
	walk(tree, root)
	return tree.String()
}
