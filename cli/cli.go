package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/akrasenkov/ascbtree/btree"
	"github.com/fatih/color"
)

var (
	promptColor = color.New(color.FgYellow)
	errorColor  = color.New(color.FgRed)
	okColor     = color.New(color.FgGreen)
)

type Cli[K any] struct {
	scanner    *bufio.Scanner
	out        io.Writer
	tree       *btree.Btree[K]
	visualizer *btree.Visualizer[K]
	keys       Keys[K]
	log        *slog.Logger
}

func NewCli[K any](s *bufio.Scanner, out io.Writer, t *btree.Btree[K], keys Keys[K]) *Cli[K] {
	v := &btree.Visualizer[K]{
		Tree: t,
	}
	return &Cli[K]{
		scanner:    s,
		out:        out,
		tree:       t,
		visualizer: v,
		keys:       keys,
		log:        slog.Default().With("system", "repl"),
	}
}

// Start reads commands until EXIT or end of input.
func (c *Cli[K]) Start() error {
	c.printHelp()
	c.printPrompt()
	for c.scanner.Scan() {
		if !c.processInput(c.scanner.Text()) {
			return nil
		}
		c.printPrompt()
	}
	return c.scanner.Err()
}

func (c *Cli[K]) printHelp() {
	fmt.Fprintf(c.out, `
B-Tree CLI (%s keys)

Available Commands:
  INSERT <key>...        Insert one or more keys into the B-Tree
  FIND <key>             Report whether key is stored in the B-Tree
  DEL <key>              Remove one occurrence of key from the B-Tree
  RENDER [text|dot]      Print the B-Tree as an indented tree or a Graphviz digraph
  SEED <n>               Insert n random keys
  HELP                   Show this message
  EXIT                   Terminate this session
`, c.keys.Name)
}

func (c *Cli[K]) printPrompt() {
	promptColor.Fprint(c.out, "> ")
}

func (c *Cli[K]) printError(err error) {
	errorColor.Fprintf(c.out, "error: %v\n", err)
}

// processInput runs one command line and reports whether the session goes on.
func (c *Cli[K]) processInput(line string) bool {
	fields := strings.Fields(line)
	if len(fields) < 1 {
		return true
	}
	command := strings.ToLower(fields[0])
	c.log.Debug("command", "name", command, "args", len(fields)-1)
	switch command {
	default:
		fmt.Fprintf(c.out, "Unknown command \"%s\"\n", command)
	case "insert", "add", "set":
		c.processInsertCommand(fields[1:])
	case "del", "delete":
		c.processDeleteCommand(fields[1:])
	case "find", "get":
		c.processFindCommand(fields[1:])
	case "render":
		c.processRenderCommand(fields[1:])
	case "seed":
		c.processSeedCommand(fields[1:])
	case "help":
		c.printHelp()
	case "exit", "quit":
		return false
	}
	return true
}

func (c *Cli[K]) parseKeys(args []string) ([]K, error) {
	keys := make([]K, 0, len(args))
	for _, arg := range args {
		k, err := c.keys.Parse(arg)
		if err != nil {
			return nil, fmt.Errorf("bad %s key %q: %w", c.keys.Name, arg, err)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func (c *Cli[K]) processInsertCommand(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.out, "Usage: INSERT <key>...")
		return
	}
	keys, err := c.parseKeys(args)
	if err != nil {
		c.printError(err)
		return
	}
	if err := c.tree.InsertAll(keys...); err != nil {
		c.printError(err)
		return
	}
	fmt.Fprintln(c.out, c.visualizer.Visualize())
}

func (c *Cli[K]) processDeleteCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: DEL <key>")
		return
	}
	keys, err := c.parseKeys(args)
	if err != nil {
		c.printError(err)
		return
	}
	found, err := c.tree.Find(keys[0])
	if err != nil {
		c.printError(err)
		return
	}
	if !found {
		fmt.Fprintln(c.out, "Key not found.")
		return
	}
	if err := c.tree.Delete(keys[0]); err != nil {
		c.printError(err)
		return
	}
	fmt.Fprintln(c.out, c.visualizer.Visualize())
}

func (c *Cli[K]) processFindCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: FIND <key>")
		return
	}
	keys, err := c.parseKeys(args)
	if err != nil {
		c.printError(err)
		return
	}
	found, err := c.tree.Find(keys[0])
	if err != nil {
		c.printError(err)
		return
	}
	if !found {
		fmt.Fprintln(c.out, "Key not found.")
		return
	}
	okColor.Fprintln(c.out, "Found.")
}

func (c *Cli[K]) processRenderCommand(args []string) {
	format := "text"
	if len(args) > 0 {
		format = strings.ToLower(args[0])
	}
	out, err := Render(c.tree, format)
	if err != nil {
		c.printError(err)
		return
	}
	fmt.Fprint(c.out, out)
}

func (c *Cli[K]) processSeedCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: SEED <n>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		c.printError(fmt.Errorf("bad record count %q", args[0]))
		return
	}
	if err := Seed(c.tree, c.keys, n); err != nil {
		c.printError(err)
		return
	}
	fmt.Fprintln(c.out, c.visualizer.Visualize())
}
