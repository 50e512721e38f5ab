package main

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/akrasenkov/ascbtree/btree"
	btcli "github.com/akrasenkov/ascbtree/cli"

	_ "github.com/joho/godotenv/autoload"

	"github.com/carlmjohnson/versioninfo"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	app := cli.App{
		Name:     "ascbtree",
		Writer:   out,
		Usage:    "in-memory B-tree playground",
		Version:  versioninfo.Short(),
		Flags:    globalFlags,
		Before:   setup,
		Action:   runRepl,
		Metadata: map[string]interface{}{},
	}
	app.Commands = []*cli.Command{
		cmdRepl,
		cmdDemo,
		cmdRender,
		cmdSeed,
	}
	return app.Run(args)
}

var cmdRepl = &cli.Command{
	Name:   "repl",
	Usage:  "interactive session over an empty tree (default)",
	Action: runRepl,
}

var cmdDemo = &cli.Command{
	Name:  "demo",
	Usage: "run the scripted numeric and symbolic scenarios, failing on the first broken expectation",
	Action: func(cctx *cli.Context) error {
		return btcli.RunDemo(cctx.App.Writer)
	},
}

var cmdRender = &cli.Command{
	Name:      "render",
	Usage:     "build a tree from the given keys and print it",
	ArgsUsage: "<key>...",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "output format: text or dot",
			Value:   "dot",
		},
	},
	Action: runRender,
}

var cmdSeed = &cli.Command{
	Name:  "seed",
	Usage: "insert random keys, then report the tree shape and check its invariants",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "records",
			Usage: "amount of random keys to insert",
			Value: 1000,
		},
		&cli.BoolFlag{
			Name:  "print",
			Usage: "print the seeded tree",
		},
	},
	Action: runSeed,
}

func runRepl(cctx *cli.Context) error {
	scanner := bufio.NewScanner(os.Stdin)
	if getConfig(cctx).keys == "string" {
		return btcli.NewCli(scanner, cctx.App.Writer, btree.NewBTree[string](), btcli.StringKeys).Start()
	}
	return btcli.NewCli(scanner, cctx.App.Writer, btree.NewBTree[int](), btcli.IntKeys).Start()
}

func runRender(cctx *cli.Context) error {
	format := strings.ToLower(cctx.String("format"))
	if getConfig(cctx).keys == "string" {
		return renderKeys(cctx, btcli.StringKeys, format)
	}
	return renderKeys(cctx, btcli.IntKeys, format)
}

func renderKeys[K cmp.Ordered](cctx *cli.Context, keys btcli.Keys[K], format string) error {
	tree := btree.NewBTree[K]()
	for _, arg := range cctx.Args().Slice() {
		k, err := keys.Parse(arg)
		if err != nil {
			return fmt.Errorf("bad %s key %q: %w", keys.Name, arg, err)
		}
		if err := tree.Insert(k); err != nil {
			return err
		}
	}
	out, err := btcli.Render(tree, format)
	if err != nil {
		return err
	}
	fmt.Fprint(cctx.App.Writer, out)
	return nil
}

func runSeed(cctx *cli.Context) error {
	if getConfig(cctx).keys == "string" {
		return seedKeys(cctx, btcli.StringKeys)
	}
	return seedKeys(cctx, btcli.IntKeys)
}

func seedKeys[K cmp.Ordered](cctx *cli.Context, keys btcli.Keys[K]) error {
	n := cctx.Int("records")
	if n < 0 {
		return fmt.Errorf("records must not be negative, got %d", n)
	}
	tree := btree.NewBTree[K]()
	if err := btcli.Seed(tree, keys, n); err != nil {
		return err
	}
	if cctx.Bool("print") {
		fmt.Fprintln(cctx.App.Writer, (&btree.Visualizer[K]{Tree: tree}).Visualize())
	}
	fmt.Fprintf(cctx.App.Writer, "seeded %d %s keys: height=%d len=%d\n", n, keys.Name, tree.Height(), tree.Len())
	if err := tree.Verify(); err != nil {
		return err
	}
	fmt.Fprintln(cctx.App.Writer, "invariants hold")
	return nil
}
