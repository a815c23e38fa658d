package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/stagit-go/internal/build"
	"github.com/masmgr/stagit-go/internal/output"
)

// IndexCmd creates the index command for the multi-repository listing.
func IndexCmd() *cli.Command {
	return &cli.Command{
		Name:      "index",
		Usage:     "Write an index page for several repositories to stdout",
		ArgsUsage: "[-c category] <repository path>... [-c category <repository path>...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "category",
				Aliases: []string{"c"},
				Usage:   "Category heading for the repositories that follow",
			},
			&cli.StringFlag{
				Name:  "title",
				Usage: "Page title (default: from config)",
			},
			&cli.StringFlag{
				Name:  "assets",
				Usage: "URL prefix of style.css, logo.png and favicon.png",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: stdout)",
			},
		},
		Action: indexAction,
	}
}

// indexArg is either a category heading or a repository path.
type indexArg struct {
	category string
	repo     string
}

// parseIndexArgs splits positional arguments, where "-c NAME" may appear
// between repository paths.
func parseIndexArgs(first string, args []string) ([]indexArg, error) {
	var out []indexArg
	if first != "" {
		out = append(out, indexArg{category: first})
	}
	for i := 0; i < len(args); i++ {
		if args[i] == "-c" || args[i] == "--category" {
			i++
			if i == len(args) {
				return nil, errors.New("missing argument for -c")
			}
			out = append(out, indexArg{category: args[i]})
			continue
		}
		out = append(out, indexArg{repo: args[i]})
	}
	return out, nil
}

func indexAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	args, err := parseIndexArgs(c.String("category"), c.Args().Slice())
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ShowSubcommandHelp(c)
	}

	title := cfg.Index.Description
	if c.IsSet("title") {
		title = c.String("title")
	}

	items, failed := collectIndex(args, os.Stderr)

	var w io.Writer = os.Stdout
	if path := c.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	bw := bufio.NewWriter(w)
	if err := output.WriteIndex(bw, items, output.IndexOptions{Title: title, AssetsPath: cfg.Render.AssetsPath}); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d repositor%s could not be opened", failed, pluralY(failed))
	}
	return nil
}

// collectIndex reads every repository. Repositories that cannot be opened
// are reported on errOut and left out of the index.
func collectIndex(args []indexArg, errOut io.Writer) ([]output.IndexItem, int) {
	var items []output.IndexItem
	failed := 0
	for _, arg := range args {
		if arg.repo == "" {
			items = append(items, output.IndexItem{Category: arg.category})
			continue
		}
		entry, err := build.IndexEntry(arg.repo)
		if err != nil {
			fmt.Fprintln(errOut, color.RedString("%s: cannot open repository: %v", arg.repo, err))
			failed++
			continue
		}
		items = append(items, output.IndexItem{Repo: entry})
	}
	return items, failed
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
