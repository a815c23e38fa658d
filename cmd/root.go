package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/stagit-go/internal/output"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "stagit",
		Usage:   "Static HTML pages and Atom feeds for Git repositories",
		Version: "1.0.0",
		Commands: []*cli.Command{
			BuildCmd(),
			IndexCmd(),
			WatchCmd(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log debug output to stderr",
			},
		},
		Action: legacyAction,
	}
}

// buildFlags are shared by the commands that render a repository.
func buildFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output directory (default: from config or current directory)",
		},
		&cli.StringFlag{
			Name:  "cache",
			Usage: "Cache file for incremental log rendering",
		},
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"l"},
			Usage:   "Maximum number of commits listed in log.html (0: all)",
		},
		&cli.StringFlag{
			Name:    "base-url",
			Aliases: []string{"u"},
			Usage:   "Base URL for absolute links in the Atom feeds",
		},
		&cli.StringFlag{
			Name:  "assets",
			Usage: "URL prefix of style.css, logo.png and favicon.png (empty: relative)",
		},
		&cli.BoolFlag{
			Name:  "highlight",
			Usage: "Syntax highlight file pages",
		},
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "Glob patterns of files to list (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Glob patterns of files to leave out (can be specified multiple times)",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Summary format (console, json)",
			Value:   "console",
		},
	}
}

// getReportFormat parses the summary format flag.
func getReportFormat(s string) output.ReportFormat {
	switch s {
	case "json":
		return output.FormatJSON
	default:
		return output.FormatConsole
	}
}

// legacyAction handles the default command behavior.
// When a repository path is provided as an argument, it runs the build command.
func legacyAction(c *cli.Context) error {
	// If no args and no subcommand, show help
	if c.NArg() == 0 {
		return cli.ShowAppHelp(c)
	}

	// stagit takes the repository as its only argument
	return BuildCmd().Action(c)
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
