package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/stagit-go/internal/build"
)

// BuildCmd creates the build command.
func BuildCmd() *cli.Command {
	return &cli.Command{
		Name:      "build",
		Usage:     "Render the log, commit pages, files, refs and feeds of a repository",
		ArgsUsage: "<repository path>",
		Flags:     buildFlags(),
		Action:    buildAction,
	}
}

func buildAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one repository path, got %d", c.NArg())
	}
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	return runBuild(c, ctx, c.Args().Get(0))
}

func runBuild(c *cli.Context, ctx *CommandContext, repoPath string) error {
	start := time.Now()
	color.Green("Rendering %v repo", repoPath)

	report, err := build.Build(ctx.BuildOptions(repoPath), ctx.Logger)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	if err := writeBuildReport(c, report); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\nCompleted in %s\n", time.Since(start))
	return nil
}
