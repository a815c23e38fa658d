package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/stagit-go/internal/build"
	"github.com/masmgr/stagit-go/internal/git"
	"github.com/masmgr/stagit-go/internal/watch"
)

// WatchCmd creates the watch command.
func WatchCmd() *cli.Command {
	flags := append(buildFlags(), &cli.IntFlag{
		Name:  "debounce",
		Usage: "Milliseconds to wait for changes to settle before rebuilding",
	})
	return &cli.Command{
		Name:      "watch",
		Usage:     "Build, then rebuild whenever a branch or tag changes",
		ArgsUsage: "<repository path>",
		Flags:     flags,
		Action:    watchAction,
	}
}

func watchAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one repository path, got %d", c.NArg())
	}
	cc, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	repoPath := c.Args().Get(0)

	repo, err := git.Open(repoPath, git.DefaultOptions())
	if err != nil {
		return err
	}
	gitDir := repo.GitDir()
	if gitDir == "" {
		return fmt.Errorf("cannot watch %s: repository is not on disk", repoPath)
	}

	if err := runBuild(c, cc, repoPath); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	color.Green("Watching %v for changes", gitDir)
	delay := time.Duration(cc.Config.Watch.DebounceMillis) * time.Millisecond
	w := watch.New(gitDir, delay, func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		report, err := build.Build(cc.BuildOptions(repoPath), cc.Logger)
		if err != nil {
			return err
		}
		return writeBuildReport(c, report)
	}, cc.Logger)
	return w.Run(ctx)
}
