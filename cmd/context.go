package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/stagit-go/config"
	"github.com/masmgr/stagit-go/internal/build"
	"github.com/masmgr/stagit-go/internal/git"
	"github.com/masmgr/stagit-go/internal/output"
)

// CommandContext holds common state for command execution.
// It encapsulates the shared setup logic across all commands.
type CommandContext struct {
	Config *config.Config
	Logger *slog.Logger
}

// NewCommandContext creates a context from CLI flags.
// It loads the configuration and applies flag overrides.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	return &CommandContext{
		Config: cfg,
		Logger: newLogger(c.Bool("verbose")),
	}, nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// BuildOptions converts the configuration into options for one repository.
func (ctx *CommandContext) BuildOptions(repoPath string) build.Options {
	cfg := ctx.Config
	opts := build.DefaultOptions()
	opts.RepoPath = repoPath
	opts.OutputDir = cfg.Build.OutputDir
	opts.CachePath = cfg.Build.CacheFile
	opts.LogLimit = cfg.Build.LogLimit
	opts.ContextLines = cfg.Diff.ContextLines
	opts.Include = cfg.Filters.Include
	opts.Exclude = cfg.Filters.Exclude
	opts.ReadmeFiles = cfg.Render.ReadmeFiles
	opts.LicenseFiles = cfg.Render.LicenseFiles
	opts.Render = output.Options{
		Limits: git.DiffLimits{
			MaxFiles:   cfg.Diff.MaxFiles,
			MaxDeltas:  cfg.Diff.MaxDeltas,
			MaxAdded:   cfg.Diff.MaxAdded,
			MaxDeleted: cfg.Diff.MaxDeleted,
		},
		BaseURL:        cfg.Feed.BaseURL,
		AssetsPath:     cfg.Render.AssetsPath,
		FeedSize:       cfg.Feed.MaxEntries,
		Highlight:      cfg.Render.Highlight,
		HighlightStyle: cfg.Render.HighlightStyle,
	}
	return opts
}

// loadConfig loads configuration from file or defaults, then applies
// command-line overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if c.IsSet("output") {
		cfg.Build.OutputDir = c.String("output")
	}
	if c.IsSet("cache") {
		cfg.Build.CacheFile = c.String("cache")
	}
	if c.IsSet("limit") {
		cfg.Build.LogLimit = c.Int("limit")
	}
	if c.IsSet("base-url") {
		cfg.Feed.BaseURL = c.String("base-url")
	}
	if c.IsSet("assets") {
		cfg.Render.AssetsPath = c.String("assets")
	}
	if c.IsSet("highlight") {
		cfg.Render.Highlight = c.Bool("highlight")
	}
	if includes := c.StringSlice("include"); len(includes) > 0 {
		cfg.Filters.Include = includes
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Filters.Exclude = excludes
	}
	if c.IsSet("debounce") {
		cfg.Watch.DebounceMillis = c.Int("debounce")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}
