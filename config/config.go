package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

// FileName is the configuration file looked up in the working and home
// directories.
const FileName = ".stagit.json"

// Config is the root configuration structure.
type Config struct {
	Build   BuildConfig  `json:"build"`
	Feed    FeedConfig   `json:"feed"`
	Diff    DiffConfig   `json:"diff"`
	Filters FilterConfig `json:"filters"`
	Render  RenderConfig `json:"render"`
	Watch   WatchConfig  `json:"watch"`
	Index   IndexConfig  `json:"index"`
}

// BuildConfig holds output and cache locations.
type BuildConfig struct {
	OutputDir string `json:"outputDir" env:"STAGIT_OUTPUT_DIR"`
	CacheFile string `json:"cacheFile" env:"STAGIT_CACHE_FILE"` // empty disables the cache
	LogLimit  int    `json:"logLimit" env:"STAGIT_LOG_LIMIT"`   // 0 means unlimited
}

// FeedConfig holds Atom feed options.
type FeedConfig struct {
	BaseURL    string `json:"baseURL" env:"STAGIT_BASE_URL"`
	MaxEntries int    `json:"maxEntries" env:"STAGIT_FEED_MAX_ENTRIES"`
}

// DiffConfig holds the limits above which a commit diff is not rendered.
type DiffConfig struct {
	MaxFiles     int `json:"maxFiles" env:"STAGIT_DIFF_MAX_FILES"`
	MaxDeltas    int `json:"maxDeltas" env:"STAGIT_DIFF_MAX_DELTAS"`
	MaxAdded     int `json:"maxAdded" env:"STAGIT_DIFF_MAX_ADDED"`
	MaxDeleted   int `json:"maxDeleted" env:"STAGIT_DIFF_MAX_DELETED"`
	ContextLines int `json:"contextLines" env:"STAGIT_DIFF_CONTEXT_LINES"`
}

// FilterConfig holds file path filtering options for the file listing.
type FilterConfig struct {
	Include []string `json:"include" env:"STAGIT_INCLUDE"`
	Exclude []string `json:"exclude" env:"STAGIT_EXCLUDE"`
}

// RenderConfig holds page rendering options.
type RenderConfig struct {
	Highlight      bool     `json:"highlight" env:"STAGIT_HIGHLIGHT"`
	HighlightStyle string   `json:"highlightStyle" env:"STAGIT_HIGHLIGHT_STYLE"`
	ReadmeFiles    []string `json:"readmeFiles"`
	LicenseFiles   []string `json:"licenseFiles"`
	AssetsPath     string   `json:"assetsPath" env:"STAGIT_ASSETS_PATH"`
}

// WatchConfig holds options for the watch command.
type WatchConfig struct {
	DebounceMillis int `json:"debounceMillis" env:"STAGIT_WATCH_DEBOUNCE_MS"`
}

// IndexConfig holds options for the index command.
type IndexConfig struct {
	Description string `json:"description" env:"STAGIT_INDEX_DESCRIPTION"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Build: BuildConfig{
			OutputDir: ".",
		},
		Feed: FeedConfig{
			MaxEntries: 100,
		},
		Diff: DiffConfig{
			MaxFiles:     1000,
			MaxDeltas:    1000,
			MaxAdded:     100000,
			MaxDeleted:   100000,
			ContextLines: 3,
		},
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
		Render: RenderConfig{
			HighlightStyle: "github",
			ReadmeFiles:    []string{"README", "README.md"},
			LicenseFiles:   []string{"LICENSE", "LICENSE.md", "COPYING"},
			AssetsPath:     "/assets/",
		},
		Watch: WatchConfig{
			DebounceMillis: 350,
		},
		Index: IndexConfig{
			Description: "Repositories",
		},
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.Build.LogLimit < 0 {
		errs = append(errs, fmt.Errorf("build.logLimit must not be negative, got %d", c.Build.LogLimit))
	}
	if c.Feed.MaxEntries <= 0 {
		errs = append(errs, fmt.Errorf("feed.maxEntries must be positive, got %d", c.Feed.MaxEntries))
	}
	if c.Diff.MaxFiles <= 0 || c.Diff.MaxDeltas <= 0 || c.Diff.MaxAdded <= 0 || c.Diff.MaxDeleted <= 0 {
		errs = append(errs, errors.New("diff limits must be positive"))
	}
	if c.Diff.ContextLines < 0 {
		errs = append(errs, fmt.Errorf("diff.contextLines must not be negative, got %d", c.Diff.ContextLines))
	}
	if c.Watch.DebounceMillis < 0 {
		errs = append(errs, fmt.Errorf("watch.debounceMillis must not be negative, got %d", c.Watch.DebounceMillis))
	}
	return errors.Join(errs...)
}

// LoadConfig loads configuration from a file, merging with defaults, then
// applies STAGIT_* environment overrides.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		// Try default locations
		candidates := []string{FileName}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, FileName))
		} else if envHome := os.Getenv("HOME"); envHome != "" {
			candidates = append(candidates, filepath.Join(envHome, FileName))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		if err == nil {
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig saves configuration to a file.
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
