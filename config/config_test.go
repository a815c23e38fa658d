package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Build.OutputDir != "." {
		t.Errorf("Build.OutputDir = %q, expected %q", cfg.Build.OutputDir, ".")
	}
	if cfg.Build.CacheFile != "" {
		t.Errorf("Build.CacheFile = %q, expected empty", cfg.Build.CacheFile)
	}
	if cfg.Build.LogLimit != 0 {
		t.Errorf("Build.LogLimit = %d, expected 0", cfg.Build.LogLimit)
	}
	if cfg.Feed.MaxEntries != 100 {
		t.Errorf("Feed.MaxEntries = %d, expected 100", cfg.Feed.MaxEntries)
	}
	if cfg.Diff.MaxFiles != 1000 || cfg.Diff.MaxDeltas != 1000 {
		t.Errorf("Diff file/delta limits = %d/%d, expected 1000/1000", cfg.Diff.MaxFiles, cfg.Diff.MaxDeltas)
	}
	if cfg.Diff.MaxAdded != 100000 || cfg.Diff.MaxDeleted != 100000 {
		t.Errorf("Diff line limits = %d/%d, expected 100000/100000", cfg.Diff.MaxAdded, cfg.Diff.MaxDeleted)
	}
	if cfg.Diff.ContextLines != 3 {
		t.Errorf("Diff.ContextLines = %d, expected 3", cfg.Diff.ContextLines)
	}
	if cfg.Render.AssetsPath != "/assets/" {
		t.Errorf("Render.AssetsPath = %q, expected %q", cfg.Render.AssetsPath, "/assets/")
	}
	if len(cfg.Render.ReadmeFiles) != 2 {
		t.Errorf("Render.ReadmeFiles length = %d, expected 2", len(cfg.Render.ReadmeFiles))
	}
	if cfg.Watch.DebounceMillis != 350 {
		t.Errorf("Watch.DebounceMillis = %d, expected 350", cfg.Watch.DebounceMillis)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "Defaults", mutate: func(*Config) {}, wantErr: false},
		{name: "Negative log limit", mutate: func(c *Config) { c.Build.LogLimit = -1 }, wantErr: true},
		{name: "Zero feed size", mutate: func(c *Config) { c.Feed.MaxEntries = 0 }, wantErr: true},
		{name: "Zero diff limit", mutate: func(c *Config) { c.Diff.MaxAdded = 0 }, wantErr: true},
		{name: "Zero context", mutate: func(c *Config) { c.Diff.ContextLines = 0 }, wantErr: false},
		{name: "Negative debounce", mutate: func(c *Config) { c.Watch.DebounceMillis = -5 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_MergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	data := `{"build": {"cacheFile": "demo.cache", "logLimit": 50}, "feed": {"baseURL": "https://example.com/demo/"}}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Build.CacheFile != "demo.cache" || cfg.Build.LogLimit != 50 {
		t.Errorf("Build = %+v", cfg.Build)
	}
	if cfg.Feed.BaseURL != "https://example.com/demo/" {
		t.Errorf("Feed.BaseURL = %q", cfg.Feed.BaseURL)
	}
	if cfg.Feed.MaxEntries != 100 {
		t.Errorf("Feed.MaxEntries = %d, default lost", cfg.Feed.MaxEntries)
	}
	if cfg.Build.OutputDir != "." {
		t.Errorf("Build.OutputDir = %q, default lost", cfg.Build.OutputDir)
	}
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	if err := os.WriteFile(path, []byte(`{"build": {"logLimit": 50}}`), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STAGIT_LOG_LIMIT", "7")
	t.Setenv("STAGIT_EXCLUDE", "vendor/**,*.min.js")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Build.LogLimit != 7 {
		t.Errorf("Build.LogLimit = %d, expected 7", cfg.Build.LogLimit)
	}
	if len(cfg.Filters.Exclude) != 2 || cfg.Filters.Exclude[0] != "vendor/**" {
		t.Errorf("Filters.Exclude = %v", cfg.Filters.Exclude)
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Diff.ContextLines != 3 {
		t.Errorf("Diff.ContextLines = %d, expected 3", cfg.Diff.ContextLines)
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	if err := os.WriteFile(path, []byte(`{"build": `), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for truncated JSON")
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := DefaultConfig()
	cfg.Render.Highlight = true
	cfg.Filters.Exclude = []string{"dist/**"}

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !loaded.Render.Highlight || len(loaded.Filters.Exclude) != 1 {
		t.Errorf("loaded = %+v", loaded)
	}
}
