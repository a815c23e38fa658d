// Package build renders a repository into a static site: the log with its
// resumable cache, commit pages, the file tree, refs and feeds.
package build

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/masmgr/stagit-go/internal/cache"
	"github.com/masmgr/stagit-go/internal/git"
	"github.com/masmgr/stagit-go/internal/history"
	"github.com/masmgr/stagit-go/internal/output"
)

// Compile-time interface conformance check.
var _ history.PageRenderer = (*output.Renderer)(nil)

// Options configures a build.
type Options struct {
	RepoPath     string
	OutputDir    string
	CachePath    string // empty disables the cache
	LogLimit     int    // 0 means unlimited
	ContextLines int
	Render       output.Options
	Include      []string // glob patterns for the file listing
	Exclude      []string
	ReadmeFiles  []string
	LicenseFiles []string
}

// DefaultOptions returns options matching the default configuration.
func DefaultOptions() Options {
	return Options{
		OutputDir:    ".",
		ContextLines: 3,
		Render:       output.DefaultOptions(),
		ReadmeFiles:  []string{"README", "README.md"},
		LicenseFiles: []string{"LICENSE", "LICENSE.md", "COPYING"},
	}
}

// Builder renders one repository into a Site.
type Builder struct {
	provider  git.Provider
	site      *output.Site
	info      output.RepoInfo
	opts      Options
	logger    *slog.Logger
	cacheFS   billy.Filesystem
	cacheName string
}

// New creates a builder. Use WithCache to enable the resumable log.
func New(provider git.Provider, site *output.Site, info output.RepoInfo, opts Options, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{provider: provider, site: site, info: info, opts: opts, logger: logger}
}

// WithCache stores the log cache as name inside fs.
func (b *Builder) WithCache(fs billy.Filesystem, name string) *Builder {
	b.cacheFS = fs
	b.cacheName = name
	return b
}

// Build opens the repository at opts.RepoPath and renders it into
// opts.OutputDir.
func Build(opts Options, logger *slog.Logger) (*output.BuildReport, error) {
	repo, err := git.Open(opts.RepoPath, git.Options{ContextLines: opts.ContextLines})
	if err != nil {
		return nil, err
	}
	info, err := ReadRepoInfo(opts.RepoPath, repo.GitDir())
	if err != nil {
		return nil, fmt.Errorf("read repository metadata: %w", err)
	}

	b := New(repo, output.NewSite(osfs.New(opts.OutputDir)), info, opts, logger)
	if opts.CachePath != "" {
		abs, err := filepath.Abs(opts.CachePath)
		if err != nil {
			return nil, fmt.Errorf("resolve cache path: %w", err)
		}
		b.WithCache(osfs.New(filepath.Dir(abs)), filepath.Base(abs))
	}
	return b.Run()
}

// Run renders every page. Output and cache write failures are returned as
// errors; repository problems are recorded as report warnings.
func (b *Builder) Run() (*output.BuildReport, error) {
	start := time.Now()
	report := &output.BuildReport{RepoPath: b.opts.RepoPath, OutputDir: b.opts.OutputDir}

	if err := b.site.Prepare(); err != nil {
		return nil, err
	}

	head, err := b.provider.Head()
	if err != nil {
		if !errors.Is(err, git.ErrNotFound) {
			return nil, fmt.Errorf("resolve HEAD: %w", err)
		}
		head = ""
		b.warn(report, "repository has no commits")
	}
	report.Head = head

	detectSpecialFiles(b.provider, head, &b.info, b.opts.ReadmeFiles, b.opts.LicenseFiles)
	renderer := output.NewRenderer(b.site, b.info, b.opts.Render)

	cw, res, err := b.writeLog(renderer, head, report)
	if err != nil {
		return nil, err
	}
	// the staged cache must not survive a failed run
	promoted := false
	defer func() {
		if cw != nil && !promoted {
			_ = cw.Abort()
		}
	}()

	if err := b.writeFiles(renderer, head, report); err != nil {
		return nil, err
	}
	refs := b.references(report)
	report.Refs = len(refs)
	if err := renderer.WriteRefs(refs); err != nil {
		return nil, err
	}
	if err := b.writeFeeds(renderer, head, refs, report); err != nil {
		return nil, err
	}
	if err := b.writeReadme(renderer, head, report); err != nil {
		return nil, err
	}

	if cw != nil {
		if res != nil && res.Degraded() {
			b.warn(report, "history walk incomplete, cache %s left unchanged", b.cacheName)
		} else {
			promoted = true
			if err := cw.Commit(); err != nil {
				return nil, err
			}
			report.CachePromoted = true
		}
	}

	report.Duration = time.Since(start)
	return report, nil
}

func (b *Builder) warn(report *output.BuildReport, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	report.Warnings = append(report.Warnings, msg)
	b.logger.Warn(msg, "repo", b.opts.RepoPath)
}

func (b *Builder) loadCache(report *output.BuildReport) *cache.Cache {
	old, err := cache.Load(b.cacheFS, b.cacheName)
	if err != nil {
		b.warn(report, "ignoring cache %s: %v", b.cacheName, err)
		return &cache.Cache{}
	}
	return old
}

func (b *Builder) writeLog(r *output.Renderer, head string, report *output.BuildReport) (*cache.Writer, *history.Result, error) {
	old := &cache.Cache{}
	var cw *cache.Writer
	if b.cacheName != "" && head != "" {
		old = b.loadCache(report)
		report.Cursor = old.Cursor

		var err error
		cw, err = cache.Create(b.cacheFS, b.cacheName)
		if err != nil {
			return nil, nil, err
		}
		if err := cw.WriteCursor(head); err != nil {
			_ = cw.Abort()
			return nil, nil, err
		}
	}

	walker := history.NewWalker(b.provider, r, history.Options{LogLimit: b.opts.LogLimit}, b.logger)
	var res *history.Result
	err := b.site.WriteFile(output.LogPage, func(w io.Writer) error {
		r.WriteLogStart(w)
		if head != "" {
			var cacheOut io.Writer
			if cw != nil {
				cacheOut = cw
			}
			var err error
			res, err = walker.Walk(head, old.Cursor, w, cacheOut)
			if err != nil {
				return err
			}
			if err := walker.AppendPrevious(res, old, w, cacheOut); err != nil {
				return err
			}
			output.WriteRemaining(w, res.Remaining)
		}
		r.WriteLogEnd(w)
		return nil
	})
	if err != nil {
		if cw != nil {
			_ = cw.Abort()
		}
		return nil, nil, err
	}

	if res != nil {
		report.Walked = res.Walked
		report.LogLines = res.LogLines
		report.CacheLines = res.CacheLines
		report.PagesWritten = res.PagesWritten
		report.PagesExisting = res.PagesExisting
		report.Remaining = res.Remaining
		report.DiffFailures = res.DiffFailures
		if res.DiffFailures > 0 {
			b.warn(report, "%d commit(s) rendered without diff", res.DiffFailures)
		}
		if res.Degraded() {
			b.warn(report, "history walk stopped early: %v", res.Err)
		}
	}
	return cw, res, nil
}

// matchesFilters checks if a path matches the include/exclude filters.
func (b *Builder) matchesFilters(path string) bool {
	path = strings.ReplaceAll(path, "\\", "/")

	for _, pattern := range b.opts.Exclude {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return false
		}
	}
	if len(b.opts.Include) == 0 {
		return true
	}
	for _, pattern := range b.opts.Include {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return true
		}
	}
	return false
}

func (b *Builder) writeFiles(r *output.Renderer, head string, report *output.BuildReport) error {
	var rows []output.FileRow
	if head != "" {
		entries, err := b.provider.Tree(head)
		if err != nil {
			b.warn(report, "cannot list files: %v", err)
		}
		for _, e := range entries {
			if !b.matchesFilters(e.Path) {
				continue
			}
			if e.Kind == git.EntrySubmodule {
				rows = append(rows, output.FileRow{Entry: e})
				continue
			}
			blob, err := b.provider.Blob(e.Hash)
			if err != nil {
				b.warn(report, "cannot read %s: %v", e.Path, err)
				continue
			}
			row, err := r.WriteBlob(e, blob)
			if err != nil {
				return err
			}
			rows = append(rows, row)
		}
	}
	report.Files = len(rows)
	return r.WriteFiles(rows)
}

func (b *Builder) references(report *output.BuildReport) []git.ReferenceEntry {
	refs, err := b.provider.References()
	if err != nil {
		b.warn(report, "cannot list references: %v", err)
		return nil
	}
	return refs
}

func (b *Builder) writeFeeds(r *output.Renderer, head string, refs []git.ReferenceEntry, report *output.BuildReport) error {
	limit := b.opts.Render.FeedSize
	if limit <= 0 {
		limit = output.DefaultOptions().FeedSize
	}

	var entries []output.FeedEntry
	if head != "" {
		err := b.provider.Walk(head, func(hash string) error {
			if len(entries) >= limit {
				return git.ErrStopWalk
			}
			c, err := b.provider.Commit(hash)
			if err != nil {
				return err
			}
			entries = append(entries, output.FeedEntry{Commit: c})
			return nil
		})
		if err != nil {
			b.warn(report, "atom feed incomplete: %v", err)
		}
	}
	if err := r.WriteAtom(entries); err != nil {
		return err
	}
	return r.WriteTagsFeed(output.TagEntries(refs))
}

func (b *Builder) writeReadme(r *output.Renderer, head string, report *output.BuildReport) error {
	if b.info.Readme == "" {
		return nil
	}
	blob, err := b.provider.FileAt(head, b.info.Readme)
	if err != nil {
		b.warn(report, "cannot read %s: %v", b.info.Readme, err)
		return nil
	}
	return r.WriteReadme(b.info.Readme, blob.Data)
}
