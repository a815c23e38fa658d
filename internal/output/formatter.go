package output

import (
	"github.com/masmgr/stagit-go/internal/git"
)

// RepoInfo is the repository metadata shown in every page header.
type RepoInfo struct {
	Name         string // directory name
	StrippedName string // Name without a ".git" suffix
	Description  string
	CloneURL     string
	Readme       string // path of the README at HEAD, empty if none
	License      string // path of the license file at HEAD, empty if none
	Submodules   string // ".gitmodules" when present at HEAD
}

// Options controls rendering.
type Options struct {
	Limits         git.DiffLimits
	BaseURL        string // prefix for absolute links in feeds
	AssetsPath     string // prefix for style.css, logo.png and favicon.png; relative when empty
	FeedSize       int
	Highlight      bool
	HighlightStyle string
}

// DefaultOptions returns the rendering defaults.
func DefaultOptions() Options {
	return Options{
		Limits:         git.DefaultDiffLimits(),
		FeedSize:       100,
		HighlightStyle: "github",
	}
}

// Renderer writes the pages of one repository into a Site.
type Renderer struct {
	site *Site
	repo RepoInfo
	opts Options
}

// NewRenderer creates a renderer for repo writing into site.
func NewRenderer(site *Site, repo RepoInfo, opts Options) *Renderer {
	if opts.FeedSize <= 0 {
		opts.FeedSize = 100
	}
	return &Renderer{site: site, repo: repo, opts: opts}
}

// Site returns the output tree the renderer writes into.
func (r *Renderer) Site() *Site {
	return r.site
}

// Repo returns the repository metadata.
func (r *Renderer) Repo() RepoInfo {
	return r.repo
}

func (r *Renderer) asset(relPath, name string) string {
	if r.opts.AssetsPath != "" {
		return r.opts.AssetsPath + name
	}
	return relPath + name
}
