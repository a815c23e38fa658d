package output

import (
	"fmt"
	"io"

	"github.com/masmgr/stagit-go/internal/git"
)

const (
	AtomFeed = "atom.xml"
	TagsFeed = "tags.xml"
)

// FeedEntry is a commit projected into an Atom entry. Tag is set for
// entries of the tags feed.
type FeedEntry struct {
	Commit *git.CommitRecord
	Tag    string
}

// WriteAtom writes the commit feed. entries are newest first and are capped
// at the configured feed size.
func (r *Renderer) WriteAtom(entries []FeedEntry) error {
	return r.writeFeed(AtomFeed, ", branch HEAD", limitTop(entries, r.opts.FeedSize))
}

// WriteTagsFeed writes the feed of tagged commits.
func (r *Renderer) WriteTagsFeed(entries []FeedEntry) error {
	return r.writeFeed(TagsFeed, ", tags", entries)
}

// TagEntries projects the tag references of refs into feed entries.
func TagEntries(refs []git.ReferenceEntry) []FeedEntry {
	var entries []FeedEntry
	for _, ref := range refs {
		if ref.Kind == git.RefTag {
			entries = append(entries, FeedEntry{Commit: ref.Commit, Tag: ref.Name})
		}
	}
	return entries
}

func (r *Renderer) writeFeed(name, subtitle string, entries []FeedEntry) error {
	return r.site.WriteFile(name, func(w io.Writer) error {
		fmt.Fprint(w, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"+
			"<feed xmlns=\"http://www.w3.org/2005/Atom\">\n<title>")
		xmlEncode(w, r.repo.StrippedName)
		fmt.Fprintf(w, "%s</title>\n<subtitle>", subtitle)
		xmlEncode(w, r.repo.Description)
		fmt.Fprint(w, "</subtitle>\n")
		for _, e := range entries {
			r.writeFeedEntry(w, e)
		}
		fmt.Fprint(w, "</feed>\n")
		return nil
	})
}

func (r *Renderer) writeFeedEntry(w io.Writer, e FeedEntry) {
	c := e.Commit
	fmt.Fprint(w, "<entry>\n")
	fmt.Fprintf(w, "<id>%s</id>\n", c.Hash)
	fmt.Fprintf(w, "<published>%s</published>\n", formatAtom(c.Author.When))
	fmt.Fprintf(w, "<updated>%s</updated>\n", formatAtom(c.Committer.When))
	fmt.Fprint(w, "<title>")
	if e.Tag != "" {
		fmt.Fprint(w, "[")
		xmlEncode(w, e.Tag)
		fmt.Fprint(w, "] ")
	}
	xmlEncode(w, c.Summary)
	fmt.Fprint(w, "</title>\n")
	fmt.Fprint(w, "<link rel=\"alternate\" type=\"text/html\" href=\"")
	xmlEncode(w, r.opts.BaseURL)
	fmt.Fprintf(w, "%s\" />\n", CommitPage(c.Hash))

	fmt.Fprint(w, "<author>\n<name>")
	xmlEncode(w, c.Author.Name)
	fmt.Fprint(w, "</name>\n<email>")
	xmlEncode(w, c.Author.Email)
	fmt.Fprint(w, "</email>\n</author>\n")

	fmt.Fprint(w, "<content>")
	fmt.Fprintf(w, "commit %s\n", c.Hash)
	if c.HasParent() {
		fmt.Fprintf(w, "parent %s\n", c.ParentHash)
	}
	fmt.Fprint(w, "Author: ")
	xmlEncode(w, c.Author.Name)
	fmt.Fprint(w, " &lt;")
	xmlEncode(w, c.Author.Email)
	fmt.Fprint(w, "&gt;\nDate:   ")
	fmt.Fprint(w, formatLong(c.Author.When))
	fmt.Fprint(w, "\n")
	if c.Message != "" {
		fmt.Fprint(w, "\n")
		xmlEncode(w, c.Message)
	}
	fmt.Fprint(w, "\n</content>\n</entry>\n")
}
