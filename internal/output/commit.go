package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/masmgr/stagit-go/internal/git"
)

// graphWidth is the widest +/- bar in the diffstat.
const graphWidth = 78

// TooLargeNotice replaces the diff body of oversized commits.
const TooLargeNotice = "Diff is too large, output suppressed."

func (r *Renderer) writeCommitPage(w io.Writer, c *git.CommitRecord, d *git.CommitDiff, relPath string) {
	r.writeHeader(w, c.Summary, relPath)
	fmt.Fprint(w, "<pre>")
	writeCommitInfo(w, c, relPath)

	if d.TooLarge(r.opts.Limits) {
		fmt.Fprint(w, TooLargeNotice+"\n</pre>\n")
		writeFooter(w)
		return
	}

	if len(d.Files) > 0 {
		writeDiffstat(w, d)
		writeHunks(w, d, relPath)
	}
	fmt.Fprint(w, "</pre>\n")
	writeFooter(w)
}

func writeCommitInfo(w io.Writer, c *git.CommitRecord, relPath string) {
	fmt.Fprintf(w, "<b>commit</b> <a href=\"%s%s\">%s</a>\n", relPath, CommitPage(c.Hash), c.Hash)
	if c.HasParent() {
		fmt.Fprintf(w, "<b>parent</b> <a href=\"%s%s\">%s</a>\n", relPath, CommitPage(c.ParentHash), c.ParentHash)
	}
	fmt.Fprint(w, "<b>Author:</b> ")
	xmlEncode(w, c.Author.Name)
	fmt.Fprint(w, " &lt;<a href=\"mailto:")
	xmlEncode(w, c.Author.Email)
	fmt.Fprint(w, "\">")
	xmlEncode(w, c.Author.Email)
	fmt.Fprint(w, "</a>&gt;\n<b>Date:</b>   ")
	fmt.Fprint(w, formatLong(c.Author.When))
	fmt.Fprint(w, "\n")
	if c.Message != "" {
		fmt.Fprint(w, "\n")
		xmlEncode(w, c.Message)
		fmt.Fprint(w, "\n")
	}
}

func writeDiffstat(w io.Writer, d *git.CommitDiff) {
	fmt.Fprint(w, "<b>Diffstat:</b>\n<table>")
	for i, f := range d.Files {
		letter := f.Kind.Letter()
		fmt.Fprintf(w, "<tr><td class=\"%s\">%s</td><td><a href=\"#h%d\">", letter, letter, i)
		writeFilePair(w, f)
		fmt.Fprintf(w, "</a></td><td> | </td><td class=\"num\">%d</td><td>", f.Churn())
		plus, minus := graphBar(f.Added, f.Deleted)
		fmt.Fprintf(w, "<span class=\"i\">%s</span><span class=\"d\">%s</span></td></tr>\n",
			strings.Repeat("+", plus), strings.Repeat("-", minus))
	}
	n := d.FileCount()
	fmt.Fprintf(w, "</table></pre><pre>%d file%s changed, %d insertion%s(+), %d deletion%s(-)\n",
		n, plural(n), d.TotalAdded, plural(d.TotalAdded), d.TotalDeleted, plural(d.TotalDeleted))
	fmt.Fprint(w, "<hr/>")
}

func writeFilePair(w io.Writer, f git.ChangeStat) {
	oldPath, newPath := displayPaths(f)
	xmlEncode(w, oldPath)
	if oldPath != newPath {
		fmt.Fprint(w, " -&gt; ")
		xmlEncode(w, newPath)
	}
}

// displayPaths fills the missing side of added and deleted files.
func displayPaths(f git.ChangeStat) (string, string) {
	oldPath, newPath := f.OldPath, f.NewPath
	if oldPath == "" {
		oldPath = newPath
	}
	if newPath == "" {
		newPath = oldPath
	}
	return oldPath, newPath
}

// graphBar scales the +/- counts so their sum fits in graphWidth columns.
// A non-zero count always keeps at least one column.
func graphBar(added, deleted int) (int, int) {
	changed := added + deleted
	if changed <= graphWidth {
		return added, deleted
	}
	if added > 0 {
		added = int(float64(graphWidth)/float64(changed)*float64(added)) + 1
	}
	if deleted > 0 {
		deleted = int(float64(graphWidth)/float64(changed)*float64(deleted)) + 1
	}
	return added, deleted
}

func writeHunks(w io.Writer, d *git.CommitDiff, relPath string) {
	for i, f := range d.Files {
		oldPath, newPath := displayPaths(f)
		fmt.Fprintf(w, "<b>diff --git a/<a id=\"h%d\" href=\"%sfile/%s.html\">", i, relPath, percentEncode(oldPath))
		xmlEncode(w, oldPath)
		fmt.Fprintf(w, "</a> b/<a href=\"%sfile/%s.html\">", relPath, percentEncode(newPath))
		xmlEncode(w, newPath)
		fmt.Fprint(w, "</a></b>\n")

		if f.Binary {
			fmt.Fprint(w, "Binary files differ.\n")
			continue
		}

		for j, h := range f.Hunks {
			fmt.Fprintf(w, "<a href=\"#h%d-%d\" id=\"h%d-%d\" class=\"h\">", i, j, i, j)
			xmlEncode(w, h.Header())
			fmt.Fprint(w, "</a>\n")

			for k, l := range h.Lines {
				switch l.Op {
				case git.LineAdded:
					fmt.Fprintf(w, "<a href=\"#h%d-%d-%d\" id=\"h%d-%d-%d\" class=\"i\">+", i, j, k, i, j, k)
					xmlEncode(w, l.Content)
					fmt.Fprint(w, "</a>\n")
				case git.LineDeleted:
					fmt.Fprintf(w, "<a href=\"#h%d-%d-%d\" id=\"h%d-%d-%d\" class=\"d\">-", i, j, k, i, j, k)
					xmlEncode(w, l.Content)
					fmt.Fprint(w, "</a>\n")
				default:
					fmt.Fprint(w, " ")
					xmlEncode(w, l.Content)
					fmt.Fprint(w, "\n")
				}
			}
		}
	}
}
