package output

import (
	"bytes"
	"fmt"
	"io"

	"github.com/masmgr/stagit-go/internal/git"
)

// LogPage is the name of the commit listing.
const LogPage = "log.html"

// CommitPage returns the output path of a commit page.
func CommitPage(hash string) string {
	return "commit/" + hash + ".html"
}

// WriteLogStart writes the header of the log page and opens its table.
func (r *Renderer) WriteLogStart(w io.Writer) {
	r.writeHeader(w, "Log", "")
	fmt.Fprint(w, "<table id=\"log\"><thead>\n<tr><td><b>Date</b></td>"+
		"<td><b>Commit message</b></td>"+
		"<td><b>Author</b></td><td class=\"num\" align=\"right\"><b>Files</b></td>"+
		"<td class=\"num\" align=\"right\"><b>+</b></td>"+
		"<td class=\"num\" align=\"right\"><b>-</b></td></tr>\n</thead><tbody>\n")
}

// WriteLogEnd closes the log table and the page.
func (r *Renderer) WriteLogEnd(w io.Writer) {
	fmt.Fprint(w, "</tbody></table>")
	writeFooter(w)
}

// LogLine renders one single-line log record. d is nil when the diff could
// not be computed; the summary is then left unlinked.
func (r *Renderer) LogLine(c *git.CommitRecord, d *git.CommitDiff) []byte {
	var buf bytes.Buffer
	writeLogLine(&buf, c, d, "")
	return buf.Bytes()
}

func writeLogLine(w io.Writer, c *git.CommitRecord, d *git.CommitDiff, relPath string) {
	fmt.Fprint(w, "<tr><td>")
	xmlEncodeLine(w, formatShort(c.Author.When))
	fmt.Fprint(w, "</td><td>")
	if d != nil {
		fmt.Fprintf(w, "<a href=\"%s%s\">", relPath, CommitPage(c.Hash))
		xmlEncodeLine(w, c.Summary)
		fmt.Fprint(w, "</a>")
	} else {
		xmlEncodeLine(w, c.Summary)
	}
	fmt.Fprint(w, "</td><td>")
	xmlEncodeLine(w, c.Author.Name)
	fmt.Fprint(w, "</td>")
	if d != nil {
		fmt.Fprintf(w, "<td class=\"num\" align=\"right\">%d</td>", d.FileCount())
		fmt.Fprintf(w, "<td class=\"num\" align=\"right\">+%d</td>", d.TotalAdded)
		fmt.Fprintf(w, "<td class=\"num\" align=\"right\">-%d</td>", d.TotalDeleted)
	} else {
		fmt.Fprint(w, "<td class=\"num\" align=\"right\"></td><td class=\"num\" align=\"right\"></td><td class=\"num\" align=\"right\"></td>")
	}
	fmt.Fprint(w, "</tr>\n")
}

// WriteRemaining writes the notice for commits left out of the listing.
func WriteRemaining(w io.Writer, n int) {
	if n <= 0 {
		return
	}
	fmt.Fprintf(w, "<tr><td></td><td colspan=\"5\">%d more commit%s remaining, fetch the repository</td></tr>\n", n, plural(n))
}

// PageExists reports whether the commit page was rendered by an earlier run.
func (r *Renderer) PageExists(hash string) (bool, error) {
	return r.site.Exists(CommitPage(hash))
}

// WritePage renders the commit page.
func (r *Renderer) WritePage(c *git.CommitRecord, d *git.CommitDiff) error {
	name := CommitPage(c.Hash)
	return r.site.WriteFile(name, func(w io.Writer) error {
		r.writeCommitPage(w, c, d, relPathFor(name))
		return nil
	})
}
