package output

import (
	"fmt"
	"io"

	"github.com/masmgr/stagit-go/internal/git"
)

// RefsPage is the name of the branch and tag listing.
const RefsPage = "refs.html"

// WriteRefs renders the refs page. refs must already be sorted.
func (r *Renderer) WriteRefs(refs []git.ReferenceEntry) error {
	return r.site.WriteFile(RefsPage, func(w io.Writer) error {
		r.writeHeader(w, "Refs", "")
		writeRefSection(w, refs, git.RefBranch, "Branches", "branches")
		writeRefSection(w, refs, git.RefTag, "Tags", "tags")
		writeFooter(w)
		return nil
	})
}

// writeRefSection writes one table; nothing at all when no ref matches kind.
func writeRefSection(w io.Writer, refs []git.ReferenceEntry, kind git.RefKind, title, id string) {
	n := 0
	for _, ref := range refs {
		if ref.Kind != kind {
			continue
		}
		if n == 0 {
			if kind == git.RefTag {
				fmt.Fprint(w, "<br/>\n")
			}
			fmt.Fprintf(w, "<h2>%s</h2><table id=\"%s\"><thead>\n<tr><td><b>Name</b></td>"+
				"<td><b>Last commit date</b></td><td><b>Author</b></td>\n</tr>\n"+
				"</thead><tbody>\n", title, id)
		}
		n++
		fmt.Fprint(w, "<tr><td>")
		xmlEncode(w, ref.Name)
		fmt.Fprint(w, "</td><td>")
		fmt.Fprint(w, formatShort(ref.Commit.Author.When))
		fmt.Fprint(w, "</td><td>")
		xmlEncode(w, ref.Commit.Author.Name)
		fmt.Fprint(w, "</td></tr>\n")
	}
	if n > 0 {
		fmt.Fprint(w, "</tbody></table>\n")
	}
}
