package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/masmgr/stagit-go/internal/git"
)

// FilesPage is the name of the tree listing.
const FilesPage = "files.html"

// BlobPage returns the output path of a file page.
func BlobPage(path string) string {
	return "file/" + path + ".html"
}

// FileRow is one entry of the tree listing.
type FileRow struct {
	Entry git.TreeEntry
	Size  int64
	Lines int // zero for binary files and submodules
}

// WriteBlob renders the page of one file and returns its listing row.
func (r *Renderer) WriteBlob(e git.TreeEntry, b *git.Blob) (FileRow, error) {
	row := FileRow{Entry: e, Size: b.Size}
	if !b.Binary {
		row.Lines = b.LineCount()
	}
	name := BlobPage(e.Path)
	err := r.site.WriteFile(name, func(w io.Writer) error {
		relPath := relPathFor(name)
		r.writeHeader(w, e.Name(), relPath)
		fmt.Fprint(w, "<p> ")
		xmlEncode(w, e.Name())
		fmt.Fprintf(w, " (%dB)</p><hr/>", b.Size)
		if b.Binary {
			fmt.Fprint(w, "<p>Binary file.</p>\n")
		} else {
			r.writeBlobLines(w, e.Path, string(b.Data))
		}
		writeFooter(w)
		return nil
	})
	return row, err
}

func (r *Renderer) writeBlobLines(w io.Writer, path, content string) {
	plain := strings.Split(content, "\n")
	if len(plain) > 0 && plain[len(plain)-1] == "" {
		plain = plain[:len(plain)-1]
	}

	var colored []string
	if r.opts.Highlight {
		if lines, ok := newHighlighter(r.opts.HighlightStyle).lines(path, content); ok {
			colored = lines
		}
	}

	fmt.Fprint(w, "<pre id=\"blob\">\n")
	for i, line := range plain {
		writeLineAnchor(w, i+1)
		if i < len(colored) {
			fmt.Fprint(w, colored[i])
		} else {
			xmlEncode(w, line)
		}
		fmt.Fprint(w, "\n")
	}
	fmt.Fprint(w, "</pre>\n")
}

// WriteFiles renders the tree listing from rows produced by WriteBlob and
// submodule entries.
func (r *Renderer) WriteFiles(rows []FileRow) error {
	return r.site.WriteFile(FilesPage, func(w io.Writer) error {
		r.writeHeader(w, "Files", "")
		fmt.Fprint(w, "<table id=\"files\"><thead>\n<tr>"+
			"<td><b>Mode</b></td><td><b>Name</b></td>"+
			"<td class=\"num\" align=\"right\"><b>Size</b></td>"+
			"</tr>\n</thead><tbody>\n")
		for _, row := range rows {
			e := row.Entry
			if e.Kind == git.EntrySubmodule {
				fmt.Fprintf(w, "<tr><td>m---------</td><td><a href=\"%s\">", BlobPage(".gitmodules"))
				xmlEncode(w, e.Path)
				fmt.Fprintf(w, "</a> @ %s</td><td class=\"num\" align=\"right\"></td></tr>\n", e.ShortHash())
				continue
			}
			fmt.Fprintf(w, "<tr><td>%s</td><td><a href=\"%s\">", e.Mode, percentEncode(BlobPage(e.Path)))
			xmlEncode(w, e.Path)
			fmt.Fprint(w, "</a></td><td class=\"num\" align=\"right\">")
			if row.Lines > 0 {
				fmt.Fprintf(w, "%dL", row.Lines)
			} else {
				fmt.Fprintf(w, "%dB", row.Size)
			}
			fmt.Fprint(w, "</td></tr>\n")
		}
		fmt.Fprint(w, "</tbody></table>")
		writeFooter(w)
		return nil
	})
}
