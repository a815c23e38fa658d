package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/russross/blackfriday/v2"
)

// ReadmePage is the name of the rendered README.
const ReadmePage = "README.html"

const markdownExtensions = blackfriday.CommonExtensions | blackfriday.AutoHeadingIDs

// WriteReadme renders the README. Markdown files are converted to HTML,
// anything else is shown preformatted.
func (r *Renderer) WriteReadme(path string, content []byte) error {
	return r.site.WriteFile(ReadmePage, func(w io.Writer) error {
		r.writeHeader(w, "README", "")
		if isMarkdown(path) {
			fmt.Fprint(w, "<div id=\"readme\">\n")
			_, err := w.Write(blackfriday.Run(content, blackfriday.WithExtensions(markdownExtensions)))
			if err != nil {
				return err
			}
			fmt.Fprint(w, "</div>\n")
		} else {
			fmt.Fprint(w, "<pre id=\"readme\">")
			xmlEncode(w, string(content))
			fmt.Fprint(w, "</pre>\n")
		}
		writeFooter(w)
		return nil
	})
}

func isMarkdown(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".markdown")
}
