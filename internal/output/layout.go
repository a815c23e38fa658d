package output

import (
	"fmt"
	"io"
)

// writeHeader writes the common page header. relPath leads back to the
// output root from the page being written.
func (r *Renderer) writeHeader(w io.Writer, title, relPath string) {
	fmt.Fprint(w, "<!DOCTYPE html>\n<html>\n<head>\n"+
		"<meta http-equiv=\"Content-Type\" content=\"text/html; charset=UTF-8\" />\n"+
		"<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\" />\n"+
		"<title>")
	xmlEncode(w, title)
	if title != "" && r.repo.StrippedName != "" {
		fmt.Fprint(w, " - ")
	}
	xmlEncode(w, r.repo.StrippedName)
	if r.repo.Description != "" {
		fmt.Fprint(w, " - ")
	}
	xmlEncode(w, r.repo.Description)
	fmt.Fprint(w, "</title>\n")
	fmt.Fprintf(w, "<link rel=\"icon\" type=\"image/png\" href=\"%s\" />\n", r.asset(relPath, "favicon.png"))
	fmt.Fprint(w, "<link rel=\"alternate\" type=\"application/atom+xml\" title=\"")
	xmlEncode(w, r.repo.Name)
	fmt.Fprintf(w, " Atom Feed\" href=\"%satom.xml\" />\n", relPath)
	fmt.Fprint(w, "<link rel=\"alternate\" type=\"application/atom+xml\" title=\"")
	xmlEncode(w, r.repo.Name)
	fmt.Fprintf(w, " Atom Feed (tags)\" href=\"%stags.xml\" />\n", relPath)
	fmt.Fprintf(w, "<link rel=\"stylesheet\" type=\"text/css\" href=\"%s\" />\n", r.asset(relPath, "style.css"))
	fmt.Fprint(w, "</head>\n<body>\n<table><tr><td>")
	fmt.Fprintf(w, "<a href=\"../%s\"><img src=\"%s\" alt=\"\" width=\"32\" height=\"32\" /></a>",
		relPath, r.asset(relPath, "logo.png"))
	fmt.Fprint(w, "</td><td><h1>")
	xmlEncode(w, r.repo.StrippedName)
	fmt.Fprint(w, "</h1><span class=\"desc\">")
	xmlEncode(w, r.repo.Description)
	fmt.Fprint(w, "</span></td></tr>")
	if r.repo.CloneURL != "" {
		fmt.Fprint(w, "<tr class=\"url\"><td></td><td>git clone <a href=\"")
		xmlEncode(w, r.repo.CloneURL)
		fmt.Fprint(w, "\">")
		xmlEncode(w, r.repo.CloneURL)
		fmt.Fprint(w, "</a></td></tr>")
	}
	fmt.Fprint(w, "<tr><td></td><td>\n")
	fmt.Fprintf(w, "<a href=\"%slog.html\">Log</a> | ", relPath)
	fmt.Fprintf(w, "<a href=\"%sfiles.html\">Files</a> | ", relPath)
	fmt.Fprintf(w, "<a href=\"%srefs.html\">Refs</a>", relPath)
	if r.repo.Submodules != "" {
		fmt.Fprintf(w, " | <a href=\"%sfile/%s.html\">Submodules</a>", relPath, percentEncode(r.repo.Submodules))
	}
	if r.repo.Readme != "" {
		fmt.Fprintf(w, " | <a href=\"%sREADME.html\">README</a>", relPath)
	}
	if r.repo.License != "" {
		fmt.Fprintf(w, " | <a href=\"%sfile/%s.html\">LICENSE</a>", relPath, percentEncode(r.repo.License))
	}
	fmt.Fprint(w, "</td></tr></table>\n<hr/>\n<div id=\"content\">\n")
}

func writeFooter(w io.Writer) {
	fmt.Fprint(w, "</div>\n</body>\n</html>\n")
}
