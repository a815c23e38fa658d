package output

import (
	"fmt"
	"io"
	"time"

	"github.com/mergestat/timediff"
)

// IndexItem is a row of the multi-repository index: either a category
// heading or a repository.
type IndexItem struct {
	Category string
	Repo     *IndexRepo
}

// IndexRepo summarises one repository for the index.
type IndexRepo struct {
	Name        string // stripped name, also the directory of its pages
	Description string
	LastCommit  time.Time // zero when HEAD is unborn
}

// IndexOptions configures the index page.
type IndexOptions struct {
	Title      string
	AssetsPath string
}

// WriteIndex writes the index page to w.
func WriteIndex(w io.Writer, items []IndexItem, opts IndexOptions) error {
	fmt.Fprint(w, "<!DOCTYPE html>\n<html>\n<head>\n"+
		"<meta http-equiv=\"Content-Type\" content=\"text/html; charset=UTF-8\" />\n"+
		"<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\" />\n<title>")
	xmlEncode(w, opts.Title)
	fmt.Fprint(w, "</title>\n")
	fmt.Fprintf(w, "<link rel=\"icon\" type=\"image/png\" href=\"%sfavicon.png\" />\n", opts.AssetsPath)
	fmt.Fprintf(w, "<link rel=\"stylesheet\" type=\"text/css\" href=\"%sstyle.css\" />\n", opts.AssetsPath)
	fmt.Fprint(w, "</head>\n<body>\n<table>\n<tr><td>")
	fmt.Fprintf(w, "<img src=\"%slogo.png\" alt=\"\" width=\"32\" height=\"32\" />", opts.AssetsPath)
	fmt.Fprint(w, "</td><td><span class=\"desc\">")
	xmlEncode(w, opts.Title)
	fmt.Fprint(w, "</span></td></tr><tr><td></td><td>\n</td></tr>\n</table>\n<hr/>\n<div id=\"content\">\n"+
		"<table id=\"index\"><thead>\n"+
		"<tr><td><b>Name</b></td><td><b>Description</b></td><td><b>Last commit</b></td></tr>"+
		"</thead><tbody>\n")

	for _, item := range items {
		if item.Repo == nil {
			fmt.Fprint(w, "<tr class=\"category\"><td colspan=\"3\">")
			xmlEncode(w, item.Category)
			fmt.Fprint(w, "</td></tr>\n")
			continue
		}
		repo := item.Repo
		fmt.Fprintf(w, "<tr class=\"item-repo\"><td><a href=\"%s/log.html\">", percentEncode(repo.Name))
		xmlEncode(w, repo.Name)
		fmt.Fprint(w, "</a></td><td>")
		xmlEncode(w, repo.Description)
		fmt.Fprint(w, "</td>")
		if repo.LastCommit.IsZero() {
			fmt.Fprint(w, "<td></td>")
		} else {
			fmt.Fprint(w, "<td title=\"")
			xmlEncode(w, timediff.TimeDiff(repo.LastCommit))
			fmt.Fprintf(w, "\">%s</td>", formatShort(repo.LastCommit))
		}
		fmt.Fprint(w, "</tr>\n")
	}

	fmt.Fprint(w, "</tbody>\n</table>\n")
	writeFooter(w)
	return nil
}
