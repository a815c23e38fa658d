package output

import (
	"strings"
	"time"
)

const (
	shortDateLayout = "2006-01-02 15:04"
	longDateLayout  = "Mon, 2 Jan 2006 15:04:05 -0700"
	atomDateLayout  = "2006-01-02T15:04:05Z"
	indexDateLayout = "2006-01-02"
)

func limitTop[T any](items []T, top int) []T {
	if top <= 0 || top >= len(items) {
		return items
	}
	return items[:top]
}

func formatShort(t time.Time) string {
	return t.Format(shortDateLayout)
}

func formatLong(t time.Time) string {
	return t.Format(longDateLayout)
}

func formatAtom(t time.Time) string {
	return t.UTC().Format(atomDateLayout)
}

// relPathFor returns the prefix leading from a page at name back to the
// output root, e.g. "../../" for "file/src/main.go.html".
func relPathFor(name string) string {
	return strings.Repeat("../", strings.Count(name, "/"))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
