package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// highlighter colours blob lines with chroma using inline styles.
type highlighter struct {
	style *chroma.Style
}

func newHighlighter(styleName string) *highlighter {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	return &highlighter{style: style}
}

func lexerForPath(path, content string) chroma.Lexer {
	lexer := lexers.Match(path)
	if lexer == nil {
		lexer = lexers.Analyse(content)
	}
	if lexer == nil {
		return nil
	}
	return chroma.Coalesce(lexer)
}

// lines tokenises content and returns one HTML fragment per source line.
// ok is false when no lexer matches; callers then fall back to plain text.
func (h *highlighter) lines(path, content string) ([]string, bool) {
	lexer := lexerForPath(path, content)
	if lexer == nil {
		return nil, false
	}
	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return nil, false
	}

	var out []string
	for _, tokens := range chroma.SplitTokensIntoLines(iterator.Tokens()) {
		var b strings.Builder
		for _, token := range tokens {
			value := strings.TrimRight(token.Value, "\n")
			if value == "" {
				continue
			}
			color := colorFromEntry(h.style.Get(token.Type))
			if color == "" {
				xmlEncode(&b, value)
				continue
			}
			fmt.Fprintf(&b, "<span style=\"color:%s\">", color)
			xmlEncode(&b, value)
			b.WriteString("</span>")
		}
		out = append(out, b.String())
	}
	return out, true
}

func colorFromEntry(entry chroma.StyleEntry) string {
	if entry.Colour.IsSet() {
		col := entry.Colour.String()
		col = strings.TrimPrefix(strings.ToLower(col), "#")
		return "#" + col
	}
	return ""
}

func writeLineAnchor(w io.Writer, n int) {
	fmt.Fprintf(w, "<a href=\"#l%d\" class=\"line\" id=\"l%d\">%7d</a> ", n, n, n)
}
