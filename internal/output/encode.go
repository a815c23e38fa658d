package output

import (
	"io"
	"strings"
)

var xmlReplacer = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	"'", "&#39;",
	"&", "&amp;",
	`"`, "&quot;",
)

var xmlLineReplacer = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	"'", "&#39;",
	"&", "&amp;",
	`"`, "&quot;",
	"\r", "",
	"\n", "",
)

// xmlEncode escapes s for use in HTML/XML text and attributes.
func xmlEncode(w io.Writer, s string) {
	_, _ = xmlReplacer.WriteString(w, s)
}

// xmlEncodeLine is xmlEncode with line breaks dropped, for values that must
// stay on one line.
func xmlEncodeLine(w io.Writer, s string) {
	_, _ = xmlLineReplacer.WriteString(w, s)
}

func escape(s string) string {
	return xmlReplacer.Replace(s)
}

const upperHex = "0123456789ABCDEF"

// percentEncode escapes s for use in a URL path. Bytes below ',' or from
// 0x7f up, the ':'..'@' range and square brackets are encoded; '/' is kept.
func percentEncode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < ',' || c >= 127 || (c >= ':' && c <= '@') || c == '[' || c == ']' {
			b.WriteByte('%')
			b.WriteByte(upperHex[c>>4])
			b.WriteByte(upperHex[c&15])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
