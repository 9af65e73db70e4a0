// Package sanitize normalises text destined for the XML report.
package sanitize

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// XML replaces every rune outside the XML 1.0 character range with a \uXXXX
// escape so the text can be embedded in an element or attribute verbatim.
// A byte that is not valid UTF-8 is escaped by its value.
func XML(s string) string {
	if utf8.ValidString(s) && strings.IndexFunc(s, invalid) < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			fmt.Fprintf(&b, `\u%04x`, s[i])
		case invalid(r):
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

// invalid reports whether r is outside
// #x9 | #xA | #xD | [#x20-#xD7FF] | [#xE000-#xFFFD] | [#x10000-#x10FFFF]
func invalid(r rune) bool {
	switch {
	case r == 0x9 || r == 0xA || r == 0xD:
		return false
	case r >= 0x20 && r <= 0xD7FF:
		return false
	case r >= 0xE000 && r <= 0xFFFD:
		return false
	case r >= 0x10000 && r <= 0x10FFFF:
		return false
	}
	return true
}
