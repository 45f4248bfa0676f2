package vobject

import (
	"strings"
	"unicode/utf8"
)

// maxLineOctets is the longest physical line allowed, line break excluded.
const maxLineOctets = 75

// FoldLine splits a logical line into physical lines of at most 75 octets
// joined by CRLF and a single space. Breaks never fall inside a UTF-8
// sequence or a backslash escape pair.
func FoldLine(line string) string {
	return foldLine(line, crlf)
}

func foldLine(line, eol string) string {
	if len(line) <= maxLineOctets {
		return line
	}

	var b strings.Builder
	b.Grow(len(line) + len(line)/maxLineOctets*(len(eol)+1))

	limit := maxLineOctets
	size := 0
	for i := 0; i < len(line); {
		n := unitLen(line[i:])
		if size+n > limit && size > 0 {
			b.WriteString(eol)
			b.WriteByte(' ')
			// the leading space counts against the limit
			limit = maxLineOctets - 1
			size = 0
		}
		b.WriteString(line[i : i+n])
		size += n
		i += n
	}
	return b.String()
}

// unitLen returns the length of the unbreakable unit at the start of s: an
// escape pair or a single rune.
func unitLen(s string) int {
	if s[0] == '\\' && len(s) > 1 {
		_, w := utf8.DecodeRuneInString(s[1:])
		return 1 + w
	}
	_, w := utf8.DecodeRuneInString(s)
	return w
}
