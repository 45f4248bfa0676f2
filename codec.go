package vobject

import (
	"strings"
)

var escaper = strings.NewReplacer(
	`\`, `\\`,
	",", `\,`,
	";", `\;`,
	"\r\n", `\n`,
	"\n", `\n`,
)

// Escape encodes s for use in a content line value. A CRLF pair is written
// as a single \n, so Unescape(Escape(s)) == s holds for any s without a
// carriage return.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Unescape decodes backslash escapes. Unknown escapes decode to the escaped
// character and a trailing lone backslash is kept.
func Unescape(s string) string {
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n', 'N':
			b.WriteByte('\n')
		default:
			// multi-byte runes are copied byte by byte
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// SplitValues splits an escaped value on every unescaped sep. Escapes are
// left in place.
func SplitValues(s string, sep byte) []string {
	var values []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case sep:
			values = append(values, s[start:i])
			start = i + 1
		}
	}
	return append(values, s[start:])
}

// JoinValues escapes each value and joins them with sep.
func JoinValues(values []string, sep byte) string {
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteByte(sep)
		}
		b.WriteString(Escape(v))
	}
	return b.String()
}

// decodeValue turns a raw property value into its fields and items.
func decodeValue(raw string) [][]string {
	fields := SplitValues(raw, ';')
	value := make([][]string, len(fields))
	for i, field := range fields {
		items := SplitValues(field, ',')
		for j, it := range items {
			items[j] = Unescape(it)
		}
		value[i] = items
	}
	return value
}

// encodeValue is the inverse of decodeValue.
func encodeValue(value [][]string) string {
	var b strings.Builder
	for i, items := range value {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(JoinValues(items, ','))
	}
	return b.String()
}

var paramEscaper = strings.NewReplacer(
	`\`, `\\`,
	",", `\,`,
	";", `\;`,
	":", `\:`,
	`"`, `\"`,
	"\n", `\n`,
)

// encodeParamValue writes a parameter value bare, quoted, or escaped. A
// value is never both quoted and escaped, and a double quote is never
// written bare.
func encodeParamValue(v string) string {
	switch {
	case strings.ContainsAny(v, "\\\n\""):
		return paramEscaper.Replace(v)
	case strings.ContainsAny(v, ":;,"):
		return `"` + v + `"`
	}
	return v
}
