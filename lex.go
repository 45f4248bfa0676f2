package vobject

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// item represents a token or text string returned from the scanner.
type item struct {
	typ itemType // The type of this item.
	pos int      // The starting position, in bytes, of this item in the line.
	val string   // The value of this item.
}

func (i item) String() string {
	switch {
	case i.typ == itemEOF:
		return "EOL"
	case i.typ == itemError:
		return i.val
	case len(i.val) > 10:
		return fmt.Sprintf("%.10q...", i.val)
	}
	return fmt.Sprintf("%q", i.val)
}

// itemType identifies the type of lex items.
type itemType int

const (
	// Special tokens
	itemError itemType = iota
	itemEOF

	// Literals
	itemName
	itemParamName
	itemParamValue  // bare, may hold escape pairs
	itemQuotedValue // quotes stripped, taken literally
	itemValue

	// Misc
	itemColon     // :
	itemSemiColon // ;
	itemEqual     // =
	itemComma     // ,
)

const eof = -1

// stateFn represents the state of the scanner as a function that returns the next state.
type stateFn func(*lexer) stateFn

// lexer holds the state of the scanner for one logical line.
type lexer struct {
	input string // the line being scanned
	start int    // start position of this item
	pos   int    // current position in the input
	width int    // width of last rune read from input
	items []item // scanned items
}

// lex scans a whole logical line. The last item is either itemEOF or
// itemError.
func lex(input string) []item {
	l := &lexer{input: input}
	for state := stateFn(lexName); state != nil; {
		state = state(l)
	}
	return l.items
}

// emit records an item.
func (l *lexer) emit(t itemType) {
	l.items = append(l.items, item{t, l.start, l.input[l.start:l.pos]})
	l.start = l.pos
}

// ignore skips over the pending input before this point.
func (l *lexer) ignore() {
	l.start = l.pos
}

// next returns the next rune in the input.
func (l *lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.width = w
	l.pos += l.width
	return r
}

// peek returns but does not consume the next rune in the input.
func (l *lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

// backup steps back one rune. Can only be called once per call of next.
func (l *lexer) backup() {
	l.pos -= l.width
}

// errorf records an error token and terminates the scan by returning a nil
// state.
func (l *lexer) errorf(format string, args ...interface{}) stateFn {
	l.items = append(l.items, item{itemError, l.start, fmt.Sprintf(format, args...)})
	return nil
}

// State functions

// lexName scans the name of the content line, group prefix included
//
// contentline = name *(";" param ) ":" value
func lexName(l *lexer) stateFn {
	for isNameRune(l.next()) {
		// absorb
	}
	l.backup()
	if l.pos == l.start {
		return l.errorf("empty name")
	}
	if r := l.peek(); unicode.IsSpace(r) {
		return l.errorf("whitespace in name")
	}
	l.emit(itemName)
	return lexContentLine
}

// lexContentLine scans the delimiter following a name or a param value
func lexContentLine(l *lexer) stateFn {
	switch r := l.next(); {
	case r == ';':
		l.emit(itemSemiColon)
		return lexParamName
	case r == ':':
		l.emit(itemColon)
		return lexValue
	case r == ',':
		l.emit(itemComma)
		return lexParamValue
	case r == eof:
		return l.errorf("missing \":\" before end of line")
	default:
		return l.errorf("unexpected character %#U", r)
	}
}

// lexParamName scans the param-name in the content line
//
// param = param-name "=" param-value *("," param-value)
func lexParamName(l *lexer) stateFn {
	for isParamNameRune(l.next()) {
		// absorb
	}
	l.backup()
	if l.pos == l.start {
		return l.errorf("empty param name")
	}
	l.emit(itemParamName)

	if r := l.next(); r != '=' {
		return l.errorf("missing \"=\" after param name, got %#U", r)
	}
	l.emit(itemEqual)
	return lexParamValue
}

// lexParamValue scans the param-value in the content line
//
// param-value   = paramtext / quoted-string
// paramtext     = *SAFE-CHAR
// quoted-string = DQUOTE *QSAFE-CHAR DQUOTE
func lexParamValue(l *lexer) stateFn {
	if l.peek() == '"' {
		l.next()
		l.ignore()
		for isQSafeChar(l.next()) {
			// absorb
		}
		l.backup()
		if l.peek() != '"' {
			return l.errorf("missing \" for closing value")
		}
		l.emit(itemQuotedValue)
		l.next()
		l.ignore()
		return lexContentLine
	}

	for {
		r := l.next()
		if r == '\\' {
			// an escape pair never ends the token
			if l.next() == eof {
				l.backup()
			}
			continue
		}
		if !isSafeChar(r) {
			l.backup()
			break
		}
	}
	l.emit(itemParamValue)
	return lexContentLine
}

// lexValue scans the value, which is the rest of the line
func lexValue(l *lexer) stateFn {
	l.pos = len(l.input)
	l.emit(itemValue)
	l.emit(itemEOF)
	return nil
}

// rune helpers

func isNameRune(r rune) bool {
	return r != eof && r != ':' && r != ';' && !unicode.IsSpace(r)
}

func isParamNameRune(r rune) bool {
	return isNameRune(r) && r != '=' && r != ',' && r != '"'
}

func isQSafeChar(r rune) bool {
	return r != eof && r != '"'
}

func isSafeChar(r rune) bool {
	return r != eof && r != '"' && r != ';' && r != ':' && r != ','
}

// isNameChar reports whether r may appear in a name built through the API.
func isNameChar(r rune) bool {
	return isParamNameRune(r) && r != '.' && !unicode.IsControl(r)
}
