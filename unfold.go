package vobject

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// unfolder turns physical lines into logical lines by joining folded
// continuation lines. It reads its input once.
type unfolder struct {
	r       *bufio.Reader
	line    int    // physical lines consumed so far
	pending string // physical line read ahead, not yet consumed
	hasNext bool
	err     error
}

func newUnfolder(r io.Reader) *unfolder {
	return &unfolder{r: bufio.NewReader(r)}
}

// readPhysical returns the next physical line without its terminator.
func (u *unfolder) readPhysical() (string, bool) {
	if u.hasNext {
		u.hasNext = false
		return u.pending, true
	}
	if u.err != nil {
		return "", false
	}
	s, err := u.r.ReadString('\n')
	if err != nil {
		u.err = err
		if s == "" {
			return "", false
		}
	}
	u.line++
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	return s, true
}

func (u *unfolder) unread(s string) {
	u.pending = s
	u.hasNext = true
}

// next returns the next logical line and the physical line number it starts
// on. ok is false at the end of input.
func (u *unfolder) next() (text string, num int, ok bool, err error) {
	first, ok := u.readPhysical()
	if !ok {
		return "", 0, false, u.readErr()
	}
	num = u.line

	var b strings.Builder
	// A fold on the very first line has nothing to continue.
	b.WriteString(stripFold(first))

	for {
		s, ok := u.readPhysical()
		if !ok {
			break
		}
		if !isFolded(s) {
			u.unread(s)
			break
		}
		b.WriteString(s[1:])
	}
	return b.String(), num, true, nil
}

func (u *unfolder) readErr() error {
	if u.err == nil || errors.Is(u.err, io.EOF) {
		return nil
	}
	return u.err
}

func isFolded(s string) bool {
	return len(s) > 0 && (s[0] == ' ' || s[0] == '\t')
}

func stripFold(s string) string {
	if isFolded(s) {
		return s[1:]
	}
	return s
}

// Unfold joins folded lines and returns the logical lines of text.
func Unfold(text string) []string {
	u := newUnfolder(strings.NewReader(text))
	var lines []string
	for {
		line, _, ok, _ := u.next()
		if !ok {
			return lines
		}
		lines = append(lines, line)
	}
}
