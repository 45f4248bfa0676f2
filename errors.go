package vobject

import (
	"errors"
	"fmt"
)

// Parse errors. A *ParseError returned by the parser wraps one of these.
var (
	ErrMalformedLine            = errors.New("malformed line")
	ErrUnbalancedStructure      = errors.New("unbalanced structure")
	ErrPropertyOutsideComponent = errors.New("property outside component")
	ErrUnterminatedComponent    = errors.New("unterminated component")
	ErrNoComponent              = errors.New("no component")
	ErrTrailingData             = errors.New("trailing data")
)

// Mutation errors. Name and value errors are wrapped by *NameError and
// *ValueError.
var (
	ErrInvalidName  = errors.New("invalid name")
	ErrInvalidValue = errors.New("invalid value")
	ErrOutOfRange   = errors.New("index out of range")
)

// A ParseError describes why a document could not be parsed.
type ParseError struct {
	Err  error  // one of the Err* parse sentinels
	Line int    // physical line where the offending logical line starts
	Text string // offending logical line, if any
	Msg  string // detail
}

func (e *ParseError) Error() string {
	s := "vobject: "
	if e.Line > 0 {
		s += fmt.Sprintf("line %d: ", e.Line)
	}
	s += e.Err.Error()
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Text != "" {
		s += fmt.Sprintf(" in %.40q", e.Text)
	}
	return s
}

func (e *ParseError) Unwrap() error { return e.Err }

// A NameError is returned when a component, property, group or parameter
// name cannot be written as a token.
type NameError struct {
	Kind   string
	Name   string
	Reason string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("vobject: invalid %s name %q: %s", e.Kind, e.Name, e.Reason)
}

func (e *NameError) Unwrap() error { return ErrInvalidName }

// A ValueError is returned when a value cannot be represented in a content
// line.
type ValueError struct {
	Owner  string
	Value  string
	Reason string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("vobject: invalid value %q for %s: %s", e.Value, e.Owner, e.Reason)
}

func (e *ValueError) Unwrap() error { return ErrInvalidValue }

func quoteRune(r rune) string {
	return fmt.Sprintf("%#U", r)
}
