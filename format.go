package vobject

import (
	"bytes"
	"io"
	"strings"
)

const crlf = "\r\n"

// An Encoder writes components to an output stream.
type Encoder struct {
	w io.Writer

	// LineEnding terminates every physical line. It defaults to CRLF as
	// required by the RFCs; LF is accepted back by the parser.
	LineEnding string
}

// NewEncoder returns an Encoder writing CRLF terminated lines to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w, LineEnding: crlf}
}

// Encode writes the components to the stream in order.
func (e *Encoder) Encode(comps ...*Component) error {
	eol := e.LineEnding
	if eol == "" {
		eol = crlf
	}
	for _, c := range comps {
		if err := formatComponent(e.w, c, eol); err != nil {
			return err
		}
	}
	return nil
}

// Format writes the components to the provided io.Writer.
func Format(w io.Writer, comps ...*Component) error {
	return NewEncoder(w).Encode(comps...)
}

// Generate returns the text of the components.
func Generate(comps ...*Component) string {
	var b strings.Builder
	// writing to a strings.Builder never fails
	_ = Format(&b, comps...)
	return b.String()
}

func formatComponent(w io.Writer, c *Component, eol string) error {
	if _, err := io.WriteString(w, foldLine(begin+":"+c.name, eol)+eol); err != nil {
		return err
	}

	for _, prop := range c.props {
		if err := formatProperty(w, prop, eol); err != nil {
			return err
		}
	}

	for _, child := range c.children {
		if err := formatComponent(w, child, eol); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, foldLine(end+":"+c.name, eol)+eol)
	return err
}

func formatProperty(w io.Writer, prop *Property, eol string) error {
	var buf bytes.Buffer
	if prop.group != "" {
		buf.WriteString(prop.group)
		buf.WriteString(".")
	}
	buf.WriteString(prop.name)

	for _, param := range prop.params {
		buf.WriteString(";")
		buf.WriteString(param.name)
		buf.WriteString("=")
		for i, v := range param.values {
			if i > 0 {
				buf.WriteString(",")
			}
			buf.WriteString(encodeParamValue(v))
		}
	}

	buf.WriteString(":")
	buf.WriteString(encodeValue(prop.value))

	line := foldLine(buf.String(), eol)
	_, err := io.WriteString(w, line+eol)
	return err
}
