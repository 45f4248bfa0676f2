package vobject

import (
	"fmt"
	"io"
	"strings"
)

const (
	begin = "BEGIN"
	end   = "END"
)

// contentLine is a parsed logical line.
type contentLine struct {
	group  string
	name   string
	params []*Param
	value  string // still escaped
}

// frame is an open component on the builder stack.
type frame struct {
	c    *Component
	line int
}

type parser struct {
	items     []item
	peekCount int
	token     [2]item
	line      int
	text      string
	stack     []frame
	result    []*Component
}

// Parse reads a whole document and returns its top-level components in
// order. It's up to the caller to close the io.Reader.
func Parse(r io.Reader) ([]*Component, error) {
	p := &parser{}
	u := newUnfolder(r)
	for {
		text, num, ok, err := u.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		p.line, p.text = num, text
		if err := p.scanLine(); err != nil {
			return nil, err
		}
	}

	if n := len(p.stack); n > 0 {
		top := p.stack[n-1]
		return nil, &ParseError{
			Err:  ErrUnterminatedComponent,
			Line: top.line,
			Msg:  fmt.Sprintf("%s is never closed", top.c.name),
		}
	}
	return p.result, nil
}

// ParseString parses a document held in a string.
func ParseString(s string) ([]*Component, error) {
	return Parse(strings.NewReader(s))
}

// ParseComponent parses a document holding exactly one top-level component.
func ParseComponent(s string) (*Component, error) {
	comps, err := ParseString(s)
	if err != nil {
		return nil, err
	}
	switch len(comps) {
	case 0:
		return nil, &ParseError{Err: ErrNoComponent}
	case 1:
		return comps[0], nil
	}
	return nil, &ParseError{
		Err: ErrTrailingData,
		Msg: fmt.Sprintf("%d components after %s", len(comps)-1, comps[0].name),
	}
}

func (p *parser) errorf(err error, format string, args ...interface{}) error {
	return &ParseError{Err: err, Line: p.line, Text: p.text, Msg: fmt.Sprintf(format, args...)}
}

// next returns the next token.
func (p *parser) next() item {
	if p.peekCount > 0 {
		p.peekCount--
	} else {
		p.token[0] = p.items[0]
		if len(p.items) > 1 {
			p.items = p.items[1:]
		}
	}
	return p.token[p.peekCount]
}

// backup backs the input stream up one token.
func (p *parser) backup() {
	p.peekCount++
}

// scanLine feeds one logical line to the component stack
func (p *parser) scanLine() error {
	if p.text == "" {
		return nil
	}

	cl, err := p.scanContentLine()
	if err != nil {
		return err
	}

	if cl.group == "" && isMarker(cl.name) {
		return p.scanDelimiter(cl)
	}

	n := len(p.stack)
	if n == 0 {
		return p.errorf(ErrPropertyOutsideComponent, "%s has no enclosing BEGIN", cl.name)
	}

	prop := &Property{group: cl.group, name: cl.name, params: cl.params}
	prop.value = decodeValue(cl.value)
	top := p.stack[n-1].c
	top.props = append(top.props, prop)
	return nil
}

// scanDelimiter opens or closes a component
func (p *parser) scanDelimiter(cl *contentLine) error {
	name := strings.TrimSpace(cl.value)
	if name == "" || strings.IndexFunc(name, func(r rune) bool { return !isNameRune(r) }) >= 0 {
		return p.errorf(ErrMalformedLine, "invalid component name %q", name)
	}

	if strings.EqualFold(cl.name, begin) {
		p.stack = append(p.stack, frame{c: &Component{name: name}, line: p.line})
		return nil
	}

	n := len(p.stack)
	if n == 0 {
		return p.errorf(ErrUnbalancedStructure, "END:%s without BEGIN", name)
	}
	top := p.stack[n-1]
	if !top.c.Is(name) {
		return p.errorf(ErrUnbalancedStructure, "found END:%s, expected END:%s", name, top.c.name)
	}

	p.stack[n-1] = frame{}
	p.stack = p.stack[:n-1]
	if n == 1 {
		p.result = append(p.result, top.c)
	} else {
		parent := p.stack[n-2].c
		parent.children = append(parent.children, top.c)
	}
	return nil
}

// scanContentLine parses a logical line into a name, params and raw value
func (p *parser) scanContentLine() (*contentLine, error) {
	p.items = lex(p.text)
	p.peekCount = 0

	name := p.next()
	if name.typ != itemName {
		return nil, p.malformed(name, "a name")
	}

	cl := &contentLine{name: name.val}
	if i := strings.IndexByte(name.val, '.'); i > 0 && i < len(name.val)-1 {
		cl.group, cl.name = name.val[:i], name.val[i+1:]
		if err := validatePropertyName(cl.name); err != nil {
			return nil, p.errorf(ErrMalformedLine, "invalid name %q", cl.name)
		}
		if err := validateName("group", cl.group); err != nil {
			return nil, p.errorf(ErrMalformedLine, "invalid group %q", cl.group)
		}
	}

	if err := p.scanParams(cl); err != nil {
		return nil, err
	}

	if it := p.next(); it.typ != itemColon {
		return nil, p.malformed(it, "\":\"")
	}

	value := p.next()
	if value.typ != itemValue {
		return nil, p.malformed(value, "a value")
	}
	cl.value = value.val

	return cl, nil
}

// scanParams parses a list of param inside a content-line
func (p *parser) scanParams(cl *contentLine) error {
	for {
		it := p.next()

		if it.typ != itemSemiColon {
			p.backup()
			return nil
		}

		paramName := p.next()

		if paramName.typ != itemParamName {
			return p.malformed(paramName, "a param-name")
		}

		if it := p.next(); it.typ != itemEqual {
			return p.malformed(it, "=")
		}

		param := &Param{name: paramName.val}
		if err := p.scanValues(param); err != nil {
			return err
		}

		cl.params = append(cl.params, param)
	}
}

// scanValues parses a list of at least one value for a param
func (p *parser) scanValues(param *Param) error {
	for {
		paramValue := p.next()

		switch paramValue.typ {
		case itemParamValue:
			v := Unescape(paramValue.val)
			if strings.ContainsRune(v, '"') {
				return p.errorf(ErrMalformedLine, "escaped quote in value of %s", param.name)
			}
			param.values = append(param.values, v)
		case itemQuotedValue:
			param.values = append(param.values, paramValue.val)
		default:
			return p.malformed(paramValue, "a param-value")
		}

		if it := p.next(); it.typ != itemComma {
			p.backup()
			return nil
		}
	}
}

// malformed reports an unexpected token. Lexer errors carry their own
// message.
func (p *parser) malformed(found item, expected string) error {
	if found.typ == itemError {
		return p.errorf(ErrMalformedLine, "%s", found.val)
	}
	return p.errorf(ErrMalformedLine, "found %s, expected %s", found, expected)
}
