// Package vobject implements a parser and generator for the VObject family
// of formats: vCard (RFC 6350) and iCalendar (RFC 5545).
//
// Parsed text becomes a tree of Components holding Properties, which in turn
// carry Params. Every value stored in the tree is decoded: escape sequences
// are resolved by the parser and only re-applied by the generator, so a tree
// can be built or edited without knowing the textual syntax.
package vobject

import (
	"fmt"
	"strings"
	"unicode"
)

// A Component represents a BEGIN/END delimited block, such as VCARD,
// VCALENDAR or VEVENT.
type Component struct {
	name     string
	props    []*Property
	children []*Component
}

// A Property represents a single content line inside a component.
//
// The value is kept as a list of fields separated by ";" in the text, each
// field being a list of items separated by ",".
type Property struct {
	group  string
	name   string
	params []*Param
	value  [][]string
}

// A Param represents a property parameter with one or more values.
type Param struct {
	name   string
	values []string
}

// NewComponent creates an empty Component
func NewComponent(name string) (*Component, error) {
	if err := validateComponentName(name); err != nil {
		return nil, err
	}
	return &Component{name: name}, nil
}

// NewProperty creates a Property holding a single text value
func NewProperty(name, value string) (*Property, error) {
	if err := validatePropertyName(name); err != nil {
		return nil, err
	}
	p := &Property{name: name}
	if err := p.SetValue(value); err != nil {
		return nil, err
	}
	return p, nil
}

// NewParam creates a Param with at least one value
func NewParam(name string, values ...string) (*Param, error) {
	if err := validateName("parameter", name); err != nil {
		return nil, err
	}
	p := &Param{name: name}
	if err := p.SetValues(values...); err != nil {
		return nil, err
	}
	return p, nil
}

// Component

// Name returns the component name as it was written.
func (c *Component) Name() string { return c.name }

// SetName renames the component.
func (c *Component) SetName(name string) error {
	if err := validateComponentName(name); err != nil {
		return err
	}
	c.name = name
	return nil
}

// Is reports whether the component name equals name, ignoring case.
func (c *Component) Is(name string) bool {
	return strings.EqualFold(c.name, name)
}

// Properties returns the properties in order. The returned slice is a copy,
// the properties are not.
func (c *Component) Properties() []*Property {
	return append([]*Property(nil), c.props...)
}

// Props returns every property with the given name, in order.
func (c *Component) Props(name string) []*Property {
	var props []*Property
	for _, p := range c.props {
		if p.Is(name) {
			props = append(props, p)
		}
	}
	return props
}

// Prop returns the first property with the given name, or nil.
func (c *Component) Prop(name string) *Property {
	for _, p := range c.props {
		if p.Is(name) {
			return p
		}
	}
	return nil
}

// Only returns the property with the given name when exactly one exists.
func (c *Component) Only(name string) *Property {
	props := c.Props(name)
	if len(props) != 1 {
		return nil
	}
	return props[0]
}

// AddProp appends p, keeping other same-named properties.
func (c *Component) AddProp(p *Property) error {
	if err := checkProp(p); err != nil {
		return err
	}
	c.props = append(c.props, p)
	return nil
}

// InsertProp inserts p at position i, which must be within [0, len].
func (c *Component) InsertProp(i int, p *Property) error {
	if err := checkIndex(i, len(c.props)); err != nil {
		return err
	}
	if err := checkProp(p); err != nil {
		return err
	}
	c.props = append(c.props, nil)
	copy(c.props[i+1:], c.props[i:])
	c.props[i] = p
	return nil
}

// SetProp replaces every property named like p by p. The replacement takes
// the position of the first match, or is appended when there is none.
func (c *Component) SetProp(p *Property) error {
	if err := checkProp(p); err != nil {
		return err
	}
	c.setProp(p)
	return nil
}

func (c *Component) setProp(p *Property) {
	props := c.props[:0]
	placed := false
	for _, prop := range c.props {
		if !prop.Is(p.name) {
			props = append(props, prop)
			continue
		}
		if !placed {
			props = append(props, p)
			placed = true
		}
	}
	for i := len(props); i < len(c.props); i++ {
		c.props[i] = nil
	}
	c.props = props
	if !placed {
		c.props = append(c.props, p)
	}
}

// RemoveProps removes and returns every property with the given name.
func (c *Component) RemoveProps(name string) []*Property {
	var removed []*Property
	props := c.props[:0]
	for _, p := range c.props {
		if p.Is(name) {
			removed = append(removed, p)
		} else {
			props = append(props, p)
		}
	}
	for i := len(props); i < len(c.props); i++ {
		c.props[i] = nil
	}
	c.props = props
	return removed
}

// RemovePropAt removes and returns the property at position i, or nil when
// i is out of range.
func (c *Component) RemovePropAt(i int) *Property {
	if i < 0 || i >= len(c.props) {
		return nil
	}
	p := c.props[i]
	n := len(c.props) - 1
	copy(c.props[i:], c.props[i+1:])
	c.props[n] = nil
	c.props = c.props[:n]
	return p
}

// Children returns the nested components in order.
func (c *Component) Children() []*Component {
	return append([]*Component(nil), c.children...)
}

// ChildrenNamed returns the nested components with the given name.
func (c *Component) ChildrenNamed(name string) []*Component {
	var children []*Component
	for _, child := range c.children {
		if child.Is(name) {
			children = append(children, child)
		}
	}
	return children
}

// AddChild appends a nested component.
func (c *Component) AddChild(child *Component) error {
	if err := checkChild(child); err != nil {
		return err
	}
	c.children = append(c.children, child)
	return nil
}

// InsertChild inserts a nested component at position i, which must be
// within [0, len].
func (c *Component) InsertChild(i int, child *Component) error {
	if err := checkIndex(i, len(c.children)); err != nil {
		return err
	}
	if err := checkChild(child); err != nil {
		return err
	}
	c.children = append(c.children, nil)
	copy(c.children[i+1:], c.children[i:])
	c.children[i] = child
	return nil
}

// RemoveChildAt removes and returns the nested component at position i, or
// nil when i is out of range.
func (c *Component) RemoveChildAt(i int) *Component {
	if i < 0 || i >= len(c.children) {
		return nil
	}
	child := c.children[i]
	n := len(c.children) - 1
	copy(c.children[i:], c.children[i+1:])
	c.children[n] = nil
	c.children = c.children[:n]
	return child
}

// Property

// Name returns the property name as it was written.
func (p *Property) Name() string { return p.name }

// SetName renames the property. BEGIN and END are reserved.
func (p *Property) SetName(name string) error {
	if err := validatePropertyName(name); err != nil {
		return err
	}
	p.name = name
	return nil
}

// Is reports whether the property name equals name, ignoring case.
func (p *Property) Is(name string) bool {
	return strings.EqualFold(p.name, name)
}

// Group returns the property group, empty when the property has none.
func (p *Property) Group() string { return p.group }

// SetGroup sets the property group. An empty group removes it.
func (p *Property) SetGroup(group string) error {
	if group != "" {
		if err := validateName("group", group); err != nil {
			return err
		}
	}
	p.group = group
	return nil
}

// Params returns the parameters in order.
func (p *Property) Params() []*Param {
	return append([]*Param(nil), p.params...)
}

// Param returns the first parameter with the given name, or nil.
func (p *Property) Param(name string) *Param {
	for _, param := range p.params {
		if param.Is(name) {
			return param
		}
	}
	return nil
}

// AddParam appends a parameter, keeping same-named ones.
func (p *Property) AddParam(param *Param) error {
	if err := checkParam(param); err != nil {
		return err
	}
	p.params = append(p.params, param)
	return nil
}

// SetParam replaces the values of the named parameter, adding it when
// missing.
func (p *Property) SetParam(name string, values ...string) error {
	if param := p.Param(name); param != nil {
		return param.SetValues(values...)
	}
	param, err := NewParam(name, values...)
	if err != nil {
		return err
	}
	p.params = append(p.params, param)
	return nil
}

// RemoveParam removes every parameter with the given name and reports
// whether any was found.
func (p *Property) RemoveParam(name string) bool {
	params := p.params[:0]
	found := false
	for _, param := range p.params {
		if param.Is(name) {
			found = true
			continue
		}
		params = append(params, param)
	}
	for i := len(params); i < len(p.params); i++ {
		p.params[i] = nil
	}
	p.params = params
	return found
}

// Value returns the decoded text of the property: fields are joined with
// ";" and items with ",". It is exact for unstructured single values.
func (p *Property) Value() string {
	fields := make([]string, len(p.value))
	for i, items := range p.value {
		fields[i] = strings.Join(items, ",")
	}
	return strings.Join(fields, ";")
}

// Values returns the comma separated sub-values. For a structured value,
// each field is returned as one sub-value.
func (p *Property) Values() []string {
	if len(p.value) == 1 {
		return append([]string(nil), p.value[0]...)
	}
	values := make([]string, len(p.value))
	for i, items := range p.value {
		values[i] = strings.Join(items, ",")
	}
	return values
}

// Fields returns the structured value: one entry per ";" separated field,
// each holding the field's "," separated items.
func (p *Property) Fields() [][]string {
	fields := make([][]string, len(p.value))
	for i, items := range p.value {
		fields[i] = append([]string(nil), items...)
	}
	return fields
}

// SetValue stores a single text value.
func (p *Property) SetValue(value string) error {
	return p.SetFields([]string{value})
}

// SetValues stores a list value.
func (p *Property) SetValues(values ...string) error {
	if len(values) == 0 {
		values = []string{""}
	}
	return p.SetFields(values)
}

// SetFields stores a structured value. Empty fields are stored as a single
// empty item.
func (p *Property) SetFields(fields ...[]string) error {
	if len(fields) == 0 {
		fields = [][]string{{""}}
	}
	value := make([][]string, len(fields))
	for i, items := range fields {
		if len(items) == 0 {
			items = []string{""}
		}
		for _, item := range items {
			if err := validateValue(p.name, item); err != nil {
				return err
			}
		}
		value[i] = append([]string(nil), items...)
	}
	p.value = value
	return nil
}

// Param

// Name returns the parameter name as it was written.
func (p *Param) Name() string { return p.name }

// SetName renames the parameter.
func (p *Param) SetName(name string) error {
	if err := validateName("parameter", name); err != nil {
		return err
	}
	p.name = name
	return nil
}

// Is reports whether the parameter name equals name, ignoring case.
func (p *Param) Is(name string) bool {
	return strings.EqualFold(p.name, name)
}

// Value returns the first value, or "" when there is none.
func (p *Param) Value() string {
	if len(p.values) == 0 {
		return ""
	}
	return p.values[0]
}

// Values returns every value in order.
func (p *Param) Values() []string {
	return append([]string(nil), p.values...)
}

// SetValues replaces the values. At least one value is required.
func (p *Param) SetValues(values ...string) error {
	if len(values) == 0 {
		return &ValueError{Owner: p.name, Reason: "parameter needs at least one value"}
	}
	for _, v := range values {
		if err := validateParamValue(p.name, v); err != nil {
			return err
		}
	}
	p.values = append([]string(nil), values...)
	return nil
}

// validation

func validateName(kind, name string) error {
	if name == "" {
		return &NameError{Kind: kind, Name: name, Reason: "empty name"}
	}
	for _, r := range name {
		if !isNameChar(r) {
			return &NameError{Kind: kind, Name: name, Reason: "illegal character " + quoteRune(r)}
		}
	}
	return nil
}

// validateComponentName accepts any token the parser reads as a component
// name, except control characters.
func validateComponentName(name string) error {
	if name == "" {
		return &NameError{Kind: "component", Name: name, Reason: "empty name"}
	}
	for _, r := range name {
		if !isNameRune(r) || unicode.IsControl(r) {
			return &NameError{Kind: "component", Name: name, Reason: "illegal character " + quoteRune(r)}
		}
	}
	return nil
}

func validatePropertyName(name string) error {
	if err := validateName("property", name); err != nil {
		return err
	}
	if isMarker(name) {
		return &NameError{Kind: "property", Name: name, Reason: "reserved name"}
	}
	return nil
}

func validateValue(owner, v string) error {
	if strings.ContainsRune(v, '\r') {
		return &ValueError{Owner: owner, Value: v, Reason: "carriage return"}
	}
	return nil
}

func validateParamValue(owner, v string) error {
	if strings.ContainsRune(v, '"') {
		return &ValueError{Owner: owner, Value: v, Reason: "double quote"}
	}
	return validateValue(owner, v)
}

func isMarker(name string) bool {
	return strings.EqualFold(name, begin) || strings.EqualFold(name, end)
}

func checkIndex(i, n int) error {
	if i < 0 || i > n {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrOutOfRange, i, n)
	}
	return nil
}

func checkChild(c *Component) error {
	if c == nil {
		return &NameError{Kind: "component", Reason: "nil component"}
	}
	return validateComponentName(c.name)
}

func checkProp(p *Property) error {
	if p == nil {
		return &NameError{Kind: "property", Reason: "nil property"}
	}
	if err := validatePropertyName(p.name); err != nil {
		return err
	}
	if p.group != "" {
		return validateName("group", p.group)
	}
	return nil
}

func checkParam(p *Param) error {
	if p == nil {
		return &NameError{Kind: "parameter", Reason: "nil parameter"}
	}
	if err := validateName("parameter", p.name); err != nil {
		return err
	}
	if len(p.values) == 0 {
		return &ValueError{Owner: p.name, Reason: "parameter needs at least one value"}
	}
	return nil
}
