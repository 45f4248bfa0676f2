package vobject

// A VCard is a view over a VCARD component.
type VCard struct {
	*Component
}

// A Name is the structured N property of a vCard. Each part may hold
// several comma separated values.
type Name struct {
	Family, Given, Additional, Prefixes, Suffixes []string
}

// NewVCard creates an empty VCARD with the given VERSION, such as "4.0".
func NewVCard(version string) (*VCard, error) {
	v := &VCard{&Component{name: "VCARD"}}
	if err := v.setChecked("VERSION", version); err != nil {
		return nil, err
	}
	return v, nil
}

// AsVCard wraps c when it is a VCARD.
func AsVCard(c *Component) (*VCard, bool) {
	if !c.Is("VCARD") {
		return nil, false
	}
	return &VCard{c}, true
}

// ParseVCard parses a document holding exactly one VCARD.
func ParseVCard(s string) (*VCard, error) {
	c, err := ParseComponent(s)
	if err != nil {
		return nil, err
	}
	v, ok := AsVCard(c)
	if !ok {
		return nil, &ParseError{Err: ErrNoComponent, Msg: "found " + c.name + ", expected VCARD"}
	}
	return v, nil
}

func (v *VCard) Version() string { return v.text("VERSION") }
func (v *VCard) UID() string     { return v.text("UID") }

// FormattedNames returns every FN value.
func (v *VCard) FormattedNames() []string { return v.texts("FN") }

// Emails returns every EMAIL value.
func (v *VCard) Emails() []string { return v.texts("EMAIL") }

// Tels returns every TEL value.
func (v *VCard) Tels() []string { return v.texts("TEL") }

// Addresses returns the ADR properties. Use Fields to read the post office
// box, extended address, street, locality, region, code and country.
func (v *VCard) Addresses() []*Property { return v.Props("ADR") }

// Org returns the organizational units of the first ORG property.
func (v *VCard) Org() []string {
	p := v.Prop("ORG")
	if p == nil {
		return nil
	}
	var units []string
	for _, field := range p.Fields() {
		units = append(units, field...)
	}
	return units
}

// StructuredName returns the structured N property, or nil when there is none.
func (v *VCard) StructuredName() *Name {
	p := v.Only("N")
	if p == nil {
		return nil
	}
	fields := p.Fields()
	part := func(i int) []string {
		if i < len(fields) && !(len(fields[i]) == 1 && fields[i][0] == "") {
			return fields[i]
		}
		return nil
	}
	return &Name{
		Family:     part(0),
		Given:      part(1),
		Additional: part(2),
		Prefixes:   part(3),
		Suffixes:   part(4),
	}
}

// SetStructuredName replaces the N property.
func (v *VCard) SetStructuredName(n *Name) error {
	p, err := NewProperty("N", "")
	if err != nil {
		return err
	}
	if err := p.SetFields(n.Family, n.Given, n.Additional, n.Prefixes, n.Suffixes); err != nil {
		return err
	}
	v.setProp(p)
	return nil
}

// AddFormattedName appends an FN property.
func (v *VCard) AddFormattedName(fn string) error { return v.add("FN", fn) }

// AddEmail appends an EMAIL property with optional TYPE values.
func (v *VCard) AddEmail(email string, types ...string) error {
	return v.add("EMAIL", email, types...)
}

// AddTel appends a TEL property with optional TYPE values.
func (v *VCard) AddTel(tel string, types ...string) error {
	return v.add("TEL", tel, types...)
}

func (v *VCard) add(name, value string, types ...string) error {
	p, err := NewProperty(name, value)
	if err != nil {
		return err
	}
	if len(types) > 0 {
		if err := p.SetParam("TYPE", types...); err != nil {
			return err
		}
	}
	return v.AddProp(p)
}

func (c *Component) texts(name string) []string {
	var values []string
	for _, p := range c.Props(name) {
		values = append(values, p.Value())
	}
	return values
}
