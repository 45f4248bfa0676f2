package vobject

import (
	"errors"
	"strings"
	"time"
)

const (
	dateLayout              = "20060102"
	dateTimeLayoutUTC       = "20060102T150405Z"
	dateTimeLayoutLocalized = "20060102T150405"
)

// A Calendar is a view over a VCALENDAR component.
type Calendar struct {
	*Component
}

// An Event is a view over a VEVENT component.
type Event struct {
	*Component
}

// NewCalendar creates an iCalendar 2.0 VCALENDAR with the given PRODID.
func NewCalendar(prodid string) (*Calendar, error) {
	c := &Calendar{&Component{name: "VCALENDAR"}}
	if err := c.setChecked("PRODID", prodid); err != nil {
		return nil, err
	}
	c.set("VERSION", "2.0")
	return c, nil
}

// AsCalendar wraps c when it is a VCALENDAR.
func AsCalendar(c *Component) (*Calendar, bool) {
	if !c.Is("VCALENDAR") {
		return nil, false
	}
	return &Calendar{c}, true
}

// ProdID returns the PRODID property value.
func (c *Calendar) ProdID() string { return c.text("PRODID") }

// Version returns the VERSION property value.
func (c *Calendar) Version() string { return c.text("VERSION") }

// Method returns the METHOD property value.
func (c *Calendar) Method() string { return c.text("METHOD") }

// Events returns a view of every VEVENT child.
func (c *Calendar) Events() []*Event {
	var events []*Event
	for _, child := range c.ChildrenNamed("VEVENT") {
		events = append(events, &Event{child})
	}
	return events
}

// AddEvent appends an event to the calendar.
func (c *Calendar) AddEvent(e *Event) error {
	return c.AddChild(e.Component)
}

// NewEvent creates a VEVENT with the given UID.
func NewEvent(uid string) (*Event, error) {
	e := &Event{&Component{name: "VEVENT"}}
	if err := e.setChecked("UID", uid); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Event) UID() string         { return e.text("UID") }
func (e *Event) Summary() string     { return e.text("SUMMARY") }
func (e *Event) Description() string { return e.text("DESCRIPTION") }
func (e *Event) Location() string    { return e.text("LOCATION") }

// SetSummary replaces the SUMMARY property.
func (e *Event) SetSummary(s string) error { return e.setChecked("SUMMARY", s) }

// SetDescription replaces the DESCRIPTION property.
func (e *Event) SetDescription(s string) error { return e.setChecked("DESCRIPTION", s) }

// Timestamp returns DTSTAMP.
func (e *Event) Timestamp(loc *time.Location) (time.Time, error) {
	return e.date("DTSTAMP", loc)
}

// Start returns DTSTART. Floating times are read in loc, or in the system
// location when loc is nil.
func (e *Event) Start(loc *time.Location) (time.Time, error) {
	return e.date("DTSTART", loc)
}

// End returns DTEND, or DTSTART plus one day when the event has no DTEND.
func (e *Event) End(loc *time.Location) (time.Time, error) {
	if e.Prop("DTEND") == nil {
		start, err := e.Start(loc)
		if err != nil {
			return time.Time{}, err
		}
		return start.Add(time.Hour * 24), nil
	}
	return e.date("DTEND", loc)
}

// SetTimestamp sets DTSTAMP in UTC.
func (e *Event) SetTimestamp(t time.Time) { e.setUTC("DTSTAMP", t) }

// SetStart sets DTSTART in UTC.
func (e *Event) SetStart(t time.Time) { e.setUTC("DTSTART", t) }

// SetEnd sets DTEND in UTC.
func (e *Event) SetEnd(t time.Time) { e.setUTC("DTEND", t) }

func (e *Event) setUTC(name string, t time.Time) {
	e.set(name, t.UTC().Format(dateTimeLayoutUTC))
}

// ErrNoProperty is returned by typed getters when the property is missing.
var ErrNoProperty = errors.New("vobject: no such property")

func (e *Event) date(name string, loc *time.Location) (time.Time, error) {
	prop := e.Prop(name)
	if prop == nil {
		return time.Time{}, ErrNoProperty
	}
	if loc == nil {
		loc = time.Local
	}
	return parseDate(prop, loc)
}

// parseDate transform a date property into a time.Time
func parseDate(prop *Property, l *time.Location) (time.Time, error) {
	value := prop.Value()

	if strings.HasSuffix(value, "Z") {
		return time.Parse(dateTimeLayoutUTC, value)
	}

	if tz := prop.Param("TZID"); tz != nil {
		loc, err := time.LoadLocation(tz.Value())

		// In case we are not able to load TZID location we default to UTC
		if err != nil {
			loc = time.UTC
		}

		return time.ParseInLocation(dateTimeLayoutLocalized, value, loc)
	}

	if len(value) == len(dateLayout) {
		return time.ParseInLocation(dateLayout, value, l)
	}

	layout := dateTimeLayoutLocalized

	if val := prop.Param("VALUE"); val != nil {
		switch strings.ToUpper(val.Value()) {
		case "DATE":
			layout = dateLayout

			// Handle malformed DATE entries that use DATE-TIME format
			if len(value) == len(dateTimeLayoutLocalized) {
				layout = dateTimeLayoutLocalized
			}
		case "DATE-TIME":
			layout = dateTimeLayoutLocalized
		}
	}

	return time.ParseInLocation(layout, value, l)
}

// shared helpers for the views

func (c *Component) text(name string) string {
	if p := c.Prop(name); p != nil {
		return p.Value()
	}
	return ""
}

// set replaces a property with a value known to be valid.
func (c *Component) set(name, value string) {
	c.setProp(&Property{name: name, value: [][]string{{value}}})
}

func (c *Component) setChecked(name, value string) error {
	p, err := NewProperty(name, value)
	if err != nil {
		return err
	}
	c.setProp(p)
	return nil
}
