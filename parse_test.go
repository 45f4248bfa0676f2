package vobject

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixtureList = []string{"fixtures/example.ics", "fixtures/contact.vcf"}

func TestParse(t *testing.T) {
	for _, filename := range fixtureList {
		t.Run(filename, func(t *testing.T) {
			file, err := os.Open(filename)
			require.NoError(t, err)
			defer file.Close()

			comps, err := Parse(file)
			require.NoError(t, err)
			assert.Len(t, comps, 1)
		})
	}
}

func TestParseNested(t *testing.T) {
	comps, err := ParseString("BEGIN:A\nBEGIN:B\nEND:B\nEND:A\n")
	require.NoError(t, err)
	require.Len(t, comps, 1)

	a := comps[0]
	assert.Equal(t, "A", a.Name())
	assert.Empty(t, a.Properties())
	require.Len(t, a.Children(), 1)

	b := a.Children()[0]
	assert.Equal(t, "B", b.Name())
	assert.Empty(t, b.Properties())
	assert.Empty(t, b.Children())
}

func TestParseMultiValueParam(t *testing.T) {
	c, err := ParseComponent("BEGIN:VCARD\r\nFN;TYPE=WORK,VOICE:John Doe\r\nEND:VCARD\r\n")
	require.NoError(t, err)

	props := c.Properties()
	require.Len(t, props, 1)
	fn := props[0]
	assert.Equal(t, "FN", fn.Name())
	assert.Equal(t, "John Doe", fn.Value())

	params := fn.Params()
	require.Len(t, params, 1)
	assert.Equal(t, "TYPE", params[0].Name())
	assert.Equal(t, []string{"WORK", "VOICE"}, params[0].Values())
}

func TestParseEscapedSeparator(t *testing.T) {
	c, err := ParseComponent("BEGIN:X\nNOTE:a\\,b\nCATEGORIES:a,b\nEND:X\n")
	require.NoError(t, err)

	note := c.Prop("NOTE")
	require.NotNil(t, note)
	assert.Equal(t, []string{"a,b"}, note.Values())
	assert.Equal(t, "a,b", note.Value())

	categories := c.Prop("categories")
	require.NotNil(t, categories)
	assert.Equal(t, []string{"a", "b"}, categories.Values())
}

func TestParseExampleCalendar(t *testing.T) {
	data, err := os.ReadFile("fixtures/example.ics")
	require.NoError(t, err)

	cal, err := ParseComponent(string(data))
	require.NoError(t, err)
	assert.Equal(t, "VCALENDAR", cal.Name())
	assert.Nil(t, cal.Prop("LOCATION"))
	assert.Equal(t, "PUBLISH", cal.Prop("METHOD").Value())

	events := cal.ChildrenNamed("vevent")
	require.Len(t, events, 1)
	event := events[0]

	organizer := event.Only("ORGANIZER")
	require.NotNil(t, organizer)
	assert.Equal(t, "MAILTO:alice@example.com", organizer.Value())
	assert.Equal(t, "Alice Balder, Example Inc.", organizer.Param("cn").Value())

	assert.Equal(t, "Beschreibung des Termines, mit Komma\nund einer zweiten Zeile",
		event.Prop("DESCRIPTION").Value())
	assert.Equal(t, []string{"MEETING", "PROJECT"}, event.Prop("CATEGORIES").Values())

	alarms := event.ChildrenNamed("VALARM")
	require.Len(t, alarms, 1)
	assert.Equal(t, "-PT15M", alarms[0].Prop("TRIGGER").Value())
}

func TestParseContact(t *testing.T) {
	data, err := os.ReadFile("fixtures/contact.vcf")
	require.NoError(t, err)

	card, err := ParseComponent(string(data))
	require.NoError(t, err)

	assert.Equal(t, "Erika Mustermann", card.Only("FN").Value())
	assert.Equal(t, "Mustermann;Erika;;Dr.;", card.Only("N").Value())
	assert.Equal(t, "This note is folded over two lines", card.Only("NOTE").Value())

	var tels []string
	for _, p := range card.Props("TEL") {
		tels = append(tels, p.Value())
	}
	assert.Equal(t, []string{"(0221) 9999123", "(0221) 1234567"}, tels)

	adr := card.Only("ADR")
	require.NotNil(t, adr)
	assert.Equal(t, [][]string{{""}, {""}, {"Heidestrasse 17"}, {"Koeln"}, {""}, {"51147"}, {"Deutschland"}}, adr.Fields())

	email := card.Only("EMAIL")
	require.NotNil(t, email)
	assert.Equal(t, "item1", email.Group())
	assert.Equal(t, "EMAIL", email.Name())
}

func TestParseQuotedParam(t *testing.T) {
	c, err := ParseComponent("BEGIN:VCALENDAR\nORGANIZER;CN=\"Cott:n Eye Joe\":mailto:joe@joe.com\nEND:VCALENDAR\n")
	require.NoError(t, err)

	org := c.Only("ORGANIZER")
	require.NotNil(t, org)
	assert.Equal(t, "mailto:joe@joe.com", org.Value())
	assert.Equal(t, "Cott:n Eye Joe", org.Param("CN").Value())
}

func TestParseCaseInsensitiveMarkers(t *testing.T) {
	comps, err := ParseString("begin:vcard\nFN:x\nEnd:VCard\n")
	require.NoError(t, err)
	require.Len(t, comps, 1)
	assert.Equal(t, "vcard", comps[0].Name())
	assert.True(t, comps[0].Is("VCARD"))
}

func TestParseSeveralTopLevel(t *testing.T) {
	comps, err := ParseString("BEGIN:VCARD\nFN:a\nEND:VCARD\n\nBEGIN:VCARD\nFN:b\nEND:VCARD\n")
	require.NoError(t, err)
	require.Len(t, comps, 2)
	assert.Equal(t, "b", comps[1].Prop("FN").Value())

	_, err = ParseComponent("BEGIN:VCARD\nEND:VCARD\nBEGIN:VCARD\nEND:VCARD\n")
	assert.ErrorIs(t, err, ErrTrailingData)

	_, err = ParseComponent("\n\n")
	assert.ErrorIs(t, err, ErrNoComponent)
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		err   error
		line  int
	}{
		{name: "unbalanced", input: "BEGIN:A\nEND:B\n", err: ErrUnbalancedStructure, line: 2},
		{name: "mismatched nesting", input: "BEGIN:a\nBEGIN:b\nEND:a", err: ErrUnbalancedStructure, line: 3},
		{name: "end without begin", input: "END:A\n", err: ErrUnbalancedStructure, line: 1},
		{name: "unterminated", input: "BEGIN:A\n", err: ErrUnterminatedComponent, line: 1},
		{name: "unterminated child", input: "BEGIN:A\nX:1\nBEGIN:B\n", err: ErrUnterminatedComponent, line: 3},
		{name: "property before begin", input: "FN:x\nBEGIN:A\nEND:A\n", err: ErrPropertyOutsideComponent, line: 1},
		{name: "property after end", input: "BEGIN:A\nEND:A\nFN:x\n", err: ErrPropertyOutsideComponent, line: 3},
		{name: "missing colon", input: "BEGIN:A\nFN\nEND:A\n", err: ErrMalformedLine, line: 2},
		{name: "param without equal", input: "BEGIN:A\nTEL;WORK:1\nEND:A\n", err: ErrMalformedLine, line: 2},
		{name: "unterminated quote", input: "BEGIN:A\nX;CN=\"abc:d\nEND:A\n", err: ErrMalformedLine, line: 2},
		{name: "empty name", input: "BEGIN:A\n:d\nEND:A\n", err: ErrMalformedLine, line: 2},
		{name: "empty component name", input: "BEGIN:\n", err: ErrMalformedLine, line: 1},
		{name: "grouped marker", input: "BEGIN:A\ng.END:A\nEND:A\n", err: ErrMalformedLine, line: 2},
		{name: "escaped quote in param", input: "BEGIN:A\r\nX;P=a\\\"b:v\r\nEND:A\r\n", err: ErrMalformedLine, line: 2},
		{name: "space in component name", input: "BEGIN:A B\nEND:A B\n", err: ErrMalformedLine, line: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			comps, err := ParseString(tc.input)
			require.Error(t, err)
			assert.Nil(t, comps)
			assert.ErrorIs(t, err, tc.err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tc.line, perr.Line)
			assert.True(t, strings.HasPrefix(err.Error(), "vobject: "), err.Error())
		})
	}
}

func TestParseUnterminatedNamesComponent(t *testing.T) {
	_, err := ParseString("BEGIN:VCALENDAR\nBEGIN:VEVENT\nEND:VEVENT\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VCALENDAR")
}

func TestParseComponentNameCharacters(t *testing.T) {
	for _, name := range []string{"X-A.B", "X,Y", "K=V", `Q"Z`} {
		t.Run(name, func(t *testing.T) {
			c, err := ParseComponent("BEGIN:" + name + "\nX:1\nEND:" + name + "\n")
			require.NoError(t, err)
			assert.Equal(t, name, c.Name())

			again, err := ParseComponent(Generate(c))
			require.NoError(t, err)
			assert.Equal(t, c, again)
		})
	}
}

func TestParseParamValueRoundTrip(t *testing.T) {
	inputs := []string{
		"BEGIN:A\r\nX;P=a\\,b:v\r\nEND:A\r\n",
		"BEGIN:A\r\nX;P=C\\:\\\\dir:v\r\nEND:A\r\n",
		"BEGIN:A\r\nX;P=\"x;y\",z:v\r\nEND:A\r\n",
		"BEGIN:A\r\nX;P=line\\nbreak:v\r\nEND:A\r\n",
	}

	for _, input := range inputs {
		comps, err := ParseString(input)
		require.NoError(t, err, input)

		again, err := ParseString(Generate(comps...))
		require.NoError(t, err, input)
		assert.Equal(t, comps, again)
	}
}
