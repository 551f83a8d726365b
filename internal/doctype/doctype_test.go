package doctype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeTables(t *testing.T) {
	cases := []struct {
		t          Type
		name       string
		filePrefix string
		attribute  string
	}{
		{Assembly, "assembly", "assembly_", "ASSEMBLY"},
		{Concept, "concept", "con_", "CONCEPT"},
		{Procedure, "procedure", "proc_", "PROCEDURE"},
		{Reference, "reference", "ref_", "REFERENCE"},
		{Snippet, "snippet", "snip_", "SNIPPET"},
		{Unknown, "unknown", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.name, tc.t.String())
			assert.Equal(t, tc.filePrefix, tc.t.FilePrefix())
			assert.Equal(t, tc.filePrefix, tc.t.AnchorPrefix())
			assert.Equal(t, tc.attribute, tc.t.Attribute())
		})
	}
}

func TestParseAttribute(t *testing.T) {
	got, ok := ParseAttribute("PROCEDURE")
	assert.True(t, ok)
	assert.Equal(t, Procedure, got)

	got, ok = ParseAttribute("  concept ")
	assert.True(t, ok, "attribute values are case-insensitive and trimmed")
	assert.Equal(t, Concept, got)

	_, ok = ParseAttribute("TUTORIAL")
	assert.False(t, ok)

	_, ok = ParseAttribute("")
	assert.False(t, ok)
}

func TestFromPrefix(t *testing.T) {
	cases := []struct {
		name string
		want Type
		ok   bool
	}{
		{"con_widgets.adoc", Concept, true},
		{"con-widgets.adoc", Concept, true},
		{"proc_installing.adoc", Procedure, true},
		{"ref-settings", Reference, true},
		{"assembly_getting-started.adoc", Assembly, true},
		{"snip_disclaimer.adoc", Snippet, true},
		{"concert_tickets.adoc", Unknown, false},
		{"confusing.adoc", Unknown, false},
		{"widgets.adoc", Unknown, false},
		{"", Unknown, false},
	}
	for _, tc := range cases {
		got, ok := FromPrefix(tc.name)
		assert.Equal(t, tc.ok, ok, tc.name)
		assert.Equal(t, tc.want, got, tc.name)
	}
}

func TestAllOrderStable(t *testing.T) {
	assert.Equal(t, []Type{Assembly, Concept, Procedure, Reference, Snippet}, All())
}
