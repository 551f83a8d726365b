// Package doctype defines the closed set of modular-documentation content
// types and the prefix and attribute tables derived from them.
package doctype

import "strings"

// Type identifies the structural role of a documentation file.
type Type int

const (
	Unknown Type = iota
	Assembly
	Concept
	Procedure
	Reference
	Snippet
)

// String returns the human-readable name of the content type.
func (t Type) String() string {
	switch t {
	case Assembly:
		return "assembly"
	case Concept:
		return "concept"
	case Procedure:
		return "procedure"
	case Reference:
		return "reference"
	case Snippet:
		return "snippet"
	default:
		return "unknown"
	}
}

// prefix is the token shared by file-name and anchor prefixes.
func (t Type) prefix() string {
	switch t {
	case Assembly:
		return "assembly_"
	case Concept:
		return "con_"
	case Procedure:
		return "proc_"
	case Reference:
		return "ref_"
	case Snippet:
		return "snip_"
	default:
		return ""
	}
}

// FilePrefix returns the file-name prefix for the type, empty for Unknown.
func (t Type) FilePrefix() string { return t.prefix() }

// AnchorPrefix returns the anchor (ID) prefix for the type, empty for Unknown.
func (t Type) AnchorPrefix() string { return t.prefix() }

// Attribute returns the value the content-type metadata attribute carries for
// this type, e.g. "CONCEPT". Empty for Unknown.
func (t Type) Attribute() string {
	switch t {
	case Assembly:
		return "ASSEMBLY"
	case Concept:
		return "CONCEPT"
	case Procedure:
		return "PROCEDURE"
	case Reference:
		return "REFERENCE"
	case Snippet:
		return "SNIPPET"
	default:
		return ""
	}
}

// All lists every concrete content type in a fixed order.
func All() []Type {
	return []Type{Assembly, Concept, Procedure, Reference, Snippet}
}

// ParseAttribute resolves a content-type attribute value to a Type.
// Matching is case-insensitive; unrecognized values report false.
func ParseAttribute(value string) (Type, bool) {
	v := strings.ToUpper(strings.TrimSpace(value))
	for _, t := range All() {
		if v == t.Attribute() {
			return t, true
		}
	}
	return Unknown, false
}

// FromPrefix resolves a file name or anchor to a Type by its leading prefix
// token. Both underscore and dash separators are accepted, matching the
// conventions seen in existing documentation sets.
func FromPrefix(name string) (Type, bool) {
	for _, t := range All() {
		token := strings.TrimSuffix(t.prefix(), "_")
		if strings.HasPrefix(name, token+"_") || strings.HasPrefix(name, token+"-") {
			return t, true
		}
	}
	return Unknown, false
}
