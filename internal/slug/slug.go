// Package slug derives machine-safe identifier fragments from human titles.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fallback is the reserved slug used when a title yields no usable characters.
const Fallback = "untitled"

// substitutions are applied in order before the generic character filter.
// Semantic markup tokens are removed whole before the bare-bracket entries,
// so "[package]" does not degrade into a literal "package" in the slug.
var substitutions = [][2]string{
	{" ", "-"},
	{"(", ""},
	{")", ""},
	{"?", ""},
	{"!", ""},
	{"'", ""},
	{"\"", ""},
	{"#", ""},
	{"%", ""},
	{"&", ""},
	{"*", ""},
	{",", "-"},
	{".", "-"},
	{"/", "-"},
	{":", "-"},
	{";", ""},
	{"@", "-at-"},
	{"\\", ""},
	{"`", ""},
	{"$", ""},
	{"^", ""},
	{"|", ""},
	{"=", "-"},
	// Strip known semantic markup tokens from the title.
	{"[package]", ""},
	{"[option]", ""},
	{"[parameter]", ""},
	{"[variable]", ""},
	{"[command]", ""},
	{"[replaceable]", ""},
	{"[filename]", ""},
	{"[literal]", ""},
	{"[systemitem]", ""},
	{"[application]", ""},
	{"[function]", ""},
	{"[gui]", ""},
	// Bare brackets and braces only after the markup tokens above.
	{"[", ""},
	{"]", ""},
	{"{", ""},
	{"}", ""},
}

// foldDiacritics decomposes accented letters and drops the combining marks,
// so "é" contributes "e" instead of vanishing entirely.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make converts a human-readable title into a slug usable as an AsciiDoc
// section ID, a DocBook ID, or a file-name stem. The result contains only
// [a-z0-9-], never starts or ends with a hyphen, and is never empty: a title
// with no usable characters maps to Fallback.
//
// Make is deterministic and idempotent on its own output. It performs no
// uniqueness checks; two distinct titles may produce the same slug, and
// collision avoidance stays with the author.
func Make(title string) string {
	s := strings.ToLower(title)

	for _, sub := range substitutions {
		s = strings.ReplaceAll(s, sub[0], sub[1])
	}

	if folded, _, err := transform.String(foldDiacritics, s); err == nil {
		s = folded
	}

	// Everything that survived the table but is not lowercase ASCII
	// alphanumeric becomes a hyphen, then hyphen runs collapse.
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	s = b.String()

	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	s = strings.Trim(s, "-")

	if s == "" {
		return Fallback
	}
	return s
}
