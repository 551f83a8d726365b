// Package classify infers the content type of a documentation file from its
// text and, optionally, its file name. Classification is total: malformed
// input yields doctype.Unknown plus whatever metadata could be read, and
// error signaling stays with the validator.
package classify

import (
	"path/filepath"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/moddoc/internal/doctype"
)

// Metadata captures what the classifier could read from the document.
type Metadata struct {
	// Title is the text of the first level-0 heading, if any.
	Title string
	// Anchor is the value of the first [id="..."] line, if any.
	Anchor string
	// Attribute is the raw value of the content-type attribute, if any.
	Attribute string
	// Headings lists section titles in document order: both "== Title"
	// sections and ".Title" block titles.
	Headings []string
	// HasAbstract reports whether the introductory abstract marker is present.
	HasAbstract bool
	// IncludeTargets lists the targets of include:: statements in order.
	IncludeTargets []string

	// Line positions (1-based, 0 when absent) for ordering checks.
	AnchorLine    int
	AttributeLine int
}

// Result pairs the detected type with the parsed metadata.
type Result struct {
	Type doctype.Type
	Meta Metadata
}

var (
	titleRe = regexp.MustCompile(`^=\s+(\S.*)$`)
	anchorRe = regexp.MustCompile(`^\[id="([^"]+)"\]`)
	// The modern attribute name plus the two legacy spellings.
	attributeRe = regexp.MustCompile(`^:_(?:mod-docs-content-type|content-type|module-type):\s*(\S+)`)
	sectionRe   = regexp.MustCompile(`^(={2,})\s+(\S.*)$`)
	blockRe     = regexp.MustCompile(`^\.(\S.*)$`)
	includeRe   = regexp.MustCompile(`^include::([^\[]+)\[`)
	abstractRe  = regexp.MustCompile(`^\[role="_abstract"\]`)
)

// Classify determines the content type of document text alone.
func Classify(content string) Result {
	return classify("", content)
}

// ClassifyFile is Classify with the file name available, so the file-name
// prefix can participate in detection. name may be a full path.
func ClassifyFile(name, content string) Result {
	return classify(filepath.Base(name), content)
}

func classify(baseName, content string) Result {
	meta := parse(content)

	// An explicit content-type attribute is authoritative.
	if t, ok := doctype.ParseAttribute(meta.Attribute); ok {
		return Result{Type: t, Meta: meta}
	}

	// Next the anchor prefix, then the file-name prefix.
	if meta.Anchor != "" {
		if t, ok := doctype.FromPrefix(meta.Anchor); ok {
			return Result{Type: t, Meta: meta}
		}
	}
	if baseName != "" {
		if t, ok := doctype.FromPrefix(baseName); ok {
			return Result{Type: t, Meta: meta}
		}
	}

	// Structural heuristics as the last resort.
	if t, ok := heuristic(meta, content); ok {
		return Result{Type: t, Meta: meta}
	}

	return Result{Type: doctype.Unknown, Meta: meta}
}

// parse extracts metadata in a single pass over the lines.
func parse(content string) Metadata {
	var meta Metadata
	for i, line := range strings.Split(content, "\n") {
		switch {
		case meta.Title == "" && titleRe.MatchString(line):
			meta.Title = titleRe.FindStringSubmatch(line)[1]
		case meta.Anchor == "" && anchorRe.MatchString(line):
			meta.Anchor = anchorRe.FindStringSubmatch(line)[1]
			meta.AnchorLine = i + 1
		case meta.Attribute == "" && attributeRe.MatchString(line):
			meta.Attribute = attributeRe.FindStringSubmatch(line)[1]
			meta.AttributeLine = i + 1
		case sectionRe.MatchString(line):
			meta.Headings = append(meta.Headings, sectionRe.FindStringSubmatch(line)[2])
		case blockRe.MatchString(line) && !strings.HasPrefix(line, "..."):
			meta.Headings = append(meta.Headings, blockRe.FindStringSubmatch(line)[1])
		case includeRe.MatchString(line):
			meta.IncludeTargets = append(meta.IncludeTargets, includeRe.FindStringSubmatch(line)[1])
		case abstractRe.MatchString(line):
			meta.HasAbstract = true
		}
	}
	return meta
}

// heuristic applies the structural fallbacks: an includes-only body reads as
// an assembly, the procedure-only block titles read as a procedure.
func heuristic(meta Metadata, content string) (doctype.Type, bool) {
	if len(meta.IncludeTargets) > 0 && includesOnly(content) {
		return doctype.Assembly, true
	}
	for _, h := range meta.Headings {
		if h == "Procedure" {
			return doctype.Procedure, true
		}
	}
	return doctype.Unknown, false
}

// includesOnly reports whether every content-bearing line of the body is an
// include statement. Blank lines, comments, attribute lines, conditionals,
// the anchor, and headings do not count as content.
func includesOnly(content string) bool {
	inBlockComment := false
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "////") {
			inBlockComment = !inBlockComment
			continue
		}
		if inBlockComment || trimmed == "" {
			continue
		}
		switch {
		case strings.HasPrefix(trimmed, "//"),
			strings.HasPrefix(trimmed, ":"),
			strings.HasPrefix(trimmed, "ifdef::"),
			strings.HasPrefix(trimmed, "ifndef::"),
			strings.HasPrefix(trimmed, "endif::"),
			strings.HasPrefix(trimmed, "["),
			strings.HasPrefix(trimmed, "="),
			strings.HasPrefix(trimmed, "include::"):
			continue
		default:
			return false
		}
	}
	return true
}
