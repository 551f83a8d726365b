// Package generate produces pre-populated AsciiDoc module and assembly
// documents from a content type, a title, and generation options. It performs
// no file I/O; writing the result to disk belongs to the write package.
package generate

import (
	"embed"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"git.home.luguber.info/inful/moddoc/internal/doctype"
	"git.home.luguber.info/inful/moddoc/internal/slug"
)

//go:embed templates/*.adoc.tmpl
var templateFS embed.FS

var skeletons = template.Must(template.ParseFS(templateFS, "templates/*.adoc.tmpl"))

// Options control the shape of generated documents.
type Options struct {
	// Comments keeps the explanatory comment blocks in the output.
	Comments bool
	// Examples keeps the placeholder example content in the output.
	Examples bool
	// AnchorPrefixes prepends the content-type token to anchors.
	AnchorPrefixes bool
	// FilePrefixes prepends the content-type token to file names.
	FilePrefixes bool
	// Simplified drops the context suffix and the surrounding conditionals,
	// for documentation sets that do not reuse modules across assemblies.
	Simplified bool
	// TargetDir is where the caller intends to write the file. Used only to
	// infer the include statement path, never written to from here.
	TargetDir string
}

// DefaultOptions mirror the command-line defaults: examples and file
// prefixes on, everything else off, current directory as the target.
func DefaultOptions() Options {
	return Options{Examples: true, FilePrefixes: true, TargetDir: "."}
}

// Doc is a fully generated document plus the metadata a writer or an
// enclosing assembly needs.
type Doc struct {
	Type             doctype.Type
	Title            string
	Anchor           string
	FileName         string
	IncludeStatement string
	Body             string
}

// Request names one document to generate, used for assembly batches.
type Request struct {
	Type  doctype.Type
	Title string
}

type templateData struct {
	Anchor     string
	Title      string
	Includes   string
	Examples   bool
	Simplified bool
}

// Generate produces a single document outside any assembly scope. It is
// shorthand for NewPipeline(opts).Generate(t, title).
func Generate(t doctype.Type, title string, opts Options) (Doc, error) {
	return NewPipeline(opts).Generate(t, title)
}

// render builds the document for one request under the given scope suffix.
// scopeSuffix is empty at top level or in simplified mode.
func render(t doctype.Type, title string, opts Options, scopeSuffix string, includes []string) (Doc, error) {
	if t == doctype.Unknown {
		return Doc{}, fmt.Errorf("cannot generate a document of unknown content type")
	}

	id := slug.Make(title)

	base := baseAnchor(t, title, opts)
	anchor := base
	if scopeSuffix != "" && !opts.Simplified {
		anchor = base + "_" + scopeSuffix
	}

	fileName := id + ".adoc"
	if opts.FilePrefixes {
		fileName = t.FilePrefix() + fileName
	}

	data := templateData{
		Anchor:     base,
		Title:      title,
		Includes:   includesBlock(includes, opts),
		Examples:   opts.Examples,
		Simplified: opts.Simplified,
	}

	var sb strings.Builder
	if err := skeletons.ExecuteTemplate(&sb, t.String()+".adoc.tmpl", data); err != nil {
		return Doc{}, fmt.Errorf("render %s skeleton: %w", t, err)
	}

	return Doc{
		Type:             t,
		Title:            title,
		Anchor:           anchor,
		FileName:         fileName,
		IncludeStatement: includeStatement(t, fileName, opts.TargetDir),
		Body:             postprocess(sb.String(), opts.Comments),
	}, nil
}

// includesBlock joins the include statements of an assembly's nested modules,
// separated by blank lines so the AsciiDoc syntax of neighboring modules
// cannot blend together.
func includesBlock(includes []string, opts Options) string {
	if len(includes) > 0 {
		return strings.Join(includes, "\n\n")
	}
	if opts.Examples {
		return "Include modules here."
	}
	return ""
}

// includeStatement builds the include line a parent file would use. The
// directory part is inferred by locating the conventional root component in
// the target path; without one, a placeholder is used.
func includeStatement(t doctype.Type, fileName, targetDir string) string {
	dir := "<path>"
	if inferred, ok := inferIncludeDir(t, targetDir); ok {
		dir = inferred
	}
	return fmt.Sprintf("include::%s/%s[leveloffset=+1]", dir, fileName)
}

// inferIncludeDir searches the target path, last component first, for the
// conventional root directory of the content type: assemblies/ for
// assemblies, snippets/ for snippets, modules/ for everything else. The
// include path starts at that root.
func inferIncludeDir(t doctype.Type, targetDir string) (string, bool) {
	var root string
	switch t {
	case doctype.Assembly:
		root = "assemblies"
	case doctype.Snippet:
		root = "snippets"
	default:
		root = "modules"
	}

	path := targetDir
	if abs, err := filepath.Abs(targetDir); err == nil {
		path = abs
	}

	components := strings.Split(filepath.ToSlash(path), "/")
	for i := len(components) - 1; i >= 0; i-- {
		if components[i] == root {
			return strings.Join(components[i:], "/"), true
		}
	}
	return "", false
}
