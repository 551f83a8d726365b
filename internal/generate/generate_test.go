package generate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/moddoc/internal/doctype"
)

func TestGenerateProcedureDefaults(t *testing.T) {
	doc, err := Generate(doctype.Procedure, "Setting up thing", DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, doctype.Procedure, doc.Type)
	assert.Equal(t, "setting-up-thing", doc.Anchor)
	assert.Equal(t, "proc_setting-up-thing.adoc", doc.FileName)
	assert.Equal(t, "include::<path>/proc_setting-up-thing.adoc[leveloffset=+1]", doc.IncludeStatement)

	assert.Contains(t, doc.Body, ":_mod-docs-content-type: PROCEDURE")
	assert.Contains(t, doc.Body, `[id="setting-up-thing_{context}"]`)
	assert.Contains(t, doc.Body, "= Setting up thing")
	assert.Contains(t, doc.Body, `[role="_abstract"]`)
	assert.Contains(t, doc.Body, ".Prerequisites")
	assert.Contains(t, doc.Body, ".Procedure")
	assert.Contains(t, doc.Body, ".Verification")

	// Comments are off by default.
	assert.NotContains(t, doc.Body, "////")
}

func TestGenerateAnchorPrefix(t *testing.T) {
	opts := DefaultOptions()
	opts.AnchorPrefixes = true

	doc, err := Generate(doctype.Concept, "Understanding widgets", opts)
	require.NoError(t, err)
	assert.Equal(t, "con_understanding-widgets", doc.Anchor)
	assert.Contains(t, doc.Body, `[id="con_understanding-widgets_{context}"]`)
}

func TestGenerateWithoutFilePrefix(t *testing.T) {
	opts := DefaultOptions()
	opts.FilePrefixes = false

	doc, err := Generate(doctype.Reference, "Widget settings", opts)
	require.NoError(t, err)
	assert.Equal(t, "widget-settings.adoc", doc.FileName)
}

func TestGenerateSimplified(t *testing.T) {
	opts := DefaultOptions()
	opts.Simplified = true

	doc, err := Generate(doctype.Assembly, "Getting started", opts)
	require.NoError(t, err)
	assert.Contains(t, doc.Body, `[id="getting-started"]`)
	assert.NotContains(t, doc.Body, "{context}")
	assert.NotContains(t, doc.Body, "ifdef::")
	assert.NotContains(t, doc.Body, ":context:")
}

func TestGenerateAssemblyContextWrap(t *testing.T) {
	doc, err := Generate(doctype.Assembly, "Getting started", DefaultOptions())
	require.NoError(t, err)

	assert.Contains(t, doc.Body, "ifdef::context[:parent-context-of-getting-started: {context}]")
	assert.Contains(t, doc.Body, ":context: getting-started")
	assert.Contains(t, doc.Body, "ifdef::parent-context-of-getting-started[:context: {parent-context-of-getting-started}]")
	assert.Contains(t, doc.Body, "ifndef::parent-context-of-getting-started[:!context:]")
	assert.Contains(t, doc.Body, "== Additional resources")
	assert.Contains(t, doc.Body, "Include modules here.")
}

func TestGenerateComments(t *testing.T) {
	opts := DefaultOptions()
	opts.Comments = true

	doc, err := Generate(doctype.Concept, "Understanding widgets", opts)
	require.NoError(t, err)
	assert.Contains(t, doc.Body, "////")
	assert.Contains(t, doc.Body, "noun phrase")
}

func TestGenerateNoExamples(t *testing.T) {
	opts := DefaultOptions()
	opts.Examples = false

	doc, err := Generate(doctype.Assembly, "Getting started", opts)
	require.NoError(t, err)
	assert.NotContains(t, doc.Body, "Include modules here.")
	assert.NotContains(t, doc.Body, "bulleted list")
}

func TestGenerateSnippet(t *testing.T) {
	doc, err := Generate(doctype.Snippet, "Support disclaimer", DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "snip_support-disclaimer.adoc", doc.FileName)
	assert.Contains(t, doc.Body, ":_mod-docs-content-type: SNIPPET")
	assert.NotContains(t, doc.Body, "[id=")
	assert.NotContains(t, doc.Body, `[role="_abstract"]`)
	assert.NotContains(t, doc.Body, "= Support disclaimer")
}

func TestGenerateUnknownTypeFails(t *testing.T) {
	_, err := Generate(doctype.Unknown, "Anything", DefaultOptions())
	assert.Error(t, err)
}

func TestBodyTexture(t *testing.T) {
	for _, dt := range doctype.All() {
		for _, comments := range []bool{true, false} {
			opts := DefaultOptions()
			opts.Comments = comments

			doc, err := Generate(dt, "Some title", opts)
			require.NoError(t, err)

			assert.NotContains(t, doc.Body, "\n\n\n", "%s: blank-line runs must collapse", dt)
			assert.True(t, strings.HasSuffix(doc.Body, "\n\n"), "%s: body must end with a blank line", dt)
			assert.False(t, strings.HasPrefix(doc.Body, "\n"), "%s: body must not start blank", dt)
		}
	}
}

func TestIncludeStatementDirInference(t *testing.T) {
	cases := []struct {
		name      string
		t         doctype.Type
		targetDir string
		wantDir   string
	}{
		{"modules root", doctype.Concept, "docs/product/modules", "modules"},
		{"nested under modules", doctype.Procedure, "docs/modules/install", "modules/install"},
		{"assemblies root", doctype.Assembly, "docs/assemblies", "assemblies"},
		{"snippets root", doctype.Snippet, "docs/snippets", "snippets"},
		{"no conventional root", doctype.Concept, "somewhere/else", "<path>"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.TargetDir = tc.targetDir

			doc, err := Generate(tc.t, "A title", opts)
			require.NoError(t, err)
			assert.Equal(t, "include::"+tc.wantDir+"/"+doc.FileName+"[leveloffset=+1]", doc.IncludeStatement)
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(doctype.Concept, "Understanding widgets", DefaultOptions())
	require.NoError(t, err)
	b, err := Generate(doctype.Concept, "Understanding widgets", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
