package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/moddoc/internal/validate"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("= Title\n"), 0o644))
	}
}

func TestCollectFilesWalksDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "con_a.adoc", "sub/proc_b.adoc", "notes.txt")

	files, err := collectFiles([]string{dir}, nil)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Contains(t, files[0], "con_a.adoc")
	assert.Contains(t, files[1], "proc_b.adoc")
}

func TestCollectFilesDeduplicates(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "con_a.adoc")
	file := filepath.Join(dir, "con_a.adoc")

	files, err := collectFiles([]string{file, file, dir}, nil)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestCollectFilesGlob(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "modules/con_a.adoc", "modules/assembly_b.adoc")

	files, err := collectFiles([]string{filepath.Join(dir, "**", "con_*.adoc")}, nil)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Contains(t, files[0], "con_a.adoc")
}

func TestCollectFilesIgnoreGlobs(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "con_a.adoc", "attributes.adoc")

	files, err := collectFiles([]string{dir}, []string{"**/attributes.adoc"})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Contains(t, files[0], "con_a.adoc")
}

func TestErrorsOnly(t *testing.T) {
	rep := validate.Report{
		File: "a.adoc",
		Diagnostics: []validate.Diagnostic{
			{Severity: validate.Error, Message: "No anchor found."},
			{Severity: validate.Warning, Message: "The abstract marker is missing."},
			{Severity: validate.Information, Message: "Could not verify the module includes."},
		},
	}

	got := errorsOnly(rep)
	require.Len(t, got.Diagnostics, 1)
	assert.Equal(t, validate.Error, got.Diagnostics[0].Severity)
}
