package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 500*time.Millisecond, time.Duration(cfg.Watch.Debounce))
	assert.Equal(t, 5*time.Minute, time.Duration(cfg.Watch.SweepInterval))
	assert.Equal(t, "moddoc-history.db", cfg.Watch.HistoryDB)

	opts := cfg.GenerateOptions(".")
	assert.False(t, opts.Comments)
	assert.True(t, opts.Examples)
	assert.False(t, opts.AnchorPrefixes)
	assert.True(t, opts.FilePrefixes)
	assert.False(t, opts.Simplified)
	assert.Equal(t, ".", opts.TargetDir)
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := `
generate:
  comments: true
  examples: false
watch:
  debounce: 2s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, dir)
	require.NoError(t, err)

	opts := cfg.GenerateOptions(dir)
	assert.True(t, opts.Comments)
	assert.False(t, opts.Examples)
	assert.True(t, opts.FilePrefixes, "unset keys keep their defaults")
	assert.Equal(t, 2*time.Second, time.Duration(cfg.Watch.Debounce))
	assert.Equal(t, 5*time.Minute, time.Duration(cfg.Watch.SweepInterval), "unset keys keep their defaults")
}

func TestLoadExplicitFileMustExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), ".")
	assert.Error(t, err)
}

func TestLoadWithoutFilesYieldsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load("", dir)
	require.NoError(t, err)
	assert.Equal(t, Default().Watch, cfg.Watch)
}

func TestEnvExpansion(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MODDOC_TEST_DB", "/tmp/runs.db")

	path := filepath.Join(dir, "custom.yaml")
	content := "watch:\n  history_db: ${MODDOC_TEST_DB}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, dir)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/runs.db", cfg.Watch.HistoryDB)
}

func TestDurationRoundTrip(t *testing.T) {
	var w WatchConfig
	require.NoError(t, yaml.Unmarshal([]byte("debounce: 750ms\n"), &w))
	assert.Equal(t, 750*time.Millisecond, time.Duration(w.Debounce))

	out, err := yaml.Marshal(WatchConfig{Debounce: Duration(time.Second)})
	require.NoError(t, err)
	assert.Contains(t, string(out), "debounce: 1s")

	err = yaml.Unmarshal([]byte("debounce: bogus\n"), &w)
	assert.Error(t, err)
}

func TestValidateIgnoreGlobs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := "validate:\n  ignore:\n    - \"**/attributes.adoc\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"**/attributes.adoc"}, cfg.Validate.Ignore)
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, RepoFileName)

	require.NoError(t, Init(path, false))

	// The starter file must parse and resolve to the defaults.
	cfg, err := Load(path, dir)
	require.NoError(t, err)
	assert.Equal(t, Default().Watch, cfg.Watch)
	opts := cfg.GenerateOptions(dir)
	assert.True(t, opts.Examples)
	assert.False(t, opts.Comments)

	assert.Error(t, Init(path, false), "refuses to overwrite without force")
	assert.NoError(t, Init(path, true))
}
