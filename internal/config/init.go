package config

import (
	"fmt"
	"os"
)

// starterConfig is what `moddoc init` writes. Values match the built-in
// defaults so the file documents the knobs without changing behavior.
const starterConfig = `# moddoc configuration.
# Precedence: defaults < user config < this file < command-line flags.

generate:
  # Keep the explanatory comment blocks in generated files.
  comments: false
  # Keep placeholder example content in generated files.
  examples: true
  # Prepend the content type to anchors (con_, proc_, ref_, assembly_, snip_).
  anchor_prefixes: false
  # Prepend the content type to file names.
  file_prefixes: true
  # Drop the {context} suffix and conditionals from generated IDs.
  simplified: false

validate:
  # Doublestar globs for paths to skip.
  ignore: []
  # ignore:
  #   - "**/attributes.adoc"

watch:
  debounce: 500ms
  sweep_interval: 5m
  # Serve Prometheus metrics while watching, e.g. ":9190". Empty disables.
  metrics_addr: ""
  history_db: moddoc-history.db
`

// Init writes the starter configuration file. An existing file is preserved
// unless force is set.
func Init(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("configuration file %s already exists (use --force to overwrite)", path)
		}
	}
	if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
		return fmt.Errorf("write configuration file: %w", err)
	}
	return nil
}
