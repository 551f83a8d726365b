// Package config loads and layers the tool configuration. Precedence, lowest
// to highest: built-in defaults, the per-user config file, the repository
// config file at the enclosing Git root, and finally whatever flags the CLI
// applies on top of the result.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/moddoc/internal/generate"
	"git.home.luguber.info/inful/moddoc/internal/logfields"
)

// RepoFileName is the repository-level config file looked up at the Git root.
const RepoFileName = ".moddoc.yaml"

// Config is the merged tool configuration.
type Config struct {
	Generate GenerateConfig `yaml:"generate"`
	Validate ValidateConfig `yaml:"validate"`
	Watch    WatchConfig    `yaml:"watch"`
}

// GenerateConfig mirrors generate.Options. Fields are pointers so that a
// config file can distinguish "set to false" from "not set".
type GenerateConfig struct {
	Comments       *bool `yaml:"comments"`
	Examples       *bool `yaml:"examples"`
	AnchorPrefixes *bool `yaml:"anchor_prefixes"`
	FilePrefixes   *bool `yaml:"file_prefixes"`
	Simplified     *bool `yaml:"simplified"`
}

// ValidateConfig holds validation settings.
type ValidateConfig struct {
	// Ignore lists doublestar globs for paths to skip during validation.
	Ignore []string `yaml:"ignore"`
}

// WatchConfig holds the continuous-validation settings.
type WatchConfig struct {
	Debounce      Duration `yaml:"debounce"`
	SweepInterval Duration `yaml:"sweep_interval"`
	MetricsAddr   string   `yaml:"metrics_addr"`
	HistoryDB     string   `yaml:"history_db"`
}

// Duration is a time.Duration that unmarshals from YAML strings like "500ms".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler, keeping round-trips readable.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Watch: WatchConfig{
			Debounce:      Duration(500 * time.Millisecond),
			SweepInterval: Duration(5 * time.Minute),
			HistoryDB:     "moddoc-history.db",
		},
	}
}

// Load builds the layered configuration. When explicitPath is set, discovery
// is bypassed: that file must exist and is the only one applied on top of
// the defaults. Otherwise the user config and the repository config (found
// from targetDir) are merged in order, each skipped silently when absent.
func Load(explicitPath, targetDir string) (*Config, error) {
	loadEnvFiles(targetDir)

	cfg := Default()

	if explicitPath != "" {
		if err := mergeFile(cfg, explicitPath); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if userPath, err := userConfigPath(); err == nil {
		mergeOptional(cfg, userPath)
	}
	if root, ok := gitRoot(targetDir); ok {
		mergeOptional(cfg, filepath.Join(root, RepoFileName))
	}

	return cfg, nil
}

// GenerateOptions resolves the generate section against the built-in
// defaults: examples and file prefixes on, everything else off.
func (c *Config) GenerateOptions(targetDir string) generate.Options {
	opts := generate.DefaultOptions()
	opts.TargetDir = targetDir

	if c.Generate.Comments != nil {
		opts.Comments = *c.Generate.Comments
	}
	if c.Generate.Examples != nil {
		opts.Examples = *c.Generate.Examples
	}
	if c.Generate.AnchorPrefixes != nil {
		opts.AnchorPrefixes = *c.Generate.AnchorPrefixes
	}
	if c.Generate.FilePrefixes != nil {
		opts.FilePrefixes = *c.Generate.FilePrefixes
	}
	if c.Generate.Simplified != nil {
		opts.Simplified = *c.Generate.Simplified
	}
	return opts
}

// mergeFile applies one config file onto cfg. The file must exist.
// ${VAR} references in the file are expanded from the environment before
// unmarshaling, so secrets and paths can stay out of committed files.
func mergeFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	expanded := os.ExpandEnv(string(raw))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	slog.Debug("Applied configuration file", logfields.Path(path))
	return nil
}

// mergeOptional is mergeFile for discovered files: missing files are skipped.
func mergeOptional(cfg *Config, path string) {
	if _, err := os.Stat(path); err != nil {
		slog.Debug("No configuration file", logfields.Path(path))
		return
	}
	if err := mergeFile(cfg, path); err != nil {
		slog.Warn("Ignoring unreadable configuration file", logfields.Path(path), logfields.Error(err))
	}
}

func userConfigPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "moddoc", "moddoc.yaml"), nil
}

// gitRoot locates the worktree root of the repository enclosing dir.
func gitRoot(dir string) (string, bool) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", false
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", false
	}
	return wt.Filesystem.Root(), true
}

// loadEnvFiles loads .env and .env.local from the target directory without
// overriding variables already present in the process environment.
func loadEnvFiles(targetDir string) {
	for _, name := range []string{".env", ".env.local"} {
		path := filepath.Join(targetDir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			slog.Warn("Failed to load env file", logfields.Path(path), logfields.Error(err))
			continue
		}
		slog.Debug("Loaded environment variables", logfields.Path(path))
	}
}
