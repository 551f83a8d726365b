package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"

	"git.home.luguber.info/inful/moddoc/internal/config"
	"git.home.luguber.info/inful/moddoc/internal/report"
	"git.home.luguber.info/inful/moddoc/internal/validate"
)

// ValidateCmd validates documentation files and reports the findings.
type ValidateCmd struct {
	Paths   []string `arg:"" help:"Files, directories, or globs to validate"`
	Format  string   `default:"text" enum:"text,json" help:"Report format (text or json)"`
	NoColor bool     `help:"Disable colored output"`
}

func (cmd *ValidateCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config, ".")
	if err != nil {
		return err
	}

	files, err := collectFiles(cmd.Paths, cfg.Validate.Ignore)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no documentation files matched")
	}

	reports := make([]validate.Report, 0, len(files))
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}
		rep := validate.Validate(file, string(content))
		if cli.Quiet {
			rep = errorsOnly(rep)
		}
		reports = append(reports, rep)
	}

	useColor := cmd.Format == "text" && !cmd.NoColor && !color.NoColor
	formatter, err := report.NewFormatter(cmd.Format, useColor)
	if err != nil {
		return err
	}
	if err := formatter.Format(os.Stdout, reports); err != nil {
		return err
	}

	if report.ExitCode(reports) != 0 {
		return ErrValidationFailed
	}
	return nil
}

// errorsOnly strips everything below Error severity for quiet runs.
func errorsOnly(rep validate.Report) validate.Report {
	kept := rep.Diagnostics[:0:0]
	for _, d := range rep.Diagnostics {
		if d.Severity == validate.Error {
			kept = append(kept, d)
		}
	}
	rep.Diagnostics = kept
	return rep
}

// collectFiles expands the path arguments into a sorted, deduplicated list of
// .adoc files. Directories are walked recursively; arguments that are neither
// files nor directories are treated as doublestar globs.
func collectFiles(paths, ignore []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	addFile := func(path string) {
		if ignored(path, ignore) {
			return
		}
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		switch {
		case err == nil && info.IsDir():
			walkErr := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && strings.HasSuffix(p, ".adoc") {
					addFile(p)
				}
				return nil
			})
			if walkErr != nil {
				return nil, walkErr
			}
		case err == nil:
			addFile(path)
		default:
			matches, globErr := doublestar.FilepathGlob(path)
			if globErr != nil {
				return nil, fmt.Errorf("bad path or glob %q: %w", path, globErr)
			}
			for _, m := range matches {
				if info, err := os.Stat(m); err == nil && !info.IsDir() {
					addFile(m)
				}
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

func ignored(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, filepath.ToSlash(path)); err == nil && ok {
			return true
		}
	}
	return false
}
