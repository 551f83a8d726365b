// Package write puts generated documents on disk. It owns the existence
// check and the overwrite prompt, so the generator can stay free of I/O.
package write

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/moddoc/internal/generate"
	"git.home.luguber.info/inful/moddoc/internal/logfields"
)

// Writer writes generated documents under TargetDir.
type Writer struct {
	// TargetDir is the directory documents are written into.
	TargetDir string
	// Force skips the overwrite confirmation.
	Force bool
	// DryRun prints document bodies to Out instead of touching the disk.
	DryRun bool
	// Confirm asks the user a yes/no question. Defaults to a stdin y/N
	// prompt answered through In/Out.
	Confirm func(prompt string) bool

	// In and Out default to stdin and stdout.
	In  io.Reader
	Out io.Writer
}

// WriteDoc writes one document. An existing file is only replaced when Force
// is set or the user confirms; declining preserves the file and is not an
// error. On success the include statement is logged so the author can paste
// it into the parent assembly.
func (w *Writer) WriteDoc(doc generate.Doc) error {
	out := w.Out
	if out == nil {
		out = os.Stdout
	}

	if w.DryRun {
		fmt.Fprintf(out, "--- %s\n%s", doc.FileName, doc.Body)
		return nil
	}

	path := filepath.Join(w.TargetDir, doc.FileName)

	if _, err := os.Stat(path); err == nil && !w.Force {
		if !w.confirm(fmt.Sprintf("File %s already exists. Overwrite it?", path)) {
			slog.Info("Keeping existing file", logfields.Path(path))
			return nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create target directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(doc.Body), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	slog.Info("Wrote file", logfields.File(doc.FileName), logfields.ContentType(doc.Type.String()))
	slog.Info("To include this file from elsewhere, use:", slog.String("include", doc.IncludeStatement))
	return nil
}

func (w *Writer) confirm(prompt string) bool {
	if w.Confirm != nil {
		return w.Confirm(prompt)
	}
	return w.askYesNo(prompt)
}

// askYesNo is the default prompt: y/N on the terminal, defaulting to no.
func (w *Writer) askYesNo(prompt string) bool {
	in := w.In
	if in == nil {
		in = os.Stdin
	}
	out := w.Out
	if out == nil {
		out = os.Stdout
	}

	fmt.Fprintf(out, "%s [y/N] ", prompt)
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
