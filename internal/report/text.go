package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"git.home.luguber.info/inful/moddoc/internal/validate"
)

// textFormatter renders the per-file findings the way the original console
// reporter did: a file header, one indented line per finding with a severity
// stamp, then a summary and a verdict.
type textFormatter struct {
	color bool
}

var severityColors = map[validate.Severity]*color.Color{
	validate.Error:       color.New(color.FgRed, color.Bold),
	validate.Warning:     color.New(color.FgYellow),
	validate.Information: color.New(color.FgCyan),
}

func (f *textFormatter) stamp(s validate.Severity) string {
	if !f.color {
		return s.String()
	}
	return severityColors[s].Sprint(s.String())
}

func (f *textFormatter) Format(w io.Writer, reports []validate.Report) error {
	var totalErrors, totalWarnings int

	for _, r := range reports {
		if _, err := fmt.Fprintf(w, "File: %s\n", r.File); err != nil {
			return err
		}
		for _, d := range r.Diagnostics {
			var line string
			if d.Line > 0 {
				line = fmt.Sprintf(" at line %d", d.Line)
			}
			if _, err := fmt.Fprintf(w, "  * %s%s: %s\n", f.stamp(d.Severity), line, d.Message); err != nil {
				return err
			}
		}
		errors, warnings, _ := r.Counts()
		totalErrors += errors
		totalWarnings += warnings
	}

	if _, err := fmt.Fprintf(w, "\nChecked %d file(s): %d error(s), %d warning(s)\n",
		len(reports), totalErrors, totalWarnings); err != nil {
		return err
	}

	verdict := "All files passed validation."
	if totalErrors > 0 {
		verdict = "Validation failed."
	}
	_, err := fmt.Fprintln(w, verdict)
	return err
}
