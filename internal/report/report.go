// Package report renders validation reports for humans and machines. The
// validator produces data; everything about markers, colors, and summaries
// lives here so the rules stay testable without capturing output.
package report

import (
	"fmt"
	"io"

	"git.home.luguber.info/inful/moddoc/internal/validate"
)

// Formatter renders a batch of reports to a writer.
type Formatter interface {
	Format(w io.Writer, reports []validate.Report) error
}

// NewFormatter returns the formatter for the requested kind: "text" or
// "json". useColor only affects the text formatter.
func NewFormatter(kind string, useColor bool) (Formatter, error) {
	switch kind {
	case "text", "":
		return &textFormatter{color: useColor}, nil
	case "json":
		return &jsonFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown report format %q", kind)
	}
}

// ExitCode derives the process exit status from report contents: 1 when any
// file has an Error-severity diagnostic, 0 otherwise.
func ExitCode(reports []validate.Report) int {
	for _, r := range reports {
		if r.HasErrors() {
			return 1
		}
	}
	return 0
}
