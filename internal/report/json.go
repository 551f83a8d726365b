package report

import (
	"encoding/json"
	"io"

	"git.home.luguber.info/inful/moddoc/internal/validate"
)

type jsonFormatter struct{}

type jsonDiagnostic struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line,omitempty"`
}

type jsonReport struct {
	File        string           `json:"file"`
	Errors      int              `json:"errors"`
	Warnings    int              `json:"warnings"`
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
}

func (f *jsonFormatter) Format(w io.Writer, reports []validate.Report) error {
	out := make([]jsonReport, 0, len(reports))
	for _, r := range reports {
		errors, warnings, _ := r.Counts()
		jr := jsonReport{
			File:        r.File,
			Errors:      errors,
			Warnings:    warnings,
			Diagnostics: make([]jsonDiagnostic, 0, len(r.Diagnostics)),
		}
		for _, d := range r.Diagnostics {
			jr.Diagnostics = append(jr.Diagnostics, jsonDiagnostic{
				Severity: d.Severity.String(),
				Message:  d.Message,
				Line:     d.Line,
			})
		}
		out = append(out, jr)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
