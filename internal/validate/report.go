package validate

// Severity classifies a diagnostic. Higher values are more severe.
type Severity int

const (
	Information Severity = iota
	Warning
	Error
)

// String returns the display name used in reports.
func (s Severity) String() string {
	switch s {
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	default:
		return "Information"
	}
}

// Diagnostic is one severity-tagged finding about a document. Line is
// 1-based; 0 means the finding has no specific location.
type Diagnostic struct {
	Severity Severity
	Message  string
	Line     int
}

// Report holds the ordered diagnostics for one validated file. A Report is
// built once per file and not modified afterwards.
type Report struct {
	File        string
	Diagnostics []Diagnostic
}

// HasErrors reports whether any diagnostic has Error severity.
func (r Report) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Counts returns the number of diagnostics per severity.
func (r Report) Counts() (errors, warnings, infos int) {
	for _, d := range r.Diagnostics {
		switch d.Severity {
		case Error:
			errors++
		case Warning:
			warnings++
		default:
			infos++
		}
	}
	return errors, warnings, infos
}
