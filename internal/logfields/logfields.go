package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyFile       = "file"
	KeyPath       = "path"
	KeyTitle      = "title"
	KeyType       = "content_type"
	KeyAnchor     = "anchor"
	KeyRunID      = "run_id"
	KeyTrigger    = "trigger"
	KeyFiles      = "files"
	KeyErrors     = "errors"
	KeyWarnings   = "warnings"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func File(f string) slog.Attr           { return slog.String(KeyFile, f) }
func Path(p string) slog.Attr           { return slog.String(KeyPath, p) }
func Title(t string) slog.Attr          { return slog.String(KeyTitle, t) }
func ContentType(t string) slog.Attr    { return slog.String(KeyType, t) }
func Anchor(a string) slog.Attr         { return slog.String(KeyAnchor, a) }
func RunID(id string) slog.Attr         { return slog.String(KeyRunID, id) }
func Trigger(t string) slog.Attr        { return slog.String(KeyTrigger, t) }
func Files(n int) slog.Attr             { return slog.Int(KeyFiles, n) }
func Errors(n int) slog.Attr            { return slog.Int(KeyErrors, n) }
func Warnings(n int) slog.Attr          { return slog.Int(KeyWarnings, n) }
func DurationMS(ms float64) slog.Attr   { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
