package metrics

import "time"

// Recorder defines observability hooks for validation runs. Implementations
// may forward to Prometheus, OpenTelemetry, etc. The NoopRecorder is the
// default, so components never need nil checks.
type Recorder interface {
	IncFilesValidated(n int)
	IncIssues(severity string, n int)
	ObserveRunDuration(d time.Duration)
	IncRuns(trigger string) // trigger: manual|watch|sweep
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncFilesValidated(int)            {}
func (NoopRecorder) IncIssues(string, int)            {}
func (NoopRecorder) ObserveRunDuration(time.Duration) {}
func (NoopRecorder) IncRuns(string)                   {}
