package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopRecorderIsSafe(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.IncFilesValidated(5)
	r.IncIssues("Error", 2)
	r.ObserveRunDuration(time.Second)
	r.IncRuns("manual")
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var p *PrometheusRecorder
	p.IncFilesValidated(1)
	p.IncIssues("Warning", 1)
	p.ObserveRunDuration(time.Second)
	p.IncRuns("sweep")
}

func TestPrometheusRecorderCounts(t *testing.T) {
	reg := prom.NewRegistry()
	p := NewPrometheusRecorder(reg)

	p.IncFilesValidated(3)
	p.IncIssues("Error", 2)
	p.IncIssues("Warning", 1)
	p.IncRuns("watch")
	p.IncRuns("watch")
	p.ObserveRunDuration(50 * time.Millisecond)

	assert.Equal(t, float64(3), testutil.ToFloat64(p.files))
	assert.Equal(t, float64(2), testutil.ToFloat64(p.issues.WithLabelValues("Error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(p.issues.WithLabelValues("Warning")))
	assert.Equal(t, float64(2), testutil.ToFloat64(p.runs.WithLabelValues("watch")))
}

func TestPrometheusRecorderHandler(t *testing.T) {
	p := NewPrometheusRecorder(nil)
	require.NotNil(t, p.Handler())
}
