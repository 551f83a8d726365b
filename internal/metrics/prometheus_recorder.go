package metrics

import (
	"net/http"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once        sync.Once
	registry    *prom.Registry
	files       prom.Counter
	issues      *prom.CounterVec
	runDuration prom.Histogram
	runs        *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.once.Do(func() {
		pr.files = prom.NewCounter(prom.CounterOpts{
			Namespace: "moddoc",
			Name:      "files_validated_total",
			Help:      "Total number of files validated",
		})
		pr.issues = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "moddoc",
			Name:      "issues_total",
			Help:      "Validation findings by severity",
		}, []string{"severity"})
		pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "moddoc",
			Name:      "run_duration_seconds",
			Help:      "Duration of validation runs",
			Buckets:   prom.DefBuckets,
		})
		pr.runs = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "moddoc",
			Name:      "runs_total",
			Help:      "Validation runs by trigger",
		}, []string{"trigger"})
		reg.MustRegister(pr.files, pr.issues, pr.runDuration, pr.runs)
	})
	return pr
}

func (p *PrometheusRecorder) IncFilesValidated(n int) {
	if p == nil || p.files == nil {
		return
	}
	p.files.Add(float64(n))
}

func (p *PrometheusRecorder) IncIssues(severity string, n int) {
	if p == nil || p.issues == nil {
		return
	}
	p.issues.WithLabelValues(severity).Add(float64(n))
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRuns(trigger string) {
	if p == nil || p.runs == nil {
		return
	}
	p.runs.WithLabelValues(trigger).Inc()
}

// Handler returns an http.Handler serving the recorder's registry, for the
// watch command's optional metrics endpoint.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
