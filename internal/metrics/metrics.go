package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the pipeline counters on a private prometheus registry so
// tests can create isolated instances.
type Registry struct {
	reg            *prometheus.Registry
	Runs           prometheus.Counter
	RunsFailed     prometheus.Counter
	RowsIn         prometheus.Counter
	RunDurationSec prometheus.Histogram
}

// NewRegistry creates and registers the pipeline collectors.
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	runs := prometheus.NewCounter(prometheus.CounterOpts{Name: "pipeline_runs_total"})
	runsFailed := prometheus.NewCounter(prometheus.CounterOpts{Name: "pipeline_runs_failed_total"})
	rowsIn := prometheus.NewCounter(prometheus.CounterOpts{Name: "pipeline_rows_in_total"})
	runDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pipeline_run_duration_seconds",
		Buckets: prometheus.DefBuckets,
	})

	r.MustRegister(runs, runsFailed, rowsIn, runDuration)
	return &Registry{
		reg:            r,
		Runs:           runs,
		RunsFailed:     runsFailed,
		RowsIn:         rowsIn,
		RunDurationSec: runDuration,
	}
}

// Handler exposes the registry in prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
