package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Screener entry outcomes.
const (
	OutcomeAnalyzed = "analyzed"
	OutcomeSkipped  = "skipped"
	OutcomeFailed   = "failed"
)

// Recorder holds the predictor's Prometheus collectors on a private
// registry. A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry      *prometheus.Registry
	entries       *prometheus.CounterVec
	actions       *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	fetchErrors   *prometheus.CounterVec
}

// New creates a recorder with Go runtime and process collectors attached.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		entries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "predictor_screener_entries_total",
				Help: "Screener entries by outcome",
			},
			[]string{"outcome"},
		),
		actions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "predictor_actions_total",
				Help: "Predictions produced by action",
			},
			[]string{"action"},
		),
		fetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "predictor_fetch_duration_seconds",
				Help:    "Duration of upstream data fetches",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		fetchErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "predictor_fetch_errors_total",
				Help: "Failed upstream data fetches",
			},
			[]string{"source"},
		),
	}
}

// RecordEntry counts one screener entry.
func (r *Recorder) RecordEntry(outcome string) {
	if r == nil {
		return
	}
	r.entries.WithLabelValues(outcome).Inc()
}

// RecordAction counts one produced prediction.
func (r *Recorder) RecordAction(action string) {
	if r == nil {
		return
	}
	r.actions.WithLabelValues(action).Inc()
}

// RecordFetch observes an upstream call and counts it as failed when err is set.
func (r *Recorder) RecordFetch(source string, d time.Duration, err error) {
	if r == nil {
		return
	}
	r.fetchDuration.WithLabelValues(source).Observe(d.Seconds())
	if err != nil {
		r.fetchErrors.WithLabelValues(source).Inc()
	}
}

// Registry exposes the underlying registry for tests and custom exporters.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
