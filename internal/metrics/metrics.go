// Package metrics exports workflow and HTTP counters to prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/csg33k/staffdesk/internal/domain"
)

// Recorder implements workflow.Observer on its own registry, so tests and
// multiple servers in one process do not collide.
type Recorder struct {
	reg        *prometheus.Registry
	mutations  *prometheus.CounterVec
	undos      *prometheus.CounterVec
	validation *prometheus.CounterVec
	requests   *prometheus.HistogramVec
}

func New() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Recorder{
		reg: reg,
		mutations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "staffdesk_mutations_total",
			Help: "Collection mutations by entity kind and operation",
		}, []string{"kind", "op"}),
		undos: f.NewCounterVec(prometheus.CounterOpts{
			Name: "staffdesk_undo_total",
			Help: "Undo offers by entity kind and how they ended",
		}, []string{"kind", "result"}),
		validation: f.NewCounterVec(prometheus.CounterOpts{
			Name: "staffdesk_validation_failures_total",
			Help: "Rejected form submissions by form",
		}, []string{"form"}),
		requests: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "staffdesk_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern and status",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		}, []string{"route", "status"}),
	}
}

func (r *Recorder) Mutation(kind domain.Kind, op string) {
	r.mutations.WithLabelValues(string(kind), op).Inc()
}

func (r *Recorder) Undo(kind domain.Kind, result string) {
	r.undos.WithLabelValues(string(kind), result).Inc()
}

func (r *Recorder) ValidationFailed(form string) {
	r.validation.WithLabelValues(form).Inc()
}

func (r *Recorder) ObserveRequest(route string, status int, d time.Duration) {
	r.requests.WithLabelValues(route, strconv.Itoa(status)).Observe(d.Seconds())
}

// Registry exposes the underlying registry for gathering.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// Handler serves the registry in the prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
