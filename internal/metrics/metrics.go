// Package metrics exposes Prometheus counters for progress mutations, failed
// saves and dispatched alerts on a private registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "coursetrack"

type Metrics struct {
	registry     *prometheus.Registry
	useCases     *prometheus.CounterVec
	useCaseTime  *prometheus.HistogramVec
	saveFailures *prometheus.CounterVec
	alerts       *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		useCases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "use_cases_total",
			Help:      "Tracker use cases by name and outcome.",
		}, []string{"use_case", "outcome"}),
		useCaseTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "use_case_duration_seconds",
			Help:      "Tracker use case latency.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"use_case"}),
		saveFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "progress_save_failures_total",
			Help:      "Progress writes that failed and were kept in memory only.",
		}, []string{"op"}),
		alerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_total",
			Help:      "Deadline alerts handed to the notifier.",
		}, []string{"kind"}),
	}
	m.registry.MustRegister(
		m.useCases,
		m.useCaseTime,
		m.saveFailures,
		m.alerts,
		collectors.NewGoCollector(),
	)
	return m
}

// Registry is the private registry the counters live in.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveUseCase(name string, success bool, d time.Duration) {
	outcome := "ok"
	if !success {
		outcome = "error"
	}
	m.useCases.WithLabelValues(name, outcome).Inc()
	m.useCaseTime.WithLabelValues(name).Observe(d.Seconds())
}

// SaveFailed matches the progress store's failure hook.
func (m *Metrics) SaveFailed(op string, _ error) {
	m.saveFailures.WithLabelValues(op).Inc()
}

func (m *Metrics) AlertSent(kind string) {
	m.alerts.WithLabelValues(kind).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
