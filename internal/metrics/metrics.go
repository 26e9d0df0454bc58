// Package metrics provides Prometheus metrics for the site backend.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	MessagesTotal        *prometheus.CounterVec
	GuardRejectionsTotal *prometheus.CounterVec
	LeadsCompletedTotal  prometheus.Counter
	EmailsTotal          *prometheus.CounterVec
	RequestDuration      *prometheus.HistogramVec

	registry *prometheus.Registry
}

// New creates and registers all metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		MessagesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chat_messages_total",
				Help: "Total chat messages processed by stage and outcome.",
			},
			[]string{"stage", "outcome"},
		),
		GuardRejectionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chat_guard_rejections_total",
				Help: "Messages rejected by the content guard, by reason.",
			},
			[]string{"reason"},
		),
		LeadsCompletedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "chat_leads_completed_total",
				Help: "Sessions that reached the completed stage.",
			},
		),
		EmailsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "emails_total",
				Help: "Outbound emails by provider, kind and status.",
			},
			[]string{"provider", "kind", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Request processing duration by route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		registry: reg,
	}

	reg.MustRegister(m.MessagesTotal)
	reg.MustRegister(m.GuardRejectionsTotal)
	reg.MustRegister(m.LeadsCompletedTotal)
	reg.MustRegister(m.EmailsTotal)
	reg.MustRegister(m.RequestDuration)

	return m
}

// Handler returns an http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordMessage increments the message counter.
func (m *Metrics) RecordMessage(stage, outcome string) {
	m.MessagesTotal.WithLabelValues(stage, outcome).Inc()
}

// RecordRejection increments the guard rejection counter.
func (m *Metrics) RecordRejection(reason string) {
	m.GuardRejectionsTotal.WithLabelValues(reason).Inc()
}

// RecordLead increments the completed-lead counter.
func (m *Metrics) RecordLead() {
	m.LeadsCompletedTotal.Inc()
}

// RecordEmail increments the email counter.
func (m *Metrics) RecordEmail(provider, kind, status string) {
	m.EmailsTotal.WithLabelValues(provider, kind, status).Inc()
}

// ObserveRequest records request duration for a route.
func (m *Metrics) ObserveRequest(route string, seconds float64) {
	m.RequestDuration.WithLabelValues(route).Observe(seconds)
}
