// Package observability exposes Prometheus metrics and health probes for
// the gophtasks server on a separate listener.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the application counters recorded by the HTTP API.
type Metrics struct {
	RequestsTotal     *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	AuthFailuresTotal *prometheus.CounterVec
	LoginsTotal       prometheus.Counter
}

// NewMetrics creates the gophtasks metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gophtasks_http_requests_total",
				Help: "Total number of HTTP requests by route and status code",
			},
			[]string{"route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gophtasks_http_request_duration_seconds",
				Help:    "HTTP request latency by route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		AuthFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gophtasks_auth_failures_total",
				Help: "Rejected logins and bearer tokens by reason",
			},
			[]string{"reason"},
		),
		LoginsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "gophtasks_logins_total",
				Help: "Successful logins",
			},
		),
	}

	reg.MustRegister(m.RequestsTotal, m.RequestDuration, m.AuthFailuresTotal, m.LoginsTotal)
	return m
}

// Auth failure reasons.
const (
	ReasonInvalidCredentials = "invalid_credentials"
	ReasonUnauthorized       = "unauthorized"
	ReasonMissingExpiry      = "missing_expiry"
	ReasonExpired            = "expired"
)

func (m *Metrics) AuthFailure(reason string) {
	if m == nil {
		return
	}
	m.AuthFailuresTotal.WithLabelValues(reason).Inc()
}

func (m *Metrics) Login() {
	if m == nil {
		return
	}
	m.LoginsTotal.Inc()
}
