package liveness

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the request handling instrumentation for the liveness server.
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	InFlightRequests prometheus.Gauge
	RequestDuration  *prometheus.HistogramVec
}

// NewMetrics creates and registers the server-side metrics against the supplied
// registerer.  If registerer is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "api_requests_total",
				Help: "A counter for requests to the handler",
			},
			[]string{"code", "method"},
		),
		InFlightRequests: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "in_flight_requests",
				Help: "A gauge of requests currently being served by the handler.",
			},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "request_duration_seconds",
				Help:    "A histogram of latencies for requests.",
				Buckets: []float64{.25, .5, 1, 2.5, 5, 10},
			},
			[]string{"code", "method"},
		),
	}

	registerer.MustRegister(m.RequestsTotal, m.InFlightRequests, m.RequestDuration)
	return m
}

// Instrument returns an Alice-style constructor that decorates a handler with
// the standard request metrics.
func (m *Metrics) Instrument() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return promhttp.InstrumentHandlerInFlight(
			m.InFlightRequests,
			promhttp.InstrumentHandlerDuration(
				m.RequestDuration,
				promhttp.InstrumentHandlerCounter(m.RequestsTotal, next),
			),
		)
	}
}
