package probe

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus instrumentation for a Prober.
type Metrics struct {
	Outcomes      *prometheus.CounterVec
	FailingStreak prometheus.Gauge
	Status        prometheus.Gauge
	Duration      prometheus.Histogram
}

// NewMetrics creates and registers the probe metrics against the supplied
// registerer.  If registerer is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		Outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "probe_outcomes_total",
				Help: "A counter of probe attempts by outcome",
			},
			[]string{"outcome"},
		),
		FailingStreak: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "probe_failing_streak",
				Help: "The count of consecutive failed probes since the last success",
			},
		),
		Status: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "probe_health_status",
				Help: "The current health status: 0 starting, 1 healthy, 2 unhealthy",
			},
		),
		Duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "probe_duration_seconds",
				Help:    "A histogram of probe latencies",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
			},
		),
	}

	registerer.MustRegister(m.Outcomes, m.FailingStreak, m.Status, m.Duration)
	return m
}

// Observe records a single probe result and the state it produced.
func (m *Metrics) Observe(result Result, state HealthState) {
	m.Outcomes.WithLabelValues(result.Outcome.String()).Inc()
	m.FailingStreak.Set(float64(state.FailingStreak))
	m.Status.Set(float64(state.Status))
	m.Duration.Observe(result.Latency.Seconds())
}
