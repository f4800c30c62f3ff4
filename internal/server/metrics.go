package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Each Server owns its registry so several can coexist in one process.
type metrics struct {
	registry    *prometheus.Registry
	assessments *prometheus.CounterVec
	riskPercent prometheus.Histogram
	failures    *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fraudrisk",
			Name:      "assessments_total",
			Help:      "Scored transactions by verdict and channel.",
		}, []string{"verdict", "channel"}),
		riskPercent: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fraudrisk",
			Name:      "risk_percent",
			Help:      "Distribution of computed risk percentages.",
			Buckets:   []float64{5, 10, 20, 30, 45, 55, 65, 80, 100},
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fraudrisk",
			Name:      "failures_total",
			Help:      "Requests that could not be scored or side effects that failed, by stage.",
		}, []string{"stage"}),
	}

	m.registry.MustRegister(
		m.assessments,
		m.riskPercent,
		m.failures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *metrics) observe(verdict, channel string, riskPercent float64) {
	m.assessments.WithLabelValues(verdict, channel).Inc()
	m.riskPercent.Observe(riskPercent)
}

func (m *metrics) fail(stage string) {
	m.failures.WithLabelValues(stage).Inc()
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
