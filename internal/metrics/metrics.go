// Package metrics exposes Prometheus collectors for the HTTP API.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricPrefix = "snowball_"

// Request results.
const (
	ResultSuccess = "success"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

// Metrics bundles the API collectors and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestLatency  *prometheus.HistogramVec
	ScheduleMonths  prometheus.Histogram
	UnpayablePlans  prometheus.Counter
	DebtsPerRequest prometheus.Histogram
}

// New constructs the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "api_requests_total",
				Help: "Total API requests by route and result",
			},
			[]string{"route", "result"},
		),
		RequestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "api_request_latency_seconds",
				Help:    "API request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "result"},
		),
		ScheduleMonths: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    metricPrefix + "payoff_months",
			Help:    "Months needed to pay off every debt in computed plans",
			Buckets: []float64{6, 12, 24, 36, 60, 120, 240, 600, 1200},
		}),
		UnpayablePlans: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "unpayable_plans_total",
			Help: "Total computed plans that never pay off",
		}),
		DebtsPerRequest: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    metricPrefix + "debts_per_request",
			Help:    "Number of debts submitted per request",
			Buckets: prometheus.LinearBuckets(1, 5, 10),
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestsTotal,
		m.RequestLatency,
		m.ScheduleMonths,
		m.UnpayablePlans,
		m.DebtsPerRequest,
	)
	return m
}

// ObserveRequest records one API request.
func (m *Metrics) ObserveRequest(route, result string, elapsed time.Duration) {
	m.RequestsTotal.WithLabelValues(route, result).Inc()
	m.RequestLatency.WithLabelValues(route, result).Observe(elapsed.Seconds())
}

// ObservePlan records the outcome of a computed plan.
func (m *Metrics) ObservePlan(debts, payoffMonths int, paidOff bool) {
	m.DebtsPerRequest.Observe(float64(debts))
	if !paidOff {
		m.UnpayablePlans.Inc()
		return
	}
	m.ScheduleMonths.Observe(float64(payoffMonths))
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
