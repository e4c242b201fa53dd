package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the HTTP-level Prometheus metrics for the server.
type Metrics struct {
	registry *prometheus.Registry

	// Request latency by method, chi route pattern and status code
	RequestDuration *prometheus.HistogramVec

	// Requests currently being served
	InFlight prometheus.Gauge
}

// New creates a registry with process and Go runtime collectors and registers
// the HTTP metrics on it.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "signup_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by method, route and status",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route", "status"}),

		InFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "signup_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		}),
	}
}

// Registerer exposes the registry so feature modules can add their own collectors.
func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one finished request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m != nil {
		m.RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
	}
}

// IncInFlight marks a request as started.
func (m *Metrics) IncInFlight() {
	if m != nil {
		m.InFlight.Inc()
	}
}

// DecInFlight marks a request as finished.
func (m *Metrics) DecInFlight() {
	if m != nil {
		m.InFlight.Dec()
	}
}
