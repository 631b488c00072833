// Package metrics exposes request and storefront counters for Prometheus.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/junaidrashid-git/teazen/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "teazen"

type Metrics struct {
	Registry *prometheus.Registry

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	cartAdds      *prometheus.CounterVec
	orderStatus   *prometheus.CounterVec
	contentWrites *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		}, []string{"method", "route"}),
		cartAdds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cart",
			Name:      "adds_total",
			Help:      "Cart adds, split by whether a new line was created.",
		}, []string{"new_line"}),
		orderStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "status_changes_total",
			Help:      "Order status changes by target status.",
		}, []string{"status"}),
		contentWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "admin",
			Name:      "content_writes_total",
			Help:      "Admin content writes by entity and action.",
		}, []string{"entity", "action"}),
	}
	m.Registry.MustRegister(
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		m.cartAdds,
		m.orderStatus,
		m.contentWrites,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Begin marks a request in flight and returns the func that records it.
func (m *Metrics) Begin(method string) func(route string, status int, seconds float64) {
	m.httpInFlight.Inc()
	return func(route string, status int, seconds float64) {
		m.httpInFlight.Dec()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(method, route).Observe(seconds)
	}
}

func (m *Metrics) CartItemAdded(created bool) {
	m.cartAdds.WithLabelValues(strconv.FormatBool(created)).Inc()
}

func (m *Metrics) OrderStatusChanged(order *models.Order) {
	m.orderStatus.WithLabelValues(string(order.Status)).Inc()
}

func (m *Metrics) ContentChanged(entity, action string, id uint, title string) {
	m.contentWrites.WithLabelValues(entity, action).Inc()
}
