// Package telemetry holds the Prometheus collectors for outbound backend
// calls and the exposition handler served by the gateway.
package telemetry

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ClientMetrics counts and times requests sent to the backend.
type ClientMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	breaker  *prometheus.GaugeVec
}

// NewClientMetrics creates the collectors and registers them with reg. A nil
// registerer leaves them unregistered, which is what tests want.
func NewClientMetrics(reg prometheus.Registerer) *ClientMetrics {
	m := &ClientMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hms",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Backend requests by method, route and status class.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hms",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Backend request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		breaker: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "hms",
			Subsystem: "client",
			Name:      "breaker_open",
			Help:      "1 while the named circuit breaker is open.",
		}, []string{"name"}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.latency, m.breaker)
	}
	return m
}

// Observe records one finished request. status 0 means no response.
func (m *ClientMetrics) Observe(method, endpoint string, status int, d time.Duration) {
	if m == nil {
		return
	}
	route := RouteLabel(endpoint)
	m.requests.WithLabelValues(method, route, StatusClass(status)).Inc()
	m.latency.WithLabelValues(method, route).Observe(d.Seconds())
}

// BreakerState records whether the named breaker is open.
func (m *ClientMetrics) BreakerState(name string, open bool) {
	if m == nil {
		return
	}
	v := 0.0
	if open {
		v = 1
	}
	m.breaker.WithLabelValues(name).Set(v)
}

// RouteLabel keeps only the first path segment so ids never become labels.
func RouteLabel(endpoint string) string {
	p := strings.TrimPrefix(endpoint, "/")
	if i := strings.IndexAny(p, "/?"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "/"
	}
	return "/" + p
}

// StatusClass maps a status code to "2xx", "4xx", ... or "network".
func StatusClass(status int) string {
	if status <= 0 {
		return "network"
	}
	return strconv.Itoa(status/100) + "xx"
}

// Handler exposes the default gatherer in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
