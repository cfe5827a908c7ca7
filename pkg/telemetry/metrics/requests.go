// Package metrics provides Prometheus metrics for gateway traffic.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"launchcanvas/atlas/pkg/config"
)

// GatewayMetrics tracks metrics related to gateway request processing.
//
// Metrics:
//   - atlas_gateway_requests_total: Total request count by endpoint and status
//   - atlas_gateway_request_duration_seconds: Request duration histogram
//   - atlas_gateway_upstream_latency_seconds: Upstream call latency histogram
type GatewayMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	upstreamLatency *prometheus.HistogramVec
}

// NewGatewayMetrics creates and registers gateway metrics with the provided
// registry.
func NewGatewayMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *GatewayMetrics {
	gm := &GatewayMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "requests_total",
				Help:      "Total number of gateway requests processed",
			},
			[]string{"endpoint", "status"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "request_duration_seconds",
				Help:      "Duration of gateway requests in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"endpoint"},
		),

		upstreamLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "upstream_latency_seconds",
				Help:      "Latency of upstream completion API calls in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"endpoint"},
		),
	}

	registry.MustRegister(
		gm.requestsTotal,
		gm.requestDuration,
		gm.upstreamLatency,
	)

	return gm
}

// RecordRequest records a completed gateway request.
func (m *GatewayMetrics) RecordRequest(endpoint string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordUpstreamLatency records the latency of an upstream API call.
func (m *GatewayMetrics) RecordUpstreamLatency(endpoint string, latency time.Duration) {
	if m == nil {
		return
	}
	m.upstreamLatency.WithLabelValues(endpoint).Observe(latency.Seconds())
}
