package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the editor
type Registry struct {
	// Editor Metrics
	NodesTotal               prometheus.Gauge
	ConnectionsTotal         prometheus.Gauge
	InputEventsTotal         *prometheus.CounterVec
	RejectedConnectionsTotal *prometheus.CounterVec
	RendersTotal             prometheus.Counter
	RenderDuration           prometheus.Histogram

	// Attack Metrics
	AttacksTotal      *prometheus.CounterVec
	HopsScheduled     prometheus.Histogram
	HopsFiredTotal    prometheus.Counter
	HopsPending       prometheus.Gauge
	HopsCanceledTotal prometheus.Counter

	// HTTP Metrics (inspect server)
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// System Metrics
	UptimeSeconds prometheus.Gauge
	GoRoutines    prometheus.Gauge

	registry *prometheus.Registry
	mu       sync.RWMutex
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initEditorMetrics()
	r.initAttackMetrics()
	r.initHTTPMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
