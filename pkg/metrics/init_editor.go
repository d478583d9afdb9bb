package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initEditorMetrics() {
	r.NodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "attackgraph_nodes_total",
			Help: "Number of nodes placed on the canvas",
		},
	)

	r.ConnectionsTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "attackgraph_connections_total",
			Help: "Number of connections drawn on the canvas",
		},
	)

	r.InputEventsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "attackgraph_input_events_total",
			Help: "Pointer and drop events handled by the editor",
		},
		[]string{"event"},
	)

	r.RejectedConnectionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "attackgraph_rejected_connections_total",
			Help: "Edge completions ignored by the connection guard",
		},
		[]string{"reason"},
	)

	r.RendersTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "attackgraph_renders_total",
			Help: "Full scene redraws",
		},
	)

	r.RenderDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "attackgraph_render_duration_seconds",
			Help:    "Time spent redrawing the scene",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)
}
