package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAttackMetrics() {
	r.AttacksTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "attackgraph_attacks_total",
			Help: "Attack animations started, by how the walk ended",
		},
		[]string{"outcome"},
	)

	r.HopsScheduled = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "attackgraph_hops_scheduled",
			Help:    "Hops queued per attack",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64},
		},
	)

	r.HopsFiredTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "attackgraph_hops_fired_total",
			Help: "Scheduled hops applied to the scene",
		},
	)

	r.HopsPending = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "attackgraph_hops_pending",
			Help: "Hops queued but not yet fired",
		},
	)

	r.HopsCanceledTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "attackgraph_hops_canceled_total",
			Help: "Queued hops dropped before firing",
		},
	)
}
