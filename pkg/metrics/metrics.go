package metrics

import (
	"runtime"
	"time"
)

// Input event labels
const (
	EventDrop        = "drop"
	EventPointerDown = "pointer_down"
	EventPointerMove = "pointer_move"
	EventPointerUp   = "pointer_up"
	EventResize      = "resize"
)

// RecordInputEvent counts a pointer, drop or resize event
func (r *Registry) RecordInputEvent(event string) {
	r.InputEventsTotal.WithLabelValues(event).Inc()
}

// RecordRender records one full redraw
func (r *Registry) RecordRender(duration time.Duration) {
	r.RendersTotal.Inc()
	r.RenderDuration.Observe(duration.Seconds())
}

// UpdateSceneSize sets the node and connection gauges
func (r *Registry) UpdateSceneSize(nodes, connections int) {
	r.NodesTotal.Set(float64(nodes))
	r.ConnectionsTotal.Set(float64(connections))
}

// RecordRejectedConnection counts an ignored edge completion
func (r *Registry) RecordRejectedConnection(reason string) {
	r.RejectedConnectionsTotal.WithLabelValues(reason).Inc()
}

// RecordAttack records a started attack and the number of hops it queued
func (r *Registry) RecordAttack(outcome string, hops int) {
	r.AttacksTotal.WithLabelValues(outcome).Inc()
	r.HopsScheduled.Observe(float64(hops))
	r.HopsPending.Add(float64(hops))
}

// RecordHopFired records a hop applied to the scene
func (r *Registry) RecordHopFired() {
	r.HopsFiredTotal.Inc()
	r.HopsPending.Dec()
}

// RecordHopsCanceled records queued hops dropped by a cancel
func (r *Registry) RecordHopsCanceled(n int) {
	if n <= 0 {
		return
	}
	r.HopsCanceledTotal.Add(float64(n))
	r.HopsPending.Sub(float64(n))
}

// RecordHTTPRequest records an inspect HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// UpdateSystemMetrics refreshes uptime and goroutine count
func (r *Registry) UpdateSystemMetrics(startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.UptimeSeconds.Set(time.Since(startTime).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
}
