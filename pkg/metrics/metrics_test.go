package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var metric dto.Metric
	if err := g.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Gauge.GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}
	if r.NodesTotal == nil || r.AttacksTotal == nil || r.HTTPRequestsTotal == nil {
		t.Error("metrics not initialized")
	}
	if r.GetPrometheusRegistry() == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	if DefaultRegistry() != DefaultRegistry() {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordInputEvent(t *testing.T) {
	r := NewRegistry()

	r.RecordInputEvent(EventDrop)
	r.RecordInputEvent(EventDrop)
	r.RecordInputEvent(EventPointerUp)

	counter, err := r.InputEventsTotal.GetMetricWithLabelValues(EventDrop)
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if got := counterValue(t, counter); got != 2 {
		t.Errorf("drop counter = %v, want 2", got)
	}
}

func TestHopAccounting(t *testing.T) {
	r := NewRegistry()

	r.RecordAttack("reached_target", 3)
	r.RecordHopFired()
	r.RecordHopsCanceled(2)
	r.RecordHopsCanceled(0)

	if got := gaugeValue(t, r.HopsPending); got != 0 {
		t.Errorf("pending hops = %v, want 0", got)
	}
	if got := counterValue(t, r.HopsFiredTotal); got != 1 {
		t.Errorf("fired hops = %v, want 1", got)
	}
	if got := counterValue(t, r.HopsCanceledTotal); got != 2 {
		t.Errorf("canceled hops = %v, want 2", got)
	}

	attacks, err := r.AttacksTotal.GetMetricWithLabelValues("reached_target")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if got := counterValue(t, attacks); got != 1 {
		t.Errorf("attacks = %v, want 1", got)
	}
}

func TestSceneSizeAndRenders(t *testing.T) {
	r := NewRegistry()

	r.UpdateSceneSize(4, 3)
	r.RecordRender(time.Millisecond)
	r.UpdateSystemMetrics(time.Now().Add(-time.Minute))

	if got := gaugeValue(t, r.NodesTotal); got != 4 {
		t.Errorf("nodes = %v, want 4", got)
	}
	if got := gaugeValue(t, r.ConnectionsTotal); got != 3 {
		t.Errorf("connections = %v, want 3", got)
	}
	if got := counterValue(t, r.RendersTotal); got != 1 {
		t.Errorf("renders = %v, want 1", got)
	}
	if got := gaugeValue(t, r.UptimeSeconds); got < 60 {
		t.Errorf("uptime = %v, want >= 60", got)
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	r := NewRegistry()
	r.RecordHTTPRequest("POST", "/graphql", "200", 5*time.Millisecond)

	counter, err := r.HTTPRequestsTotal.GetMetricWithLabelValues("POST", "/graphql", "200")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if got := counterValue(t, counter); got != 1 {
		t.Errorf("request counter = %v, want 1", got)
	}
}
