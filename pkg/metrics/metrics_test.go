package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/vango-dev/reference/pkg/reactive"
)

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func metricHistogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

func observe(t *testing.T, opts ...Option) (*Collector, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	c := New(append([]Option{WithRegistry(reg)}, opts...)...)
	t.Cleanup(reactive.Observe(c))
	return c, reg
}

func TestCollectorComputations(t *testing.T) {
	c, _ := observe(t)

	cell := reactive.MutableCell(1)
	f := reactive.FallibleFormula(func() (int, error) {
		if reactive.Unwrap(cell) > 1 {
			return 0, errors.New("too big")
		}
		return 1, nil
	})

	reactive.Read(f)
	reactive.Read(f)
	reactive.Write(cell, 2)
	reactive.Read(f)

	kind := reactive.KindFallibleFormula.String()
	if got := metricCounterValue(t, c.computations.WithLabelValues(kind)); got != 2 {
		t.Fatalf("computations_total=%v, want 2", got)
	}
	if got := metricCounterValue(t, c.computationErrs.WithLabelValues(kind)); got != 1 {
		t.Fatalf("computation_errors_total=%v, want 1", got)
	}
	if got := metricHistogramCount(t, c.computationTimes.WithLabelValues(kind)); got != 2 {
		t.Fatalf("computation_duration_seconds count=%v, want 2", got)
	}
	if len(c.starts) != 0 {
		t.Errorf("expected no computations in progress, got %d", len(c.starts))
	}
}

func TestCollectorNestedComputations(t *testing.T) {
	c, _ := observe(t)

	inner := reactive.InfallibleFormula(func() int { return 1 })
	outer := reactive.InfallibleFormula(func() int { return reactive.Unwrap(inner) + 1 })
	reactive.Read(outer)

	kind := reactive.KindInfallibleFormula.String()
	if got := metricCounterValue(t, c.computations.WithLabelValues(kind)); got != 2 {
		t.Fatalf("computations_total=%v, want 2", got)
	}
	if got := metricHistogramCount(t, c.computationTimes.WithLabelValues(kind)); got != 2 {
		t.Fatalf("computation_duration_seconds count=%v, want 2", got)
	}
}

func TestCollectorWrites(t *testing.T) {
	c, _ := observe(t)

	reactive.Write(reactive.MutableCell(0), 1)
	reactive.Write(reactive.ReadonlyCell(0), 1)
	reactive.Write(reactive.Accessor(
		func() (int, error) { return 0, nil },
		func(int) error { return errors.New("nope") },
	), 1)

	tests := []struct {
		kind   reactive.Kind
		status string
	}{
		{reactive.KindMutableCell, StatusOK},
		{reactive.KindReadonlyCell, StatusRejected},
		{reactive.KindAccessor, StatusError},
	}
	for _, tt := range tests {
		if got := metricCounterValue(t, c.writes.WithLabelValues(tt.kind.String(), tt.status)); got != 1 {
			t.Errorf("writes_total{%s,%s}=%v, want 1", tt.kind, tt.status, got)
		}
	}
}

type failingGetter struct{}

func (failingGetter) GetProperty(string) (any, error) { return nil, errors.New("boom") }

func TestCollectorPoisoned(t *testing.T) {
	c, _ := observe(t)

	root := reactive.DeeplyConstant[any](failingGetter{})
	reactive.Property(root, "a")
	reactive.Property(root, "a")
	reactive.Property(root, "b")

	if got := metricCounterValue(t, c.poisoned); got != 2 {
		t.Fatalf("poisoned_total=%v, want 2", got)
	}
}

func TestCollectorRegistersWithNamespace(t *testing.T) {
	_, reg := observe(t, WithNamespace("app"), WithSubsystem("vm"), WithConstLabels(prometheus.Labels{"env": "test"}))

	reactive.Read(reactive.InfallibleFormula(func() int { return 1 }))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	found := false
	for _, mf := range families {
		if mf.GetName() == "app_vm_computations_total" {
			found = true
			if got := mf.GetMetric()[0].GetLabel()[0].GetValue(); got != "test" {
				t.Errorf("expected const label env=test, got %q", got)
			}
		}
	}
	if !found {
		t.Error("expected app_vm_computations_total to be registered")
	}
}
