package tracing

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/reference/pkg/reactive"
)

type recordedSpan struct {
	noop.Span
	name   string
	parent *recordedSpan
	attrs  []attribute.KeyValue
	errs   []error
	status codes.Code
	ended  bool
}

func (s *recordedSpan) End(...trace.SpanEndOption) { s.ended = true }

func (s *recordedSpan) RecordError(err error, _ ...trace.EventOption) {
	s.errs = append(s.errs, err)
}

func (s *recordedSpan) SetStatus(code codes.Code, _ string) { s.status = code }

func (s *recordedSpan) attr(key attribute.Key) (attribute.Value, bool) {
	for _, kv := range s.attrs {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

type recordingTracer struct {
	noop.Tracer
	spans []*recordedSpan
}

func (r *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	s := &recordedSpan{name: name, attrs: cfg.Attributes()}
	if parent, ok := trace.SpanFromContext(ctx).(*recordedSpan); ok {
		s.parent = parent
	}
	r.spans = append(r.spans, s)
	return trace.ContextWithSpan(ctx, s), s
}

type recordingProvider struct {
	noop.TracerProvider
	tracer *recordingTracer
}

func (p *recordingProvider) Tracer(string, ...trace.TracerOption) trace.Tracer {
	return p.tracer
}

func observe(t *testing.T) *recordingTracer {
	t.Helper()
	rec := &recordingTracer{}
	t.Cleanup(reactive.Observe(New(WithTracerProvider(&recordingProvider{tracer: rec}))))
	return rec
}

func TestComputeSpansNest(t *testing.T) {
	rec := observe(t)

	inner := reactive.InfallibleFormula(func() int { return 1 })
	outer := reactive.InfallibleFormula(func() int { return reactive.Unwrap(inner) + 1 })
	reactive.Read(outer)

	if len(rec.spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(rec.spans))
	}
	outerSpan, innerSpan := rec.spans[0], rec.spans[1]
	if innerSpan.parent != outerSpan {
		t.Error("expected inner computation to nest under outer")
	}
	if outerSpan.parent != nil {
		t.Error("expected outer computation to be top-level")
	}
	for _, s := range rec.spans {
		if !s.ended || s.status != codes.Ok {
			t.Errorf("span %q not finished ok", s.name)
		}
	}
	if v, ok := outerSpan.attr("reactive.id"); !ok || v.AsInt64() != int64(outer.ID()) {
		t.Errorf("expected reactive.id attribute, got %v", v)
	}
	if v, _ := outerSpan.attr("reactive.kind"); v.AsString() != "InfallibleFormula" {
		t.Errorf("expected reactive.kind attribute, got %v", v)
	}
}

func TestComputeSpanRecordsError(t *testing.T) {
	rec := observe(t)

	boom := errors.New("boom")
	reactive.Read(reactive.FallibleFormula(func() (int, error) { return 0, boom }))

	if len(rec.spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(rec.spans))
	}
	s := rec.spans[0]
	if s.status != codes.Error {
		t.Errorf("expected error status, got %v", s.status)
	}
	if len(s.errs) != 1 || !errors.Is(s.errs[0], boom) {
		t.Errorf("expected recorded boom, got %v", s.errs)
	}
}

func TestWriteSpans(t *testing.T) {
	rec := observe(t)

	reactive.Write(reactive.MutableCell(0), 1)
	reactive.Write(reactive.ReadonlyCell(0), 1)

	if len(rec.spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(rec.spans))
	}
	if rec.spans[0].name != "reactive.write" || rec.spans[0].status != codes.Ok {
		t.Errorf("unexpected first write span %+v", rec.spans[0])
	}
	if rec.spans[1].status != codes.Error {
		t.Error("expected rejected write to be an error span")
	}
}

func TestPoisonSpan(t *testing.T) {
	rec := observe(t)

	root := reactive.DeeplyConstant[any](map[string]any{})
	reactive.Property(root, "missing")
	if len(rec.spans) != 0 {
		t.Fatalf("missing properties are not failures, got %d spans", len(rec.spans))
	}

	reactive.Property(reactive.DeeplyConstant[any](failingGetter{}), "x")
	if len(rec.spans) != 1 || rec.spans[0].name != "reactive.poison" {
		t.Fatalf("expected a poison span, got %+v", rec.spans)
	}
}

type failingGetter struct{}

func (failingGetter) GetProperty(string) (any, error) { return nil, errors.New("boom") }

func TestDefaultsToGlobalProvider(t *testing.T) {
	tr := New()
	if tr.tracer == nil {
		t.Fatal("expected a tracer from the global provider")
	}
	tr.ComputeStarted(reactive.NodeInfo{ID: 1, Kind: reactive.KindAccessor})
	tr.ComputeFinished(reactive.NodeInfo{ID: 1, Kind: reactive.KindAccessor}, nil)
	tr.ComputeFinished(reactive.NodeInfo{}, nil)
	if len(tr.spans) != 0 {
		t.Error("expected span stack to be empty")
	}
}
