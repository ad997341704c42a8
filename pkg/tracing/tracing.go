// Package tracing exports reactive engine activity as OpenTelemetry spans.
//
// Every recomputation becomes a span. Recomputations triggered while another
// is running nest under it, so a trace shows which formulas pulled which.
//
//	unregister := reactive.Observe(tracing.New(
//	    tracing.WithTracerName("my-app"),
//	))
//	defer unregister()
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/reference/pkg/reactive"
)

// Default tracer name.
const defaultTracerName = "reference"

// Config configures the tracing observer.
type Config struct {
	// TracerName is the name of the tracer (default: "reference").
	TracerName string

	// TracerProvider provides the tracer.
	// Default: the global provider from otel.GetTracerProvider().
	TracerProvider trace.TracerProvider

	// Context is the parent of top-level spans (default: context.Background()).
	Context context.Context
}

// Option configures the tracing observer.
type Option func(*Config)

// WithTracerName sets the tracer name.
func WithTracerName(name string) Option {
	return func(c *Config) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Config) {
		c.TracerProvider = tp
	}
}

// WithContext sets the parent context of top-level spans, typically one
// carrying the span of the render that reads the reactives.
func WithContext(ctx context.Context) Option {
	return func(c *Config) {
		c.Context = ctx
	}
}

// Tracer is a reactive.Observer emitting spans.
type Tracer struct {
	tracer trace.Tracer
	base   context.Context

	// spans holds the computations in progress, innermost last.
	spans []spanFrame
}

type spanFrame struct {
	ctx  context.Context
	span trace.Span
}

var _ reactive.Observer = (*Tracer)(nil)

// New creates a tracing observer.
func New(opts ...Option) *Tracer {
	config := Config{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.TracerProvider == nil {
		config.TracerProvider = otel.GetTracerProvider()
	}
	if config.Context == nil {
		config.Context = context.Background()
	}

	return &Tracer{
		tracer: config.TracerProvider.Tracer(config.TracerName),
		base:   config.Context,
	}
}

func (t *Tracer) parent() context.Context {
	if n := len(t.spans); n > 0 {
		return t.spans[n-1].ctx
	}
	return t.base
}

func nodeAttributes(info reactive.NodeInfo) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.Int64("reactive.id", int64(info.ID)),
		attribute.String("reactive.kind", info.Kind.String()),
	}
	if info.Description != "" {
		attrs = append(attrs, attribute.String("reactive.description", info.Description))
	}
	return attrs
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// ComputeStarted implements reactive.Observer.
func (t *Tracer) ComputeStarted(info reactive.NodeInfo) {
	ctx, span := t.tracer.Start(t.parent(), "reactive.compute",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(nodeAttributes(info)...),
	)
	t.spans = append(t.spans, spanFrame{ctx: ctx, span: span})
}

// ComputeFinished implements reactive.Observer.
func (t *Tracer) ComputeFinished(_ reactive.NodeInfo, err error) {
	n := len(t.spans)
	if n == 0 {
		return
	}
	frame := t.spans[n-1]
	t.spans = t.spans[:n-1]
	finish(frame.span, err)
}

// Written implements reactive.Observer.
func (t *Tracer) Written(info reactive.NodeInfo, err error) {
	_, span := t.tracer.Start(t.parent(), "reactive.write",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(nodeAttributes(info)...),
	)
	finish(span, err)
}

// Poisoned implements reactive.Observer.
func (t *Tracer) Poisoned(info reactive.NodeInfo, err error) {
	_, span := t.tracer.Start(t.parent(), "reactive.poison",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(nodeAttributes(info)...),
	)
	finish(span, err)
}
