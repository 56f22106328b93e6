// Package trace exports one OpenTelemetry span per resize or reorder
// gesture. It is disabled unless an OTLP endpoint is configured.
package trace

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"

	"paneldeck/internal/layout"
)

const tracerName = "paneldeck/layout"

// SessionTracer records layout sessions as spans. A nil *SessionTracer is a
// valid no-op observer.
type SessionTracer struct {
	provider *sdktrace.TracerProvider // nil when built from an external provider
	tracer   oteltrace.Tracer

	mu    sync.Mutex
	spans map[layout.SessionKind]oteltrace.Span
}

var _ layout.SessionObserver = (*SessionTracer)(nil)

// NewSessionTracer creates an OTLP/HTTP exporting tracer for endpoint.
// Returns nil if endpoint is empty (disabled).
func NewSessionTracer(ctx context.Context, endpoint, serviceName string) (*SessionTracer, error) {
	if endpoint == "" {
		return nil, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	if serviceName == "" {
		serviceName = "paneldeck"
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	t := NewSessionTracerFromProvider(provider)
	t.provider = provider
	return t, nil
}

// NewSessionTracerFromProvider records spans with an existing provider.
// Shutdown is left to the provider's owner.
func NewSessionTracerFromProvider(tp oteltrace.TracerProvider) *SessionTracer {
	return &SessionTracer{
		tracer: tp.Tracer(tracerName),
		spans:  make(map[layout.SessionKind]oteltrace.Span),
	}
}

// SessionStarted implements layout.SessionObserver.
func (t *SessionTracer) SessionStarted(kind layout.SessionKind, ids ...string) {
	if t == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String("paneldeck.session.kind", kind.String())}
	switch {
	case kind == layout.SessionResize && len(ids) == 2:
		attrs = append(attrs,
			attribute.String("paneldeck.panel.before", ids[0]),
			attribute.String("paneldeck.panel.after", ids[1]),
		)
	case len(ids) > 0:
		attrs = append(attrs, attribute.String("paneldeck.panel.dragged", ids[0]))
	}
	_, span := t.tracer.Start(context.Background(), "layout."+kind.String(),
		oteltrace.WithAttributes(attrs...))

	t.mu.Lock()
	if prev, ok := t.spans[kind]; ok {
		prev.End()
	}
	t.spans[kind] = span
	t.mu.Unlock()
}

// SessionEnded implements layout.SessionObserver.
func (t *SessionTracer) SessionEnded(kind layout.SessionKind, outcome layout.Outcome) {
	if t == nil {
		return
	}
	t.mu.Lock()
	span, ok := t.spans[kind]
	delete(t.spans, kind)
	t.mu.Unlock()
	if !ok {
		return
	}
	span.SetAttributes(attribute.String("paneldeck.outcome", outcome.String()))
	if outcome == layout.OutcomeAborted {
		span.SetStatus(codes.Error, "session aborted")
	}
	span.End()
}

// Observer returns t as a layout.SessionObserver, or nil if t is nil, so a
// disabled tracer never ends up as a typed-nil interface.
func (t *SessionTracer) Observer() layout.SessionObserver {
	if t == nil {
		return nil
	}
	return t
}

// Shutdown flushes and closes the exporter.
func (t *SessionTracer) Shutdown(ctx context.Context) error {
	if t == nil || t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}
