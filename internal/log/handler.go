package log

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/tuanvumaihuynh/brewery/pkg/correlationid"
)

// contextAttrsFunc extracts request-scoped attributes from ctx.
type contextAttrsFunc func(ctx context.Context) []slog.Attr

var defaultContextAttrs = []contextAttrsFunc{
	correlationAttrs,
	traceAttrs,
}

var _ slog.Handler = contextHandler{}

// contextHandler adds request-scoped attributes to every record: the
// correlation id of the HTTP request or Kafka message being handled and the
// active span.
type contextHandler struct {
	next  slog.Handler
	attrs []contextAttrsFunc
}

func newContextHandler(next slog.Handler, attrs ...contextAttrsFunc) contextHandler {
	if len(attrs) == 0 {
		attrs = defaultContextAttrs
	}
	return contextHandler{next: next, attrs: attrs}
}

func (h contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, fn := range h.attrs {
		r.AddAttrs(fn(ctx)...)
	}
	return h.next.Handle(ctx, r)
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{next: h.next.WithAttrs(attrs), attrs: h.attrs}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{next: h.next.WithGroup(name), attrs: h.attrs}
}

func correlationAttrs(ctx context.Context) []slog.Attr {
	id, ok := correlationid.FromContext(ctx)
	if !ok {
		return nil
	}
	return []slog.Attr{slog.String("correlation_id", id)}
}

func traceAttrs(ctx context.Context) []slog.Attr {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return nil
	}
	return []slog.Attr{
		slog.String("trace_id", spanCtx.TraceID().String()),
		slog.String("span_id", spanCtx.SpanID().String()),
	}
}
