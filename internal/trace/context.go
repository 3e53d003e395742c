package trace

import "context"

type tracerKey struct{}
type spanKey struct{}

func WithTracer(ctx context.Context, t Tracer) context.Context {
	return context.WithValue(ctx, tracerKey{}, t)
}

// FromContext returns the tracer stored in ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if t, ok := ctx.Value(tracerKey{}).(Tracer); ok && t != nil {
		return t
	}
	return Nop
}

func SpanFromContext(ctx context.Context) *Span {
	s, _ := ctx.Value(spanKey{}).(*Span)
	return s
}

// Start opens a span under the span already in ctx and returns a context
// carrying the new one. When the span is filtered out ctx is returned as is.
func Start(ctx context.Context, scope Scope, name string) (*Span, context.Context) {
	s := Begin(FromContext(ctx), scope, name, SpanFromContext(ctx))
	if s == nil {
		return nil, ctx
	}
	return s, context.WithValue(ctx, spanKey{}, s)
}
