package ctxutil

import "context"

type traceKey struct{}

// Trace carries the ids that tie one inbound request to its logs and spans.
type Trace struct {
	TraceID   string
	RequestID string
}

func WithTrace(ctx context.Context, tr Trace) context.Context {
	return context.WithValue(ctx, traceKey{}, tr)
}

// TraceFrom reports the request's trace ids and whether any were attached.
func TraceFrom(ctx context.Context) (Trace, bool) {
	tr, ok := ctx.Value(traceKey{}).(Trace)
	return tr, ok
}

// LogFields returns key/value pairs for the non-empty ids.
func (t Trace) LogFields() []any {
	var out []any
	if t.TraceID != "" {
		out = append(out, "trace_id", t.TraceID)
	}
	if t.RequestID != "" {
		out = append(out, "request_id", t.RequestID)
	}
	return out
}
