// Package trace carries a per-query correlation ID through context so every
// log line written while serving one search or activation can be grouped.
package trace

import (
	"context"

	"github.com/google/uuid"
)

type traceKey struct{}

// GenerateID returns a new query trace ID ("q_" + 32 hex chars).
func GenerateID() string {
	id := uuid.New()
	const hex = "0123456789abcdef"
	buf := make([]byte, 0, 34)
	buf = append(buf, 'q', '_')
	for _, b := range id {
		buf = append(buf, hex[b>>4], hex[b&0x0f])
	}
	return string(buf)
}

// WithTraceID returns a child context carrying id.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceKey{}, id)
}

// New returns a child context carrying a freshly generated ID.
func New(ctx context.Context) context.Context {
	return WithTraceID(ctx, GenerateID())
}

// FromContext extracts the trace ID from ctx, returning "" if absent.
func FromContext(ctx context.Context) string {
	if v, ok := ctx.Value(traceKey{}).(string); ok {
		return v
	}
	return ""
}
