package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// ContextKey is the type for values this package stores in a context.
type ContextKey string

const (
	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the number of bytes used to generate the trace ID
	TraceIDLength = 16 // 32 hex characters
)

// SetTraceID adds a trace ID to the context. When the context already carries
// a valid OpenTelemetry span, its trace ID is reused so logs and spans line up.
func SetTraceID(ctx context.Context) context.Context {
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		return context.WithValue(ctx, TraceIDKey, sc.TraceID().String())
	}
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// generateTraceID returns 32 hex characters from crypto/rand, falling back to
// a time-derived value if the random source fails.
func generateTraceID() string {
	b := make([]byte, TraceIDLength)
	if n, err := rand.Read(b); err != nil || n != TraceIDLength {
		return generateFallbackTraceID()
	}
	return hex.EncodeToString(b)
}

func generateFallbackTraceID() string {
	fallbackID := make([]byte, TraceIDLength)
	now := time.Now()
	binary.BigEndian.PutUint64(fallbackID[:8], uint64(now.UnixNano()))
	binary.BigEndian.PutUint32(fallbackID[8:12], uint32(now.Nanosecond()))
	binary.BigEndian.PutUint32(fallbackID[12:16], uint32(now.Unix()))
	return hex.EncodeToString(fallbackID)
}
