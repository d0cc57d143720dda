package shared

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is the type for values this package stores in a request context.
type ContextKey string

const (
	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// TraceIDHeader carries a caller-supplied trace ID in, and the effective
	// trace ID out.
	TraceIDHeader = "X-Trace-ID"

	// TraceIDLength is the length of a generated trace ID in hex characters
	TraceIDLength = 32
)

// Caller-supplied trace IDs are echoed into logs and responses, so only a
// conservative alphabet is accepted.
var validTraceID = regexp.MustCompile(`^[A-Za-z0-9._-]{8,64}$`)

// SetTraceID adds a freshly generated trace ID to the context.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// WithTraceID adds the given trace ID to the context. An empty or malformed
// ID is replaced by a generated one.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	if !validTraceID.MatchString(traceID) {
		return SetTraceID(ctx)
	}
	return context.WithValue(ctx, TraceIDKey, traceID)
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

// generateTraceID returns a random 32-character hex string.
func generateTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
