package logtrace

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type requestIdContextKey struct{}

// RequestIDHeader carries the request id on outgoing API calls.
const RequestIDHeader = "X-Request-ID"

// WithRequestId returns a context carrying id.
func WithRequestId(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIdContextKey{}, id)
}

// RequestIdFromContext extracts the request ID from the context.
// Returns an empty string if the context is nil or if no request ID is found.
func RequestIdFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	r, ok := ctx.Value(requestIdContextKey{}).(string)
	if !ok {
		return ""
	}
	return r
}

// NewRequestId returns a UUIDv7 string, falling back to a timestamp based
// id if the generator fails.
func NewRequestId() string {
	u, err := uuid.NewV7()
	if err == nil {
		return u.String()
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}
