package trace

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"
)

type ctxKey string

const ctxKeyRequestID ctxKey = "request_id"

// GenerateID creates a random id for request tracing.
func GenerateID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		// Timestamp fallback keeps tracing usable when rand fails.
		return time.Now().UTC().Format("20060102T150405.000000000")
	}
	return hex.EncodeToString(b[:])
}

// WithRequestID stores the request id in the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, requestID)
}

// RequestIDFromContext returns the stored request id, or "" when absent.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(ctxKeyRequestID).(string)
	return v
}
