package logging

import (
	"context"
)

// contextKey is a private type so context values set here cannot collide
// with keys from other packages.
type contextKey string

// Context keys for fields the *Context logging methods pick up.
const (
	// RequestIDKey carries the per-request correlation ID.
	RequestIDKey contextKey = "request_id"
	// ProviderKey carries the upstream provider serving the request.
	ProviderKey contextKey = "provider"
	// ModelKey carries the model name resolved for a chat request.
	ModelKey contextKey = "model"
	// SessionKey carries the chat session ID, when one exists.
	SessionKey contextKey = "session_id"
)

// WithRequestID returns a context carrying the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID returns the request ID from ctx, or "".
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(RequestIDKey).(string); ok {
		return v
	}
	return ""
}

// WithProvider returns a context carrying the provider name.
func WithProvider(ctx context.Context, provider string) context.Context {
	return context.WithValue(ctx, ProviderKey, provider)
}

// GetProvider returns the provider name from ctx, or "".
func GetProvider(ctx context.Context) string {
	if v, ok := ctx.Value(ProviderKey).(string); ok {
		return v
	}
	return ""
}

// WithModel returns a context carrying the model name.
func WithModel(ctx context.Context, model string) context.Context {
	return context.WithValue(ctx, ModelKey, model)
}

// GetModel returns the model name from ctx, or "".
func GetModel(ctx context.Context) string {
	if v, ok := ctx.Value(ModelKey).(string); ok {
		return v
	}
	return ""
}

// WithSession returns a context carrying the session ID.
func WithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionKey, sessionID)
}

// GetSession returns the session ID from ctx, or "".
func GetSession(ctx context.Context) string {
	if v, ok := ctx.Value(SessionKey).(string); ok {
		return v
	}
	return ""
}

// extractContextFields collects the known context values as alternating
// key-value pairs, skipping absent ones.
func extractContextFields(ctx context.Context) []any {
	fields := make([]any, 0, 8)

	if v := GetRequestID(ctx); v != "" {
		fields = append(fields, string(RequestIDKey), v)
	}
	if v := GetProvider(ctx); v != "" {
		fields = append(fields, string(ProviderKey), v)
	}
	if v := GetModel(ctx); v != "" {
		fields = append(fields, string(ModelKey), v)
	}
	if v := GetSession(ctx); v != "" {
		fields = append(fields, string(SessionKey), v)
	}

	return fields
}
