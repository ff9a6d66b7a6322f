// Package requestcontext carries per-request values (request ID, caller
// identity, client metadata) through context without leaking transport
// types into services.
package requestcontext

import (
	"context"

	"pulse/pkg/domain"
)

type contextKey string

const (
	requestIDKey  contextKey = "request_id"
	identityKey   contextKey = "identity"
	clientInfoKey contextKey = "client_info"
)

// ClientInfo captures parsed client metadata for audit enrichment.
type ClientInfo struct {
	UserAgent string
	Browser   string
	OS        string
	Mobile    bool
}

// WithRequestID stores the request correlation ID in the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestID returns the request correlation ID or "" when absent.
func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}

// WithIdentity stores the authenticated caller identity in the context.
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFrom returns the authenticated caller identity, if any.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	v, ok := ctx.Value(identityKey).(domain.Identity)
	return v, ok
}

// WithClientInfo stores parsed client metadata in the context.
func WithClientInfo(ctx context.Context, info ClientInfo) context.Context {
	return context.WithValue(ctx, clientInfoKey, info)
}

// ClientInfoFrom returns client metadata captured by the metadata middleware.
func ClientInfoFrom(ctx context.Context) ClientInfo {
	v, _ := ctx.Value(clientInfoKey).(ClientInfo)
	return v
}
