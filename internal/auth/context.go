package auth

import "context"

type contextKey struct{}

// Identity is the authenticated caller attached to a request context.
// Handlers never consult ambient state; everything flows from here.
type Identity struct {
	UserID    int64
	SessionID int64
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}

// UserID returns the authenticated user id, or 0 when the context
// carries no identity.
func UserID(ctx context.Context) int64 {
	id, ok := FromContext(ctx)
	if !ok {
		return 0
	}
	return id.UserID
}
