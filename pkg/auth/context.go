package auth

import "context"

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller attached to the request context. The
// role is re-read from the user store on every request, not trusted from the
// token, so a promotion to owner takes effect immediately.
type Identity struct {
	ID   string
	Role string
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
