package auth

import (
	"context"

	"github.com/google/uuid"
)

// Identity is the authenticated principal attached to a request context by
// the auth middleware. Services never reach into session storage themselves.
type Identity struct {
	UserID   uuid.UUID
	Email    string
	FullName string
	AccessID string
}

type identityKey struct{}

// ContextWithIdentity attaches the identity to the context.
func ContextWithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext returns the identity carried by the context, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(Identity)
	return identity, ok
}
