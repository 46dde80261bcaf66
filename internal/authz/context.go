package authz

import (
	"context"
	"net/http"
)

type contextKey string

const (
	userIDKey    contextKey = "user_id"
	userEmailKey contextKey = "user_email"
)

// Identity is the authenticated caller: an account id plus the verified email
// it signed up with. The email matters for invitation matching, where an
// invite may be addressed to an email no account existed for yet.
type Identity struct {
	UserID string
	Email  string
}

// WithIdentity stores the authenticated identity on the context.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	if identity.UserID != "" {
		ctx = context.WithValue(ctx, userIDKey, identity.UserID)
	}
	if identity.Email != "" {
		ctx = context.WithValue(ctx, userEmailKey, identity.Email)
	}
	return ctx
}

// IdentityFromRequest extracts the authenticated identity from the request
// context. A missing identity is an unauthorized condition, not a crash.
func IdentityFromRequest(r *http.Request) (Identity, bool) {
	uid, ok := r.Context().Value(userIDKey).(string)
	if !ok || uid == "" {
		return Identity{}, false
	}
	email, _ := r.Context().Value(userEmailKey).(string)
	return Identity{UserID: uid, Email: email}, true
}
