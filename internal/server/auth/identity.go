// Package auth is the authentication and authorization core of gophtasks:
// password hashing, the HS256 token codec, credential authentication,
// token issuance and the access guard in front of protected endpoints.
package auth

import "context"

// Identity is the caller as proven by a valid access token.
type Identity struct {
	SubjectName string
	SubjectID   int64
}

type ctxKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IdentityFromContext returns the identity stored by WithIdentity.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
