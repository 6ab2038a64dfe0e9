// Package ctxkeys holds the shared context keys for the API layer. It is a
// leaf package so api and api/middleware can both import it without cycles.
package ctxkeys

import "context"

// Key is the named type for all API context keys. context.Value compares
// type and value, so a named type cannot collide with plain string keys
// from other packages.
type Key string

// TokenID is the context key for the jti of the bearer token that
// authenticated the request. Injected by the auth middleware, read by the
// audit middleware.
const TokenID Key = "token_id"

// WithValue adds a ctxkeys.Key value to the context.
func WithValue(ctx context.Context, key Key, value string) context.Context {
	return context.WithValue(ctx, key, value)
}
