// Package utils provides general-purpose helpers used across the site
// backend: typed context keys, JSON response writing, the outbound HTTP
// client, JWT handling, HMAC signing and short ID generation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-site-keeper/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// IdentityCtxKey is the key under which the authenticated caller is stored.
// Anonymous requests carry no value.
var IdentityCtxKey = contextKey("identity")

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *models.Identity) context.Context {
	return context.WithValue(ctx, IdentityCtxKey, id)
}

// GetIdentityFromContext retrieves the caller identity from ctx.
// It returns nil for anonymous requests.
//
// Example usage:
//
//	id := utils.GetIdentityFromContext(ctx)
//	if id == nil {
//	    // anonymous caller
//	}
func GetIdentityFromContext(ctx context.Context) *models.Identity {
	id, ok := ctx.Value(IdentityCtxKey).(*models.Identity)
	if !ok {
		return nil
	}
	return id
}
