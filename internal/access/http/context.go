// Package http provides the gin middleware and handlers of the access module: the page
// authorization gate, the admin bearer guard, per-IP rate limiting and the sync endpoint.
package http

import (
	"context"

	"github.com/clinicapp/accessgate/internal/access/domain"
)

// claimsKey is a context key type for storing the caller's identity claims.
type claimsKey struct{}

// WithClaims stores the caller's claims in the context.
func WithClaims(ctx context.Context, claims *domain.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetClaims retrieves the caller's claims. Returns (nil, false) on exempt paths and
// before the gate has run.
func GetClaims(ctx context.Context) (*domain.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*domain.Claims)
	return claims, ok
}
