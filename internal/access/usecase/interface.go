// Package usecase implements the access control business logic: the authorization gate
// evaluated on every page request, the claims synchronizer that mirrors profile roles into
// identity claims, and the development token issuer.
package usecase

import (
	"context"

	"github.com/clinicapp/accessgate/internal/access/domain"
)

// ProfileRepository reads the user directory.
type ProfileRepository interface {
	// ListAll returns every user profile in a stable order.
	ListAll(ctx context.Context) ([]*domain.Profile, error)
}

// ClaimsStore persists role claims on identities.
type ClaimsStore interface {
	// SetRoleClaim overwrites the role claim of subjectID. Returns domain.ErrIdentityNotFound
	// when the identity does not exist.
	SetRoleClaim(ctx context.Context, subjectID string, role domain.Role) error
}

// ClaimsReader reads role claims back. Only the database claims store implements it.
type ClaimsReader interface {
	// GetRoleClaim returns the stored role of subjectID, or domain.ErrIdentityNotFound.
	GetRoleClaim(ctx context.Context, subjectID string) (domain.Role, error)
}

// GateUseCase decides whether a page request may proceed.
type GateUseCase interface {
	// Evaluate runs the gate for path with the raw session token (empty when absent). It never
	// fails: any internal error resolves to an unauthenticated decision.
	Evaluate(ctx context.Context, path, token string) domain.Decision
}

// SyncUseCase synchronizes profile roles into identity claims.
type SyncUseCase interface {
	// Sync writes the normalized role of every profile and reports what was written. The first
	// failed write aborts the run; writes already made are kept.
	Sync(ctx context.Context) (*domain.SyncReport, error)
}

// TokenIssueUseCase mints development session tokens.
type TokenIssueUseCase interface {
	Issue(ctx context.Context, subjectID string) (*domain.IssuedToken, error)
}
