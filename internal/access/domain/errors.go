package domain

import (
	"github.com/clinicapp/accessgate/internal/errors"
)

// Access control errors.
var (
	// ErrInvalidToken indicates a session token that could not be decoded or verified.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid session token")

	// ErrIdentityNotFound indicates the identity provider has no identity for a subject.
	ErrIdentityNotFound = errors.Wrap(errors.ErrNotFound, "identity not found")

	// ErrInvalidMatrix indicates a route matrix configuration that fails validation.
	ErrInvalidMatrix = errors.Wrap(errors.ErrInvalidInput, "invalid route matrix")

	// ErrClaimsStoreUnavailable indicates the claims store failed on the provider side.
	ErrClaimsStoreUnavailable = errors.Wrap(errors.ErrUnavailable, "claims store unavailable")
)
