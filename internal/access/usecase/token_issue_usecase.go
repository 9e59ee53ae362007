package usecase

import (
	"context"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/clinicapp/accessgate/internal/access/domain"
	"github.com/clinicapp/accessgate/internal/access/service"
	"github.com/clinicapp/accessgate/internal/errors"
	appvalidation "github.com/clinicapp/accessgate/internal/validation"
)

type tokenIssueUseCase struct {
	claims ClaimsReader
	signer service.TokenSigner
	ttl    time.Duration
}

// NewTokenIssueUseCase creates a TokenIssueUseCase embedding the stored role claim in HS256 tokens.
func NewTokenIssueUseCase(claims ClaimsReader, signer service.TokenSigner, ttl time.Duration) TokenIssueUseCase {
	return &tokenIssueUseCase{
		claims: claims,
		signer: signer,
		ttl:    ttl,
	}
}

// Issue signs a token for subjectID. A subject without a stored claim gets RoleAll.
func (t *tokenIssueUseCase) Issue(ctx context.Context, subjectID string) (*domain.IssuedToken, error) {
	err := validation.Validate(subjectID,
		validation.Required.Error("subject is required"),
		appvalidation.NotBlank,
		appvalidation.NoWhitespace,
	)
	if err != nil {
		return nil, appvalidation.WrapValidationError(err)
	}

	role, err := t.claims.GetRoleClaim(ctx, subjectID)
	if err != nil {
		if !errors.Is(err, domain.ErrIdentityNotFound) {
			return nil, err
		}
		role = domain.RoleAll
	}
	role = domain.NormalizeRole(string(role), domain.GateRoles())

	now := time.Now().UTC()
	token, err := t.signer.Sign(subjectID, role, now, t.ttl)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign session token")
	}

	return &domain.IssuedToken{
		Token:     token,
		Subject:   subjectID,
		Role:      role,
		ExpiresAt: now.Add(t.ttl),
	}, nil
}
