package usecase

import (
	"context"
	"log/slog"

	"github.com/clinicapp/accessgate/internal/access/domain"
	"github.com/clinicapp/accessgate/internal/access/service"
)

type gateUseCase struct {
	matrix     *domain.RouteMatrix
	exemptions domain.Exemptions
	decoder    service.TokenDecoder
	logger     *slog.Logger
}

// NewGateUseCase creates a GateUseCase over an immutable route matrix.
func NewGateUseCase(
	matrix *domain.RouteMatrix,
	exemptions domain.Exemptions,
	decoder service.TokenDecoder,
	logger *slog.Logger,
) GateUseCase {
	return &gateUseCase{
		matrix:     matrix,
		exemptions: exemptions,
		decoder:    decoder,
		logger:     logger,
	}
}

func unauthenticated(path string) domain.Decision {
	return domain.Decision{
		Outcome:    domain.OutcomeUnauthenticated,
		RedirectTo: domain.LoginRedirect(path),
	}
}

// Evaluate walks exemption, token presence, decode, role normalization and matrix lookup in
// that order over the canonical form of path. A panic anywhere in the evaluation fails closed.
func (g *gateUseCase) Evaluate(ctx context.Context, path, token string) (decision domain.Decision) {
	path = domain.CanonicalPath(path)

	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("gate evaluation panicked", slog.String("path", path), slog.Any("panic", r))
			decision = unauthenticated(path)
		}
		g.logger.Debug("gate decision",
			slog.String("path", path),
			slog.String("outcome", string(decision.Outcome)),
		)
	}()

	if g.exemptions.IsExempt(path) {
		return domain.Decision{Outcome: domain.OutcomeExempt}
	}

	if token == "" {
		return unauthenticated(path)
	}

	payload, err := g.decoder.Decode(ctx, token)
	if err != nil {
		g.logger.Debug("session token rejected", slog.String("path", path), slog.Any("error", err))
		return unauthenticated(path)
	}

	claims := domain.ClaimsFromMap(payload)

	rule, ok := g.matrix.Match(path)
	if !ok {
		return domain.Decision{Outcome: domain.OutcomeAuthorized, Claims: &claims}
	}

	if rule.Allows(claims.Role) {
		return domain.Decision{Outcome: domain.OutcomeAuthorized, Claims: &claims, Rule: &rule}
	}

	return domain.Decision{
		Outcome:    domain.OutcomeForbidden,
		Claims:     &claims,
		Rule:       &rule,
		RedirectTo: domain.HomePath,
	}
}
