package usecase

import (
	"context"
	"time"

	"github.com/clinicapp/accessgate/internal/access/domain"
	"github.com/clinicapp/accessgate/internal/metrics"
)

const metricsDomain = "access"

// gateUseCaseWithMetrics decorates GateUseCase with metrics instrumentation.
type gateUseCaseWithMetrics struct {
	next    GateUseCase
	metrics metrics.BusinessMetrics
}

// NewGateUseCaseWithMetrics wraps a GateUseCase, recording each decision with its outcome as status.
func NewGateUseCaseWithMetrics(useCase GateUseCase, m metrics.BusinessMetrics) GateUseCase {
	return &gateUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (g *gateUseCaseWithMetrics) Evaluate(ctx context.Context, path, token string) domain.Decision {
	start := time.Now()
	decision := g.next.Evaluate(ctx, path, token)
	metrics.Observe(ctx, g.metrics, metricsDomain, "gate_decision", start, string(decision.Outcome))

	return decision
}

// syncUseCaseWithMetrics decorates SyncUseCase with metrics instrumentation.
type syncUseCaseWithMetrics struct {
	next    SyncUseCase
	metrics metrics.BusinessMetrics
}

// NewSyncUseCaseWithMetrics wraps a SyncUseCase with metrics recording.
func NewSyncUseCaseWithMetrics(useCase SyncUseCase, m metrics.BusinessMetrics) SyncUseCase {
	return &syncUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Sync records metrics for claims synchronization runs.
func (s *syncUseCaseWithMetrics) Sync(ctx context.Context) (*domain.SyncReport, error) {
	start := time.Now()
	report, err := s.next.Sync(ctx)
	metrics.Observe(ctx, s.metrics, metricsDomain, "sync_roles", start, metrics.StatusFromError(err))

	return report, err
}

// tokenIssueUseCaseWithMetrics decorates TokenIssueUseCase with metrics instrumentation.
type tokenIssueUseCaseWithMetrics struct {
	next    TokenIssueUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenIssueUseCaseWithMetrics wraps a TokenIssueUseCase with metrics recording.
func NewTokenIssueUseCaseWithMetrics(useCase TokenIssueUseCase, m metrics.BusinessMetrics) TokenIssueUseCase {
	return &tokenIssueUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (t *tokenIssueUseCaseWithMetrics) Issue(ctx context.Context, subjectID string) (*domain.IssuedToken, error) {
	start := time.Now()
	token, err := t.next.Issue(ctx, subjectID)
	metrics.Observe(ctx, t.metrics, metricsDomain, "token_issue", start, metrics.StatusFromError(err))

	return token, err
}
