package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/clinicapp/accessgate/internal/access/domain"
	"github.com/clinicapp/accessgate/internal/errors"
)

type syncUseCase struct {
	profiles    ProfileRepository
	claims      ClaimsStore
	concurrency int
	logger      *slog.Logger
}

// NewSyncUseCase creates a SyncUseCase. concurrency bounds the number of in-flight claim
// writes; values below 2 write sequentially.
func NewSyncUseCase(
	profiles ProfileRepository,
	claims ClaimsStore,
	concurrency int,
	logger *slog.Logger,
) SyncUseCase {
	return &syncUseCase{
		profiles:    profiles,
		claims:      claims,
		concurrency: concurrency,
		logger:      logger,
	}
}

func (s *syncUseCase) Sync(ctx context.Context) (*domain.SyncReport, error) {
	profiles, err := s.profiles.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user profiles")
	}

	details := make([]domain.SyncDetail, len(profiles))
	for i, profile := range profiles {
		details[i] = domain.SyncDetail{
			Identifier: profile.Identifier(),
			Role:       domain.NormalizeRole(profile.RawRole(), domain.SyncRoles()),
		}
	}

	if s.concurrency > 1 {
		err = s.writeConcurrently(ctx, profiles, details)
	} else {
		err = s.writeSequentially(ctx, profiles, details)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("user roles synchronized", slog.Int("count", len(profiles)))

	return &domain.SyncReport{
		Message:    fmt.Sprintf("Synchronized %d user roles", len(profiles)),
		ValidRoles: domain.SyncRoles(),
		Details:    details,
	}, nil
}

func (s *syncUseCase) write(ctx context.Context, profile *domain.Profile, role domain.Role) error {
	if err := s.claims.SetRoleClaim(ctx, profile.ID, role); err != nil {
		return fmt.Errorf("failed to set role claim for %s: %w", profile.Identifier(), err)
	}
	return nil
}

func (s *syncUseCase) writeSequentially(
	ctx context.Context,
	profiles []*domain.Profile,
	details []domain.SyncDetail,
) error {
	for i, profile := range profiles {
		if err := s.write(ctx, profile, details[i].Role); err != nil {
			return err
		}
	}
	return nil
}

// writeConcurrently stops scheduling writes after the first failure and cancels the ones
// still waiting. Details keep profile order regardless of completion order.
func (s *syncUseCase) writeConcurrently(
	ctx context.Context,
	profiles []*domain.Profile,
	details []domain.SyncDetail,
) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, profile := range profiles {
		if gctx.Err() != nil {
			break
		}
		role := details[i].Role
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return s.write(gctx, profile, role)
		})
	}

	return g.Wait()
}
