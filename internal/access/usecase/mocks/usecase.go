// Package mocks provides mock implementations of the access use cases for handler and command tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/clinicapp/accessgate/internal/access/domain"
)

// MockGateUseCase is a mock implementation of GateUseCase.
type MockGateUseCase struct {
	mock.Mock
}

// Evaluate mocks the Evaluate method of GateUseCase.
func (m *MockGateUseCase) Evaluate(ctx context.Context, path, token string) domain.Decision {
	args := m.Called(ctx, path, token)
	return args.Get(0).(domain.Decision)
}

// MockSyncUseCase is a mock implementation of SyncUseCase.
type MockSyncUseCase struct {
	mock.Mock
}

// Sync mocks the Sync method of SyncUseCase.
func (m *MockSyncUseCase) Sync(ctx context.Context) (*domain.SyncReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncReport), args.Error(1)
}

// MockTokenIssueUseCase is a mock implementation of TokenIssueUseCase.
type MockTokenIssueUseCase struct {
	mock.Mock
}

// Issue mocks the Issue method of TokenIssueUseCase.
func (m *MockTokenIssueUseCase) Issue(ctx context.Context, subjectID string) (*domain.IssuedToken, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IssuedToken), args.Error(1)
}
