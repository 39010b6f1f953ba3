package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"itinera/internal/domain"
)

// MockParseJobRepo is a mock implementation of port.ParseJobRepository.
type MockParseJobRepo struct {
	mock.Mock
}

func (m *MockParseJobRepo) Create(ctx context.Context, job *domain.ParseJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockParseJobRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ParseJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParseJob), args.Error(1)
}

func (m *MockParseJobRepo) UpdateStatus(ctx context.Context, job *domain.ParseJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockParseJobRepo) ClaimPending(ctx context.Context, limit int) ([]domain.ParseJob, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ParseJob), args.Error(1)
}

func (m *MockParseJobRepo) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]domain.ParseJob, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ParseJob), args.Error(1)
}
