package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"itinera/internal/domain"
	"itinera/internal/service"
)

// MockParseJobService is a mock implementation of service.ParseJobService.
type MockParseJobService struct {
	mock.Mock
}

func (m *MockParseJobService) Trigger(ctx context.Context, input *service.TriggerInput) (*domain.ParseJob, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParseJob), args.Error(1)
}

func (m *MockParseJobService) GetStatus(ctx context.Context, jobID uuid.UUID) (*domain.ParseJob, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParseJob), args.Error(1)
}

func (m *MockParseJobService) ListActive(ctx context.Context, userID uuid.UUID) ([]domain.ParseJob, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ParseJob), args.Error(1)
}

func (m *MockParseJobService) ListResults(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.ParsedDocument, int, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ParsedDocument), args.Int(1), args.Error(2)
}

func (m *MockParseJobService) GetResult(ctx context.Context, userID uuid.UUID, driveFileID string) (*domain.ParsedDocument, error) {
	args := m.Called(ctx, userID, driveFileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParsedDocument), args.Error(1)
}

func (m *MockParseJobService) Run(ctx context.Context, job *domain.ParseJob, maxAttempts int) {
	m.Called(ctx, job, maxAttempts)
}
