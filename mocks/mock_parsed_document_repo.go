package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"itinera/internal/domain"
)

// MockParsedDocumentRepo is a mock implementation of port.ParsedDocumentRepository.
type MockParsedDocumentRepo struct {
	mock.Mock
}

func (m *MockParsedDocumentRepo) Save(ctx context.Context, doc *domain.ParsedDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockParsedDocumentRepo) GetByDriveFileID(ctx context.Context, userID uuid.UUID, driveFileID string) (*domain.ParsedDocument, error) {
	args := m.Called(ctx, userID, driveFileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParsedDocument), args.Error(1)
}

func (m *MockParsedDocumentRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.ParsedDocument, int, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ParsedDocument), args.Int(1), args.Error(2)
}
