package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"itinera/internal/parser"
)

// MockPipeline is a mock implementation of service.DocumentPipeline.
type MockPipeline struct {
	mock.Mock
}

func (m *MockPipeline) ParseDocument(ctx context.Context, rawText, modelID string) parser.State {
	args := m.Called(ctx, rawText, modelID)
	return args.Get(0).(parser.State)
}
