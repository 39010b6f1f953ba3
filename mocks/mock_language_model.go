package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"itinera/internal/port"
)

// MockLanguageModel is a mock implementation of port.LanguageModel.
type MockLanguageModel struct {
	mock.Mock
}

func (m *MockLanguageModel) Complete(ctx context.Context, req port.CompletionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// MockModelCatalog is a mock implementation of port.ModelCatalog.
type MockModelCatalog struct {
	mock.Mock
}

func (m *MockModelCatalog) Model(id string) port.LanguageModel {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(port.LanguageModel)
}
