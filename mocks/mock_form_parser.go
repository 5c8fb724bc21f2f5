package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"inkference/internal/domain"
)

// MockFormParser is a mock implementation of port.FormParser.
type MockFormParser struct {
	mock.Mock
}

func (m *MockFormParser) ParseFormText(ctx context.Context, ocrText, formTypeHint string) (*domain.ParsedForm, error) {
	args := m.Called(ctx, ocrText, formTypeHint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParsedForm), args.Error(1)
}
