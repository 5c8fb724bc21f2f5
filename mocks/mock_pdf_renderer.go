package mocks

import (
	"github.com/stretchr/testify/mock"

	"inkference/internal/domain"
)

// MockPDFRenderer is a mock implementation of port.PDFRenderer.
type MockPDFRenderer struct {
	mock.Mock
}

func (m *MockPDFRenderer) Render(form domain.ParsedForm) ([]byte, error) {
	args := m.Called(form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
