package parser

import (
	"context"

	"inkference/internal/domain"
	"inkference/internal/port"
)

// FallbackRecord returns the fixed demo record substituted when live
// extraction is disabled or has failed and degradation is configured.
// The values describe a plausible logistics shipping form so the
// review flow downstream stays exercisable.
func FallbackRecord() domain.ParsedForm {
	fields := map[string]string{
		"trackingNumber":      "DXB-2025-112358",
		"shipmentDate":        "2025-11-18",
		"senderName":          "Acme Trading LLC",
		"senderAddress":       "Warehouse 3, Dubai Industrial City, UAE",
		"senderPhone":         "+971-4-1234567",
		"receiverName":        "Global Imports Co.",
		"receiverAddress":     "Jebel Ali Free Zone, Dubai, UAE",
		"receiverPhone":       "+971-4-7654321",
		"weightKg":            "250",
		"volumeM3":            "2.5",
		"numberOfItems":       "12",
		"declaredValue":       "5000",
		"currency":            "AED",
		"specialInstructions": "Handle with care",
	}
	hints := map[string]float64{
		"trackingNumber":      0.98,
		"shipmentDate":        0.97,
		"senderName":          0.96,
		"senderAddress":       0.95,
		"senderPhone":         0.95,
		"receiverName":        0.96,
		"receiverAddress":     0.95,
		"receiverPhone":       0.94,
		"weightKg":            0.93,
		"volumeM3":            0.92,
		"numberOfItems":       0.93,
		"declaredValue":       0.9,
		"currency":            0.95,
		"specialInstructions": 0.9,
	}

	form := domain.ParsedForm{
		FormType:        "logistics_shipping",
		Fields:          make(map[string]*string, len(fields)),
		ConfidenceHints: hints,
	}
	for k, v := range fields {
		v := v
		form.Fields[k] = &v
	}
	return form
}

// MockedParser implements port.FormParser with the fixed fallback
// record. Selected by parser.mode=mocked; never a silent default.
type MockedParser struct{}

// NewMockedParser creates a MockedParser.
func NewMockedParser() *MockedParser {
	return &MockedParser{}
}

func (p *MockedParser) ParseFormText(ctx context.Context, ocrText, formTypeHint string) (*domain.ParsedForm, error) {
	form := FallbackRecord()
	return &form, nil
}

var _ port.FormParser = (*MockedParser)(nil)
