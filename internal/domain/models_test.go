package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkference/internal/domain"
)

func strptr(s string) *string { return &s }

func TestParsedForm_RoundTrip(t *testing.T) {
	original := domain.ParsedForm{
		FormType: "invoice",
		Fields: map[string]*string{
			"invoiceNumber": strptr("INV-004128"),
			"totalAmount":   strptr("1274.50"),
			"dueDate":       nil,
		},
		ConfidenceHints: map[string]float64{
			"invoiceNumber": 0.86,
			"totalAmount":   0.875,
		},
	}

	encoded, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded domain.ParsedForm
	require.NoError(t, json.Unmarshal(encoded, &decoded))

	assert.Equal(t, original.FormType, decoded.FormType)
	assert.Equal(t, original.ConfidenceHints, decoded.ConfidenceHints)
	require.Len(t, decoded.Fields, len(original.Fields))
	assert.Equal(t, "INV-004128", *decoded.Fields["invoiceNumber"])
	assert.Equal(t, "1274.50", *decoded.Fields["totalAmount"])
	require.Contains(t, decoded.Fields, "dueDate")
	assert.Nil(t, decoded.Fields["dueDate"])
}

func TestParsedForm_MarshalFlattensReservedKeys(t *testing.T) {
	form := domain.ParsedForm{
		FormType:        "receipt",
		Fields:          map[string]*string{"vendor": strptr("Acme")},
		ConfidenceHints: map[string]float64{"vendor": 0.9},
	}

	encoded, err := json.Marshal(form)
	require.NoError(t, err)

	var wire map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(encoded, &wire))
	assert.Contains(t, wire, "formType")
	assert.Contains(t, wire, "confidenceHints")
	assert.Contains(t, wire, "vendor")
	assert.Len(t, wire, 3)
}

func TestParsedForm_MarshalEmptyHintsAsObject(t *testing.T) {
	form := domain.ParsedForm{FormType: "generic_form"}

	encoded, err := json.Marshal(form)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"confidenceHints":{}`)
}
