package pdf

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkference/internal/domain"
)

func strptr(s string) *string { return &s }

func decodeSpec(t *testing.T, raw []byte) createSpec {
	t.Helper()
	var spec createSpec
	require.NoError(t, json.Unmarshal(raw, &spec))
	return spec
}

func TestBuildCreateSpec_Layout(t *testing.T) {
	form := domain.ParsedForm{
		FormType: "invoice",
		Fields: map[string]*string{
			"vendorName":    strptr("Acme Corp"),
			"invoiceNumber": strptr("INV-001"),
		},
		ConfidenceHints: map[string]float64{
			"vendorName":    0.92,
			"invoiceNumber": 0.6,
		},
	}

	raw, err := buildCreateSpec(form)
	require.NoError(t, err)
	spec := decodeSpec(t, raw)

	assert.Equal(t, "A4", spec.Paper)
	require.Contains(t, spec.Pages, "1")
	boxes := spec.Pages["1"].Content.Text
	require.Len(t, boxes, 4)

	assert.Equal(t, "Inkference AI - Extracted Form", boxes[0].Value)
	assert.Equal(t, "Helvetica-Bold", boxes[0].Font.Name)
	assert.Equal(t, "Form type: invoice", boxes[1].Value)

	// Fields come out sorted by name, each with its confidence.
	assert.Equal(t, "Invoice Number: INV-001 (confidence 60%)", boxes[2].Value)
	assert.Equal(t, "Vendor Name: Acme Corp (confidence 92%)", boxes[3].Value)

	// Lines descend the page.
	assert.Greater(t, boxes[2].Position[1], boxes[3].Position[1])
}

func TestBuildCreateSpec_NilValueAndNoHint(t *testing.T) {
	form := domain.ParsedForm{
		FormType: "receipt",
		Fields:   map[string]*string{"total": nil},
	}

	raw, err := buildCreateSpec(form)
	require.NoError(t, err)
	spec := decodeSpec(t, raw)

	boxes := spec.Pages["1"].Content.Text
	require.Len(t, boxes, 3)
	assert.Equal(t, "Total: N/A", boxes[2].Value)
}

func TestBuildCreateSpec_NoFields(t *testing.T) {
	raw, err := buildCreateSpec(domain.ParsedForm{FormType: "generic_form"})
	require.NoError(t, err)
	spec := decodeSpec(t, raw)

	boxes := spec.Pages["1"].Content.Text
	require.Len(t, boxes, 2)
	assert.Equal(t, "Form type: generic_form", boxes[1].Value)
}
