package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Reserved top-level keys in a ParsedForm. Everything else is an
// extracted field.
const (
	KeyFormType        = "formType"
	KeyConfidenceHints = "confidenceHints"
)

// Suggested formType vocabulary. The model may answer with a synonym;
// the set is open.
const (
	FormTypeInvoice     = "invoice"
	FormTypeReceipt     = "receipt"
	FormTypeShipping    = "shipping_label"
	FormTypeApplication = "application_form"
	FormTypeTax         = "tax_form"
	FormTypeMedical     = "medical_form"
	FormTypeGeneric     = "generic_form"
)

// ParsedForm is the canonical structured record extracted from a form:
// a flat map from camelCase field name to string value (nil for fields
// the model could not read), plus the reserved "formType" string and
// "confidenceHints" map. Normalization guarantees no nested objects or
// arrays survive as field values.
type ParsedForm struct {
	FormType        string             `json:"-"`
	Fields          map[string]*string `json:"-"`
	ConfidenceHints map[string]float64 `json:"-"`
}

// MarshalJSON flattens the form back to its wire shape: field keys at
// the top level next to the two reserved keys.
func (f ParsedForm) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(f.Fields)+2)
	for k, v := range f.Fields {
		if v == nil {
			out[k] = nil
		} else {
			out[k] = *v
		}
	}
	out[KeyFormType] = f.FormType
	hints := f.ConfidenceHints
	if hints == nil {
		hints = map[string]float64{}
	}
	out[KeyConfidenceHints] = hints
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON. A non-string field value
// is tolerated the same way normalization tolerates it: re-encoded as
// its JSON text.
func (f *ParsedForm) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	f.Fields = make(map[string]*string, len(raw))
	f.ConfidenceHints = map[string]float64{}

	for k, v := range raw {
		switch k {
		case KeyFormType:
			if err := json.Unmarshal(v, &f.FormType); err != nil {
				return err
			}
		case KeyConfidenceHints:
			if err := json.Unmarshal(v, &f.ConfidenceHints); err != nil {
				return err
			}
		default:
			var s *string
			if err := json.Unmarshal(v, &s); err != nil {
				text := string(v)
				s = &text
			}
			f.Fields[k] = s
		}
	}
	return nil
}

// Submission ties a parsed form to its generated identifier, the raw
// OCR text it came from, and the optional stored-PDF location.
type Submission struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	Parsed    ParsedForm `db:"-" json:"parsed"`
	RawText   string     `db:"raw_text" json:"raw_text"`
	PDFKey    *string    `db:"pdf_key" json:"pdf_key,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}
