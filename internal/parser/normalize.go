package parser

import (
	"encoding/json"
	"fmt"
	"strconv"

	"inkference/internal/domain"
)

// NormalizeForm turns the raw decoded model object into the canonical
// ParsedForm shape:
//   - every non-reserved value becomes a string or nil; numbers and
//     booleans are stringified, objects and arrays re-encoded as their
//     JSON text
//   - confidenceHints values are coerced to float64 and clamped to
//     [0,1]; non-numeric entries are dropped
//   - a missing or non-string formType defaults to "generic_form"
func NormalizeForm(raw map[string]interface{}) domain.ParsedForm {
	form := domain.ParsedForm{
		FormType:        domain.FormTypeGeneric,
		Fields:          make(map[string]*string, len(raw)),
		ConfidenceHints: map[string]float64{},
	}

	for k, v := range raw {
		switch k {
		case domain.KeyFormType:
			if s, ok := v.(string); ok && s != "" {
				form.FormType = s
			}
		case domain.KeyConfidenceHints:
			hintMap, ok := v.(map[string]interface{})
			if !ok {
				continue
			}
			for field, hv := range hintMap {
				if c, ok := toFloat(hv); ok {
					form.ConfidenceHints[field] = clamp01(c)
				}
			}
		default:
			form.Fields[k] = flattenValue(v)
		}
	}
	return form
}

func flattenValue(v interface{}) *string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return &t
	case float64:
		s := strconv.FormatFloat(t, 'f', -1, 64)
		return &s
	case bool:
		s := strconv.FormatBool(t)
		return &s
	default:
		// Objects and arrays should not appear per the prompt rules,
		// but the model occasionally nests anyway.
		encoded, err := json.Marshal(t)
		if err != nil {
			s := fmt.Sprintf("%v", t)
			return &s
		}
		s := string(encoded)
		return &s
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
