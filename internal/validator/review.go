package validator

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"inkference/internal/domain"
)

// LowConfidenceThreshold flags fields the model was unsure about.
const LowConfidenceThreshold = 0.7

// NeutralConfidence is reported when a form carries no confidence
// hints at all; it avoids both a divide-by-zero and implying false
// certainty or false alarm.
const NeutralConfidence = 0.85

// Review is the derived, viewer-side validation summary of a
// ParsedForm. It is recomputed on demand and never persisted.
type Review struct {
	AverageConfidence float64  `json:"average_confidence"`
	Issues            []string `json:"issues"`
}

// Summarize computes the validation summary for a parsed form: the
// average confidence across all hints, one issue per field with a hint
// strictly below the threshold, and one issue per field whose value is
// absent. Pure; calling it twice yields the same result.
func Summarize(form domain.ParsedForm) Review {
	avg := NeutralConfidence
	if len(form.ConfidenceHints) > 0 {
		sum := 0.0
		for _, c := range form.ConfidenceHints {
			sum += c
		}
		avg = sum / float64(len(form.ConfidenceHints))
	}

	names := make([]string, 0, len(form.Fields))
	for name := range form.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var issues []string
	for _, name := range names {
		label := FieldLabel(name)
		if conf, ok := form.ConfidenceHints[name]; ok && conf < LowConfidenceThreshold {
			issues = append(issues, fmt.Sprintf("Low confidence on %s (%.0f%%)", label, conf*100))
		}
		if missing(form.Fields[name]) {
			issues = append(issues, fmt.Sprintf("Missing %s field", label))
		}
	}

	return Review{AverageConfidence: avg, Issues: issues}
}

// missing reports whether a field value is explicit absence or one of
// the literal missing markers.
func missing(v *string) bool {
	if v == nil {
		return true
	}
	switch *v {
	case "", "null", "N/A":
		return true
	}
	return false
}

// FieldLabel turns a camelCase identifier into a display label:
// space-separated words with the first letter capitalized, e.g.
// "invoiceNumber" -> "Invoice Number".
func FieldLabel(name string) string {
	var b strings.Builder
	for i, r := range name {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
