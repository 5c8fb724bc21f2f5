package port

import (
	"context"

	"inkference/internal/domain"
)

// FormParser abstracts LLM-based structured-field extraction from OCR
// text. Implementations make exactly one outbound call per invocation
// and never retry internally.
type FormParser interface {
	ParseFormText(ctx context.Context, ocrText, formTypeHint string) (*domain.ParsedForm, error)
}
