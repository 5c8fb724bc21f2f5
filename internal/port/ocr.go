package port

import "context"

// TextExtractor abstracts OCR: raw image bytes in, best-effort plain
// text out. Implementations hold no per-call state.
type TextExtractor interface {
	ExtractText(ctx context.Context, image []byte, contentType string) (string, error)
}
