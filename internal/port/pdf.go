package port

import "inkference/internal/domain"

// PDFRenderer turns a parsed form into a filled summary PDF. Consumed
// as a black box by the orchestrator; any error is a soft failure.
type PDFRenderer interface {
	Render(form domain.ParsedForm) ([]byte, error)
}
