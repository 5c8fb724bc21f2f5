package ocr

import (
	"fmt"

	"inkference/internal/config"
	"inkference/internal/ocr/tesseract"
	"inkference/internal/ocr/vision"
	"inkference/internal/port"
)

// NewExtractor creates the configured OCR backend.
func NewExtractor(cfg *config.OCRConfig) (port.TextExtractor, error) {
	switch cfg.Provider {
	case "tesseract":
		return tesseract.NewExtractor(cfg), nil
	case "vision":
		return vision.NewExtractor(cfg), nil
	default:
		return nil, fmt.Errorf("unknown ocr provider: %s", cfg.Provider)
	}
}
