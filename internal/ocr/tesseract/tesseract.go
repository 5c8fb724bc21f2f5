package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	"inkference/internal/config"
	"inkference/internal/port"
)

// Runner lets tests stub the external tesseract command.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb
	err := cmd.Run()
	return out.Bytes(), errb.Bytes(), err
}

// Extractor implements port.TextExtractor by shelling out to the
// tesseract binary: image to a temp file, text on stdout.
type Extractor struct {
	binary   string
	language string
	psm      int
	timeout  time.Duration
	runner   Runner
}

// NewExtractor creates a tesseract-backed text extractor.
func NewExtractor(cfg *config.OCRConfig) *Extractor {
	binary := cfg.Binary
	if binary == "" {
		binary = "tesseract"
	}
	language := cfg.Language
	if language == "" {
		language = "eng"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Extractor{
		binary:   binary,
		language: language,
		psm:      cfg.PSM,
		timeout:  timeout,
		runner:   execRunner{},
	}
}

// NewExtractorWithRunner creates an extractor with a stubbed command runner (for testing).
func NewExtractorWithRunner(cfg *config.OCRConfig, runner Runner) *Extractor {
	e := NewExtractor(cfg)
	e.runner = runner
	return e
}

func (e *Extractor) ExtractText(ctx context.Context, image []byte, contentType string) (string, error) {
	tmp, err := os.CreateTemp("", "inkference-ocr-*"+extensionFor(contentType))
	if err != nil {
		return "", fmt.Errorf("creating temp image: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(image); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("writing temp image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing temp image: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	args := []string{tmp.Name(), "stdout", "-l", e.language}
	if e.psm > 0 {
		args = append(args, "--psm", strconv.Itoa(e.psm))
	}

	out, errb, err := e.runner.Run(ctx, e.binary, args...)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w (stderr: %s)", err, bytes.TrimSpace(errb))
	}
	return string(out), nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	default:
		return ".img"
	}
}

var _ port.TextExtractor = (*Extractor)(nil)
