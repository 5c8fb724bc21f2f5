package service

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"inkference/internal/config"
	"inkference/internal/domain"
	"inkference/internal/parser"
	"inkference/internal/port"
)

// SubmitInput is the DTO for one submission request.
type SubmitInput struct {
	Image        []byte
	ContentType  string
	FormTypeHint string
}

// SubmitOutput is what a submission run hands back to the caller.
// PDFURL is nil whenever rendering or storage degraded; Warnings
// carries the reported-but-non-fatal step failures so the
// degrade-dont-abort policy is visible in the type, not hidden in
// swallowed errors.
type SubmitOutput struct {
	ID       uuid.UUID
	Parsed   domain.ParsedForm
	RawText  string
	PDFURL   *string
	Warnings []string
}

// SubmissionService defines the submission orchestration contract.
type SubmissionService interface {
	Submit(ctx context.Context, input SubmitInput) (*SubmitOutput, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	List(ctx context.Context, offset, limit int) ([]domain.Submission, int, error)
}

type submissionService struct {
	ocr      port.TextExtractor
	parser   port.FormParser
	repo     port.SubmissionRepository
	renderer port.PDFRenderer
	storage  port.ObjectStorage
	cfg      *config.Config
}

// NewSubmissionService creates a new SubmissionService implementation.
// All collaborators are injected; there are no ambient singletons.
func NewSubmissionService(
	ocr port.TextExtractor,
	formParser port.FormParser,
	repo port.SubmissionRepository,
	renderer port.PDFRenderer,
	storage port.ObjectStorage,
	cfg *config.Config,
) SubmissionService {
	return &submissionService{
		ocr:      ocr,
		parser:   formParser,
		repo:     repo,
		renderer: renderer,
		storage:  storage,
		cfg:      cfg,
	}
}

// Submit runs the fixed pipeline: OCR, structured extraction,
// persistence, optional PDF generation and storage. OCR is the only
// step whose failure aborts the request; everything after it degrades
// instead of aborting, because the extracted data is the one output
// that must never be hidden from the caller by an infrastructure
// failure.
func (s *submissionService) Submit(ctx context.Context, input SubmitInput) (*SubmitOutput, error) {
	// Step 1: OCR. The only fatal step.
	rawText, err := s.ocr.ExtractText(ctx, input.Image, input.ContentType)
	if err != nil {
		return nil, fmt.Errorf("%w: ocr: %v", domain.ErrProcessingFailed, err)
	}

	// Step 2: structured extraction, one attempt. On failure the
	// configured policy applies: substitute the fixed fallback record,
	// or escalate. The raw model text rides in the parser error and is
	// always logged before either path.
	parsed, err := s.parser.ParseFormText(ctx, rawText, input.FormTypeHint)
	if err != nil {
		log.Printf("submissionService.Submit: extraction failed: %v", err)
		if !s.cfg.Parser.FallbackOnError {
			return nil, fmt.Errorf("%w: extraction: %v", domain.ErrProcessingFailed, err)
		}
		fallback := parser.FallbackRecord()
		parsed = &fallback
	}

	// Step 3: fresh identifier; each submission owns its own row and
	// object keys, so concurrent requests never contend.
	out := &SubmitOutput{
		ID:      uuid.New(),
		Parsed:  *parsed,
		RawText: rawText,
	}

	// Step 4: best-effort persistence.
	sub := &domain.Submission{ID: out.ID, Parsed: out.Parsed, RawText: rawText}
	if err := s.repo.Create(ctx, sub); err != nil {
		log.Printf("submissionService.Submit: persistence failed for %s: %v", out.ID, err)
		out.Warnings = append(out.Warnings, "persistence failed: "+err.Error())
	}

	// Step 5: optional PDF generation and storage, each failure
	// degrading pdf_url to absence.
	if s.cfg.PDF.Store {
		out.PDFURL = s.storePDF(ctx, out)
	}

	return out, nil
}

// storePDF renders and uploads the filled PDF, returning its
// retrievable URL or nil. Failures are recorded as warnings on out.
func (s *submissionService) storePDF(ctx context.Context, out *SubmitOutput) *string {
	pdfBytes, err := s.renderer.Render(out.Parsed)
	if err != nil {
		log.Printf("submissionService.storePDF: render failed for %s: %v", out.ID, err)
		out.Warnings = append(out.Warnings, "pdf render failed: "+err.Error())
		return nil
	}

	key := out.ID.String() + ".pdf"
	err = s.storage.Upload(ctx, port.UploadInput{
		Key:         key,
		Body:        bytes.NewReader(pdfBytes),
		ContentType: "application/pdf",
	})
	if err != nil {
		log.Printf("submissionService.storePDF: upload failed for %s: %v", out.ID, err)
		out.Warnings = append(out.Warnings, "pdf upload failed: "+err.Error())
		return nil
	}

	url, err := s.storage.GetPublicURL(ctx, key)
	if err != nil {
		log.Printf("submissionService.storePDF: url resolution failed for %s: %v", out.ID, err)
		out.Warnings = append(out.Warnings, "pdf url resolution failed: "+err.Error())
		return nil
	}
	return &url
}

func (s *submissionService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *submissionService) List(ctx context.Context, offset, limit int) ([]domain.Submission, int, error) {
	return s.repo.List(ctx, offset, limit)
}
