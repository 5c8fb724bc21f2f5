package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"inkference/internal/config"
	"inkference/internal/domain"
	"inkference/internal/service"
	"inkference/mocks"
)

func strptr(s string) *string { return &s }

type fixture struct {
	ocr      *mocks.MockTextExtractor
	parser   *mocks.MockFormParser
	repo     *mocks.MockSubmissionRepo
	renderer *mocks.MockPDFRenderer
	storage  *mocks.MockObjectStorage
	cfg      *config.Config
	svc      service.SubmissionService
}

func newFixture(t *testing.T, mutate func(cfg *config.Config)) *fixture {
	t.Helper()
	f := &fixture{
		ocr:      new(mocks.MockTextExtractor),
		parser:   new(mocks.MockFormParser),
		repo:     new(mocks.MockSubmissionRepo),
		renderer: new(mocks.MockPDFRenderer),
		storage:  new(mocks.MockObjectStorage),
		cfg: &config.Config{
			Parser: config.ParserConfig{Mode: "live", FallbackOnError: true},
			PDF:    config.PDFConfig{Store: true},
		},
	}
	if mutate != nil {
		mutate(f.cfg)
	}
	f.svc = service.NewSubmissionService(f.ocr, f.parser, f.repo, f.renderer, f.storage, f.cfg)
	return f
}

func sampleForm() *domain.ParsedForm {
	return &domain.ParsedForm{
		FormType:        "invoice",
		Fields:          map[string]*string{"invoiceNumber": strptr("INV-001")},
		ConfidenceHints: map[string]float64{"invoiceNumber": 0.9},
	}
}

func TestSubmit_HappyPath(t *testing.T) {
	f := newFixture(t, nil)

	f.ocr.On("ExtractText", mock.Anything, []byte("img"), "image/png").Return("ocr text", nil)
	f.parser.On("ParseFormText", mock.Anything, "ocr text", "invoice").Return(sampleForm(), nil)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.renderer.On("Render", mock.Anything).Return([]byte("%PDF-1.7"), nil)
	f.storage.On("Upload", mock.Anything, mock.Anything).Return(nil)
	f.storage.On("GetPublicURL", mock.Anything, mock.Anything).Return("https://cdn/pdfs/x.pdf", nil)

	out, err := f.svc.Submit(context.Background(), service.SubmitInput{
		Image:        []byte("img"),
		ContentType:  "image/png",
		FormTypeHint: "invoice",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, out.ID)
	assert.Equal(t, "invoice", out.Parsed.FormType)
	assert.Equal(t, "ocr text", out.RawText)
	require.NotNil(t, out.PDFURL)
	assert.Equal(t, "https://cdn/pdfs/x.pdf", *out.PDFURL)
	assert.Empty(t, out.Warnings)

	// The uploaded key is derived from the generated id.
	f.storage.AssertCalled(t, "GetPublicURL", mock.Anything, out.ID.String()+".pdf")
}

func TestSubmit_OCRFailureIsFatal(t *testing.T) {
	f := newFixture(t, nil)

	f.ocr.On("ExtractText", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("tesseract exploded"))

	_, err := f.svc.Submit(context.Background(), service.SubmitInput{Image: []byte("img")})

	require.ErrorIs(t, err, domain.ErrProcessingFailed)
	f.parser.AssertNotCalled(t, "ParseFormText", mock.Anything, mock.Anything, mock.Anything)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.renderer.AssertNotCalled(t, "Render", mock.Anything)
}

func TestSubmit_ParserFailureFallsBack(t *testing.T) {
	f := newFixture(t, nil)

	f.ocr.On("ExtractText", mock.Anything, mock.Anything, mock.Anything).Return("ocr text", nil)
	f.parser.On("ParseFormText", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("model drifted"))
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.renderer.On("Render", mock.Anything).Return([]byte("%PDF"), nil)
	f.storage.On("Upload", mock.Anything, mock.Anything).Return(nil)
	f.storage.On("GetPublicURL", mock.Anything, mock.Anything).Return("https://cdn/x.pdf", nil)

	out, err := f.svc.Submit(context.Background(), service.SubmitInput{Image: []byte("img")})

	require.NoError(t, err)
	assert.Equal(t, "logistics_shipping", out.Parsed.FormType)
	assert.NotEmpty(t, out.Parsed.Fields)
}

func TestSubmit_ParserFailureEscalatesWhenFallbackDisabled(t *testing.T) {
	f := newFixture(t, func(cfg *config.Config) {
		cfg.Parser.FallbackOnError = false
	})

	f.ocr.On("ExtractText", mock.Anything, mock.Anything, mock.Anything).Return("ocr text", nil)
	f.parser.On("ParseFormText", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("model drifted"))

	_, err := f.svc.Submit(context.Background(), service.SubmitInput{Image: []byte("img")})

	require.ErrorIs(t, err, domain.ErrProcessingFailed)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmit_PersistenceFailureIsSoft(t *testing.T) {
	f := newFixture(t, nil)

	f.ocr.On("ExtractText", mock.Anything, mock.Anything, mock.Anything).Return("ocr text", nil)
	f.parser.On("ParseFormText", mock.Anything, mock.Anything, mock.Anything).Return(sampleForm(), nil)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))
	f.renderer.On("Render", mock.Anything).Return([]byte("%PDF"), nil)
	f.storage.On("Upload", mock.Anything, mock.Anything).Return(nil)
	f.storage.On("GetPublicURL", mock.Anything, mock.Anything).Return("https://cdn/x.pdf", nil)

	out, err := f.svc.Submit(context.Background(), service.SubmitInput{Image: []byte("img")})

	require.NoError(t, err)
	assert.NotNil(t, out.PDFURL)
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "persistence failed")
}

func TestSubmit_PersistenceAndUploadBothFail(t *testing.T) {
	f := newFixture(t, nil)

	f.ocr.On("ExtractText", mock.Anything, mock.Anything, mock.Anything).Return("ocr text", nil)
	f.parser.On("ParseFormText", mock.Anything, mock.Anything, mock.Anything).Return(sampleForm(), nil)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrBackendUnconfigured)
	f.renderer.On("Render", mock.Anything).Return([]byte("%PDF"), nil)
	f.storage.On("Upload", mock.Anything, mock.Anything).Return(domain.ErrBackendUnconfigured)

	out, err := f.svc.Submit(context.Background(), service.SubmitInput{Image: []byte("img")})

	require.NoError(t, err)
	assert.Equal(t, "invoice", out.Parsed.FormType)
	assert.Nil(t, out.PDFURL)
	assert.Len(t, out.Warnings, 2)
	f.storage.AssertNotCalled(t, "GetPublicURL", mock.Anything, mock.Anything)
}

func TestSubmit_RenderFailureDegradesPDFOnly(t *testing.T) {
	f := newFixture(t, nil)

	f.ocr.On("ExtractText", mock.Anything, mock.Anything, mock.Anything).Return("ocr text", nil)
	f.parser.On("ParseFormText", mock.Anything, mock.Anything, mock.Anything).Return(sampleForm(), nil)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.renderer.On("Render", mock.Anything).Return(nil, errors.New("bad font"))

	out, err := f.svc.Submit(context.Background(), service.SubmitInput{Image: []byte("img")})

	require.NoError(t, err)
	assert.Nil(t, out.PDFURL)
	f.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestSubmit_PDFDisabledSkipsRenderAndStorage(t *testing.T) {
	f := newFixture(t, func(cfg *config.Config) {
		cfg.PDF.Store = false
	})

	f.ocr.On("ExtractText", mock.Anything, mock.Anything, mock.Anything).Return("ocr text", nil)
	f.parser.On("ParseFormText", mock.Anything, mock.Anything, mock.Anything).Return(sampleForm(), nil)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	out, err := f.svc.Submit(context.Background(), service.SubmitInput{Image: []byte("img")})

	require.NoError(t, err)
	assert.Nil(t, out.PDFURL)
	f.renderer.AssertNotCalled(t, "Render", mock.Anything)
	f.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestSubmit_PersistedRecordCarriesRawText(t *testing.T) {
	f := newFixture(t, func(cfg *config.Config) {
		cfg.PDF.Store = false
	})

	f.ocr.On("ExtractText", mock.Anything, mock.Anything, mock.Anything).Return("the raw ocr text", nil)
	f.parser.On("ParseFormText", mock.Anything, mock.Anything, mock.Anything).Return(sampleForm(), nil)
	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(sub *domain.Submission) bool {
		return sub.RawText == "the raw ocr text" && sub.ID != uuid.Nil
	})).Return(nil)

	_, err := f.svc.Submit(context.Background(), service.SubmitInput{Image: []byte("img")})
	require.NoError(t, err)
	f.repo.AssertExpectations(t)
}
