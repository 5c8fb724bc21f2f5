package handler

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"inkference/internal/domain"
	"inkference/internal/service"
	"inkference/internal/validator"
)

// SubmissionHandler handles form submission and review endpoints.
type SubmissionHandler struct {
	svc           service.SubmissionService
	maxFileSizeMB int64
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(svc service.SubmissionService, maxFileSizeMB int64) *SubmissionHandler {
	return &SubmissionHandler{svc: svc, maxFileSizeMB: maxFileSizeMB}
}

// submitResponse is the wire shape of a successful submission.
// pdf_url is always present as a key, explicitly null when absent.
type submitResponse struct {
	ID     string            `json:"id"`
	Parsed domain.ParsedForm `json:"parsed"`
	PDFURL *string           `json:"pdf_url"`
}

// Submit handles POST /api/v1/submissions: multipart body with a
// required "file" field and an optional "form_type" hint.
func (h *SubmissionHandler) Submit(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respondDetail(c, http.StatusBadRequest, domain.ErrNoFile.Error())
		return
	}
	defer func() { _ = file.Close() }()

	if h.maxFileSizeMB > 0 && header.Size > h.maxFileSizeMB*1024*1024 {
		respondDetail(c, http.StatusBadRequest, domain.ErrFileTooLarge.Error())
		return
	}

	contents, err := io.ReadAll(file)
	if err != nil {
		respondDetail(c, http.StatusInternalServerError, "reading uploaded file failed")
		return
	}
	if len(contents) == 0 {
		respondDetail(c, http.StatusBadRequest, domain.ErrEmptyFile.Error())
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(contents)
	}

	out, err := h.svc.Submit(c.Request.Context(), service.SubmitInput{
		Image:        contents,
		ContentType:  contentType,
		FormTypeHint: c.PostForm("form_type"),
	})
	if err != nil {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] submission failed: %v", requestID, err)
		respondDetail(c, http.StatusInternalServerError, domain.ErrProcessingFailed.Error())
		return
	}

	c.JSON(http.StatusOK, submitResponse{
		ID:     out.ID.String(),
		Parsed: out.Parsed,
		PDFURL: out.PDFURL,
	})
}

// GetByID handles GET /api/v1/submissions/:id
func (h *SubmissionHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondDetail(c, http.StatusBadRequest, "invalid submission id")
		return
	}

	sub, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// Review handles GET /api/v1/submissions/:id/review, recomputing the
// derived validation summary from the stored form.
func (h *SubmissionHandler) Review(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondDetail(c, http.StatusBadRequest, "invalid submission id")
		return
	}

	sub, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, validator.Summarize(sub.Parsed))
}

// List handles GET /api/v1/submissions
func (h *SubmissionHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	subs, total, err := h.svc.List(c.Request.Context(), offset, limit)
	if err != nil {
		h.handleLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": subs, "total": total, "offset": offset, "limit": limit})
}

func (h *SubmissionHandler) handleLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSubmissionNotFound):
		respondDetail(c, http.StatusNotFound, "submission not found")
	case errors.Is(err, domain.ErrBackendUnconfigured):
		respondDetail(c, http.StatusServiceUnavailable, "submission store not configured")
	default:
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
		respondDetail(c, http.StatusInternalServerError, "an internal error occurred")
	}
}
