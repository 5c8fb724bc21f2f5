package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "Inkference AI"

// HealthHandler handles the health check endpoint.
type HealthHandler struct {
	mode string
}

// NewHealthHandler creates a new HealthHandler. mode is the configured
// parser mode so callers can tell a demo deployment from a live one.
func NewHealthHandler(mode string) *HealthHandler {
	return &HealthHandler{mode: mode}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"service": ServiceName,
		"mode":    h.mode,
	})
}
