package router

import (
	"github.com/gin-gonic/gin"

	"inkference/internal/config"
	"inkference/internal/handler"
	"inkference/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	submissionH *handler.SubmissionHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	r.GET("/health", healthH.Health)

	v1 := r.Group("/api/v1")
	subs := v1.Group("/submissions")
	subs.POST("", submissionH.Submit)
	subs.GET("", submissionH.List)
	subs.GET("/:id", submissionH.GetByID)
	subs.GET("/:id/review", submissionH.Review)

	return r
}
