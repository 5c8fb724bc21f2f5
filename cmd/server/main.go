package main

import (
	"fmt"
	"log"

	"inkference/internal/config"
	"inkference/internal/handler"
	"inkference/internal/ocr"
	"inkference/internal/parser"
	"inkference/internal/parser/gemini"
	"inkference/internal/pdf"
	"inkference/internal/port"
	"inkference/internal/repository/postgres"
	"inkference/internal/router"
	"inkference/internal/service"
	s3storage "inkference/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Row store. An unreachable database degrades persistence instead
	// of preventing startup; extraction still serves.
	var repo port.SubmissionRepository
	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		log.Printf("database unavailable, persistence disabled: %v", err)
		repo = postgres.NewUnconfiguredRepo()
	} else {
		defer db.Close()
		repo = postgres.NewSubmissionRepo(db)
	}

	// Blob store; unconfigured when credentials are absent.
	storage, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// OCR backend
	extractor, err := ocr.NewExtractor(&cfg.OCR)
	if err != nil {
		return fmt.Errorf("failed to initialize OCR: %w", err)
	}

	// Structured-extraction client
	var formParser port.FormParser
	if cfg.Parser.Mode == "mocked" {
		log.Printf("parser mode is mocked: serving the fixed demo record")
		formParser = parser.NewMockedParser()
	} else {
		formParser = gemini.NewParser(&cfg.Parser)
	}

	submissionSvc := service.NewSubmissionService(
		extractor, formParser, repo, pdf.NewRenderer(), storage, cfg)

	submissionH := handler.NewSubmissionHandler(submissionSvc, cfg.Server.MaxFileSizeMB)
	healthH := handler.NewHealthHandler(cfg.Parser.Mode)

	r := router.Setup(cfg, submissionH, healthH)

	log.Printf("Server starting on %s (ocr=%s model=%s store_pdf=%t)",
		cfg.Server.Port, cfg.OCR.Provider, cfg.Parser.EffectiveModel(), cfg.PDF.Store)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
