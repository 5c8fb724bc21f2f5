package domain

import "errors"

var (
	ErrNoFile              = errors.New("no file provided")
	ErrEmptyFile           = errors.New("uploaded file is empty")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrProcessingFailed    = errors.New("processing failed")
	ErrBackendUnconfigured = errors.New("backend not configured")
	ErrSubmissionNotFound  = errors.New("submission not found")
)
