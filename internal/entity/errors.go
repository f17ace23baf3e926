package entity

import "errors"

// Domain errors
var (
	// Thread and message errors
	ErrThreadNotFound  = errors.New("thread not found")
	ErrMessageNotFound = errors.New("message not found")
	ErrInvalidRole     = errors.New("invalid message role")

	// Ingestion errors
	ErrInvalidFile         = errors.New("invalid file")
	ErrFileTooLarge        = errors.New("file too large")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrEmptyDocument       = errors.New("document contains no text")
	ErrDocumentNotFound    = errors.New("document not found")

	// Retrieval errors
	ErrVectorStoreUnavailable = errors.New("vector store unavailable")

	// Auth errors
	ErrInvalidToken = errors.New("invalid authentication token")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")
)
