package ingestion

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/achitaan/AR-diagass/internal/config"
	"github.com/achitaan/AR-diagass/internal/entity"
	"github.com/achitaan/AR-diagass/internal/pkg/logger"
	"github.com/achitaan/AR-diagass/internal/pkg/response"
	"github.com/achitaan/AR-diagass/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	cfg       config.IngestionConfig
	usecase   IngestionUsecase
	validator *validator.Validator
}

func NewHandler(cfg config.IngestionConfig, usecase IngestionUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		cfg:       cfg,
		usecase:   usecase,
		validator: validator,
	}
}

// Upload handles POST /ingestion/upload - ingest knowledge-base files
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "IngestUpload")

	if err := r.ParseMultipartForm(h.cfg.MaxUploadSize); err != nil {
		ctxzap.Error(ctx, "failed to parse multipart form", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	files := r.MultipartForm.File["files"]
	if err := h.validator.ValidateUpload(files); err != nil {
		ctxzap.Error(ctx, "failed to validate upload", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	var documents []entity.Document
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			ctxzap.Error(ctx, "failed to open uploaded file", zap.Error(err))
			response.Error(w, http.StatusBadRequest, "failed to read uploaded file")
			return
		}

		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			ctxzap.Error(ctx, "failed to read uploaded file", zap.Error(err))
			response.Error(w, http.StatusBadRequest, "failed to read uploaded file")
			return
		}

		document, err := h.usecase.IngestFile(ctx, header.Filename, data)
		if err != nil {
			h.handleUsecaseError(ctx, w, err)
			return
		}
		documents = append(documents, *document)
	}

	response.Created(w, map[string]any{
		"ingested":  len(documents),
		"documents": documents,
	})
}

// Guidelines handles POST /ingestion/guidelines - seed named guideline texts
func (h *Handler) Guidelines(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "IngestGuidelines")

	var guidelines map[string]string
	if err := json.NewDecoder(r.Body).Decode(&guidelines); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(guidelines) == 0 {
		response.Error(w, http.StatusBadRequest, "no guidelines provided")
		return
	}

	count, err := h.usecase.IngestGuidelines(ctx, guidelines)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, map[string]int{"ingested": count})
}

// Stats handles GET /ingestion/stats - knowledge base state
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "IngestionStats")

	stats, err := h.usecase.Stats(ctx)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, stats)
}

// Documents handles GET /ingestion/documents - list ingested documents
func (h *Handler) Documents(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListDocuments")

	documents, err := h.usecase.ListDocuments(ctx)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, map[string]any{"documents": documents})
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	ctxzap.Error(ctx, "request failed", zap.Error(err))
	switch {
	case errors.Is(err, entity.ErrFileTooLarge) ||
		errors.Is(err, entity.ErrUnsupportedFileType) ||
		errors.Is(err, entity.ErrEmptyDocument) ||
		errors.Is(err, entity.ErrInvalidFile) ||
		errors.Is(err, entity.ErrMissingField):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entity.ErrDocumentNotFound):
		response.Error(w, http.StatusNotFound, err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
