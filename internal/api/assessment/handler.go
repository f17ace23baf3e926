package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	core "github.com/achitaan/AR-diagass/internal/assessment"
	"github.com/achitaan/AR-diagass/internal/entity"
	"github.com/achitaan/AR-diagass/internal/pkg/logger"
	"github.com/achitaan/AR-diagass/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase AssessmentUsecase
}

func NewHandler(usecase AssessmentUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// Start handles POST /assessment - begin a structured interview
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "StartAssessment")

	var req entity.StartAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snap, err := h.usecase.Start(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, snap)
}

// NextQuestion handles GET /assessment/{id}/question
func (h *Handler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "id")

	ctx = logger.AddFields(ctx,
		zap.String("session_id", sessionID),
		zap.String("action", "NextQuestion"),
	)

	resp, err := h.usecase.NextQuestion(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, resp)
}

// SubmitResponse handles POST /assessment/{id}/response
func (h *Handler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "id")

	ctx = logger.AddFields(ctx,
		zap.String("session_id", sessionID),
		zap.String("action", "SubmitResponse"),
	)

	var req entity.SubmitResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.usecase.SubmitResponse(ctx, sessionID, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, result)
}

// Summary handles GET /assessment/{id}/summary
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "id")

	ctx = logger.AddFields(ctx,
		zap.String("session_id", sessionID),
		zap.String("action", "AssessmentSummary"),
	)

	report, err := h.usecase.Summary(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, report)
}

// Snapshot handles GET /assessment/{id}/snapshot
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "id")

	ctx = logger.AddFields(ctx,
		zap.String("session_id", sessionID),
		zap.String("action", "AssessmentSnapshot"),
	)

	snap, err := h.usecase.Snapshot(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, snap)
}

// Restore handles POST /assessment/restore
func (h *Handler) Restore(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "RestoreAssessment")

	data, err := io.ReadAll(r.Body)
	if err != nil {
		ctxzap.Error(ctx, "failed to read request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snap, err := h.usecase.Restore(ctx, data)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, snap)
}

// Export handles GET /assessment/{id}/export?format=md|pdf|docx
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "id")

	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = string(entity.FormatMarkdown)
	}

	ctx = logger.AddFields(ctx,
		zap.String("session_id", sessionID),
		zap.String("format", formatParam),
		zap.String("action", "ExportAssessment"),
	)

	rendered, contentType, extension, err := h.usecase.Export(ctx, sessionID, entity.ExportFormat(formatParam))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"assessment-%s%s\"", sessionID, extension))
	w.WriteHeader(http.StatusOK)
	w.Write(rendered)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	ctxzap.Error(ctx, "request failed", zap.Error(err))
	switch {
	case errors.Is(err, core.ErrSessionNotFound):
		response.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, core.ErrSessionActive):
		response.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, entity.ErrMissingField) || errors.Is(err, entity.ErrInvalidParameter):
		response.Error(w, http.StatusBadRequest, err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
