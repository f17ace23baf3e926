package chat

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/achitaan/AR-diagass/internal/entity"
	"github.com/achitaan/AR-diagass/internal/pkg/logger"
	"github.com/achitaan/AR-diagass/internal/pkg/response"
	"github.com/achitaan/AR-diagass/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   ChatUsecase
	validator *validator.Validator
}

func NewHandler(usecase ChatUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// StreamChat handles POST /chat - streaming RAG chat over SSE
func (h *Handler) StreamChat(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "StreamChat")

	var req entity.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateChat(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	response.SSEHeaders(w)

	threadID, err := h.usecase.StreamChat(ctx, &req, func(delta string) error {
		return response.SSEData(w, entity.ChatCompletionChunk{Content: delta})
	})
	if err != nil {
		ctxzap.Error(ctx, "stream chat failed", zap.Error(err))
		// Headers are already sent; signal the failure in-band.
		_ = response.SSEData(w, map[string]string{"error": "chat failed"})
		return
	}

	_ = response.SSEData(w, map[string]any{"done": true, "thread_id": threadID})
}

// SimpleChat handles POST /chat/simple - non-streaming chat
func (h *Handler) SimpleChat(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SimpleChat")

	var req entity.SimpleChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.usecase.Chat(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, resp)
}

// AudioChat handles POST /chat/audio - transcribe spoken input, then chat
func (h *Handler) AudioChat(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "AudioChat")

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		ctxzap.Error(ctx, "failed to parse multipart form", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		ctxzap.Error(ctx, "missing audio file", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "audio file is required")
		return
	}
	defer file.Close()

	if err := h.validator.ValidateAudioFile(header); err != nil {
		ctxzap.Error(ctx, "failed to validate audio file", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	audioData, err := io.ReadAll(file)
	if err != nil {
		ctxzap.Error(ctx, "failed to read audio file", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "failed to read audio file")
		return
	}

	transcription, err := h.usecase.TranscribeAudio(ctx, audioData, header.Filename)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	var threadID *string
	if v := r.FormValue("thread_id"); v != "" {
		threadID = &v
	}

	resp, err := h.usecase.Chat(ctx, &entity.SimpleChatRequest{
		Message:  transcription,
		ThreadID: threadID,
	})
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, map[string]any{
		"transcription": transcription,
		"response":      resp.Response,
		"thread_id":     resp.ThreadID,
	})
}

// GetThreadMessages handles GET /threads/{id}/messages - thread history
func (h *Handler) GetThreadMessages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	threadID := chi.URLParam(r, "id")

	ctx = logger.AddFields(ctx,
		zap.String("thread_id", threadID),
		zap.String("action", "GetThreadMessages"),
	)

	messages, err := h.usecase.GetThreadMessages(ctx, threadID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, map[string]any{
		"thread_id": threadID,
		"messages":  messages,
	})
}

// Sync handles POST /sync - mobile delta sync
func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Sync")

	var req entity.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.usecase.Sync(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, resp)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	ctxzap.Error(ctx, "request failed", zap.Error(err))
	switch {
	case errors.Is(err, entity.ErrThreadNotFound) || errors.Is(err, entity.ErrMessageNotFound):
		response.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, entity.ErrMissingField) || errors.Is(err, entity.ErrInvalidParameter) || errors.Is(err, entity.ErrInvalidRole):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entity.ErrFileTooLarge) || errors.Is(err, entity.ErrUnsupportedFileType):
		response.Error(w, http.StatusBadRequest, err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
