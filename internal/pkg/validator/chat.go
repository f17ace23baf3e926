package validator

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/achitaan/AR-diagass/internal/config"
	"github.com/achitaan/AR-diagass/internal/entity"
)

// Validator validates incoming request payloads and file uploads
type Validator struct {
	cfg config.IngestionConfig
}

func NewValidator(cfg config.IngestionConfig) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateChat validates the streaming chat payload
func (v *Validator) ValidateChat(req *entity.ChatRequest) error {
	if strings.TrimSpace(req.Message) == "" {
		return fmt.Errorf("%w: message", entity.ErrMissingField)
	}
	return nil
}

// ValidateSimpleChat validates the non-streaming chat payload
func (v *Validator) ValidateSimpleChat(req *entity.SimpleChatRequest) error {
	if strings.TrimSpace(req.Message) == "" {
		return fmt.Errorf("%w: message", entity.ErrMissingField)
	}
	return nil
}

// ValidateSync validates the mobile delta-sync payload
func (v *Validator) ValidateSync(req *entity.SyncRequest) error {
	if req.ClientID == "" {
		return fmt.Errorf("%w: client_id", entity.ErrMissingField)
	}
	for _, t := range req.Threads {
		if t.ID == "" {
			return fmt.Errorf("%w: thread id", entity.ErrMissingField)
		}
		if err := validateOperation(t.Operation); err != nil {
			return err
		}
	}
	for _, m := range req.Messages {
		if m.ID == "" || m.ThreadID == "" {
			return fmt.Errorf("%w: message id or thread_id", entity.ErrMissingField)
		}
		if err := validateOperation(m.Operation); err != nil {
			return err
		}
	}
	return nil
}

func validateOperation(op entity.SyncOperation) error {
	switch op {
	case entity.SyncOpInsert, entity.SyncOpUpdate, entity.SyncOpDelete:
		return nil
	default:
		return fmt.Errorf("%w: unknown sync operation %q", entity.ErrInvalidParameter, op)
	}
}

// ValidateAudioFile validates audio file uploads for transcription
func (v *Validator) ValidateAudioFile(file *multipart.FileHeader) error {
	if file == nil {
		return entity.ErrMissingField
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".wav" && ext != ".mp3" && ext != ".m4a" && ext != ".webm" {
		return fmt.Errorf("%w: %s (allowed: wav, mp3, m4a, webm)", entity.ErrUnsupportedFileType, ext)
	}

	if file.Size > v.cfg.MaxFileSize {
		return fmt.Errorf("%w: file '%s' is %d bytes (max %d)", entity.ErrFileTooLarge, file.Filename, file.Size, v.cfg.MaxFileSize)
	}

	return nil
}
