package validator

import (
	"errors"
	"mime/multipart"
	"testing"

	"github.com/achitaan/AR-diagass/internal/config"
	"github.com/achitaan/AR-diagass/internal/entity"
)

func newTestValidator() *Validator {
	return NewValidator(config.IngestionConfig{
		MaxFileSize:   1024,
		MaxUploadSize: 4096,
		ChunkSize:     1000,
		ChunkOverlap:  200,
	})
}

func TestValidateChat(t *testing.T) {
	v := newTestValidator()

	if err := v.ValidateChat(&entity.ChatRequest{Message: "my knee hurts"}); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}
	if err := v.ValidateChat(&entity.ChatRequest{Message: "   "}); !errors.Is(err, entity.ErrMissingField) {
		t.Errorf("expected ErrMissingField for blank message, got %v", err)
	}
}

func TestValidateSync(t *testing.T) {
	v := newTestValidator()

	valid := &entity.SyncRequest{
		ClientID: "device-1",
		Threads: []entity.ThreadDelta{
			{ID: "t1", Title: "Knee pain", Operation: entity.SyncOpInsert},
		},
		Messages: []entity.MessageDelta{
			{ID: "m1", ThreadID: "t1", Role: "user", Content: "hi", Operation: entity.SyncOpUpdate},
		},
	}
	if err := v.ValidateSync(valid); err != nil {
		t.Errorf("valid sync rejected: %v", err)
	}

	if err := v.ValidateSync(&entity.SyncRequest{}); !errors.Is(err, entity.ErrMissingField) {
		t.Errorf("expected ErrMissingField for missing client id, got %v", err)
	}

	badOp := &entity.SyncRequest{
		ClientID: "device-1",
		Threads:  []entity.ThreadDelta{{ID: "t1", Operation: "merge"}},
	}
	if err := v.ValidateSync(badOp); !errors.Is(err, entity.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for unknown operation, got %v", err)
	}
}

func TestValidateStartAssessment(t *testing.T) {
	v := newTestValidator()

	if err := v.ValidateStartAssessment(&entity.StartAssessmentRequest{UserID: "u1", SessionID: "s1"}); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}
	if err := v.ValidateStartAssessment(&entity.StartAssessmentRequest{SessionID: "s1"}); !errors.Is(err, entity.ErrMissingField) {
		t.Errorf("expected ErrMissingField for missing user id, got %v", err)
	}
}

func TestValidateSubmitResponse(t *testing.T) {
	v := newTestValidator()

	if err := v.ValidateSubmitResponse(&entity.SubmitResponseRequest{Response: "it hurts a lot"}); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}
	if err := v.ValidateSubmitResponse(&entity.SubmitResponseRequest{Response: "  "}); !errors.Is(err, entity.ErrMissingField) {
		t.Errorf("expected ErrMissingField for blank response, got %v", err)
	}
}

func TestValidateUpload(t *testing.T) {
	v := newTestValidator()

	ok := []*multipart.FileHeader{
		{Filename: "guidelines.md", Size: 512},
		{Filename: "cases.json", Size: 256},
	}
	if err := v.ValidateUpload(ok); err != nil {
		t.Errorf("valid upload rejected: %v", err)
	}

	if err := v.ValidateUpload(nil); !errors.Is(err, entity.ErrMissingField) {
		t.Errorf("expected ErrMissingField for empty upload, got %v", err)
	}

	badType := []*multipart.FileHeader{{Filename: "scan.exe", Size: 10}}
	if err := v.ValidateUpload(badType); !errors.Is(err, entity.ErrUnsupportedFileType) {
		t.Errorf("expected ErrUnsupportedFileType, got %v", err)
	}

	tooBig := []*multipart.FileHeader{{Filename: "big.txt", Size: 2048}}
	if err := v.ValidateUpload(tooBig); !errors.Is(err, entity.ErrFileTooLarge) {
		t.Errorf("expected ErrFileTooLarge, got %v", err)
	}

	overTotal := []*multipart.FileHeader{
		{Filename: "a.txt", Size: 1000},
		{Filename: "b.txt", Size: 1000},
		{Filename: "c.txt", Size: 1000},
		{Filename: "d.txt", Size: 1000},
		{Filename: "e.txt", Size: 1000},
	}
	if err := v.ValidateUpload(overTotal); !errors.Is(err, entity.ErrFileTooLarge) {
		t.Errorf("expected ErrFileTooLarge for total size, got %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"back pain (v2).md", "back_pain_v2.md"},
		{"../../etc/passwd", "passwd"},
		{"plan [final].txt", "plan_final.txt"},
	}
	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
