package validator

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/achitaan/AR-diagass/internal/entity"
)

var AllowedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".csv":  true,
	".json": true,
}

// ValidateUpload validates knowledge-base file uploads
func (v *Validator) ValidateUpload(files []*multipart.FileHeader) error {
	if len(files) == 0 {
		return fmt.Errorf("%w: files", entity.ErrMissingField)
	}

	var totalSize int64
	for _, fh := range files {
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if _, ok := AllowedExtensions[ext]; !ok {
			return fmt.Errorf("%w: %s (allowed: txt, md, csv, json)", entity.ErrUnsupportedFileType, ext)
		}

		if fh.Size > v.cfg.MaxFileSize {
			return fmt.Errorf("%w: file '%s' is %d bytes (max %d)", entity.ErrFileTooLarge, fh.Filename, fh.Size, v.cfg.MaxFileSize)
		}

		totalSize += fh.Size
	}

	if totalSize > v.cfg.MaxUploadSize {
		return fmt.Errorf("%w: total size is %d bytes (max %d)", entity.ErrFileTooLarge, totalSize, v.cfg.MaxUploadSize)
	}

	return nil
}

// ValidateStartAssessment validates the assessment start payload
func (v *Validator) ValidateStartAssessment(req *entity.StartAssessmentRequest) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: user_id", entity.ErrMissingField)
	}
	if req.SessionID == "" {
		return fmt.Errorf("%w: session_id", entity.ErrMissingField)
	}
	return nil
}

// ValidateSubmitResponse validates an assessment answer submission
func (v *Validator) ValidateSubmitResponse(req *entity.SubmitResponseRequest) error {
	if strings.TrimSpace(req.Response) == "" {
		return fmt.Errorf("%w: response", entity.ErrMissingField)
	}
	return nil
}

// SanitizeFilename sanitizes a filename for safe storage
func SanitizeFilename(filename string) string {
	filename = filepath.Base(filename)
	replacer := strings.NewReplacer(
		" ", "_",
		"(", "",
		")", "",
		"[", "",
		"]", "",
		"{", "",
		"}", "",
	)
	return replacer.Replace(filename)
}
