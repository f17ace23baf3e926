package ingestion

import (
	"context"

	"github.com/achitaan/AR-diagass/internal/entity"
)

type IngestionUsecase interface {
	IngestFile(ctx context.Context, filename string, data []byte) (*entity.Document, error)
	IngestGuidelines(ctx context.Context, guidelines map[string]string) (int, error)
	Stats(ctx context.Context) (*entity.KnowledgeStats, error)
	ListDocuments(ctx context.Context) ([]entity.Document, error)
}
