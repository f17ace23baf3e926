package ingestion

import "context"

type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
