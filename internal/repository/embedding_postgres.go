package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/achitaan/AR-diagass/internal/entity"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EmbeddingRepository defines the interface for vector persistence and
// similarity search
type EmbeddingRepository interface {
	CreateEmbedding(ctx context.Context, messageID string, vector []float32) (*entity.Embedding, error)
	SearchSimilar(ctx context.Context, query entity.RetrievalQuery, vector []float32) ([]entity.RetrievedChunk, error)
	CountEmbeddings(ctx context.Context) (int, error)
}

var _ EmbeddingRepository = &EmbeddingPostgres{}

// EmbeddingPostgres implements EmbeddingRepository on top of pgvector
type EmbeddingPostgres struct {
	db *pgxpool.Pool
}

func NewEmbeddingPostgres(db *pgxpool.Pool) *EmbeddingPostgres {
	return &EmbeddingPostgres{db: db}
}

func (r *EmbeddingPostgres) CreateEmbedding(ctx context.Context, messageID string, vector []float32) (*entity.Embedding, error) {
	id, err := parseUUID(messageID)
	if err != nil {
		return nil, fmt.Errorf("invalid message ID: %w", err)
	}
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: empty embedding vector", entity.ErrInvalidParameter)
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO embeddings (message_id, vector)
		VALUES ($1, $2::vector)
		ON CONFLICT (message_id) DO UPDATE SET vector = EXCLUDED.vector
		RETURNING id, message_id, created_at`,
		id, vectorLiteral(vector),
	)

	var (
		embeddingID pgtype.UUID
		msgID       pgtype.UUID
		createdAt   pgtype.Timestamptz
	)
	if err := row.Scan(&embeddingID, &msgID, &createdAt); err != nil {
		return nil, fmt.Errorf("create embedding: %w", err)
	}

	return &entity.Embedding{
		ID:        uuidString(embeddingID),
		MessageID: uuidString(msgID),
		Vector:    vector,
		CreatedAt: createdAt.Time,
	}, nil
}

// SearchSimilar runs a cosine top-k search over stored embeddings. The
// <=> operator returns cosine distance, so similarity is 1 - distance.
func (r *EmbeddingPostgres) SearchSimilar(ctx context.Context, query entity.RetrievalQuery, vector []float32) ([]entity.RetrievedChunk, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: empty query vector", entity.ErrInvalidParameter)
	}
	topK := query.TopK
	if topK <= 0 {
		topK = 8
	}

	args := []any{vectorLiteral(vector), topK}
	threadFilter := ""
	if query.ThreadID != nil {
		threadID, err := parseUUID(*query.ThreadID)
		if err != nil {
			return nil, fmt.Errorf("invalid thread ID: %w", err)
		}
		threadFilter = "AND m.thread_id = $3"
		args = append(args, threadID)
	}

	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT m.id, m.thread_id, m.content, 1 - (e.vector <=> $1::vector) AS similarity
		FROM embeddings e
		JOIN messages m ON m.id = e.message_id
		WHERE m.role = 'system' %s
		ORDER BY e.vector <=> $1::vector
		LIMIT $2`, threadFilter),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	defer rows.Close()

	var chunks []entity.RetrievedChunk
	for rows.Next() {
		var (
			messageID pgtype.UUID
			threadID  pgtype.UUID
			chunk     entity.RetrievedChunk
		)
		if err := rows.Scan(&messageID, &threadID, &chunk.Content, &chunk.Score); err != nil {
			return nil, fmt.Errorf("scan similarity row: %w", err)
		}
		chunk.MessageID = uuidString(messageID)
		chunk.ThreadID = uuidString(threadID)
		chunks = append(chunks, chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate similarity rows: %w", err)
	}
	return chunks, nil
}

func (r *EmbeddingPostgres) CountEmbeddings(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM embeddings`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count embeddings: %w", err)
	}
	return count, nil
}

// vectorLiteral renders a float slice in pgvector's input format,
// e.g. "[0.1,0.2,0.3]".
func vectorLiteral(vector []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range vector {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}
