package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/achitaan/AR-diagass/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DocumentRepository defines the interface for ingested-document records
type DocumentRepository interface {
	CreateDocument(ctx context.Context, document entity.Document) (*entity.Document, error)
	GetDocumentByID(ctx context.Context, id string) (*entity.Document, error)
	ListDocuments(ctx context.Context) ([]entity.Document, error)
	DeleteDocument(ctx context.Context, id string) error
}

var _ DocumentRepository = &DocumentPostgres{}

// DocumentPostgres implements DocumentRepository using PostgreSQL
type DocumentPostgres struct {
	db *pgxpool.Pool
}

func NewDocumentPostgres(db *pgxpool.Pool) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

func (r *DocumentPostgres) CreateDocument(ctx context.Context, document entity.Document) (*entity.Document, error) {
	threadID, err := parseUUID(document.ThreadID)
	if err != nil {
		return nil, fmt.Errorf("invalid thread ID: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO documents (thread_id, filename, source_type, chunk_count)
		VALUES ($1, $2, $3, $4)
		RETURNING id, thread_id, filename, source_type, chunk_count, created_at`,
		threadID, document.Filename, document.SourceType, document.ChunkCount,
	)

	created, err := scanDocument(row)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return created, nil
}

func (r *DocumentPostgres) GetDocumentByID(ctx context.Context, id string) (*entity.Document, error) {
	documentID, err := parseUUID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid document ID: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		SELECT id, thread_id, filename, source_type, chunk_count, created_at
		FROM documents
		WHERE id = $1`,
		documentID,
	)

	document, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return document, nil
}

func (r *DocumentPostgres) ListDocuments(ctx context.Context) ([]entity.Document, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, thread_id, filename, source_type, chunk_count, created_at
		FROM documents
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var documents []entity.Document
	for rows.Next() {
		document, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		documents = append(documents, *document)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return documents, nil
}

func (r *DocumentPostgres) DeleteDocument(ctx context.Context, id string) error {
	documentID, err := parseUUID(id)
	if err != nil {
		return fmt.Errorf("invalid document ID: %w", err)
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, documentID)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrDocumentNotFound
	}
	return nil
}

func scanDocument(row rowScanner) (*entity.Document, error) {
	var (
		id        pgtype.UUID
		threadID  pgtype.UUID
		document  entity.Document
		createdAt pgtype.Timestamptz
	)
	if err := row.Scan(&id, &threadID, &document.Filename, &document.SourceType, &document.ChunkCount, &createdAt); err != nil {
		return nil, err
	}
	document.ID = uuidString(id)
	document.ThreadID = uuidString(threadID)
	document.CreatedAt = createdAt.Time
	return &document, nil
}
