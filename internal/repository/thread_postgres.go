package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/achitaan/AR-diagass/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ThreadRepository defines the interface for thread persistence
type ThreadRepository interface {
	CreateThread(ctx context.Context, thread entity.Thread) (*entity.Thread, error)
	GetThreadByID(ctx context.Context, id string) (*entity.Thread, error)
	GetOrCreateThread(ctx context.Context, id, title string) (*entity.Thread, error)
	UpdateThreadTitle(ctx context.Context, id, title string) (*entity.Thread, error)
	DeleteThread(ctx context.Context, id string) error
	CountThreadsByTitlePattern(ctx context.Context, patterns []string) (int, error)
}

var _ ThreadRepository = &ThreadPostgres{}

// ThreadPostgres implements ThreadRepository using PostgreSQL
type ThreadPostgres struct {
	db *pgxpool.Pool
}

func NewThreadPostgres(db *pgxpool.Pool) *ThreadPostgres {
	return &ThreadPostgres{db: db}
}

func (r *ThreadPostgres) CreateThread(ctx context.Context, thread entity.Thread) (*entity.Thread, error) {
	threadID, err := parseUUID(thread.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid thread ID: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO threads (id, title)
		VALUES ($1, $2)
		RETURNING id, title, created_at`,
		threadID, thread.Title,
	)

	created, err := scanThread(row)
	if err != nil {
		return nil, fmt.Errorf("create thread: %w", err)
	}
	return created, nil
}

func (r *ThreadPostgres) GetThreadByID(ctx context.Context, id string) (*entity.Thread, error) {
	threadID, err := parseUUID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid thread ID: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		SELECT id, title, created_at
		FROM threads
		WHERE id = $1`,
		threadID,
	)

	thread, err := scanThread(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrThreadNotFound
		}
		return nil, fmt.Errorf("get thread: %w", err)
	}
	return thread, nil
}

// GetOrCreateThread fetches a thread, creating it with the given title when
// it does not exist yet. Chat requests with fresh thread ids go through here.
func (r *ThreadPostgres) GetOrCreateThread(ctx context.Context, id, title string) (*entity.Thread, error) {
	threadID, err := parseUUID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid thread ID: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO threads (id, title)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET title = threads.title
		RETURNING id, title, created_at`,
		threadID, title,
	)

	thread, err := scanThread(row)
	if err != nil {
		return nil, fmt.Errorf("get or create thread: %w", err)
	}
	return thread, nil
}

func (r *ThreadPostgres) UpdateThreadTitle(ctx context.Context, id, title string) (*entity.Thread, error) {
	threadID, err := parseUUID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid thread ID: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		UPDATE threads
		SET title = $2
		WHERE id = $1
		RETURNING id, title, created_at`,
		threadID, title,
	)

	thread, err := scanThread(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrThreadNotFound
		}
		return nil, fmt.Errorf("update thread title: %w", err)
	}
	return thread, nil
}

func (r *ThreadPostgres) DeleteThread(ctx context.Context, id string) error {
	threadID, err := parseUUID(id)
	if err != nil {
		return fmt.Errorf("invalid thread ID: %w", err)
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM threads WHERE id = $1`, threadID)
	if err != nil {
		return fmt.Errorf("delete thread: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrThreadNotFound
	}
	return nil
}

// CountThreadsByTitlePattern counts threads whose title contains any of the
// given substrings. Used by the knowledge stats endpoint.
func (r *ThreadPostgres) CountThreadsByTitlePattern(ctx context.Context, patterns []string) (int, error) {
	count := 0
	for _, pattern := range patterns {
		var n int
		err := r.db.QueryRow(ctx, `
			SELECT COUNT(*) FROM threads WHERE title LIKE '%' || $1 || '%'`,
			pattern,
		).Scan(&n)
		if err != nil {
			return 0, fmt.Errorf("count threads: %w", err)
		}
		count += n
	}
	return count, nil
}

func parseUUID(id string) (pgtype.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return pgtype.UUID{}, err
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}, nil
}

func uuidString(id pgtype.UUID) string {
	return uuid.UUID(id.Bytes).String()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanThread(row rowScanner) (*entity.Thread, error) {
	var (
		id        pgtype.UUID
		thread    entity.Thread
		createdAt pgtype.Timestamptz
	)
	if err := row.Scan(&id, &thread.Title, &createdAt); err != nil {
		return nil, err
	}
	thread.ID = uuidString(id)
	thread.CreatedAt = createdAt.Time
	return &thread, nil
}
