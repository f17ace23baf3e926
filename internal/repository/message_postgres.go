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

// MessageRepository defines the interface for message persistence
type MessageRepository interface {
	CreateMessage(ctx context.Context, message entity.Message) (*entity.Message, error)
	UpsertMessage(ctx context.Context, message entity.Message) (*entity.Message, error)
	GetMessageByID(ctx context.Context, id string) (*entity.Message, error)
	GetMessagesByThread(ctx context.Context, threadID string, limit int) ([]entity.Message, error)
	DeleteMessage(ctx context.Context, id string) error
	CountMessagesByRole(ctx context.Context, role entity.MessageRole) (int, error)
}

var _ MessageRepository = &MessagePostgres{}

// MessagePostgres implements MessageRepository using PostgreSQL
type MessagePostgres struct {
	db *pgxpool.Pool
}

func NewMessagePostgres(db *pgxpool.Pool) *MessagePostgres {
	return &MessagePostgres{db: db}
}

func (r *MessagePostgres) CreateMessage(ctx context.Context, message entity.Message) (*entity.Message, error) {
	if err := message.Role.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidRole, message.Role)
	}

	messageID, err := parseUUID(message.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid message ID: %w", err)
	}
	threadID, err := parseUUID(message.ThreadID)
	if err != nil {
		return nil, fmt.Errorf("invalid thread ID: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO messages (id, thread_id, role, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, thread_id, role, content, created_at`,
		messageID, threadID, string(message.Role), message.Content,
	)

	created, err := scanMessage(row)
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return created, nil
}

// UpsertMessage writes a message, replacing content and role when the id
// already exists. Mobile sync replays deltas through here so it must be
// idempotent.
func (r *MessagePostgres) UpsertMessage(ctx context.Context, message entity.Message) (*entity.Message, error) {
	if err := message.Role.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidRole, message.Role)
	}

	messageID, err := parseUUID(message.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid message ID: %w", err)
	}
	threadID, err := parseUUID(message.ThreadID)
	if err != nil {
		return nil, fmt.Errorf("invalid thread ID: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO messages (id, thread_id, role, content)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET role = EXCLUDED.role, content = EXCLUDED.content
		RETURNING id, thread_id, role, content, created_at`,
		messageID, threadID, string(message.Role), message.Content,
	)

	upserted, err := scanMessage(row)
	if err != nil {
		return nil, fmt.Errorf("upsert message: %w", err)
	}
	return upserted, nil
}

func (r *MessagePostgres) GetMessageByID(ctx context.Context, id string) (*entity.Message, error) {
	messageID, err := parseUUID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid message ID: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		SELECT id, thread_id, role, content, created_at
		FROM messages
		WHERE id = $1`,
		messageID,
	)

	message, err := scanMessage(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrMessageNotFound
		}
		return nil, fmt.Errorf("get message: %w", err)
	}
	return message, nil
}

// GetMessagesByThread returns the most recent messages of a thread in
// chronological order. limit <= 0 means no limit.
func (r *MessagePostgres) GetMessagesByThread(ctx context.Context, threadID string, limit int) ([]entity.Message, error) {
	id, err := parseUUID(threadID)
	if err != nil {
		return nil, fmt.Errorf("invalid thread ID: %w", err)
	}

	query := `
		SELECT id, thread_id, role, content, created_at
		FROM (
			SELECT id, thread_id, role, content, created_at
			FROM messages
			WHERE thread_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		) recent
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, id, nullableLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("get thread messages: %w", err)
	}
	defer rows.Close()

	var messages []entity.Message
	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, *message)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return messages, nil
}

func (r *MessagePostgres) DeleteMessage(ctx context.Context, id string) error {
	messageID, err := parseUUID(id)
	if err != nil {
		return fmt.Errorf("invalid message ID: %w", err)
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM messages WHERE id = $1`, messageID)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrMessageNotFound
	}
	return nil
}

func (r *MessagePostgres) CountMessagesByRole(ctx context.Context, role entity.MessageRole) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM messages WHERE role = $1`,
		string(role),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return count, nil
}

func nullableLimit(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}

func scanMessage(row rowScanner) (*entity.Message, error) {
	var (
		id        pgtype.UUID
		threadID  pgtype.UUID
		role      string
		message   entity.Message
		createdAt pgtype.Timestamptz
	)
	if err := row.Scan(&id, &threadID, &role, &message.Content, &createdAt); err != nil {
		return nil, err
	}
	message.ID = uuidString(id)
	message.ThreadID = uuidString(threadID)
	message.Role = entity.MessageRole(role)
	message.CreatedAt = createdAt.Time
	return &message, nil
}
