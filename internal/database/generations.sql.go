package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

const createGeneration = `-- name: CreateGeneration :exec
INSERT INTO generations (
id, user_id, kind, status, source_name)
VALUES ( $1, $2, $3, $4, $5)
ON CONFLICT (id)
DO UPDATE SET
    status = EXCLUDED.status,
    error = NULL,
    updated_at = CURRENT_TIMESTAMP
`

type CreateGenerationParams struct {
	ID         uuid.UUID
	UserID     uuid.NullUUID
	Kind       string
	Status     string
	SourceName sql.NullString
}

func (q *Queries) CreateGeneration(ctx context.Context, arg CreateGenerationParams) error {
	_, err := q.db.ExecContext(ctx, createGeneration,
		arg.ID,
		arg.UserID,
		arg.Kind,
		arg.Status,
		arg.SourceName,
	)
	return err
}

const completeGeneration = `-- name: CompleteGeneration :exec
UPDATE generations
SET status = 'completed',
    markdown = $2,
    critique = $3,
    docx_object_key = $4,
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1
`

type CompleteGenerationParams struct {
	ID            uuid.UUID
	Markdown      sql.NullString
	Critique      sql.NullString
	DocxObjectKey sql.NullString
}

func (q *Queries) CompleteGeneration(ctx context.Context, arg CompleteGenerationParams) error {
	_, err := q.db.ExecContext(ctx, completeGeneration,
		arg.ID,
		arg.Markdown,
		arg.Critique,
		arg.DocxObjectKey,
	)
	return err
}

const failGeneration = `-- name: FailGeneration :exec
UPDATE generations
SET status = 'failed',
    error = $2,
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1
`

type FailGenerationParams struct {
	ID    uuid.UUID
	Error sql.NullString
}

func (q *Queries) FailGeneration(ctx context.Context, arg FailGenerationParams) error {
	_, err := q.db.ExecContext(ctx, failGeneration, arg.ID, arg.Error)
	return err
}

const getGeneration = `-- name: GetGeneration :one
SELECT id, user_id, kind, status, source_name, markdown, critique, docx_object_key, error, created_at, updated_at FROM generations WHERE id = $1
`

func (q *Queries) GetGeneration(ctx context.Context, id uuid.UUID) (Generation, error) {
	row := q.db.QueryRowContext(ctx, getGeneration, id)
	var i Generation
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Kind,
		&i.Status,
		&i.SourceName,
		&i.Markdown,
		&i.Critique,
		&i.DocxObjectKey,
		&i.Error,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
