package database

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Generation struct {
	ID            uuid.UUID
	UserID        uuid.NullUUID
	Kind          string
	Status        string
	SourceName    sql.NullString
	Markdown      sql.NullString
	Critique      sql.NullString
	DocxObjectKey sql.NullString
	Error         sql.NullString
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
