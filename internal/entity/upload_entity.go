package entity

import (
	"time"

	"github.com/google/uuid"
)

// Upload is a stored spreadsheet and the column snapshot taken when it
// was ingested. The raw bytes live on disk at FilePath; rows are
// re-parsed from there on demand.
type Upload struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	FileName  string
	FilePath  string
	Columns   []string
	CreatedAt time.Time
}
