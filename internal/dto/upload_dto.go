package dto

import (
	"time"

	"github.com/google/uuid"
)

// UploadResponse deliberately omits the storage path: it is an
// internal locator, never serialized to clients.
type UploadResponse struct {
	Id        uuid.UUID `json:"id"`
	FileName  string    `json:"file_name"`
	Columns   []string  `json:"columns"`
	CreatedAt time.Time `json:"created_at"`
}

type PreviewResponse struct {
	Rows    []map[string]interface{} `json:"rows"`
	Columns []string                 `json:"columns"`
}
