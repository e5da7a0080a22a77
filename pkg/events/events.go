package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicUploadActivity carries every upload lifecycle event on the
// in-process bus. The audit consumer persists them as system logs.
const TopicUploadActivity = "upload.activity"

const (
	ActionIngested = "upload.ingested"
	ActionDeleted  = "upload.deleted"
	ActionExported = "report.exported"
)

type ActivityEvent struct {
	UserId     uuid.UUID  `json:"user_id"`
	UploadId   *uuid.UUID `json:"upload_id,omitempty"`
	Action     string     `json:"action"`
	FileName   string     `json:"file_name,omitempty"`
	Degraded   bool       `json:"degraded,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}
