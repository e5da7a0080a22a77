package entity

import (
	"time"

	"github.com/google/uuid"
)

type SystemLog struct {
	Id        uuid.UUID
	Level     string
	Module    *string
	Message   string
	Details   *string
	CreatedAt time.Time
}
