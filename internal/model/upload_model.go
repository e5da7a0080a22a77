package model

import (
	"time"

	"github.com/google/uuid"
)

type Upload struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	FileName  string    `gorm:"type:varchar(255);not null"`
	FilePath  string    `gorm:"type:varchar(512);not null"`
	Columns   string    `gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (Upload) TableName() string {
	return "uploads"
}
