package specification

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreatedSince keeps records created at or after a point in time.
type CreatedSince struct {
	After time.Time
}

func (s CreatedSince) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at >= ?", s.After)
}

// ByID filters by primary key.
type ByID struct {
	ID uuid.UUID
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// OwnedBy scopes a query to one owner. Every upload read goes through
// this; ownership is never inferred from ambient state.
type OwnedBy struct {
	UserID uuid.UUID
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// ByEmail filters users by email.
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

// ByLevel filters system logs by level.
type ByLevel struct {
	Level string
}

func (s ByLevel) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("level = ?", s.Level)
}

// OrderBy applies ordering.
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, direction))
}

// Pagination limits and offsets a result set.
type Pagination struct {
	Limit  int
	Offset int
}

func (s Pagination) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.Limit).Offset(s.Offset)
}
