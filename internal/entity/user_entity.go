package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type User struct {
	Id           uuid.UUID
	Email        string
	FullName     string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
}
