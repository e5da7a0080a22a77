package dto

import (
	"time"

	"github.com/google/uuid"
)

type SystemLogResponse struct {
	Id        uuid.UUID `json:"id"`
	Level     string    `json:"level"`
	Module    *string   `json:"module,omitempty"`
	Message   string    `json:"message"`
	Details   *string   `json:"details,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ListSystemLogsResponse struct {
	Logs  []*SystemLogResponse `json:"logs"`
	Total int64                `json:"total"`
}

// AdminStatsResponse is the dashboard headline counters.
type AdminStatsResponse struct {
	TotalUsers   int64 `json:"total_users"`
	TotalUploads int64 `json:"total_uploads"`
	RecentLogs   int64 `json:"recent_logs"`
}

// AdminUserResponse omits the password hash; it never leaves the
// service layer.
type AdminUserResponse struct {
	Id        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type ListUsersResponse struct {
	Users []*AdminUserResponse `json:"users"`
	Total int64                `json:"total"`
}
