package service

import (
	"context"
	"time"

	"excel-analytics-be/internal/dto"
	"excel-analytics-be/internal/entity"
	"excel-analytics-be/internal/repository/specification"
	"excel-analytics-be/internal/repository/unitofwork"
)

// recentLogWindow bounds the dashboard's "recent activity" counter.
const recentLogWindow = 24 * time.Hour

type IAdminService interface {
	GetStats(ctx context.Context) (*dto.AdminStatsResponse, error)
	ListUsers(ctx context.Context, limit, offset int) (*dto.ListUsersResponse, error)
	GetLogs(ctx context.Context, level string, limit, offset int) (*dto.ListSystemLogsResponse, error)
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory) IAdminService {
	return &adminService{uowFactory: uowFactory}
}

func (s *adminService) GetStats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	users, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return nil, err
	}
	uploads, err := uow.UploadRepository().Count(ctx)
	if err != nil {
		return nil, err
	}
	recentLogs, err := uow.SystemLogRepository().Count(ctx,
		specification.CreatedSince{After: time.Now().Add(-recentLogWindow)},
	)
	if err != nil {
		return nil, err
	}

	return &dto.AdminStatsResponse{
		TotalUsers:   users,
		TotalUploads: uploads,
		RecentLogs:   recentLogs,
	}, nil
}

func (s *adminService) ListUsers(ctx context.Context, limit, offset int) (*dto.ListUsersResponse, error) {
	limit = clampLimit(limit)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	users, err := uow.UserRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}
	total, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.AdminUserResponse, len(users))
	for i, u := range users {
		result[i] = toAdminUserResponse(u)
	}
	return &dto.ListUsersResponse{Users: result, Total: total}, nil
}

func (s *adminService) GetLogs(ctx context.Context, level string, limit, offset int) (*dto.ListSystemLogsResponse, error) {
	limit = clampLimit(limit)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	}
	countSpecs := []specification.Specification{}
	if level != "" {
		specs = append(specs, specification.ByLevel{Level: level})
		countSpecs = append(countSpecs, specification.ByLevel{Level: level})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	logs, err := uow.SystemLogRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	total, err := uow.SystemLogRepository().Count(ctx, countSpecs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.SystemLogResponse, len(logs))
	for i, l := range logs {
		result[i] = &dto.SystemLogResponse{
			Id:        l.Id,
			Level:     l.Level,
			Module:    l.Module,
			Message:   l.Message,
			Details:   l.Details,
			CreatedAt: l.CreatedAt,
		}
	}

	return &dto.ListSystemLogsResponse{Logs: result, Total: total}, nil
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 500 {
		return 50
	}
	return limit
}

func toAdminUserResponse(u *entity.User) *dto.AdminUserResponse {
	return &dto.AdminUserResponse{
		Id:        u.Id,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}
