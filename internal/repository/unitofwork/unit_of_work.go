package unitofwork

import (
	"context"

	"excel-analytics-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	UploadRepository() contract.UploadRepository
	SystemLogRepository() contract.SystemLogRepository
}
