package contract

import (
	"context"

	"excel-analytics-be/internal/entity"
	"excel-analytics-be/internal/repository/specification"

	"github.com/google/uuid"
)

// UploadRepository is the generic record store behind upload metadata.
// FindOne returns (nil, nil) when no record matches.
type UploadRepository interface {
	Create(ctx context.Context, upload *entity.Upload) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Upload, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Upload, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
