package implementation

import (
	"context"
	"errors"

	"excel-analytics-be/internal/entity"
	"excel-analytics-be/internal/mapper"
	"excel-analytics-be/internal/model"
	"excel-analytics-be/internal/repository/contract"
	"excel-analytics-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UploadRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UploadMapper
}

func NewUploadRepository(db *gorm.DB) contract.UploadRepository {
	return &UploadRepositoryImpl{
		db:     db,
		mapper: mapper.NewUploadMapper(),
	}
}

func (r *UploadRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UploadRepositoryImpl) Create(ctx context.Context, upload *entity.Upload) error {
	m := r.mapper.ToModel(upload)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*upload = *r.mapper.ToEntity(m)
	return nil
}

func (r *UploadRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Upload{}, id).Error
}

func (r *UploadRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Upload, error) {
	var m model.Upload
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *UploadRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Upload, error) {
	var models []*model.Upload
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *UploadRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Upload{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
