package implementation

import (
	"context"

	"excel-analytics-be/internal/entity"
	"excel-analytics-be/internal/mapper"
	"excel-analytics-be/internal/model"
	"excel-analytics-be/internal/repository/contract"
	"excel-analytics-be/internal/repository/specification"

	"gorm.io/gorm"
)

type SystemLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SystemLogMapper
}

func NewSystemLogRepository(db *gorm.DB) contract.SystemLogRepository {
	return &SystemLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewSystemLogMapper(),
	}
}

func (r *SystemLogRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SystemLogRepositoryImpl) Create(ctx context.Context, log *entity.SystemLog) error {
	m := r.mapper.ToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.ToEntity(m)
	return nil
}

func (r *SystemLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SystemLog, error) {
	var models []*model.SystemLog
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *SystemLogRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.SystemLog{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
