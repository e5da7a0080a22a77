package mapper

import (
	"encoding/json"

	"excel-analytics-be/internal/entity"
	"excel-analytics-be/internal/model"
)

type UploadMapper struct{}

func NewUploadMapper() *UploadMapper {
	return &UploadMapper{}
}

func (m *UploadMapper) ToEntity(u *model.Upload) *entity.Upload {
	if u == nil {
		return nil
	}

	columns := []string{}
	// Stored snapshot is a jsonb array; an unreadable value degrades to
	// empty columns the same way an unparseable workbook does.
	_ = json.Unmarshal([]byte(u.Columns), &columns)

	return &entity.Upload{
		Id:        u.Id,
		UserId:    u.UserId,
		FileName:  u.FileName,
		FilePath:  u.FilePath,
		Columns:   columns,
		CreatedAt: u.CreatedAt,
	}
}

func (m *UploadMapper) ToModel(u *entity.Upload) *model.Upload {
	if u == nil {
		return nil
	}

	columns := u.Columns
	if columns == nil {
		columns = []string{}
	}
	raw, _ := json.Marshal(columns)

	return &model.Upload{
		Id:        u.Id,
		UserId:    u.UserId,
		FileName:  u.FileName,
		FilePath:  u.FilePath,
		Columns:   string(raw),
		CreatedAt: u.CreatedAt,
	}
}

func (m *UploadMapper) ToEntities(uploads []*model.Upload) []*entity.Upload {
	entities := make([]*entity.Upload, len(uploads))
	for i, u := range uploads {
		entities[i] = m.ToEntity(u)
	}
	return entities
}
