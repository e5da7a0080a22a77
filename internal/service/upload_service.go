package service

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"excel-analytics-be/internal/dto"
	"excel-analytics-be/internal/entity"
	"excel-analytics-be/internal/pkg/logger"
	"excel-analytics-be/internal/pkg/serverutils"
	"excel-analytics-be/internal/pkg/storage"
	"excel-analytics-be/internal/repository/specification"
	"excel-analytics-be/internal/repository/unitofwork"
	"excel-analytics-be/pkg/events"
	"excel-analytics-be/pkg/spreadsheet"

	"github.com/google/uuid"
)

type IUploadService interface {
	Ingest(ctx context.Context, userId uuid.UUID, fileName string, data []byte) (*dto.UploadResponse, error)
	GetHistory(ctx context.Context, userId uuid.UUID) ([]*dto.UploadResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.UploadResponse, error)
	Preview(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.PreviewResponse, error)
	Dataset(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*spreadsheet.Dataset, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	Download(ctx context.Context, userId uuid.UUID, id uuid.UUID) ([]byte, string, error)
}

type uploadService struct {
	uowFactory unitofwork.RepositoryFactory
	storage    storage.IStorage
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewUploadService(
	uowFactory unitofwork.RepositoryFactory,
	store storage.IStorage,
	publisher IPublisherService,
	sysLogger logger.ILogger,
) IUploadService {
	return &uploadService{
		uowFactory: uowFactory,
		storage:    store,
		publisher:  publisher,
		logger:     sysLogger,
	}
}

func (s *uploadService) Ingest(ctx context.Context, userId uuid.UUID, fileName string, data []byte) (*dto.UploadResponse, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext != ".xls" && ext != ".xlsx" {
		return nil, serverutils.ErrInvalidFileType
	}

	path, err := s.storage.Save(fileName, data)
	if err != nil {
		return nil, err
	}

	// A workbook that cannot be decoded is still recorded, with empty
	// columns. The partial failure is preserved, not masked.
	columns := []string{}
	degraded := false
	ds, err := spreadsheet.Parse(data)
	if err != nil {
		degraded = true
		s.logger.Warn("upload", "stored workbook could not be parsed, recording with empty columns", map[string]interface{}{
			"file":  fileName,
			"error": err.Error(),
		})
	} else {
		columns = ds.Columns
	}

	upload := &entity.Upload{
		Id:        uuid.New(),
		UserId:    userId,
		FileName:  fileName,
		FilePath:  path,
		Columns:   columns,
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.UploadRepository().Create(ctx, upload); err != nil {
		return nil, err
	}

	s.publishActivity(ctx, events.ActivityEvent{
		UserId:     userId,
		UploadId:   &upload.Id,
		Action:     events.ActionIngested,
		FileName:   fileName,
		Degraded:   degraded,
		OccurredAt: time.Now(),
	})

	return toUploadResponse(upload), nil
}

func (s *uploadService) GetHistory(ctx context.Context, userId uuid.UUID) ([]*dto.UploadResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	uploads, err := uow.UploadRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.UploadResponse, len(uploads))
	for i, u := range uploads {
		result[i] = toUploadResponse(u)
	}
	return result, nil
}

func (s *uploadService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.UploadResponse, error) {
	upload, err := s.findOwned(ctx, userId, id)
	if err != nil {
		return nil, err
	}
	return toUploadResponse(upload), nil
}

func (s *uploadService) Preview(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.PreviewResponse, error) {
	ds, err := s.Dataset(ctx, userId, id)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]interface{}, len(ds.Rows))
	for i, row := range ds.Rows {
		obj := make(map[string]interface{}, len(row))
		for col, cell := range row {
			obj[col] = cell.Value()
		}
		rows[i] = obj
	}

	// A sheet with zero data rows previews as empty columns rather
	// than erroring.
	columns := ds.Columns
	if len(ds.Rows) == 0 {
		columns = []string{}
	}

	return &dto.PreviewResponse{Rows: rows, Columns: columns}, nil
}

// Dataset re-parses the stored blob so reads always reflect the
// current file content, not the header snapshot taken at ingest.
func (s *uploadService) Dataset(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*spreadsheet.Dataset, error) {
	upload, err := s.findOwned(ctx, userId, id)
	if err != nil {
		return nil, err
	}

	data, err := s.storage.Read(upload.FilePath)
	if err != nil {
		return nil, serverutils.ErrFileMissingOnDisk
	}

	ds, err := spreadsheet.Parse(data)
	if err != nil {
		return nil, serverutils.ErrUnsupportedFormat
	}
	return ds, nil
}

func (s *uploadService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	upload, err := uow.UploadRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if upload == nil {
		return serverutils.ErrNotFoundOrUnauthorized
	}
	// The delete path reports an ownership mismatch explicitly,
	// unlike the read paths.
	if upload.UserId != userId {
		return serverutils.ErrForbidden
	}

	// Removing the blob is best effort: a record whose file is already
	// gone is still deletable.
	if s.storage.Exists(upload.FilePath) {
		if err := s.storage.Remove(upload.FilePath); err != nil {
			s.logger.Warn("upload", "failed to remove stored file", map[string]interface{}{
				"path":  upload.FilePath,
				"error": err.Error(),
			})
		}
	} else {
		s.logger.Warn("upload", "stored file already missing on delete", map[string]interface{}{
			"path": upload.FilePath,
		})
	}

	if err := uow.UploadRepository().Delete(ctx, id); err != nil {
		return err
	}

	s.publishActivity(ctx, events.ActivityEvent{
		UserId:     userId,
		UploadId:   &id,
		Action:     events.ActionDeleted,
		FileName:   upload.FileName,
		OccurredAt: time.Now(),
	})
	return nil
}

func (s *uploadService) Download(ctx context.Context, userId uuid.UUID, id uuid.UUID) ([]byte, string, error) {
	upload, err := s.findOwned(ctx, userId, id)
	if err != nil {
		return nil, "", err
	}

	if !s.storage.Exists(upload.FilePath) {
		return nil, "", serverutils.ErrFileMissingOnDisk
	}
	data, err := s.storage.Read(upload.FilePath)
	if err != nil {
		return nil, "", serverutils.ErrFileMissingOnDisk
	}
	return data, upload.FileName, nil
}

// findOwned fetches a record scoped to its owner. Missing records and
// foreign records are indistinguishable to the caller.
func (s *uploadService) findOwned(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*entity.Upload, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	upload, err := uow.UploadRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if upload == nil {
		return nil, serverutils.ErrNotFoundOrUnauthorized
	}
	return upload, nil
}

func (s *uploadService) publishActivity(ctx context.Context, ev events.ActivityEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishActivity(ctx, ev); err != nil {
		s.logger.Warn("upload", "failed to publish activity event", map[string]interface{}{
			"action": ev.Action,
			"error":  err.Error(),
		})
	}
}

func toUploadResponse(u *entity.Upload) *dto.UploadResponse {
	return &dto.UploadResponse{
		Id:        u.Id,
		FileName:  u.FileName,
		Columns:   u.Columns,
		CreatedAt: u.CreatedAt,
	}
}
