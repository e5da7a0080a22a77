package service

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"excel-analytics-be/internal/entity"
	"excel-analytics-be/internal/pkg/serverutils"
	"excel-analytics-be/internal/pkg/storage"
	"excel-analytics-be/internal/repository/contract"
	"excel-analytics-be/internal/repository/specification"
	"excel-analytics-be/internal/repository/unitofwork"
	"excel-analytics-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeUploadRepo struct {
	mu      sync.Mutex
	uploads []*entity.Upload
}

func (r *fakeUploadRepo) matches(u *entity.Upload, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if u.Id != sp.ID {
				return false
			}
		case specification.OwnedBy:
			if u.UserId != sp.UserID {
				return false
			}
		}
	}
	return true
}

func (r *fakeUploadRepo) Create(_ context.Context, upload *entity.Upload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.uploads = append(r.uploads, upload)
	return nil
}

func (r *fakeUploadRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.uploads[:0]
	for _, u := range r.uploads {
		if u.Id != id {
			kept = append(kept, u)
		}
	}
	r.uploads = kept
	return nil
}

func (r *fakeUploadRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Upload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.uploads {
		if r.matches(u, specs) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUploadRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Upload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Upload
	desc := false
	for _, s := range specs {
		if o, ok := s.(specification.OrderBy); ok && o.Field == "created_at" {
			desc = o.Desc
		}
	}
	for _, u := range r.uploads {
		if r.matches(u, specs) {
			result = append(result, u)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if desc {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *fakeUploadRepo) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(context.Background(), specs...)
	return int64(len(all)), nil
}

type fakeUow struct {
	uploads *fakeUploadRepo
	users   *fakeUserRepo
	logs    *fakeSystemLogRepo
}

func (u *fakeUow) Begin(_ context.Context) error { return nil }
func (u *fakeUow) Commit() error                 { return nil }
func (u *fakeUow) Rollback() error               { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository           { return u.users }
func (u *fakeUow) UploadRepository() contract.UploadRepository       { return u.uploads }
func (u *fakeUow) SystemLogRepository() contract.SystemLogRepository { return u.logs }

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(_ context.Context) unitofwork.UnitOfWork { return f.uow }

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.ActivityEvent
}

func (p *recordingPublisher) PublishActivity(_ context.Context, ev events.ActivityEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func newUploadFixture(t *testing.T) (IUploadService, *fakeUploadRepo, *recordingPublisher) {
	t.Helper()
	repo := &fakeUploadRepo{}
	pub := &recordingPublisher{}
	store := storage.NewDiskStorage(t.TempDir())
	svc := NewUploadService(&fakeFactory{uow: &fakeUow{uploads: repo}}, store, pub, nopLogger{})
	return svc, repo, pub
}

func TestIngestRejectsNonSpreadsheet(t *testing.T) {
	svc, repo, _ := newUploadFixture(t)

	_, err := svc.Ingest(context.Background(), uuid.New(), "report.pdf", []byte("%PDF-1.4"))
	assert.ErrorIs(t, err, serverutils.ErrInvalidFileType)
	assert.Empty(t, repo.uploads, "rejected uploads must not be recorded")
}

func TestIngestRoundTrip(t *testing.T) {
	svc, _, pub := newUploadFixture(t)
	userId := uuid.New()
	data := buildWorkbook(t, [][]interface{}{
		{"name", "age"},
		{"alice", 30},
		{"bob", 41},
	})

	res, err := svc.Ingest(context.Background(), userId, "people.xlsx", data)
	require.NoError(t, err)
	assert.Equal(t, "people.xlsx", res.FileName)
	assert.Equal(t, []string{"name", "age"}, res.Columns)

	got, name, err := svc.Download(context.Background(), userId, res.Id)
	require.NoError(t, err)
	assert.Equal(t, "people.xlsx", name)
	assert.Equal(t, data, got, "download returns the original bytes")

	preview, err := svc.Preview(context.Background(), userId, res.Id)
	require.NoError(t, err)
	assert.Len(t, preview.Rows, 2)
	assert.Equal(t, []string{"name", "age"}, preview.Columns)

	require.Len(t, pub.events, 1)
	assert.Equal(t, events.ActionIngested, pub.events[0].Action)
	assert.False(t, pub.events[0].Degraded)
}

func TestIngestDegradesOnUnparseableWorkbook(t *testing.T) {
	svc, _, pub := newUploadFixture(t)
	userId := uuid.New()

	res, err := svc.Ingest(context.Background(), userId, "broken.xlsx", []byte("not a workbook"))
	require.NoError(t, err, "an undecodable file is still recorded")
	assert.Empty(t, res.Columns)

	// The original bytes survive even when parsing failed.
	got, _, err := svc.Download(context.Background(), userId, res.Id)
	require.NoError(t, err)
	assert.Equal(t, []byte("not a workbook"), got)

	// Reads that need rows surface the decode failure.
	_, err = svc.Preview(context.Background(), userId, res.Id)
	assert.ErrorIs(t, err, serverutils.ErrUnsupportedFormat)

	require.Len(t, pub.events, 1)
	assert.True(t, pub.events[0].Degraded)
}

func TestPreviewEmptySheetHasNoColumns(t *testing.T) {
	svc, _, _ := newUploadFixture(t)
	userId := uuid.New()
	data := buildWorkbook(t, [][]interface{}{
		{"name", "age"},
	})

	res, err := svc.Ingest(context.Background(), userId, "empty.xlsx", data)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "age"}, res.Columns, "ingest keeps the header snapshot")

	preview, err := svc.Preview(context.Background(), userId, res.Id)
	require.NoError(t, err)
	assert.Empty(t, preview.Rows)
	assert.Empty(t, preview.Columns, "a sheet with no data rows previews empty")
}

func TestReadsConflateMissingAndForeign(t *testing.T) {
	svc, _, _ := newUploadFixture(t)
	owner := uuid.New()
	stranger := uuid.New()

	data := buildWorkbook(t, [][]interface{}{{"a"}, {1}})
	res, err := svc.Ingest(context.Background(), owner, "mine.xlsx", data)
	require.NoError(t, err)

	_, missingErr := svc.Show(context.Background(), owner, uuid.New())
	_, foreignErr := svc.Show(context.Background(), stranger, res.Id)
	assert.ErrorIs(t, missingErr, serverutils.ErrNotFoundOrUnauthorized)
	assert.ErrorIs(t, foreignErr, serverutils.ErrNotFoundOrUnauthorized,
		"a stranger cannot distinguish a foreign file from a missing one")

	_, _, err = svc.Download(context.Background(), stranger, res.Id)
	assert.ErrorIs(t, err, serverutils.ErrNotFoundOrUnauthorized)
}

func TestDeleteReportsOwnershipDistinctly(t *testing.T) {
	svc, _, _ := newUploadFixture(t)
	owner := uuid.New()
	stranger := uuid.New()

	data := buildWorkbook(t, [][]interface{}{{"a"}, {1}})
	res, err := svc.Ingest(context.Background(), owner, "mine.xlsx", data)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), stranger, res.Id)
	assert.ErrorIs(t, err, serverutils.ErrForbidden)

	err = svc.Delete(context.Background(), owner, uuid.New())
	assert.ErrorIs(t, err, serverutils.ErrNotFoundOrUnauthorized)
}

func TestDeleteRemovesRecordAndBlob(t *testing.T) {
	svc, repo, pub := newUploadFixture(t)
	owner := uuid.New()

	data := buildWorkbook(t, [][]interface{}{{"a"}, {1}})
	res, err := svc.Ingest(context.Background(), owner, "mine.xlsx", data)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), owner, res.Id))
	assert.Empty(t, repo.uploads)

	_, _, err = svc.Download(context.Background(), owner, res.Id)
	assert.ErrorIs(t, err, serverutils.ErrNotFoundOrUnauthorized)

	// Delete is not idempotent: the record is gone.
	err = svc.Delete(context.Background(), owner, res.Id)
	assert.ErrorIs(t, err, serverutils.ErrNotFoundOrUnauthorized)

	require.Len(t, pub.events, 2)
	assert.Equal(t, events.ActionDeleted, pub.events[1].Action)
}

func TestDeleteSurvivesMissingBlob(t *testing.T) {
	repo := &fakeUploadRepo{}
	store := storage.NewDiskStorage(t.TempDir())
	svc := NewUploadService(&fakeFactory{uow: &fakeUow{uploads: repo}}, store, nil, nopLogger{})
	owner := uuid.New()

	upload := &entity.Upload{
		Id:        uuid.New(),
		UserId:    owner,
		FileName:  "ghost.xlsx",
		FilePath:  "nowhere/ghost.xlsx",
		Columns:   []string{"a"},
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), upload))

	require.NoError(t, svc.Delete(context.Background(), owner, upload.Id),
		"a record whose blob is already gone is still deletable")
	assert.Empty(t, repo.uploads)
}

func TestDownloadMissingBlob(t *testing.T) {
	repo := &fakeUploadRepo{}
	store := storage.NewDiskStorage(t.TempDir())
	svc := NewUploadService(&fakeFactory{uow: &fakeUow{uploads: repo}}, store, nil, nopLogger{})
	owner := uuid.New()

	upload := &entity.Upload{
		Id:        uuid.New(),
		UserId:    owner,
		FileName:  "ghost.xlsx",
		FilePath:  "nowhere/ghost.xlsx",
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), upload))

	_, _, err := svc.Download(context.Background(), owner, upload.Id)
	assert.ErrorIs(t, err, serverutils.ErrFileMissingOnDisk)
}

func TestHistoryNewestFirst(t *testing.T) {
	repo := &fakeUploadRepo{}
	store := storage.NewDiskStorage(t.TempDir())
	svc := NewUploadService(&fakeFactory{uow: &fakeUow{uploads: repo}}, store, nil, nopLogger{})
	owner := uuid.New()
	other := uuid.New()

	base := time.Now()
	for i, name := range []string{"old.xlsx", "mid.xlsx", "new.xlsx"} {
		require.NoError(t, repo.Create(context.Background(), &entity.Upload{
			Id:        uuid.New(),
			UserId:    owner,
			FileName:  name,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.Create(context.Background(), &entity.Upload{
		Id:        uuid.New(),
		UserId:    other,
		FileName:  "foreign.xlsx",
		CreatedAt: base.Add(time.Hour),
	}))

	history, err := svc.GetHistory(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, history, 3, "history is scoped to the owner")
	assert.Equal(t, "new.xlsx", history[0].FileName)
	assert.Equal(t, "old.xlsx", history[2].FileName)
}
