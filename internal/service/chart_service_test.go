package service

import (
	"context"
	"testing"
	"time"

	"excel-analytics-be/internal/dto"
	"excel-analytics-be/internal/pkg/serverutils"
	"excel-analytics-be/pkg/events"
	"excel-analytics-be/pkg/spreadsheet"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUploadService serves one fixed dataset for any upload id.
type stubUploadService struct {
	ds *spreadsheet.Dataset
}

func (s *stubUploadService) Ingest(context.Context, uuid.UUID, string, []byte) (*dto.UploadResponse, error) {
	return nil, nil
}
func (s *stubUploadService) GetHistory(context.Context, uuid.UUID) ([]*dto.UploadResponse, error) {
	return nil, nil
}
func (s *stubUploadService) Show(context.Context, uuid.UUID, uuid.UUID) (*dto.UploadResponse, error) {
	return nil, nil
}
func (s *stubUploadService) Preview(context.Context, uuid.UUID, uuid.UUID) (*dto.PreviewResponse, error) {
	return nil, nil
}
func (s *stubUploadService) Dataset(context.Context, uuid.UUID, uuid.UUID) (*spreadsheet.Dataset, error) {
	return s.ds, nil
}
func (s *stubUploadService) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (s *stubUploadService) Download(context.Context, uuid.UUID, uuid.UUID) ([]byte, string, error) {
	return nil, "", nil
}

func chartFixtureDataset() *spreadsheet.Dataset {
	return &spreadsheet.Dataset{
		Columns: []string{"age", "score"},
		Rows: []spreadsheet.Row{
			{"age": spreadsheet.NumberCell(30), "score": spreadsheet.NumberCell(80)},
			{"age": spreadsheet.NumberCell(41), "score": spreadsheet.NumberCell(95)},
		},
	}
}

func newChartFixture(t *testing.T) (IChartService, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	svc := NewChartService(&stubUploadService{ds: chartFixtureDataset()}, pub, time.Minute)
	return svc, pub
}

// renderedSession creates a session and drives it through selection
// and a series build so it is exportable.
func renderedSession(t *testing.T, svc IChartService, userId uuid.UUID) string {
	t.Helper()
	ctx := context.Background()

	created, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	_, err = svc.SetSelection(ctx, created.Id, &dto.SetChartSelectionRequest{
		Type:   "scatter",
		FieldX: "age",
		FieldY: "score",
	})
	require.NoError(t, err)

	_, err = svc.BuildSeries(ctx, userId, created.Id, &dto.BuildSeriesRequest{UploadId: uuid.New()})
	require.NoError(t, err)
	return created.Id
}

func TestExportImageBeforeRender(t *testing.T) {
	svc, pub := newChartFixture(t)
	ctx := context.Background()

	created, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	_, _, err = svc.ExportImage(ctx, uuid.New(), created.Id, []byte{1, 2, 3})
	assert.ErrorIs(t, err, serverutils.ErrNothingRendered)
	assert.Empty(t, pub.events, "a refused export leaves no audit trace")
}

func TestExportImagePublishesAuditEvent(t *testing.T) {
	svc, pub := newChartFixture(t)
	userId := uuid.New()
	sessionId := renderedSession(t, svc, userId)

	img, name, err := svc.ExportImage(context.Background(), userId, sessionId, []byte{0x89, 0x50, 0x4e, 0x47})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, img)
	assert.Equal(t, "scatter.png", name)

	require.Len(t, pub.events, 1)
	assert.Equal(t, events.ActionExported, pub.events[0].Action)
	assert.Equal(t, userId, pub.events[0].UserId)
}

func TestExportUnknownSession(t *testing.T) {
	svc, _ := newChartFixture(t)

	_, _, err := svc.ExportImage(context.Background(), uuid.New(), "no-such-session", []byte{1})
	assert.ErrorIs(t, err, serverutils.ErrSessionNotFound)
}
