package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"excel-analytics-be/internal/dto"
	"excel-analytics-be/internal/pkg/serverutils"
	"excel-analytics-be/pkg/chart"
	"excel-analytics-be/pkg/chart/export"
	"excel-analytics-be/pkg/events"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

type IChartService interface {
	CreateSession(ctx context.Context) (*dto.CreateChartSessionResponse, error)
	SetMode(ctx context.Context, sessionId string, req *dto.SetChartModeRequest) (*dto.ChartSessionStateResponse, error)
	SetSelection(ctx context.Context, sessionId string, req *dto.SetChartSelectionRequest) (*dto.ChartSessionStateResponse, error)
	BuildSeries(ctx context.Context, userId uuid.UUID, sessionId string, req *dto.BuildSeriesRequest) (*chart.Spec, error)
	Summary(ctx context.Context, userId uuid.UUID, uploadId uuid.UUID) (*dto.SummaryResponse, error)
	ExportImage(ctx context.Context, userId uuid.UUID, sessionId string, image []byte) ([]byte, string, error)
	ExportReport(ctx context.Context, userId uuid.UUID, sessionId string, uploadId uuid.UUID, image []byte) ([]byte, string, error)
}

// capturedChart wraps image bytes the external renderer produced; it
// exposes the native view-export capability the exporter prefers.
type capturedChart struct {
	img []byte
}

func (c capturedChart) ExportView() ([]byte, error) {
	return c.img, nil
}

type chartService struct {
	sessions      *gocache.Cache
	uploadService IUploadService
	exporter      *export.Exporter
	publisher     IPublisherService
}

func NewChartService(uploadService IUploadService, publisher IPublisherService, sessionTTL time.Duration) IChartService {
	return &chartService{
		sessions:      gocache.New(sessionTTL, 10*time.Minute),
		uploadService: uploadService,
		exporter:      export.NewExporter(),
		publisher:     publisher,
	}
}

func (s *chartService) CreateSession(_ context.Context) (*dto.CreateChartSessionResponse, error) {
	id := uuid.NewString()
	s.sessions.SetDefault(id, chart.NewSession())
	return &dto.CreateChartSessionResponse{Id: id}, nil
}

func (s *chartService) session(id string) (*chart.Session, error) {
	v, ok := s.sessions.Get(id)
	if !ok {
		return nil, serverutils.ErrSessionNotFound
	}
	return v.(*chart.Session), nil
}

func (s *chartService) touch(id string, sess *chart.Session) {
	s.sessions.SetDefault(id, sess)
}

func (s *chartService) SetMode(_ context.Context, sessionId string, req *dto.SetChartModeRequest) (*dto.ChartSessionStateResponse, error) {
	sess, err := s.session(sessionId)
	if err != nil {
		return nil, err
	}
	if err := sess.SetMode(chart.Mode(req.Mode)); err != nil {
		return nil, serverutils.NewAppError(400, "INVALID_MODE", err.Error())
	}
	s.touch(sessionId, sess)
	return sessionState(sess), nil
}

func (s *chartService) SetSelection(_ context.Context, sessionId string, req *dto.SetChartSelectionRequest) (*dto.ChartSessionStateResponse, error) {
	sess, err := s.session(sessionId)
	if err != nil {
		return nil, err
	}
	if err := sess.SetType(chart.Type(req.Type)); err != nil {
		return nil, serverutils.NewAppError(400, "INVALID_CHART_TYPE", err.Error())
	}
	sess.SetFields(req.FieldX, req.FieldY, req.FieldZ, req.Color)
	s.touch(sessionId, sess)
	return sessionState(sess), nil
}

func (s *chartService) BuildSeries(ctx context.Context, userId uuid.UUID, sessionId string, req *dto.BuildSeriesRequest) (*chart.Spec, error) {
	sess, err := s.session(sessionId)
	if err != nil {
		return nil, err
	}

	ds, err := s.uploadService.Dataset(ctx, userId, req.UploadId)
	if err != nil {
		return nil, err
	}

	spec, err := sess.Build(ds)
	if err != nil {
		if errors.Is(err, chart.ErrIncompleteSelection) {
			return nil, serverutils.ErrIncompleteSelection
		}
		return nil, serverutils.NewAppError(400, "INVALID_CHART_TYPE", err.Error())
	}
	s.touch(sessionId, sess)
	return spec, nil
}

func (s *chartService) Summary(ctx context.Context, userId uuid.UUID, uploadId uuid.UUID) (*dto.SummaryResponse, error) {
	ds, err := s.uploadService.Dataset(ctx, userId, uploadId)
	if err != nil {
		return nil, err
	}
	return &dto.SummaryResponse{Summary: chart.Summarize(ds.Rows)}, nil
}

func (s *chartService) ExportImage(ctx context.Context, userId uuid.UUID, sessionId string, image []byte) ([]byte, string, error) {
	sess, err := s.session(sessionId)
	if err != nil {
		return nil, "", err
	}
	if !sess.Renderable() {
		return nil, "", serverutils.ErrNothingRendered
	}

	img, err := s.exporter.Image(capturedChart{img: image})
	if err != nil {
		return nil, "", serverutils.ErrNothingRendered
	}

	_ = sess.MarkExported()
	s.touch(sessionId, sess)

	// Image downloads are audit-relevant exports just like reports.
	if s.publisher != nil {
		_ = s.publisher.PublishActivity(ctx, events.ActivityEvent{
			UserId:     userId,
			Action:     events.ActionExported,
			OccurredAt: time.Now(),
		})
	}

	return img, fmt.Sprintf("%s.png", sess.Selection.Type), nil
}

func (s *chartService) ExportReport(ctx context.Context, userId uuid.UUID, sessionId string, uploadId uuid.UUID, image []byte) ([]byte, string, error) {
	sess, err := s.session(sessionId)
	if err != nil {
		return nil, "", err
	}
	if !sess.Renderable() {
		return nil, "", serverutils.ErrNothingRendered
	}

	ds, err := s.uploadService.Dataset(ctx, userId, uploadId)
	if err != nil {
		return nil, "", err
	}
	summary := chart.Summarize(ds.Rows)

	doc, err := s.exporter.Report(capturedChart{img: image}, sess.Selection, len(ds.Rows), summary)
	if err != nil {
		if errors.Is(err, chart.ErrNothingRendered) {
			return nil, "", serverutils.ErrNothingRendered
		}
		return nil, "", err
	}

	_ = sess.MarkExported()
	s.touch(sessionId, sess)

	if s.publisher != nil {
		_ = s.publisher.PublishActivity(ctx, events.ActivityEvent{
			UserId:     userId,
			UploadId:   &uploadId,
			Action:     events.ActionExported,
			OccurredAt: time.Now(),
		})
	}

	return doc, fmt.Sprintf("%s-chart-report.pdf", sess.Selection.Type), nil
}

func sessionState(sess *chart.Session) *dto.ChartSessionStateResponse {
	return &dto.ChartSessionStateResponse{
		State:     string(sess.State),
		Selection: sess.Selection,
	}
}
