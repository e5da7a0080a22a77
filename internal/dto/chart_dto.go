package dto

import (
	"github.com/google/uuid"

	"excel-analytics-be/pkg/chart"
)

type CreateChartSessionResponse struct {
	Id string `json:"id"`
}

type SetChartModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=2d 3d distribution"`
}

type SetChartSelectionRequest struct {
	Type   string `json:"type" validate:"required"`
	FieldX string `json:"field_x"`
	FieldY string `json:"field_y"`
	FieldZ string `json:"field_z"`
	Color  string `json:"color"`
}

type ChartSessionStateResponse struct {
	State     string          `json:"state"`
	Selection chart.Selection `json:"selection"`
}

type BuildSeriesRequest struct {
	UploadId uuid.UUID `json:"upload_id" validate:"required"`
}

type SummaryRequest struct {
	UploadId uuid.UUID `json:"upload_id" validate:"required"`
}

type SummaryResponse struct {
	Summary string `json:"summary"`
}
