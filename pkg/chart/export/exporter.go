// Package export composes rendered chart images into downloadable
// artifacts. Pixel drawing stays external: the exporter only captures
// what a renderer already produced and lays a report around it.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"excel-analytics-be/pkg/chart"

	"github.com/go-pdf/fpdf"
)

// ViewExporter is the capability of vector chart surfaces that can
// export their current view natively.
type ViewExporter interface {
	ExportView() ([]byte, error)
}

// Canvas is the raster fallback capability: a drawing surface that can
// be snapshotted wholesale.
type Canvas interface {
	Snapshot() ([]byte, error)
}

// RenderedChart is either of the two capture capabilities.
type RenderedChart interface{}

type Exporter struct{}

func NewExporter() *Exporter {
	return &Exporter{}
}

// capture picks the capture method by inspecting which capability the
// chart exposes, preferring a native view export over the generic
// snapshot fallback.
func (e *Exporter) capture(c RenderedChart) ([]byte, error) {
	switch v := c.(type) {
	case ViewExporter:
		return v.ExportView()
	case Canvas:
		return v.Snapshot()
	default:
		return nil, chart.ErrNothingRendered
	}
}

// Image captures the rendered chart as PNG bytes.
func (e *Exporter) Image(c RenderedChart) ([]byte, error) {
	img, err := e.capture(c)
	if err != nil {
		return nil, err
	}
	if len(img) == 0 {
		return nil, chart.ErrNothingRendered
	}
	return img, nil
}

// Report lays out a single-page PDF: chart image, axis labels and
// mode, total row count, and the word-wrapped summary text.
func (e *Exporter) Report(c RenderedChart, sel chart.Selection, rowCount int, summary string) ([]byte, error) {
	img, err := e.Image(c)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(10, 10, fmt.Sprintf("%s Chart Report", strings.ToUpper(string(sel.Type))))

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("chart", opts, bytes.NewReader(img))
	pdf.ImageOptions("chart", 10, 20, 180, 100, false, opts, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	y := 130.0
	line := func(s string) {
		pdf.Text(10, y, s)
		y += 10
	}
	line(fmt.Sprintf("X Axis: %s", orNA(sel.FieldX)))
	line(fmt.Sprintf("Y Axis: %s", orNA(sel.FieldY)))
	if sel.Mode == chart.Mode3D {
		line(fmt.Sprintf("Z Axis: %s", orNA(sel.FieldZ)))
	}
	line(fmt.Sprintf("Total Rows: %d", rowCount))
	line(fmt.Sprintf("Chart Mode: %s", strings.ToUpper(string(sel.Mode))))

	pdf.Text(10, y+5, "AI Summary:")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(10, y+8)
	pdf.MultiCell(180, 5, summary, "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("compose report: %w", err)
	}
	return buf.Bytes(), nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
