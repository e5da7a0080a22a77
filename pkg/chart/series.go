package chart

import (
	"math"

	"excel-analytics-be/pkg/spreadsheet"
)

// Spec is the renderer-agnostic data bundle handed to an external
// plotting capability: mode/type tags, numeric series per axis, axis
// labels, and the requested color. It carries no drawing instructions.
type Spec struct {
	Mode   Mode      `json:"mode"`
	Type   Type      `json:"type"`
	X      []float64 `json:"x,omitempty"`
	Y      []float64 `json:"y,omitempty"`
	Z      []float64 `json:"z,omitempty"`
	Labels []string  `json:"labels,omitempty"`
	AxisX  string    `json:"axis_x,omitempty"`
	AxisY  string    `json:"axis_y,omitempty"`
	AxisZ  string    `json:"axis_z,omitempty"`
	Color  string    `json:"color,omitempty"`
}

// BuildSeries derives chart-ready numeric series from raw rows. The
// selection is validated first; scatter-style modes drop a row on all
// axes when any axis fails to encode, keeping series lengths aligned.
func BuildSeries(enc *Encoder, ds *spreadsheet.Dataset, sel Selection) (*Spec, error) {
	fields, err := sel.requiredFields()
	if err != nil {
		return nil, err
	}

	spec := &Spec{
		Mode:  sel.Mode,
		Type:  sel.Type,
		AxisX: sel.FieldX,
		AxisY: sel.FieldY,
		Color: sel.Color,
	}
	if sel.Mode == Mode3D {
		spec.AxisZ = sel.FieldZ
	}

	switch {
	case sel.Mode == Mode2D || sel.Mode == Mode3D:
		buildCoordinateSeries(enc, ds, fields, spec)
	case sel.Type == TypeHistogram:
		buildHistogramSeries(ds, sel.FieldX, spec)
	default: // box, violin
		buildCategorySeries(ds, sel.FieldX, sel.FieldY, spec)
	}
	return spec, nil
}

// buildCoordinateSeries encodes one series per axis, excluding a row
// from every axis when it is invalid on any of them.
func buildCoordinateSeries(enc *Encoder, ds *spreadsheet.Dataset, fields []string, spec *Spec) {
	series := make([][]float64, len(fields))
	point := make([]float64, len(fields))

	for _, row := range ds.Rows {
		valid := true
		for i, field := range fields {
			v := enc.Encode(row[field], field)
			if math.IsNaN(v) {
				valid = false
				break
			}
			point[i] = v
		}
		if !valid {
			continue
		}
		for i := range fields {
			series[i] = append(series[i], point[i])
		}
	}

	spec.X = series[0]
	spec.Y = series[1]
	if len(series) > 2 {
		spec.Z = series[2]
	}
}

// buildHistogramSeries coerces every row's X value to a number,
// zero-filling invalid cells instead of dropping them.
func buildHistogramSeries(ds *spreadsheet.Dataset, field string, spec *Spec) {
	values := make([]float64, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		values = append(values, coerce(row[field]))
	}
	spec.X = values
}

// buildCategorySeries keeps X as categorical labels and coerces Y per
// row, for box and violin plots.
func buildCategorySeries(ds *spreadsheet.Dataset, fieldX, fieldY string, spec *Spec) {
	labels := make([]string, 0, len(ds.Rows))
	values := make([]float64, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		labels = append(labels, row[fieldX].String())
		values = append(values, coerce(row[fieldY]))
	}
	spec.Labels = labels
	spec.Y = values
}

func coerce(cell spreadsheet.Cell) float64 {
	if v, ok := cell.Float(); ok {
		return v
	}
	return 0
}
