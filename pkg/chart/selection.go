package chart

import "errors"

// ErrIncompleteSelection is returned when a series build is attempted
// before every field the mode/type combination needs has been chosen.
var ErrIncompleteSelection = errors.New("chart selection is missing required fields")

// ErrUnknownChartType is returned when a chart type does not belong to
// the selected mode's vocabulary.
var ErrUnknownChartType = errors.New("chart type does not belong to the selected mode")

// Mode is the chart rendering category.
type Mode string

const (
	Mode2D           Mode = "2d"
	Mode3D           Mode = "3d"
	ModeDistribution Mode = "distribution"
)

// Type is one concrete chart type inside a mode.
type Type string

const (
	TypeScatter   Type = "scatter"
	TypeLine      Type = "line"
	TypeBar       Type = "bar"
	TypeScatter3D Type = "scatter3d"
	TypeLine3D    Type = "line3d"
	TypeMesh3D    Type = "mesh3d"
	TypeHistogram Type = "histogram"
	TypeBox       Type = "box"
	TypeViolin    Type = "violin"
)

// axis identifies one of the selectable field slots.
type axis int

const (
	axisX axis = iota
	axisY
	axisZ
)

// typeSpec carries the per-type metadata: which mode owns the type and
// which field slots must be set before a series can be built. Adding a
// chart type is a single entry here.
type typeSpec struct {
	mode     Mode
	required []axis
}

var typeTable = map[Type]typeSpec{
	TypeScatter:   {Mode2D, []axis{axisX, axisY}},
	TypeLine:      {Mode2D, []axis{axisX, axisY}},
	TypeBar:       {Mode2D, []axis{axisX, axisY}},
	TypeScatter3D: {Mode3D, []axis{axisX, axisY, axisZ}},
	TypeLine3D:    {Mode3D, []axis{axisX, axisY, axisZ}},
	TypeMesh3D:    {Mode3D, []axis{axisX, axisY, axisZ}},
	TypeHistogram: {ModeDistribution, []axis{axisX}},
	TypeBox:       {ModeDistribution, []axis{axisX, axisY}},
	TypeViolin:    {ModeDistribution, []axis{axisX, axisY}},
}

// defaultTypes lists each mode's default chart type, the one a mode
// switch falls back to.
var defaultTypes = map[Mode]Type{
	Mode2D:           TypeScatter,
	Mode3D:           TypeScatter3D,
	ModeDistribution: TypeHistogram,
}

// ValidMode reports whether m is one of the three chart modes.
func ValidMode(m Mode) bool {
	_, ok := defaultTypes[m]
	return ok
}

// DefaultType returns the default chart type for a mode.
func DefaultType(m Mode) Type {
	return defaultTypes[m]
}

// Selection is a user's in-progress choice of mode, chart type, axis
// fields, and series color. Empty field strings mean "unset".
type Selection struct {
	Mode   Mode   `json:"mode"`
	Type   Type   `json:"type"`
	FieldX string `json:"field_x,omitempty"`
	FieldY string `json:"field_y,omitempty"`
	FieldZ string `json:"field_z,omitempty"`
	Color  string `json:"color,omitempty"`
}

func (s Selection) field(a axis) string {
	switch a {
	case axisX:
		return s.FieldX
	case axisY:
		return s.FieldY
	default:
		return s.FieldZ
	}
}

// requiredFields resolves the field names the selection's type needs,
// in axis order.
func (s Selection) requiredFields() ([]string, error) {
	spec, ok := typeTable[s.Type]
	if !ok || spec.mode != s.Mode {
		return nil, ErrUnknownChartType
	}
	fields := make([]string, 0, len(spec.required))
	for _, a := range spec.required {
		f := s.field(a)
		if f == "" {
			return nil, ErrIncompleteSelection
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// Validate checks that the mode/type combination is known and every
// required field is set.
func (s Selection) Validate() error {
	_, err := s.requiredFields()
	return err
}
