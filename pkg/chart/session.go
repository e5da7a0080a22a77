package chart

import (
	"errors"

	"excel-analytics-be/pkg/spreadsheet"
)

// ErrNothingRendered is returned when an export is attempted before a
// chart has been rendered in this session.
var ErrNothingRendered = errors.New("no rendered chart to export")

// State tracks where one chart session is in its lifecycle.
type State string

const (
	StateUnconfigured State = "unconfigured"
	StateReady        State = "ready"
	StateRendered     State = "rendered"
	StateExported     State = "exported"
)

// Session holds one analysis session's selection, lifecycle state, and
// categorical encoding cache. The cache lives and dies with the
// session, so concurrent sessions never cross-contaminate codes.
type Session struct {
	Selection Selection
	State     State
	encoder   *Encoder
	rowCount  int
}

func NewSession() *Session {
	return &Session{
		Selection: Selection{Mode: Mode2D, Type: DefaultType(Mode2D)},
		State:     StateUnconfigured,
		encoder:   NewEncoder(),
	}
}

// SetMode switches the chart mode, resetting the chart type to the new
// mode's default and clearing all field selections so a stale axis
// choice cannot leak across incompatible modes.
func (s *Session) SetMode(m Mode) error {
	if !ValidMode(m) {
		return ErrUnknownChartType
	}
	s.Selection = Selection{
		Mode:  m,
		Type:  DefaultType(m),
		Color: s.Selection.Color,
	}
	s.State = StateUnconfigured
	return nil
}

// SetType switches the chart type within the current mode.
func (s *Session) SetType(t Type) error {
	spec, ok := typeTable[t]
	if !ok || spec.mode != s.Selection.Mode {
		return ErrUnknownChartType
	}
	s.Selection.Type = t
	s.refreshState()
	return nil
}

// SetFields updates the axis fields and color of the current selection.
func (s *Session) SetFields(x, y, z, color string) {
	s.Selection.FieldX = x
	s.Selection.FieldY = y
	s.Selection.FieldZ = z
	if color != "" {
		s.Selection.Color = color
	}
	s.refreshState()
}

func (s *Session) refreshState() {
	if s.Selection.Validate() == nil {
		s.State = StateReady
	} else {
		s.State = StateUnconfigured
	}
}

// Build validates the selection and derives the chart spec, moving the
// session to Rendered: the returned spec is what the external renderer
// draws.
func (s *Session) Build(ds *spreadsheet.Dataset) (*Spec, error) {
	spec, err := BuildSeries(s.encoder, ds, s.Selection)
	if err != nil {
		return nil, err
	}
	s.rowCount = len(ds.Rows)
	s.State = StateRendered
	return spec, nil
}

// Renderable reports whether the session has a rendered chart that can
// be exported.
func (s *Session) Renderable() bool {
	return s.State == StateRendered || s.State == StateExported
}

// MarkExported records that the rendered chart has been exported.
func (s *Session) MarkExported() error {
	if !s.Renderable() {
		return ErrNothingRendered
	}
	s.State = StateExported
	return nil
}

// RowCount returns the number of rows seen by the last Build.
func (s *Session) RowCount() int {
	return s.rowCount
}
