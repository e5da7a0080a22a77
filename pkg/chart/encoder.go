package chart

import (
	"math"
	"sync"

	"excel-analytics-be/pkg/spreadsheet"
)

// Encoder assigns stable per-field numeric codes to categorical values
// so non-numeric columns can still be plotted. Codes are 0-based in
// first-seen order and only meaningful within one analysis session:
// two sessions may assign different codes to the same value.
type Encoder struct {
	mu    sync.Mutex
	codes map[string]map[string]int
}

func NewEncoder() *Encoder {
	return &Encoder{codes: make(map[string]map[string]int)}
}

// Encode turns a cell into a plottable number. Numeric values pass
// through unchanged and never consume a code slot; blank cells encode
// to NaN, which callers must filter out before building a series.
func (e *Encoder) Encode(cell spreadsheet.Cell, field string) float64 {
	if cell.Kind == spreadsheet.Blank {
		return math.NaN()
	}
	if v, ok := cell.Float(); ok {
		return v
	}

	value := cell.String()

	e.mu.Lock()
	defer e.mu.Unlock()
	byValue, ok := e.codes[field]
	if !ok {
		byValue = make(map[string]int)
		e.codes[field] = byValue
	}
	code, ok := byValue[value]
	if !ok {
		code = len(byValue)
		byValue[value] = code
	}
	return float64(code)
}
