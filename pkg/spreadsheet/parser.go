package spreadsheet

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned when the byte stream cannot be
// decoded as a workbook.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// Row maps column headers to cell values. Missing cells are absent
// from the map rather than defaulted.
type Row map[string]Cell

// Dataset is the decoded content of one spreadsheet: the header row
// plus every data row. It is recomputed from the stored bytes on each
// read and never persisted.
type Dataset struct {
	Columns []string
	Rows    []Row
}

// Parse decodes workbook bytes into a Dataset. Only the first sheet
// (by declared sheet order) is read; the first row is the header.
func Parse(data []byte) (*Dataset, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Dataset{Columns: []string{}, Rows: []Row{}}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	if len(rows) == 0 {
		return &Dataset{Columns: []string{}, Rows: []Row{}}, nil
	}

	columns := make([]string, len(rows[0]))
	copy(columns, rows[0])

	ds := &Dataset{Columns: columns, Rows: make([]Row, 0, len(rows)-1)}
	for _, raw := range rows[1:] {
		row := make(Row)
		for i, value := range raw {
			if i >= len(columns) || value == "" {
				continue
			}
			row[columns[i]] = parseValue(value)
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}

// parseValue keeps numeric cells numeric and everything else textual.
func parseValue(s string) Cell {
	if v, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(v, 0) && !math.IsNaN(v) {
		return NumberCell(v)
	}
	return TextCell(s)
}
