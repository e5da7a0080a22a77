package chart

import (
	"fmt"
	"sort"
	"strings"

	"excel-analytics-be/pkg/spreadsheet"
)

// NoDataSummary is the fixed message for an empty row set.
const NoDataSummary = "No data available to summarize."

const summaryFooter = "Deeper AI-generated insights are coming soon."

// Summarize derives a deterministic three-line description of a row
// set: counts and column list, the whole-column numeric fields, and a
// fixed closing line. Columns are taken from the first row's keys and
// sorted, so the output is byte-for-byte reproducible.
func Summarize(rows []spreadsheet.Row) string {
	if len(rows) == 0 {
		return NoDataSummary
	}

	columns := make([]string, 0, len(rows[0]))
	for col := range rows[0] {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	numeric := make([]string, 0, len(columns))
	for _, col := range columns {
		if columnIsNumeric(rows, col) {
			numeric = append(numeric, col)
		}
	}

	numericLine := "none"
	if len(numeric) > 0 {
		numericLine = strings.Join(numeric, ", ")
	}

	return fmt.Sprintf(
		"Your dataset contains %d rows and %d columns (%s).\nNumeric fields: %s.\n%s",
		len(rows), len(columns), strings.Join(columns, ", "), numericLine, summaryFooter,
	)
}

// columnIsNumeric reports whether every row's value for the column
// parses as a finite number. A single non-numeric or missing value
// anywhere excludes the whole column.
func columnIsNumeric(rows []spreadsheet.Row, col string) bool {
	for _, row := range rows {
		cell, ok := row[col]
		if !ok {
			return false
		}
		if _, ok := cell.Float(); !ok {
			return false
		}
	}
	return true
}
