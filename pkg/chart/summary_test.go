package chart

import (
	"strings"
	"testing"

	"excel-analytics-be/pkg/spreadsheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, NoDataSummary, Summarize(nil))
	assert.Equal(t, NoDataSummary, Summarize([]spreadsheet.Row{}))
}

func TestSummarizeCountsAndNumericFields(t *testing.T) {
	rows := []spreadsheet.Row{
		{"a": spreadsheet.NumberCell(1), "b": spreadsheet.TextCell("x")},
		{"a": spreadsheet.NumberCell(2), "b": spreadsheet.TextCell("y")},
	}

	got := Summarize(rows)
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "Your dataset contains 2 rows and 2 columns (a, b).", lines[0])
	assert.Equal(t, "Numeric fields: a.", lines[1])
}

func TestSummarizeWholeColumnClassification(t *testing.T) {
	rows := []spreadsheet.Row{
		{"a": spreadsheet.NumberCell(1), "b": spreadsheet.TextCell("10")},
		{"a": spreadsheet.TextCell("oops"), "b": spreadsheet.NumberCell(20)},
	}

	got := Summarize(rows)
	// One non-numeric value anywhere excludes the whole column, while
	// numeric-looking text still counts as numeric.
	assert.Contains(t, got, "Numeric fields: b.")
	assert.NotContains(t, got, "Numeric fields: a")
}

func TestSummarizeNoNumericFields(t *testing.T) {
	rows := []spreadsheet.Row{
		{"name": spreadsheet.TextCell("alice")},
	}
	assert.Contains(t, Summarize(rows), "Numeric fields: none.")
}

func TestSummarizeDeterministic(t *testing.T) {
	rows := []spreadsheet.Row{
		{"z": spreadsheet.NumberCell(1), "a": spreadsheet.NumberCell(2), "m": spreadsheet.TextCell("x")},
	}
	first := Summarize(rows)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Summarize(rows))
	}
	assert.Contains(t, first, "(a, m, z)")
}
