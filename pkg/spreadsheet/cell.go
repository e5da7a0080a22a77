package spreadsheet

import (
	"math"
	"strconv"
	"strings"
)

// Kind discriminates the value held by a Cell. The zero value is Blank,
// so looking up a missing column in a Row yields a blank cell.
type Kind int

const (
	Blank Kind = iota
	Number
	Text
)

// Cell is one spreadsheet cell as a closed variant: a finite number,
// a piece of text, or nothing at all.
type Cell struct {
	Kind   Kind
	Number float64
	Text   string
}

func NumberCell(v float64) Cell {
	return Cell{Kind: Number, Number: v}
}

func TextCell(s string) Cell {
	return Cell{Kind: Text, Text: s}
}

// Float returns the numeric value of the cell. Text cells that look
// like a finite number count as numeric; blanks and other text do not.
func (c Cell) Float() (float64, bool) {
	switch c.Kind {
	case Number:
		return c.Number, true
	case Text:
		v, err := strconv.ParseFloat(strings.TrimSpace(c.Text), 64)
		if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}

func (c Cell) String() string {
	switch c.Kind {
	case Number:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case Text:
		return c.Text
	default:
		return ""
	}
}

// Value exposes the cell for JSON serialization: float64, string, or nil.
func (c Cell) Value() interface{} {
	switch c.Kind {
	case Number:
		return c.Number
	case Text:
		return c.Text
	default:
		return nil
	}
}
