package testkit

import (
	"sheetconv/domain/sheet"
)

// Grid is an in-memory sheet addressed by 1-based coordinates.
// Each row is a slice of cell values; nil and "" cells are blank.
type Grid struct {
	rows  [][]interface{}
	Reads int
}

// NewGrid builds a grid from rows of Go values: string, int, int64,
// float64, bool or nil
func NewGrid(rows ...[]interface{}) *Grid {
	return &Grid{rows: rows}
}

// Row is shorthand for a grid row literal
func Row(cells ...interface{}) []interface{} {
	return cells
}

// ValueAt implements ports.CellSource
func (g *Grid) ValueAt(row, column int) sheet.Value {
	g.Reads++
	if row < 1 || row > len(g.rows) {
		return sheet.Absent()
	}
	cells := g.rows[row-1]
	if column < 1 || column > len(cells) {
		return sheet.Absent()
	}
	return ToValue(cells[column-1])
}

// ToValue converts a Go value to a cell value
func ToValue(v interface{}) sheet.Value {
	switch val := v.(type) {
	case nil:
		return sheet.Absent()
	case sheet.Value:
		return val
	case string:
		return sheet.NewString(val)
	case int:
		return sheet.NewInt(int64(val))
	case int64:
		return sheet.NewInt(val)
	case float64:
		return sheet.NewFloat(val)
	case bool:
		return sheet.NewBool(val)
	default:
		panic("testkit: unsupported cell type")
	}
}

// PeopleGrid is the id/name fixture: two data rows followed by blank rows
func PeopleGrid() *Grid {
	return NewGrid(
		Row("id", "name"),
		Row(1, "Alice"),
		Row(2, "Bob"),
	)
}

// PeopleJSON is the JSON conversion of PeopleGrid
const PeopleJSON = "[{\n    \"id\": 1,\n    \"name\": \"Alice\"\n},{\n    \"id\": 2,\n    \"name\": \"Bob\"\n}]"

// PeoplePHP is the PHP array conversion of PeopleGrid
const PeoplePHP = "[[\n    \"id\" => 1,\n    \"name\" => \"Alice\"\n],[\n    \"id\" => 2,\n    \"name\" => \"Bob\"\n]]"
