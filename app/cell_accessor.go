package app

import (
	"sheetconv/domain/sheet"
	"sheetconv/ports"
)

// CellAccessor answers value and population queries against a sheet.
// Coordinates below 1 are treated as out of range.
type CellAccessor struct {
	source ports.CellSource
}

// NewCellAccessor wraps a cell source
func NewCellAccessor(source ports.CellSource) *CellAccessor {
	return &CellAccessor{source: source}
}

// ValueAt returns the value at (row, column), or sheet.Absent() when the
// coordinate is out of range or blank
func (a *CellAccessor) ValueAt(row, column int) sheet.Value {
	if row < 1 || column < 1 {
		return sheet.Absent()
	}
	return a.source.ValueAt(row, column)
}

// IsPopulated reports whether the cell holds something other than absent or ""
func (a *CellAccessor) IsPopulated(row, column int) bool {
	return a.ValueAt(row, column).IsPopulated()
}
