package app

import (
	"sheetconv/domain/sheet"
)

// HeaderRow is the row holding column names
const HeaderRow = 1

// ResolveColumns reads column names from the header row, left to right,
// stopping at the first unpopulated cell. Non-string header cells are named
// by their text form.
func ResolveColumns(cells *CellAccessor) sheet.Columns {
	columns := sheet.Columns{}
	for column := 1; cells.IsPopulated(HeaderRow, column); column++ {
		columns = append(columns, cells.ValueAt(HeaderRow, column).String())
	}
	return columns
}
