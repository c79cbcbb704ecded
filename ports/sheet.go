package ports

import (
	"sheetconv/domain/sheet"
)

// CellSource provides read-only access to one sheet of tabular data.
// Coordinates are 1-based. Blank or out-of-range cells yield sheet.Absent().
type CellSource interface {
	ValueAt(row, column int) sheet.Value
}

// SheetSource is a CellSource backed by an opened file that must be released
type SheetSource interface {
	CellSource

	// SheetName returns the name of the sheet being read
	SheetName() string

	// Close releases the underlying file
	Close() error
}
