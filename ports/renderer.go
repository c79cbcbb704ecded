package ports

import (
	"sheetconv/domain/sheet"
)

// RecordRenderer converts one record into its textual representation
type RecordRenderer interface {
	// Render returns the serialized record without any separator
	Render(record *sheet.Record) ([]byte, error)

	// Format returns the output format name, e.g. "json"
	Format() string
}
