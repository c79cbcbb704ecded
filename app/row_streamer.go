package app

import (
	"sheetconv/domain/sheet"
)

// FirstDataRow is the first row read as a record
const FirstDataRow = HeaderRow + 1

// StreamState is the state of a RowStreamer
type StreamState int

const (
	StateScanning StreamState = iota
	StateDone
)

func (s StreamState) String() string {
	if s == StateDone {
		return "done"
	}
	return "scanning"
}

// RowStreamer walks data rows in order and builds one record per row.
// A row whose first cell is unpopulated ends the stream; values in the other
// columns of a row never affect termination.
type RowStreamer struct {
	cells   *CellAccessor
	columns sheet.Columns
	row     int
	state   StreamState
}

// NewRowStreamer starts a stream at FirstDataRow
func NewRowStreamer(cells *CellAccessor, columns sheet.Columns) *RowStreamer {
	return &RowStreamer{
		cells:   cells,
		columns: columns,
		row:     FirstDataRow,
		state:   StateScanning,
	}
}

// Next returns the record for the next row and its 1-based row number.
// ok is false once the stream is done, and stays false on later calls.
func (s *RowStreamer) Next() (record *sheet.Record, row int, ok bool) {
	if s.state == StateDone {
		return nil, 0, false
	}
	if !s.cells.IsPopulated(s.row, 1) {
		s.state = StateDone
		return nil, 0, false
	}

	record = sheet.NewRecord(len(s.columns))
	for i, name := range s.columns {
		record.Set(name, s.cells.ValueAt(s.row, i+1))
	}

	row = s.row
	s.row++
	return record, row, true
}

// State returns the current state
func (s *RowStreamer) State() StreamState {
	return s.state
}
