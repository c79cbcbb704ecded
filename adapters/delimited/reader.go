package delimited

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sheetconv/domain/sheet"
	"sheetconv/internal"
	"sheetconv/internal/errors"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

const utf8BOM = "\ufeff"

// FileSource serves cells from a CSV or TSV file. The file is read once on
// Open; numeric-looking fields become int or float values and empty fields
// are absent.
type FileSource struct {
	filePath string
	rows     [][]string
}

// Options controls how a delimited file is decoded
type Options struct {
	// Comma is the field delimiter; zero selects one from the file extension
	Comma rune
	// Encoding is a WHATWG encoding label such as "shift_jis"; empty means UTF-8
	Encoding string
}

// Open reads the delimited file at filePath
func Open(filePath string, opts Options, logger *internal.Logger) (*FileSource, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	logger = logger.With("delimited")

	dec, err := lookupEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, errors.DataSource("failed to open delimited file "+filePath, err)
	}
	defer file.Close()

	var r io.Reader = file
	if dec != nil {
		r = transform.NewReader(file, dec.NewDecoder())
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Comma
	if reader.Comma == 0 {
		reader.Comma = CommaFor(filePath)
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.DataSource("failed to read delimited file "+filePath, err)
	}
	logger.Debug("%s read in %.2fms (%d rows)", filePath, float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], utf8BOM)
	}

	return &FileSource{filePath: filePath, rows: rows}, nil
}

// CommaFor returns the delimiter implied by a file name
func CommaFor(filePath string) rune {
	if strings.EqualFold(filepath.Ext(filePath), ".tsv") {
		return '\t'
	}
	return ','
}

func lookupEncoding(label string) (encoding.Encoding, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, errors.ConfigInvalidf("unknown data encoding %q", label)
	}
	return enc, nil
}

// SheetName returns the file's base name
func (s *FileSource) SheetName() string {
	return filepath.Base(s.filePath)
}

// Close is a no-op; the file is fully read by Open
func (s *FileSource) Close() error {
	return nil
}

// ValueAt returns the typed value of a field
func (s *FileSource) ValueAt(row, column int) sheet.Value {
	if row < 1 || row > len(s.rows) {
		return sheet.Absent()
	}
	fields := s.rows[row-1]
	if column < 1 || column > len(fields) {
		return sheet.Absent()
	}
	return parseField(fields[column-1])
}

// parseField keeps text verbatim; surrounding space is ignored only when
// the field is read as a number
func parseField(raw string) sheet.Value {
	if raw == "" {
		return sheet.Absent()
	}
	if v, ok := sheet.ParseNumber(raw); ok {
		return v
	}
	return sheet.NewString(raw)
}
