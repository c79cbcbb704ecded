package source

import (
	"path/filepath"
	"strings"

	"sheetconv/adapters/delimited"
	"sheetconv/adapters/excel"
	"sheetconv/internal"
	"sheetconv/internal/errors"
	"sheetconv/ports"
)

// Request names the data file to open and how to read it
type Request struct {
	DataFile  string
	DataSheet string
	// Encoding applies to delimited files only
	Encoding string
}

// Open opens the data file with the adapter matching its extension
func Open(req Request, logger *internal.Logger) (ports.SheetSource, error) {
	switch ext := strings.ToLower(filepath.Ext(req.DataFile)); ext {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		src, err := excel.Open(req.DataFile, req.DataSheet, logger)
		if err != nil {
			return nil, err
		}
		return src, nil
	case ".csv", ".tsv":
		src, err := delimited.Open(req.DataFile, delimited.Options{Encoding: req.Encoding}, logger)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return nil, errors.DataSource("unsupported data file type "+quoteExt(ext)+" for "+req.DataFile, nil)
	}
}

func quoteExt(ext string) string {
	if ext == "" {
		return "(none)"
	}
	return `"` + ext + `"`
}
