package excel

import (
	"fmt"
	"strings"
	"time"

	"sheetconv/domain/sheet"
	"sheetconv/internal"
	"sheetconv/internal/errors"

	"github.com/xuri/excelize/v2"
)

// WorkbookSource reads cell values from one sheet of an xlsx workbook
type WorkbookSource struct {
	file      *excelize.File
	filePath  string
	sheetName string
	logger    *internal.Logger
	dateFmts  map[int]bool // style index -> formats as date/time
}

// Open opens the workbook at filePath and selects sheetName, or the first
// sheet when sheetName is empty
func Open(filePath, sheetName string, logger *internal.Logger) (*WorkbookSource, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	logger = logger.With("excel")

	startTime := time.Now()
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, errors.DataSource("failed to open workbook "+filePath, err)
	}
	logger.Debug("workbook %s opened in %.2fms", filePath, float64(time.Since(startTime).Nanoseconds())/1e6)

	name, err := selectSheet(f, sheetName)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	logger.Debug("reading sheet %q", name)

	return &WorkbookSource{
		file:      f,
		filePath:  filePath,
		sheetName: name,
		logger:    logger,
		dateFmts:  make(map[int]bool),
	}, nil
}

func selectSheet(f *excelize.File, sheetName string) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", errors.DataSource("workbook has no sheets", nil)
	}
	if sheetName == "" {
		return sheets[0], nil
	}
	if idx, err := f.GetSheetIndex(sheetName); err != nil || idx == -1 {
		return "", errors.DataSource(
			fmt.Sprintf("sheet %q not found (available: %s)", sheetName, strings.Join(sheets, ", ")), err)
	}
	return sheetName, nil
}

// SheetName returns the selected sheet
func (s *WorkbookSource) SheetName() string {
	return s.sheetName
}

// Close releases the workbook
func (s *WorkbookSource) Close() error {
	return s.file.Close()
}

// ValueAt returns the typed value of a cell. Cells that cannot be read are
// reported as absent.
func (s *WorkbookSource) ValueAt(row, column int) sheet.Value {
	cellRef, err := excelize.CoordinatesToCellName(column, row)
	if err != nil {
		return sheet.Absent()
	}

	raw, err := s.file.GetCellValue(s.sheetName, cellRef, excelize.Options{RawCellValue: true})
	if err != nil {
		s.logger.Debug("cell %s!%s unreadable: %v", s.sheetName, cellRef, err)
		return sheet.Absent()
	}
	if raw == "" {
		// a formula that was never calculated has no cached value
		if formula, err := s.file.GetCellFormula(s.sheetName, cellRef); err == nil && formula != "" {
			return sheet.NewString("=" + strings.TrimPrefix(formula, "="))
		}
		return sheet.Absent()
	}

	cellType, err := s.file.GetCellType(s.sheetName, cellRef)
	if err != nil {
		return sheet.NewString(raw)
	}

	switch cellType {
	case excelize.CellTypeBool:
		return sheet.NewBool(raw == "1" || strings.EqualFold(raw, "true"))
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if s.isDateFormatted(cellRef) {
			return s.formattedValue(cellRef, raw)
		}
		if v, ok := sheet.ParseNumber(raw); ok {
			return v
		}
		return sheet.NewString(raw)
	default:
		// shared/inline strings, formula string results, ISO dates, errors
		return sheet.NewString(raw)
	}
}

// formattedValue returns the display text of a cell, falling back to raw
func (s *WorkbookSource) formattedValue(cellRef, raw string) sheet.Value {
	text, err := s.file.GetCellValue(s.sheetName, cellRef)
	if err != nil || text == "" {
		return sheet.NewString(raw)
	}
	return sheet.NewString(text)
}

// isDateFormatted reports whether the cell's number format renders a date or time
func (s *WorkbookSource) isDateFormatted(cellRef string) bool {
	styleID, err := s.file.GetCellStyle(s.sheetName, cellRef)
	if err != nil || styleID == 0 {
		return false
	}
	if isDate, ok := s.dateFmts[styleID]; ok {
		return isDate
	}

	isDate := false
	if style, err := s.file.GetStyle(styleID); err == nil && style != nil {
		isDate = isDateNumFmt(style.NumFmt, style.CustomNumFmt)
	}
	s.dateFmts[styleID] = isDate
	return isDate
}

// isDateNumFmt recognizes the built-in date/time formats and custom format
// codes containing date or time tokens outside quoted literals
func isDateNumFmt(numFmt int, custom *string) bool {
	if custom != nil && *custom != "" {
		return customFormatHasDateTokens(*custom)
	}
	switch {
	case numFmt >= 14 && numFmt <= 22:
		return true
	case numFmt >= 45 && numFmt <= 47:
		return true
	}
	return false
}

func customFormatHasDateTokens(code string) bool {
	inQuote, inBracket := false, false
	for _, r := range strings.ToLower(code) {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		case strings.ContainsRune("ymdhs", r):
			return true
		}
	}
	return false
}
