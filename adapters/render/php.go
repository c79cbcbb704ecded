package render

import (
	"bytes"

	"sheetconv/domain/sheet"
)

const (
	phpOpen      = "[\n    "
	phpSeparator = ",\n    "
	phpArrow     = " => "
	phpClose     = "\n]"
)

// PHPRenderer renders a record as a PHP associative-array literal:
//
//	[
//	    "id" => 1,
//	    "name" => "Alice"
//	]
//
// Numbers and booleans are written bare; every other value, absent included,
// is written between double quotes without escaping embedded quotes or
// backslashes.
type PHPRenderer struct{}

// NewPHPRenderer creates a PHP array renderer
func NewPHPRenderer() *PHPRenderer {
	return &PHPRenderer{}
}

// Format returns "php"
func (r *PHPRenderer) Format() string {
	return FormatPHP
}

// Render returns the record as a PHP array literal
func (r *PHPRenderer) Render(record *sheet.Record) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(phpOpen)
	for i, field := range record.Fields() {
		if i > 0 {
			buf.WriteString(phpSeparator)
		}
		buf.WriteString(phpQuote(field.Name))
		buf.WriteString(phpArrow)
		buf.WriteString(phpValue(field.Value))
	}
	buf.WriteString(phpClose)
	return buf.Bytes(), nil
}

func phpValue(v sheet.Value) string {
	switch v.Kind {
	case sheet.KindInt, sheet.KindFloat, sheet.KindBool:
		return v.String()
	default:
		return phpQuote(v.String())
	}
}

func phpQuote(s string) string {
	return `"` + s + `"`
}
