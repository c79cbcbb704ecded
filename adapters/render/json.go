package render

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"sheetconv/domain/sheet"

	"github.com/goccy/go-json"
)

// JSONIndent is the indentation used for object members
const JSONIndent = "    "

// JSONRenderer renders a record as a pretty-printed JSON object. Members keep
// record order and text is emitted literally, without HTML or non-ASCII
// escaping.
type JSONRenderer struct {
	indent string
}

// NewJSONRenderer creates a JSON renderer using JSONIndent
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{indent: JSONIndent}
}

// Format returns "json"
func (r *JSONRenderer) Format() string {
	return FormatJSON
}

// Render returns the record as a JSON object
func (r *JSONRenderer) Render(record *sheet.Record) ([]byte, error) {
	if record.Len() == 0 {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, field := range record.Fields() {
		if i > 0 {
			buf.WriteString(",\n")
		}
		buf.WriteString(r.indent)
		if err := writeJSONString(&buf, field.Name); err != nil {
			return nil, fmt.Errorf("encode key %q: %w", field.Name, err)
		}
		buf.WriteString(": ")
		if err := writeJSONValue(&buf, field.Value); err != nil {
			return nil, fmt.Errorf("encode value of %q: %w", field.Name, err)
		}
	}
	buf.WriteString("\n}")
	return buf.Bytes(), nil
}

func writeJSONValue(buf *bytes.Buffer, v sheet.Value) error {
	switch v.Kind {
	case sheet.KindString:
		return writeJSONString(buf, v.StrVal)
	case sheet.KindInt:
		buf.WriteString(strconv.FormatInt(v.IntVal, 10))
	case sheet.KindFloat:
		if math.IsNaN(v.FloatVal) || math.IsInf(v.FloatVal, 0) {
			return fmt.Errorf("unsupported float value %v", v.FloatVal)
		}
		buf.WriteString(sheet.FormatFloat(v.FloatVal))
	case sheet.KindBool:
		buf.WriteString(strconv.FormatBool(v.BoolVal))
	default:
		buf.WriteString("null")
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates every value with a newline
	buf.Truncate(buf.Len() - 1)
	return nil
}
