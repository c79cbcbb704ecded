package sheet

import (
	"math"
	"strconv"
	"strings"
)

// ValueKind defines the storage type of a cell value
type ValueKind string

const (
	KindAbsent ValueKind = "absent"
	KindString ValueKind = "string"
	KindInt    ValueKind = "int"
	KindFloat  ValueKind = "float"
	KindBool   ValueKind = "bool"
)

// Value represents a single typed cell value.
// The zero Value is absent.
type Value struct {
	Kind     ValueKind
	StrVal   string
	IntVal   int64
	FloatVal float64
	BoolVal  bool
}

// Absent returns the value used for blank or out-of-range cells
func Absent() Value {
	return Value{Kind: KindAbsent}
}

// NewString creates a string value
func NewString(s string) Value {
	return Value{Kind: KindString, StrVal: s}
}

// NewInt creates an integer value
func NewInt(n int64) Value {
	return Value{Kind: KindInt, IntVal: n}
}

// NewFloat creates a floating-point value
func NewFloat(f float64) Value {
	return Value{Kind: KindFloat, FloatVal: f}
}

// NewBool creates a boolean value
func NewBool(b bool) Value {
	return Value{Kind: KindBool, BoolVal: b}
}

// IsAbsent reports whether the value carries no data at all
func (v Value) IsAbsent() bool {
	return v.Kind == KindAbsent || v.Kind == ""
}

// IsPopulated reports whether the value is neither absent nor the empty string
func (v Value) IsPopulated() bool {
	if v.IsAbsent() {
		return false
	}
	return !(v.Kind == KindString && v.StrVal == "")
}

// String returns the plain text form of the value. Absent values are empty.
func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return v.StrVal
	case KindInt:
		return strconv.FormatInt(v.IntVal, 10)
	case KindFloat:
		return FormatFloat(v.FloatVal)
	case KindBool:
		return strconv.FormatBool(v.BoolVal)
	default:
		return ""
	}
}

// FormatFloat renders f in shortest round-trip form. Integral values keep a
// trailing ".0" so they stay distinguishable from integers, and very large or
// very small magnitudes switch to exponent notation.
func FormatFloat(f float64) string {
	if math.IsInf(f, 1) {
		return "inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	if math.IsNaN(f) {
		return "nan"
	}

	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// ParseNumber interprets raw numeric cell text. Text containing a decimal
// point or an exponent yields a float value, other numeric text an int value.
func ParseNumber(raw string) (Value, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.Trim(raw, "0123456789+-.eE") != "" {
		return Absent(), false
	}
	if !strings.ContainsAny(raw, ".eE") {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return NewInt(n), true
		}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Absent(), false
	}
	return NewFloat(f), true
}
