package render

import (
	"strings"

	"sheetconv/internal/errors"
	"sheetconv/ports"
)

// Supported output formats
const (
	FormatJSON = "json"
	FormatPHP  = "php"
)

// Formats lists the supported output format names
func Formats() []string {
	return []string{FormatJSON, FormatPHP}
}

// ForFormat returns the renderer for the named output format
func ForFormat(name string) (ports.RecordRenderer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case FormatJSON:
		return NewJSONRenderer(), nil
	case FormatPHP:
		return NewPHPRenderer(), nil
	default:
		return nil, errors.ConfigInvalidf("unsupported output format %q (supported: %s)", name, strings.Join(Formats(), ", "))
	}
}
