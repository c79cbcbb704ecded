package config

import (
	"os"
	"strings"

	"sheetconv/internal/errors"

	"github.com/goccy/go-json"
)

// DefaultSettingsFile is read when no other settings path is given
const DefaultSettingsFile = "settings.json"

// Recognized output file types
const (
	OutputJSON = "json"
	OutputPHP  = "php"
)

// Settings holds everything one conversion run needs
type Settings struct {
	DataFile       string `json:"dataFile" validate:"required"`
	DataSheet      string `json:"dataSheet"`
	DataEncoding   string `json:"dataEncoding"`
	OutputFile     string `json:"outputFile" validate:"required"`
	OutputFileType string `json:"outputFileType" validate:"required"`
	LogLevel       string `json:"logLevel"`
}

// SettingsPath returns the settings file to read: the explicit path if set,
// then SHEETCONV_SETTINGS, then DefaultSettingsFile
func SettingsPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return getEnvOrDefault("SHEETCONV_SETTINGS", DefaultSettingsFile)
}

// Load reads settings from path, applies environment overrides and validates
// the result
func Load(path string) (*Settings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, err, "failed to read settings file "+path)
	}

	settings, err := Parse(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse settings file %s", path)
	}

	applyEnvOverrides(settings)

	if err := Validate(settings); err != nil {
		return nil, errors.Wrap(err, "settings validation failed")
	}
	return settings, nil
}

// Parse decodes a settings document without applying overrides
func Parse(raw []byte) (*Settings, error) {
	settings := &Settings{}
	if err := json.Unmarshal(raw, settings); err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, err, "settings must be a JSON object")
	}
	return settings, nil
}

// Validate checks required fields and normalizes the output file type
func Validate(s *Settings) error {
	if strings.TrimSpace(s.DataFile) == "" {
		return errors.ConfigInvalid("dataFile is required")
	}
	if strings.TrimSpace(s.OutputFile) == "" {
		return errors.ConfigInvalid("outputFile is required")
	}

	s.OutputFileType = strings.ToLower(strings.TrimSpace(s.OutputFileType))
	switch s.OutputFileType {
	case OutputJSON, OutputPHP:
	default:
		return errors.ConfigInvalidf("outputFileType must be %q or %q, got %q", OutputJSON, OutputPHP, s.OutputFileType)
	}
	return nil
}

func applyEnvOverrides(s *Settings) {
	s.DataFile = getEnvOrDefault("SHEETCONV_DATA_FILE", s.DataFile)
	s.DataSheet = getEnvOrDefault("SHEETCONV_DATA_SHEET", s.DataSheet)
	s.DataEncoding = getEnvOrDefault("SHEETCONV_DATA_ENCODING", s.DataEncoding)
	s.OutputFile = getEnvOrDefault("SHEETCONV_OUTPUT_FILE", s.OutputFile)
	s.OutputFileType = getEnvOrDefault("SHEETCONV_OUTPUT_FILE_TYPE", s.OutputFileType)
	s.LogLevel = getEnvOrDefault("LOG_LEVEL", s.LogLevel)
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
