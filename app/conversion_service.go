package app

import (
	"fmt"
	"time"

	"sheetconv/domain/core"
	"sheetconv/domain/sheet"
	"sheetconv/internal"
	"sheetconv/internal/errors"
	"sheetconv/ports"
)

// Output stream delimiters shared by every format
var (
	streamPrefix    = []byte("[")
	streamSeparator = []byte(",")
	streamSuffix    = []byte("]")
)

// progressEvery controls how often row progress is logged at debug level
const progressEvery = 1000

// ConversionService streams the rows of a sheet through a renderer into a sink
type ConversionService struct {
	renderer ports.RecordRenderer
	sink     ports.OutputSink
	logger   *internal.Logger
}

// ConversionRequest defines the inputs of one conversion
type ConversionRequest struct {
	Source ports.CellSource
	RunID  core.RunID // optional, will be generated if empty
}

// ConversionResult summarizes a completed conversion
type ConversionResult struct {
	RunID        core.RunID
	Format       string
	Columns      sheet.Columns
	Records      int
	BytesWritten int64
	StartedAt    core.Timestamp
	Duration     time.Duration
}

// NewConversionService creates a conversion service. A nil logger falls back
// to internal.DefaultLogger.
func NewConversionService(renderer ports.RecordRenderer, sink ports.OutputSink, logger *internal.Logger) *ConversionService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ConversionService{
		renderer: renderer,
		sink:     sink,
		logger:   logger.With("convert"),
	}
}

// Convert writes the prefix, one rendered record per data row with a
// separator before every record but the first, and the suffix. Output
// already written is left in place if a later step fails.
func (s *ConversionService) Convert(req ConversionRequest) (*ConversionResult, error) {
	result := &ConversionResult{
		RunID:     req.RunID,
		Format:    s.renderer.Format(),
		StartedAt: core.Now(),
	}
	if result.RunID == "" {
		result.RunID = core.NewRunID()
	}
	s.logger.Info("run %s: converting to %s", result.RunID, result.Format)

	if err := s.sink.Reset(streamPrefix); err != nil {
		return result, errors.Conversion("failed to start output", err)
	}
	result.BytesWritten += int64(len(streamPrefix))

	cells := NewCellAccessor(req.Source)
	result.Columns = ResolveColumns(cells)
	s.logger.Debug("run %s: resolved %d columns %v", result.RunID, len(result.Columns), []string(result.Columns))

	streamer := NewRowStreamer(cells, result.Columns)
	for {
		record, row, ok := streamer.Next()
		if !ok {
			break
		}

		if result.Records == 0 && record.Len() < len(result.Columns) {
			s.logger.Warn("run %s: duplicate column names, keeping the last value of each: %v", result.RunID, record.Names())
		}

		body, err := s.renderer.Render(record)
		if err != nil {
			return result, errors.Conversion(fmt.Sprintf("failed to render row %d", row), err)
		}
		if result.Records > 0 {
			if err := s.sink.Append(streamSeparator); err != nil {
				return result, errors.Conversion(fmt.Sprintf("failed to write separator before row %d", row), err)
			}
			result.BytesWritten += int64(len(streamSeparator))
		}
		if err := s.sink.Append(body); err != nil {
			return result, errors.Conversion(fmt.Sprintf("failed to write row %d", row), err)
		}
		result.BytesWritten += int64(len(body))
		result.Records++

		s.logger.Trace("run %s: row %d written (%d bytes)", result.RunID, row, len(body))
		if result.Records%progressEvery == 0 {
			s.logger.Debug("run %s: %d records written", result.RunID, result.Records)
		}
	}

	if err := s.sink.Append(streamSuffix); err != nil {
		return result, errors.Conversion("failed to finish output", err)
	}
	result.BytesWritten += int64(len(streamSuffix))
	result.Duration = result.StartedAt.Since()

	s.logger.Debug("run %s: streamer %s", result.RunID, streamer.State())
	s.logger.Info("run %s: wrote %d records (%d bytes) in %.2fms",
		result.RunID, result.Records, result.BytesWritten, float64(result.Duration.Nanoseconds())/1e6)
	return result, nil
}
