package output

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileSink writes the output stream to a file path.
//
// Every write opens the path, writes, and closes it again; no handle is held
// between writes. Content written before a failure stays on disk.
type FileSink struct {
	Path string
	Perm os.FileMode
}

// NewFileSink creates a sink for path with 0644 permissions
func NewFileSink(path string) *FileSink {
	return &FileSink{Path: path, Perm: 0644}
}

// EnsureDir creates the parent directory of the output path if it doesn't exist
func (s *FileSink) EnsureDir() error {
	return os.MkdirAll(filepath.Dir(s.Path), 0755)
}

// Reset creates or truncates the file and writes p
func (s *FileSink) Reset(p []byte) error {
	if err := s.EnsureDir(); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return s.write(os.O_WRONLY|os.O_CREATE|os.O_TRUNC, p)
}

// Append writes p at the end of the file, creating it if needed
func (s *FileSink) Append(p []byte) error {
	return s.write(os.O_WRONLY|os.O_CREATE|os.O_APPEND, p)
}

func (s *FileSink) write(flag int, p []byte) (err error) {
	f, err := os.OpenFile(s.Path, flag, s.Perm)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", s.Path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", s.Path, closeErr)
		}
	}()

	if _, err := f.Write(p); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.Path, err)
	}
	return nil
}
